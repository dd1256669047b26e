package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"bloodcamp/internal/donor/models"
	"bloodcamp/pkg/sentinel"
)

// Postgres persists donors in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const uniqueViolation = "23505"

func (s *Postgres) Create(ctx context.Context, donor *models.Donor) error {
	query := `
		INSERT INTO donors (id, name, dob, age, weight_kg, blood_group, email, phone, address, camp_id, remark, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.db.ExecContext(ctx, query,
		donor.ID, donor.Name, donor.DOB, donor.Age, donor.WeightKg,
		string(donor.BloodGroup), donor.Email, donor.Phone, donor.Address,
		donor.CampID, donor.Remark, donor.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("insert donor: %w (%s)", sentinel.ErrAlreadyUsed, pqErr.Detail)
		}
		return fmt.Errorf("insert donor: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id uuid.UUID) (*models.Donor, error) {
	query := selectDonor + ` WHERE id = $1`
	return scanDonor(s.db.QueryRowContext(ctx, query, id))
}

// FindByCamp returns the camp roster sorted by donor name ascending.
func (s *Postgres) FindByCamp(ctx context.Context, campID uuid.UUID) ([]*models.Donor, error) {
	query := selectDonor + ` WHERE camp_id = $1 ORDER BY LOWER(name) ASC`
	rows, err := s.db.QueryContext(ctx, query, campID)
	if err != nil {
		return nil, fmt.Errorf("list donors by camp: %w", err)
	}
	defer rows.Close()

	var donors []*models.Donor
	for rows.Next() {
		donor, err := scanDonor(rows)
		if err != nil {
			return nil, err
		}
		donors = append(donors, donor)
	}
	return donors, rows.Err()
}

func (s *Postgres) Update(ctx context.Context, donor *models.Donor) error {
	query := `
		UPDATE donors
		SET name = $2, dob = $3, age = $4, weight_kg = $5, blood_group = $6, email = $7, phone = $8, address = $9, camp_id = $10, remark = $11
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		donor.ID, donor.Name, donor.DOB, donor.Age, donor.WeightKg,
		string(donor.BloodGroup), donor.Email, donor.Phone, donor.Address,
		donor.CampID, donor.Remark,
	)
	if err != nil {
		return fmt.Errorf("update donor: %w", err)
	}
	return requireRow(res)
}

func (s *Postgres) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM donors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete donor: %w", err)
	}
	return requireRow(res)
}

const selectDonor = `
	SELECT id, name, dob, age, weight_kg, blood_group, email, phone, address, camp_id, remark, created_at
	FROM donors
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDonor(row rowScanner) (*models.Donor, error) {
	var donor models.Donor
	err := row.Scan(
		&donor.ID, &donor.Name, &donor.DOB, &donor.Age, &donor.WeightKg,
		&donor.BloodGroup, &donor.Email, &donor.Phone, &donor.Address,
		&donor.CampID, &donor.Remark, &donor.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan donor: %w", err)
	}
	return &donor, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
