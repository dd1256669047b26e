package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"bloodcamp/internal/camp/models"
	"bloodcamp/pkg/sentinel"
)

// Postgres persists camps in PostgreSQL. The camps_name_lower_idx unique
// index enforces case-insensitive name uniqueness; violations surface as
// sentinel.ErrAlreadyUsed.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func (s *Postgres) CreateIfNameAvailable(ctx context.Context, camp *models.Camp) error {
	query := `
		INSERT INTO camps (id, name, location, date, organizer_name, organizer_contact, pro_name, hospital_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, query,
		camp.ID, camp.Name, camp.Location, nullTime(camp.Date),
		camp.OrganizerName, camp.OrganizerContact, camp.ProName, camp.HospitalName,
		camp.CreatedAt, camp.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert camp: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id uuid.UUID) (*models.Camp, error) {
	query := `
		SELECT id, name, location, date, organizer_name, organizer_contact, pro_name, hospital_name, created_at, updated_at
		FROM camps
		WHERE id = $1
	`
	return scanCamp(s.db.QueryRowContext(ctx, query, id))
}

func (s *Postgres) ListAll(ctx context.Context) ([]*models.Camp, error) {
	query := `
		SELECT id, name, location, date, organizer_name, organizer_contact, pro_name, hospital_name, created_at, updated_at
		FROM camps
		ORDER BY date ASC NULLS LAST, name ASC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list camps: %w", err)
	}
	defer rows.Close()

	var camps []*models.Camp
	for rows.Next() {
		camp, err := scanCamp(rows)
		if err != nil {
			return nil, err
		}
		camps = append(camps, camp)
	}
	return camps, rows.Err()
}

func (s *Postgres) Update(ctx context.Context, camp *models.Camp) error {
	query := `
		UPDATE camps
		SET name = $2, location = $3, date = $4, organizer_name = $5, organizer_contact = $6, pro_name = $7, hospital_name = $8, updated_at = $9
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		camp.ID, camp.Name, camp.Location, nullTime(camp.Date),
		camp.OrganizerName, camp.OrganizerContact, camp.ProName, camp.HospitalName,
		camp.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("update camp: %w", err)
	}
	return requireRow(res)
}

func (s *Postgres) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM camps WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete camp: %w", err)
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCamp(row rowScanner) (*models.Camp, error) {
	var camp models.Camp
	var date sql.NullTime
	err := row.Scan(
		&camp.ID, &camp.Name, &camp.Location, &date,
		&camp.OrganizerName, &camp.OrganizerContact, &camp.ProName, &camp.HospitalName,
		&camp.CreatedAt, &camp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan camp: %w", err)
	}
	if date.Valid {
		camp.Date = &date.Time
	}
	return &camp, nil
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

func nullTime(value *time.Time) sql.NullTime {
	if value == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *value, Valid: true}
}
