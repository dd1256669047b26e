// Package eligibility implements the donor eligibility policy. Evaluate is a
// pure function: the same candidate and clock always produce the same
// accept/reject outcome, so the client may run it for responsiveness while
// the server re-runs it as the sole source of truth.
package eligibility

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Policy thresholds.
const (
	MinAge         = 18
	MinWeightKg    = 50.0
	MinPhoneLength = 6
)

// BloodGroup is one of the fixed enumerated donor blood groups.
type BloodGroup string

const (
	BloodGroupAPos    BloodGroup = "A+"
	BloodGroupANeg    BloodGroup = "A-"
	BloodGroupBPos    BloodGroup = "B+"
	BloodGroupBNeg    BloodGroup = "B-"
	BloodGroupABPos   BloodGroup = "AB+"
	BloodGroupABNeg   BloodGroup = "AB-"
	BloodGroupOPos    BloodGroup = "O+"
	BloodGroupONeg    BloodGroup = "O-"
	BloodGroupUnknown BloodGroup = "Don't Know"
)

// BloodGroups is the fixed membership set, in display order.
var BloodGroups = []BloodGroup{
	BloodGroupAPos, BloodGroupANeg,
	BloodGroupBPos, BloodGroupBNeg,
	BloodGroupABPos, BloodGroupABNeg,
	BloodGroupOPos, BloodGroupONeg,
	BloodGroupUnknown,
}

func (b BloodGroup) Valid() bool {
	for _, bg := range BloodGroups {
		if b == bg {
			return true
		}
	}
	return false
}

// Reason identifies why a candidate was rejected.
type Reason string

const (
	ReasonMissingField         Reason = "missing_field"
	ReasonInvalidDate          Reason = "invalid_date"
	ReasonUnderage             Reason = "underage"
	ReasonInvalidWeight        Reason = "invalid_weight"
	ReasonInvalidBloodGroup    Reason = "invalid_blood_group"
	ReasonInvalidPhone         Reason = "invalid_phone"
	ReasonInvalidCampReference Reason = "invalid_camp_reference"
)

// RejectionError is the outcome of a failed evaluation. Message names the
// offending field or rule and is safe to show the submitter verbatim.
type RejectionError struct {
	Reason  Reason
	Field   string
	Message string
}

func (e *RejectionError) Error() string { return e.Message }

func reject(reason Reason, field, message string) *RejectionError {
	return &RejectionError{Reason: reason, Field: field, Message: message}
}

// Candidate is the raw submission before any trust is placed in it. All
// fields are strings as they arrived on the wire; weight keeps its original
// representation so "sixty" and "49.9" both reject for the right reason.
type Candidate struct {
	Name       string
	DOB        string
	Weight     string
	BloodGroup string
	Email      string
	Phone      string
	Address    string
	Camp       string
}

// Profile is the canonical record derived from an accepted candidate:
// trimmed strings, computed age, numeric weight.
type Profile struct {
	Name       string
	DOB        time.Time
	Age        int
	WeightKg   float64
	BloodGroup BloodGroup
	Email      string
	Phone      string
	Address    string
	CampID     uuid.UUID
}

// Age computes whole elapsed calendar years between dob and now. A birthday
// not yet reached in now's year decrements the naive year difference by one.
func Age(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// ParseDOB accepts the two wire formats for a date of birth.
func ParseDOB(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// Evaluate validates a candidate against the eligibility policy at the given
// instant. On acceptance it returns the canonical profile; on failure a
// *RejectionError naming the offending field. It has no side effects and
// consults no state beyond its arguments.
func Evaluate(c Candidate, now time.Time) (*Profile, error) {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return nil, reject(ReasonMissingField, "name", "name is required")
	}

	if strings.TrimSpace(c.DOB) == "" {
		return nil, reject(ReasonMissingField, "dob", "date of birth is required")
	}
	dob, err := ParseDOB(c.DOB)
	if err != nil {
		return nil, reject(ReasonInvalidDate, "dob", "invalid date of birth")
	}
	if dob.After(now) {
		return nil, reject(ReasonInvalidDate, "dob", "date of birth cannot be in the future")
	}
	age := Age(dob, now)
	if age < MinAge {
		return nil, reject(ReasonUnderage, "dob", "donor must be at least 18 years old")
	}

	weightStr := strings.TrimSpace(c.Weight)
	if weightStr == "" {
		return nil, reject(ReasonMissingField, "weight", "weight is required")
	}
	weight, err := strconv.ParseFloat(weightStr, 64)
	if err != nil {
		return nil, reject(ReasonInvalidWeight, "weight", "weight must be a number")
	}
	if weight < MinWeightKg {
		return nil, reject(ReasonInvalidWeight, "weight", "minimum weight 50kg required")
	}

	bloodGroup := BloodGroup(strings.TrimSpace(c.BloodGroup))
	if bloodGroup == "" {
		return nil, reject(ReasonMissingField, "bloodGroup", "blood group is required")
	}
	if !bloodGroup.Valid() {
		return nil, reject(ReasonInvalidBloodGroup, "bloodGroup", "blood group is not recognized")
	}

	phone := strings.TrimSpace(c.Phone)
	if len(phone) < MinPhoneLength {
		return nil, reject(ReasonInvalidPhone, "phone", "valid phone number required")
	}

	address := strings.TrimSpace(c.Address)
	if address == "" {
		return nil, reject(ReasonMissingField, "address", "address is required")
	}

	campRef := strings.TrimSpace(c.Camp)
	if campRef == "" {
		return nil, reject(ReasonMissingField, "camp", "camp is required")
	}
	// Format-level check only; existence is the availability resolver's call.
	campID, err := uuid.Parse(campRef)
	if err != nil {
		return nil, reject(ReasonInvalidCampReference, "camp", "Invalid camp id")
	}

	return &Profile{
		Name:       name,
		DOB:        dob,
		Age:        age,
		WeightKg:   weight,
		BloodGroup: bloodGroup,
		Email:      strings.TrimSpace(c.Email),
		Phone:      phone,
		Address:    address,
		CampID:     campID,
	}, nil
}
