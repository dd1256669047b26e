package handler

import (
	"encoding/json"
	"strings"

	"bloodcamp/internal/eligibility"
)

// flexNumber accepts a JSON number or a numeric string. Registration forms
// in the wild send weight both ways.
type flexNumber string

func (f *flexNumber) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexNumber(s)
		return nil
	}
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		raw = ""
	}
	*f = flexNumber(raw)
	return nil
}

// RegisterDonorRequest is the public registration payload.
type RegisterDonorRequest struct {
	Name       string     `json:"name"`
	DOB        string     `json:"dob"`
	Weight     flexNumber `json:"weight"`
	BloodGroup string     `json:"bloodGroup"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Address    string     `json:"address"`
	Camp       string     `json:"camp"`
}

func (r RegisterDonorRequest) Candidate() eligibility.Candidate {
	return eligibility.Candidate{
		Name:       r.Name,
		DOB:        r.DOB,
		Weight:     string(r.Weight),
		BloodGroup: r.BloodGroup,
		Email:      r.Email,
		Phone:      r.Phone,
		Address:    r.Address,
		Camp:       r.Camp,
	}
}
