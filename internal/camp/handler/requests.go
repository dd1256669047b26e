package handler

import (
	"strings"
	"time"

	"bloodcamp/internal/camp/service"
	"bloodcamp/pkg/domainerrors"
)

// CampRequest is the admin payload for creating or updating a camp. Field
// names mirror the public camp representation.
type CampRequest struct {
	Name             string `json:"name"`
	Location         string `json:"location"`
	Date             string `json:"date"`
	OrganizerName    string `json:"organizerName"`
	OrganizerContact string `json:"organizerContact"`
	ProName          string `json:"proName"`
	HospitalName     string `json:"hospitalName"`
}

// Params validates the request and converts it into service parameters.
// The date, when present, must be YYYY-MM-DD.
func (r *CampRequest) Params() (service.CampParams, error) {
	params := service.CampParams{
		Name:             r.Name,
		Location:         r.Location,
		OrganizerName:    r.OrganizerName,
		OrganizerContact: r.OrganizerContact,
		ProName:          r.ProName,
		HospitalName:     r.HospitalName,
	}

	if date := strings.TrimSpace(r.Date); date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return service.CampParams{}, domainerrors.New(domainerrors.CodeValidation, "camp date must be YYYY-MM-DD")
		}
		params.Date = &parsed
	}

	return params, nil
}
