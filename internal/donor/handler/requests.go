package handler

import "bloodcamp/internal/donor/service"

// UpdateDonorRequest is the administrative donor edit payload. Absent fields
// leave the record untouched.
type UpdateDonorRequest struct {
	Name       *string  `json:"name"`
	Email      *string  `json:"email"`
	Phone      *string  `json:"phone"`
	Address    *string  `json:"address"`
	Weight     *float64 `json:"weight"`
	BloodGroup *string  `json:"bloodGroup"`
	Remark     *string  `json:"remark"`
}

func (r UpdateDonorRequest) Params() service.UpdateParams {
	return service.UpdateParams{
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Address:    r.Address,
		WeightKg:   r.Weight,
		BloodGroup: r.BloodGroup,
		Remark:     r.Remark,
	}
}
