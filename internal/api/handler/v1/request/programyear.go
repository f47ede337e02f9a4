package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateProgramYearRequest struct {
	Year      int        `json:"year"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Notes     string     `json:"notes"`
}

func (req *CreateProgramYearRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Year, validation.Required, validation.Min(1900)),
	)
}

type UpdateProgramYearRequest struct {
	Year      *int       `json:"year"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Status    *string    `json:"status"`
	Notes     *string    `json:"notes"`
}

func (req *UpdateProgramYearRequest) Validate() error {
	if req.Status == nil {
		return nil
	}

	return validation.Validate(*req.Status, validation.In("active", "archived"))
}
