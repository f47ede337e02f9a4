package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateProgramRequest struct {
	Name   string `json:"name"`
	Year   int    `json:"year"`
	Config string `json:"config"`
}

func (req *CreateProgramRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Year, validation.Required, validation.Min(1900)),
	)
}

type UpdateProgramRequest struct {
	Name   string `json:"name"`
	Year   int    `json:"year"`
	Config string `json:"config"`
	Status string `json:"status"`
}

func (req *UpdateProgramRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Length(2, 100)),
		validation.Field(&req.Status, validation.In("active", "retired")),
	)
}

type CreateRoleRequest struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

func (req *CreateRoleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.Permissions, validation.Required),
	)
}

type AssignUserRequest struct {
	UserID        uint   `json:"user_id"`
	Role          string `json:"role"`
	ProgramRoleID *uint  `json:"program_role_id"`
}

func (req *AssignUserRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Role, validation.Required),
	)
}
