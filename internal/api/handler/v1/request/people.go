package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateDelegateRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	GroupingID *uint  `json:"grouping_id"`
	PartyID    *uint  `json:"party_id"`
}

func (req *CreateDelegateRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FirstName, validation.Required),
		validation.Field(&req.LastName, validation.Required),
		validation.Field(&req.Email, is.Email),
	)
}

type UpdateDelegateRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	GroupingID *uint  `json:"grouping_id"`
	PartyID    *uint  `json:"party_id"`
	Status     string `json:"status"`
}

func (req *UpdateDelegateRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, is.Email),
		validation.Field(&req.Status, validation.In("active", "withdrawn", "inactive")),
	)
}

type CreateStaffRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

func (req *CreateStaffRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FirstName, validation.Required),
		validation.Field(&req.LastName, validation.Required),
		validation.Field(&req.Email, is.Email),
	)
}

type UpdateStaffRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
}

func (req *UpdateStaffRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, is.Email),
		validation.Field(&req.Status, validation.In("active", "withdrawn", "inactive")),
	)
}

type CreateParentRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func (req *CreateParentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FirstName, validation.Required),
		validation.Field(&req.LastName, validation.Required),
		validation.Field(&req.Email, is.Email),
	)
}

type UpdateParentRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Status    string `json:"status"`
}

func (req *UpdateParentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, is.Email),
		validation.Field(&req.Status, validation.In("active", "withdrawn", "inactive")),
	)
}

type LinkDelegateParentRequest struct {
	DelegateID uint `json:"delegate_id"`
	ParentID   uint `json:"parent_id"`
}

func (req *LinkDelegateParentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.DelegateID, validation.Required),
		validation.Field(&req.ParentID, validation.Required),
	)
}

type ReviewLinkRequest struct {
	Status string `json:"status"`
}

func (req *ReviewLinkRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In("approved", "rejected")),
	)
}
