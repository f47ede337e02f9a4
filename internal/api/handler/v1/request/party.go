package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreatePartyRequest struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Color        string `json:"color"`
	Icon         string `json:"icon"`
	DisplayOrder int    `json:"display_order"`
}

func (req *CreatePartyRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.Abbreviation, validation.Length(0, 10)),
	)
}

type UpdatePartyRequest struct {
	Name         *string `json:"name"`
	Abbreviation *string `json:"abbreviation"`
	Color        *string `json:"color"`
	Icon         *string `json:"icon"`
	DisplayOrder *int    `json:"display_order"`
	Status       *string `json:"status"`
}

func (req *UpdatePartyRequest) Validate() error {
	if req.Status == nil {
		return nil
	}

	return validation.Validate(*req.Status, validation.In("active", "retired"))
}

type SetActivePartiesRequest struct {
	PartyIDs []uint `json:"party_ids"`
}

func (req *SetActivePartiesRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PartyIDs, validation.NotNil),
	)
}
