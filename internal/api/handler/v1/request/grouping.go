package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateGroupingTypeRequest struct {
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
}

func (req *CreateGroupingTypeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 50)),
	)
}

type CreateGroupingRequest struct {
	GroupingTypeID   uint   `json:"grouping_type_id"`
	ParentGroupingID *uint  `json:"parent_grouping_id"`
	Name             string `json:"name"`
}

func (req *CreateGroupingRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.GroupingTypeID, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
	)
}

// SetActiveGroupingsRequest carries the full desired set; groupings not
// listed get deactivated.
type SetActiveGroupingsRequest struct {
	GroupingIDs []uint `json:"grouping_ids"`
}

func (req *SetActiveGroupingsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.GroupingIDs, validation.NotNil),
	)
}
