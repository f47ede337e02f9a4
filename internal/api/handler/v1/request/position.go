package request

import (
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/civiclab/program-api/internal/domain"
)

// NullableMethod distinguishes an absent election_method from an explicit
// null: absent keeps the persisted value, null clears it.
type NullableMethod struct {
	Set   bool
	Value *domain.ElectionMethod
}

func (m *NullableMethod) UnmarshalJSON(data []byte) error {
	m.Set = true

	if string(data) == "null" {
		m.Value = nil

		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	v := domain.ElectionMethod(s)
	m.Value = &v

	return nil
}

type CreatePositionRequest struct {
	Name                 string         `json:"name"`
	Description          string         `json:"description"`
	DisplayOrder         int            `json:"display_order"`
	GroupingTypeID       *uint          `json:"grouping_type_id"`
	IsElected            *bool          `json:"is_elected"`
	BallotGroupingTypeID *uint          `json:"ballot_grouping_type_id"`
	IsNonPartisan        *bool          `json:"is_non_partisan"`
	SeatCount            *int           `json:"seat_count"`
	RequiresDeclaration  *bool          `json:"requires_declaration"`
	RequiresPetition     *bool          `json:"requires_petition"`
	PetitionSignatures   *int           `json:"petition_signatures"`
	ElectionMethod       NullableMethod `json:"election_method"`
}

func (req *CreatePositionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
	)
}

// ConfigInput extracts the election configuration fields for normalization.
func (req *CreatePositionRequest) ConfigInput() domain.PositionConfigInput {
	return domain.PositionConfigInput{
		GroupingTypeID:       req.GroupingTypeID,
		IsElected:            req.IsElected,
		BallotGroupingTypeID: req.BallotGroupingTypeID,
		IsNonPartisan:        req.IsNonPartisan,
		SeatCount:            req.SeatCount,
		RequiresDeclaration:  req.RequiresDeclaration,
		RequiresPetition:     req.RequiresPetition,
		PetitionSignatures:   req.PetitionSignatures,
		ElectionMethod: domain.MethodField{
			Set:   req.ElectionMethod.Set,
			Value: req.ElectionMethod.Value,
		},
	}
}

type UpdatePositionRequest struct {
	Name                 *string        `json:"name"`
	Description          *string        `json:"description"`
	DisplayOrder         *int           `json:"display_order"`
	Status               *string        `json:"status"`
	GroupingTypeID       *uint          `json:"grouping_type_id"`
	IsElected            *bool          `json:"is_elected"`
	BallotGroupingTypeID *uint          `json:"ballot_grouping_type_id"`
	IsNonPartisan        *bool          `json:"is_non_partisan"`
	SeatCount            *int           `json:"seat_count"`
	RequiresDeclaration  *bool          `json:"requires_declaration"`
	RequiresPetition     *bool          `json:"requires_petition"`
	PetitionSignatures   *int           `json:"petition_signatures"`
	ElectionMethod       NullableMethod `json:"election_method"`
}

func (req *UpdatePositionRequest) Validate() error {
	if req.Status == nil {
		return nil
	}

	return validation.Validate(*req.Status, validation.In("active", "retired"))
}

func (req *UpdatePositionRequest) ConfigInput() domain.PositionConfigInput {
	return domain.PositionConfigInput{
		GroupingTypeID:       req.GroupingTypeID,
		IsElected:            req.IsElected,
		BallotGroupingTypeID: req.BallotGroupingTypeID,
		IsNonPartisan:        req.IsNonPartisan,
		SeatCount:            req.SeatCount,
		RequiresDeclaration:  req.RequiresDeclaration,
		RequiresPetition:     req.RequiresPetition,
		PetitionSignatures:   req.PetitionSignatures,
		ElectionMethod: domain.MethodField{
			Set:   req.ElectionMethod.Set,
			Value: req.ElectionMethod.Value,
		},
	}
}

type ActivatePositionRequest struct {
	ProgramYearID       uint  `json:"program_year_id"`
	IncumbentDelegateID *uint `json:"incumbent_delegate_id"`
}

func (req *ActivatePositionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ProgramYearID, validation.Required),
	)
}
