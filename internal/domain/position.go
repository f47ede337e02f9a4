package domain

import (
	"errors"
	"time"
)

const (
	PositionStatusActive  = "active"
	PositionStatusRetired = "retired"
)

// ElectionMethod decides how a contest for an elected position is resolved.
type ElectionMethod string

const (
	MethodPlurality ElectionMethod = "plurality"
	MethodMajority  ElectionMethod = "majority"
	MethodRanked    ElectionMethod = "ranked"
)

func (m ElectionMethod) IsValid() bool {
	switch m {
	case MethodPlurality, MethodMajority, MethodRanked:
		return true
	}

	return false
}

var ErrInvalidElectionMethod = errors.New("election method must be one of plurality, majority, ranked")

// Position is an office, elected or appointed, within a program. The fields
// from BallotGroupingTypeID through ElectionMethod are meaningful only while
// IsElected is true; NormalizePositionConfig keeps them inert otherwise.
type Position struct {
	ID                   uint            `json:"id"`
	ProgramID            uint            `json:"program_id"`
	Name                 string          `json:"name"`
	Description          string          `json:"description,omitempty"`
	DisplayOrder         int             `json:"display_order"`
	Status               string          `json:"status"`
	GroupingTypeID       *uint           `json:"grouping_type_id,omitempty"`
	IsElected            bool            `json:"is_elected"`
	BallotGroupingTypeID *uint           `json:"ballot_grouping_type_id,omitempty"`
	IsNonPartisan        bool            `json:"is_non_partisan"`
	SeatCount            int             `json:"seat_count"`
	RequiresDeclaration  bool            `json:"requires_declaration"`
	RequiresPetition     bool            `json:"requires_petition"`
	PetitionSignatures   *int            `json:"petition_signatures,omitempty"`
	ElectionMethod       *ElectionMethod `json:"election_method,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// MethodField carries the three states an election_method payload field can
// take: absent (Set false), explicit null (Set true, Value nil), or a value.
type MethodField struct {
	Set   bool
	Value *ElectionMethod
}

// PositionConfigInput is the raw candidate field set for a position create
// or update. A nil pointer means the caller omitted the field, so the prior
// persisted value (zero values on create) is retained.
type PositionConfigInput struct {
	GroupingTypeID       *uint
	IsElected            *bool
	BallotGroupingTypeID *uint
	IsNonPartisan        *bool
	SeatCount            *int
	RequiresDeclaration  *bool
	RequiresPetition     *bool
	PetitionSignatures   *int
	ElectionMethod       MethodField
}

// NormalizePositionConfig merges in onto prior and enforces the
// elected/appointed field rules:
//
//   - a supplied election method must be plurality, majority or ranked;
//   - an appointed position (IsElected false) has every election-only field
//     forced to its inert default, whatever the caller sent;
//   - an elected position falls back BallotGroupingTypeID to GroupingTypeID,
//     keeps PetitionSignatures only alongside RequiresPetition, and retains
//     the persisted ElectionMethod when the field is absent (explicit null
//     clears it).
//
// An omitted IsElected keeps the prior value. SeatCount defaults to 1.
// The transformation is side-effect free; persistence happens elsewhere.
func NormalizePositionConfig(in PositionConfigInput, prior Position) (Position, error) {
	if in.ElectionMethod.Set && in.ElectionMethod.Value != nil && !in.ElectionMethod.Value.IsValid() {
		return Position{}, ErrInvalidElectionMethod
	}

	pos := prior

	if in.GroupingTypeID != nil {
		pos.GroupingTypeID = in.GroupingTypeID
	}

	if in.IsElected != nil {
		pos.IsElected = *in.IsElected
	}

	if !pos.IsElected {
		pos.BallotGroupingTypeID = nil
		pos.IsNonPartisan = false
		pos.RequiresDeclaration = false
		pos.RequiresPetition = false
		pos.PetitionSignatures = nil
		pos.ElectionMethod = nil
	} else {
		if in.BallotGroupingTypeID != nil {
			pos.BallotGroupingTypeID = in.BallotGroupingTypeID
		}
		if pos.BallotGroupingTypeID == nil {
			pos.BallotGroupingTypeID = pos.GroupingTypeID
		}

		if in.IsNonPartisan != nil {
			pos.IsNonPartisan = *in.IsNonPartisan
		}
		if in.RequiresDeclaration != nil {
			pos.RequiresDeclaration = *in.RequiresDeclaration
		}
		if in.RequiresPetition != nil {
			pos.RequiresPetition = *in.RequiresPetition
		}

		if in.PetitionSignatures != nil {
			pos.PetitionSignatures = in.PetitionSignatures
		}
		if !pos.RequiresPetition {
			pos.PetitionSignatures = nil
		}

		if in.ElectionMethod.Set {
			pos.ElectionMethod = in.ElectionMethod.Value
		}
	}

	if in.SeatCount != nil {
		pos.SeatCount = *in.SeatCount
	}
	if pos.SeatCount == 0 {
		pos.SeatCount = 1
	}

	return pos, nil
}

// ProgramYearPosition activates a position for a program year, optionally
// recording the incumbent delegate.
type ProgramYearPosition struct {
	ID                  uint   `json:"id"`
	ProgramYearID       uint   `json:"program_year_id"`
	PositionID          uint   `json:"position_id"`
	IncumbentDelegateID *uint  `json:"incumbent_delegate_id,omitempty"`
	Status              string `json:"status"`
}
