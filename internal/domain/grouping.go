package domain

import "time"

const (
	GroupingStatusActive  = "active"
	GroupingStatusRetired = "retired"
)

// GroupingType is a category in a program's organizational taxonomy,
// e.g. "County" or "City".
type GroupingType struct {
	ID           uint      `json:"id"`
	ProgramID    uint      `json:"program_id"`
	Name         string    `json:"name"`
	DisplayOrder int       `json:"display_order"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Grouping is one organizational unit; groupings form a hierarchy through
// ParentGroupingID (e.g. a City under a County).
type Grouping struct {
	ID               uint      `json:"id"`
	ProgramID        uint      `json:"program_id"`
	GroupingTypeID   uint      `json:"grouping_type_id"`
	ParentGroupingID *uint     `json:"parent_grouping_id,omitempty"`
	Name             string    `json:"name"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

const (
	ActivationStatusActive   = "active"
	ActivationStatusInactive = "inactive"
)

// ProgramYearGrouping activates a grouping for a program year. Activation
// rows are diffed in bulk: new groupings are created, previously
// deactivated ones are reactivated, missing ones are deactivated.
type ProgramYearGrouping struct {
	ID            uint   `json:"id"`
	ProgramYearID uint   `json:"program_year_id"`
	GroupingID    uint   `json:"grouping_id"`
	Status        string `json:"status"`
}
