package domain

import "time"

const (
	ProgramYearStatusActive   = "active"
	ProgramYearStatusArchived = "archived"
)

// ProgramYear is a single operating cycle (session) of a program.
type ProgramYear struct {
	ID        uint       `json:"id"`
	ProgramID uint       `json:"program_id"`
	Year      int        `json:"year"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Status    string     `json:"status"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
