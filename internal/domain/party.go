package domain

import "time"

// Party is a political party defined at the program level and activated per
// program year through ProgramYearParty join rows.
type Party struct {
	ID           uint      `json:"id"`
	ProgramID    uint      `json:"program_id"`
	Name         string    `json:"name"`
	Abbreviation string    `json:"abbreviation,omitempty"`
	Color        string    `json:"color,omitempty"`
	Icon         string    `json:"icon,omitempty"`
	DisplayOrder int       `json:"display_order"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProgramYearParty activates a party for a program year. Reactivation flips
// an inactive row back to active instead of inserting a duplicate.
type ProgramYearParty struct {
	ID            uint   `json:"id"`
	ProgramYearID uint   `json:"program_year_id"`
	PartyID       uint   `json:"party_id"`
	Status        string `json:"status"`
}
