package domain

import "time"

const (
	PersonStatusActive    = "active"
	PersonStatusWithdrawn = "withdrawn"
	PersonStatusInactive  = "inactive"
)

// Delegate is a program-year participant eligible to vote and hold positions.
type Delegate struct {
	ID            uint      `json:"id"`
	ProgramYearID uint      `json:"program_year_id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email,omitempty"`
	GroupingID    *uint     `json:"grouping_id,omitempty"`
	PartyID       *uint     `json:"party_id,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Staff is a program-year staff member.
type Staff struct {
	ID            uint      `json:"id"`
	ProgramYearID uint      `json:"program_year_id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email,omitempty"`
	Role          string    `json:"role,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Parent is a delegate guardian record scoped to a program year.
type Parent struct {
	ID            uint      `json:"id"`
	ProgramYearID uint      `json:"program_year_id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

const (
	LinkStatusPending  = "pending"
	LinkStatusApproved = "approved"
	LinkStatusRejected = "rejected"
)

// DelegateParentLink joins a delegate and a parent within their common
// program year. Created by an admin in pending state.
type DelegateParentLink struct {
	ID            uint      `json:"id"`
	ProgramYearID uint      `json:"program_year_id"`
	DelegateID    uint      `json:"delegate_id"`
	ParentID      uint      `json:"parent_id"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
