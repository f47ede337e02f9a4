package domain

import "time"

const (
	ProgramStatusActive  = "active"
	ProgramStatusRetired = "retired"
)

// RoleAdmin is the coarse administrative role on a program assignment.
// Comparison is exact and case-sensitive.
const RoleAdmin = "admin"

// RoleDeveloper is the sentinel role shown for programs a developer-override
// listing includes without a real assignment.
const RoleDeveloper = "developer"

// DevProgramName marks the program whose members receive the developer
// override listing in GetUserPrograms. Deliberate test-convenience backdoor;
// gated by config, not removed.
const DevProgramName = "DEVELOPMENT"

// Program is the root tenant boundary. Every other entity is scoped,
// directly or transitively, to exactly one program.
type Program struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Year        int       `json:"year"`
	Config      string    `json:"config,omitempty"`
	Status      string    `json:"status"`
	CreatedByID uint      `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProgramAssignment binds a user to a program with a role. At most one
// assignment exists per (user, program) pair; the data layer enforces it.
type ProgramAssignment struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	ProgramID     uint      `json:"program_id"`
	Role          string    `json:"role"`
	ProgramRoleID *uint     `json:"program_role_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ProgramRole is a named, reusable permission bundle for non-admin members.
type ProgramRole struct {
	ID          uint         `json:"id"`
	ProgramID   uint         `json:"program_id"`
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
}

// AssignmentWithProgram pairs an assignment with the program it points at.
type AssignmentWithProgram struct {
	Assignment ProgramAssignment `json:"assignment"`
	Program    Program           `json:"program"`
}

// ProgramListing distinguishes a normal program listing from one produced by
// the DEVELOPMENT override.
type ProgramListing string

const (
	NormalListing            ProgramListing = "normal"
	DeveloperOverrideListing ProgramListing = "developer_override"
)

// UserProgram is one entry of a user's program listing.
type UserProgram struct {
	ProgramID   uint   `json:"program_id"`
	ProgramName string `json:"program_name"`
	Role        string `json:"role"`
}

// UserPrograms is the result of resolving a user's programs by email.
type UserPrograms struct {
	Username string         `json:"username"`
	Listing  ProgramListing `json:"listing"`
	Programs []UserProgram  `json:"programs"`
}
