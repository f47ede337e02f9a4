package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrProgramNotFound     = errors.New("program not found")
	ErrAssignmentExists    = errors.New("user is already assigned to this program")
	ErrProgramRoleNotFound = errors.New("program role not found")
)

type Program struct {
	ID uint `gorm:"primaryKey"`

	Name        string `gorm:"not null"`
	Year        int    `gorm:"not null"`
	Config      string
	Status      string `gorm:"not null;default:active"`
	CreatedByID uint   `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ProgramAssignment holds one row per (user, program) pair; the composite
// unique index makes the "first matching assignment" lookup deterministic.
type ProgramAssignment struct {
	ID uint `gorm:"primaryKey"`

	UserID        uint    `gorm:"not null;uniqueIndex:idx_assignments_user_program"`
	ProgramID     uint    `gorm:"not null;uniqueIndex:idx_assignments_user_program"`
	Role          string  `gorm:"not null"`
	ProgramRoleID *uint
	Program       Program `gorm:"foreignKey:ProgramID"`

	CreatedAt time.Time `gorm:"not null"`
}

type ProgramRole struct {
	ID uint `gorm:"primaryKey"`

	ProgramID   uint                    `gorm:"not null"`
	Name        string                  `gorm:"not null"`
	Permissions []ProgramRolePermission `gorm:"foreignKey:ProgramRoleID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ProgramRolePermission struct {
	ID uint `gorm:"primaryKey"`

	ProgramRoleID uint   `gorm:"not null;uniqueIndex:idx_role_permission"`
	Permission    string `gorm:"not null;uniqueIndex:idx_role_permission"`
}

type ProgramDAO struct {
	db *gorm.DB
}

func NewProgramDAO(db *gorm.DB) *ProgramDAO {
	return &ProgramDAO{
		db: db,
	}
}

func (d *ProgramDAO) Insert(ctx context.Context, program Program) (Program, error) {
	result := d.db.WithContext(ctx).Create(&program)
	if result.Error != nil {
		return Program{}, result.Error
	}

	return program, nil
}

func (d *ProgramDAO) FindByID(ctx context.Context, id uint) (Program, error) {
	var program Program

	result := d.db.WithContext(ctx).First(&program, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Program{}, ErrProgramNotFound
		}

		return Program{}, result.Error
	}

	return program, nil
}

func (d *ProgramDAO) FindAll(ctx context.Context) ([]Program, error) {
	var programs []Program

	result := d.db.WithContext(ctx).Order("id").Find(&programs)
	if result.Error != nil {
		return nil, result.Error
	}

	return programs, nil
}

func (d *ProgramDAO) Update(ctx context.Context, program Program) (Program, error) {
	result := d.db.WithContext(ctx).Save(&program)
	if result.Error != nil {
		return Program{}, result.Error
	}

	return program, nil
}

func (d *ProgramDAO) InsertAssignment(ctx context.Context, assignment ProgramAssignment) (ProgramAssignment, error) {
	result := d.db.WithContext(ctx).Create(&assignment)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return ProgramAssignment{}, ErrAssignmentExists
		}

		return ProgramAssignment{}, result.Error
	}

	return assignment, nil
}

// FindAssignment returns the assignment for a (user, program) pair, or a
// zero value with found=false when none exists.
func (d *ProgramDAO) FindAssignment(ctx context.Context, userID, programID uint) (ProgramAssignment, bool, error) {
	var assignment ProgramAssignment

	result := d.db.WithContext(ctx).
		First(&assignment, "user_id = ? AND program_id = ?", userID, programID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ProgramAssignment{}, false, nil
		}

		return ProgramAssignment{}, false, result.Error
	}

	return assignment, true, nil
}

func (d *ProgramDAO) FindAssignmentsByUser(ctx context.Context, userID uint) ([]ProgramAssignment, error) {
	var assignments []ProgramAssignment

	result := d.db.WithContext(ctx).
		Preload("Program").
		Order("id").
		Find(&assignments, "user_id = ?", userID)
	if result.Error != nil {
		return nil, result.Error
	}

	return assignments, nil
}

func (d *ProgramDAO) InsertRole(ctx context.Context, role ProgramRole) (ProgramRole, error) {
	result := d.db.WithContext(ctx).Create(&role)
	if result.Error != nil {
		return ProgramRole{}, result.Error
	}

	return role, nil
}

func (d *ProgramDAO) FindRoleByID(ctx context.Context, id uint) (ProgramRole, error) {
	var role ProgramRole

	result := d.db.WithContext(ctx).Preload("Permissions").First(&role, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ProgramRole{}, ErrProgramRoleNotFound
		}

		return ProgramRole{}, result.Error
	}

	return role, nil
}

func (d *ProgramDAO) FindRolesByProgram(ctx context.Context, programID uint) ([]ProgramRole, error) {
	var roles []ProgramRole

	result := d.db.WithContext(ctx).
		Preload("Permissions").
		Order("id").
		Find(&roles, "program_id = ?", programID)
	if result.Error != nil {
		return nil, result.Error
	}

	return roles, nil
}
