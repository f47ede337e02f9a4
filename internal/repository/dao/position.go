package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrPositionNotFound = errors.New("position not found")

type Position struct {
	ID uint `gorm:"primaryKey"`

	ProgramID    uint   `gorm:"not null;index"`
	Name         string `gorm:"not null"`
	Description  string
	DisplayOrder int
	Status       string `gorm:"not null;default:active"`

	GroupingTypeID       *uint
	IsElected            bool `gorm:"not null;default:false"`
	BallotGroupingTypeID *uint
	IsNonPartisan        bool `gorm:"not null;default:false"`
	SeatCount            int  `gorm:"not null;default:1"`
	RequiresDeclaration  bool `gorm:"not null;default:false"`
	RequiresPetition     bool `gorm:"not null;default:false"`
	PetitionSignatures   *int
	ElectionMethod       *string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ProgramYearPosition struct {
	ID uint `gorm:"primaryKey"`

	ProgramYearID       uint `gorm:"not null;uniqueIndex:idx_py_position"`
	PositionID          uint `gorm:"not null;uniqueIndex:idx_py_position"`
	IncumbentDelegateID *uint
	Status              string `gorm:"not null;default:active"`
}

type PositionDAO struct {
	db *gorm.DB
}

func NewPositionDAO(db *gorm.DB) *PositionDAO {
	return &PositionDAO{
		db: db,
	}
}

func (d *PositionDAO) Insert(ctx context.Context, position Position) (Position, error) {
	result := d.db.WithContext(ctx).Create(&position)
	if result.Error != nil {
		return Position{}, result.Error
	}

	return position, nil
}

func (d *PositionDAO) FindByID(ctx context.Context, id uint) (Position, error) {
	var position Position

	result := d.db.WithContext(ctx).First(&position, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Position{}, ErrPositionNotFound
		}

		return Position{}, result.Error
	}

	return position, nil
}

func (d *PositionDAO) FindByProgram(ctx context.Context, programID uint) ([]Position, error) {
	var positions []Position

	result := d.db.WithContext(ctx).
		Order("display_order, id").
		Find(&positions, "program_id = ?", programID)
	if result.Error != nil {
		return nil, result.Error
	}

	return positions, nil
}

// Update saves the full row. Nil-able election fields must overwrite with
// NULL when cleared, so Save (not Updates) is required here.
func (d *PositionDAO) Update(ctx context.Context, position Position) (Position, error) {
	result := d.db.WithContext(ctx).Save(&position)
	if result.Error != nil {
		return Position{}, result.Error
	}

	return position, nil
}

func (d *PositionDAO) InsertActivation(ctx context.Context, activation ProgramYearPosition) (ProgramYearPosition, error) {
	result := d.db.WithContext(ctx).Create(&activation)
	if result.Error != nil {
		return ProgramYearPosition{}, result.Error
	}

	return activation, nil
}

func (d *PositionDAO) FindActivations(ctx context.Context, programYearID uint) ([]ProgramYearPosition, error) {
	var activations []ProgramYearPosition

	result := d.db.WithContext(ctx).Find(&activations, "program_year_id = ?", programYearID)
	if result.Error != nil {
		return nil, result.Error
	}

	return activations, nil
}
