package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrProgramYearNotFound = errors.New("program year not found")

type ProgramYear struct {
	ID uint `gorm:"primaryKey"`

	ProgramID uint `gorm:"not null;index"`
	Year      int  `gorm:"not null"`
	StartDate *time.Time
	EndDate   *time.Time
	Status    string `gorm:"not null;default:active"`
	Notes     string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ProgramYearDAO struct {
	db *gorm.DB
}

func NewProgramYearDAO(db *gorm.DB) *ProgramYearDAO {
	return &ProgramYearDAO{
		db: db,
	}
}

func (d *ProgramYearDAO) Insert(ctx context.Context, year ProgramYear) (ProgramYear, error) {
	result := d.db.WithContext(ctx).Create(&year)
	if result.Error != nil {
		return ProgramYear{}, result.Error
	}

	return year, nil
}

func (d *ProgramYearDAO) FindByID(ctx context.Context, id uint) (ProgramYear, error) {
	var year ProgramYear

	result := d.db.WithContext(ctx).First(&year, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ProgramYear{}, ErrProgramYearNotFound
		}

		return ProgramYear{}, result.Error
	}

	return year, nil
}

func (d *ProgramYearDAO) FindByProgram(ctx context.Context, programID uint) ([]ProgramYear, error) {
	var years []ProgramYear

	result := d.db.WithContext(ctx).Order("year desc").Find(&years, "program_id = ?", programID)
	if result.Error != nil {
		return nil, result.Error
	}

	return years, nil
}

func (d *ProgramYearDAO) Update(ctx context.Context, year ProgramYear) (ProgramYear, error) {
	result := d.db.WithContext(ctx).Save(&year)
	if result.Error != nil {
		return ProgramYear{}, result.Error
	}

	return year, nil
}
