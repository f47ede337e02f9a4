package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrPartyNotFound = errors.New("party not found")

type Party struct {
	ID uint `gorm:"primaryKey"`

	ProgramID    uint   `gorm:"not null;index"`
	Name         string `gorm:"not null"`
	Abbreviation string
	Color        string
	Icon         string
	DisplayOrder int
	Status       string `gorm:"not null;default:active"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ProgramYearParty struct {
	ID uint `gorm:"primaryKey"`

	ProgramYearID uint   `gorm:"not null;uniqueIndex:idx_py_party"`
	PartyID       uint   `gorm:"not null;uniqueIndex:idx_py_party"`
	Status        string `gorm:"not null;default:active"`
}

type PartyDAO struct {
	db *gorm.DB
}

func NewPartyDAO(db *gorm.DB) *PartyDAO {
	return &PartyDAO{
		db: db,
	}
}

func (d *PartyDAO) Insert(ctx context.Context, party Party) (Party, error) {
	result := d.db.WithContext(ctx).Create(&party)
	if result.Error != nil {
		return Party{}, result.Error
	}

	return party, nil
}

func (d *PartyDAO) FindByID(ctx context.Context, id uint) (Party, error) {
	var party Party

	result := d.db.WithContext(ctx).First(&party, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Party{}, ErrPartyNotFound
		}

		return Party{}, result.Error
	}

	return party, nil
}

func (d *PartyDAO) FindByProgram(ctx context.Context, programID uint) ([]Party, error) {
	var parties []Party

	result := d.db.WithContext(ctx).
		Order("display_order, id").
		Find(&parties, "program_id = ?", programID)
	if result.Error != nil {
		return nil, result.Error
	}

	return parties, nil
}

func (d *PartyDAO) Update(ctx context.Context, party Party) (Party, error) {
	result := d.db.WithContext(ctx).Save(&party)
	if result.Error != nil {
		return Party{}, result.Error
	}

	return party, nil
}

func (d *PartyDAO) FindActivations(ctx context.Context, programYearID uint) ([]ProgramYearParty, error) {
	var activations []ProgramYearParty

	result := d.db.WithContext(ctx).Find(&activations, "program_year_id = ?", programYearID)
	if result.Error != nil {
		return nil, result.Error
	}

	return activations, nil
}

func (d *PartyDAO) InsertActivation(ctx context.Context, activation ProgramYearParty) (ProgramYearParty, error) {
	result := d.db.WithContext(ctx).Create(&activation)
	if result.Error != nil {
		return ProgramYearParty{}, result.Error
	}

	return activation, nil
}

func (d *PartyDAO) UpdateActivationStatus(ctx context.Context, id uint, status string) error {
	result := d.db.WithContext(ctx).
		Model(&ProgramYearParty{}).
		Where("id = ?", id).
		Update("status", status)

	return result.Error
}
