package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrGroupingTypeNotFound = errors.New("grouping type not found")
	ErrGroupingNotFound     = errors.New("grouping not found")
)

type GroupingType struct {
	ID uint `gorm:"primaryKey"`

	ProgramID    uint   `gorm:"not null;index"`
	Name         string `gorm:"not null"`
	DisplayOrder int
	Status       string `gorm:"not null;default:active"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Grouping struct {
	ID uint `gorm:"primaryKey"`

	ProgramID        uint `gorm:"not null;index"`
	GroupingTypeID   uint `gorm:"not null"`
	ParentGroupingID *uint
	Name             string `gorm:"not null"`
	Status           string `gorm:"not null;default:active"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ProgramYearGrouping struct {
	ID uint `gorm:"primaryKey"`

	ProgramYearID uint   `gorm:"not null;uniqueIndex:idx_py_grouping"`
	GroupingID    uint   `gorm:"not null;uniqueIndex:idx_py_grouping"`
	Status        string `gorm:"not null;default:active"`
}

type GroupingDAO struct {
	db *gorm.DB
}

func NewGroupingDAO(db *gorm.DB) *GroupingDAO {
	return &GroupingDAO{
		db: db,
	}
}

func (d *GroupingDAO) InsertType(ctx context.Context, gt GroupingType) (GroupingType, error) {
	result := d.db.WithContext(ctx).Create(&gt)
	if result.Error != nil {
		return GroupingType{}, result.Error
	}

	return gt, nil
}

func (d *GroupingDAO) FindTypeByID(ctx context.Context, id uint) (GroupingType, error) {
	var gt GroupingType

	result := d.db.WithContext(ctx).First(&gt, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return GroupingType{}, ErrGroupingTypeNotFound
		}

		return GroupingType{}, result.Error
	}

	return gt, nil
}

func (d *GroupingDAO) FindTypesByProgram(ctx context.Context, programID uint) ([]GroupingType, error) {
	var types []GroupingType

	result := d.db.WithContext(ctx).
		Order("display_order, id").
		Find(&types, "program_id = ?", programID)
	if result.Error != nil {
		return nil, result.Error
	}

	return types, nil
}

func (d *GroupingDAO) UpdateType(ctx context.Context, gt GroupingType) (GroupingType, error) {
	result := d.db.WithContext(ctx).Save(&gt)
	if result.Error != nil {
		return GroupingType{}, result.Error
	}

	return gt, nil
}

func (d *GroupingDAO) Insert(ctx context.Context, grouping Grouping) (Grouping, error) {
	result := d.db.WithContext(ctx).Create(&grouping)
	if result.Error != nil {
		return Grouping{}, result.Error
	}

	return grouping, nil
}

func (d *GroupingDAO) FindByID(ctx context.Context, id uint) (Grouping, error) {
	var grouping Grouping

	result := d.db.WithContext(ctx).First(&grouping, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Grouping{}, ErrGroupingNotFound
		}

		return Grouping{}, result.Error
	}

	return grouping, nil
}

func (d *GroupingDAO) FindByProgram(ctx context.Context, programID uint) ([]Grouping, error) {
	var groupings []Grouping

	result := d.db.WithContext(ctx).Order("id").Find(&groupings, "program_id = ?", programID)
	if result.Error != nil {
		return nil, result.Error
	}

	return groupings, nil
}

func (d *GroupingDAO) Update(ctx context.Context, grouping Grouping) (Grouping, error) {
	result := d.db.WithContext(ctx).Save(&grouping)
	if result.Error != nil {
		return Grouping{}, result.Error
	}

	return grouping, nil
}

func (d *GroupingDAO) FindActivations(ctx context.Context, programYearID uint) ([]ProgramYearGrouping, error) {
	var activations []ProgramYearGrouping

	result := d.db.WithContext(ctx).Find(&activations, "program_year_id = ?", programYearID)
	if result.Error != nil {
		return nil, result.Error
	}

	return activations, nil
}

func (d *GroupingDAO) InsertActivation(ctx context.Context, activation ProgramYearGrouping) (ProgramYearGrouping, error) {
	result := d.db.WithContext(ctx).Create(&activation)
	if result.Error != nil {
		return ProgramYearGrouping{}, result.Error
	}

	return activation, nil
}

func (d *GroupingDAO) UpdateActivationStatus(ctx context.Context, id uint, status string) error {
	result := d.db.WithContext(ctx).
		Model(&ProgramYearGrouping{}).
		Where("id = ?", id).
		Update("status", status)

	return result.Error
}
