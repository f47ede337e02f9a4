package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrDelegateNotFound = errors.New("delegate not found")
	ErrStaffNotFound    = errors.New("staff member not found")
	ErrParentNotFound   = errors.New("parent not found")
	ErrLinkNotFound     = errors.New("delegate-parent link not found")
)

type Delegate struct {
	ID uint `gorm:"primaryKey"`

	ProgramYearID uint   `gorm:"not null;index"`
	FirstName     string `gorm:"not null"`
	LastName      string `gorm:"not null"`
	Email         string
	GroupingID    *uint
	PartyID       *uint
	Status        string `gorm:"not null;default:active"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Staff struct {
	ID uint `gorm:"primaryKey"`

	ProgramYearID uint   `gorm:"not null;index"`
	FirstName     string `gorm:"not null"`
	LastName      string `gorm:"not null"`
	Email         string
	Role          string
	Status        string `gorm:"not null;default:active"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Parent struct {
	ID uint `gorm:"primaryKey"`

	ProgramYearID uint   `gorm:"not null;index"`
	FirstName     string `gorm:"not null"`
	LastName      string `gorm:"not null"`
	Email         string
	Phone         string
	Status        string `gorm:"not null;default:active"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type DelegateParentLink struct {
	ID uint `gorm:"primaryKey"`

	ProgramYearID uint   `gorm:"not null;index"`
	DelegateID    uint   `gorm:"not null;uniqueIndex:idx_delegate_parent"`
	ParentID      uint   `gorm:"not null;uniqueIndex:idx_delegate_parent"`
	Status        string `gorm:"not null;default:pending"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type PeopleDAO struct {
	db *gorm.DB
}

func NewPeopleDAO(db *gorm.DB) *PeopleDAO {
	return &PeopleDAO{
		db: db,
	}
}

func (d *PeopleDAO) InsertDelegate(ctx context.Context, delegate Delegate) (Delegate, error) {
	result := d.db.WithContext(ctx).Create(&delegate)
	if result.Error != nil {
		return Delegate{}, result.Error
	}

	return delegate, nil
}

func (d *PeopleDAO) FindDelegateByID(ctx context.Context, id uint) (Delegate, error) {
	var delegate Delegate

	result := d.db.WithContext(ctx).First(&delegate, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Delegate{}, ErrDelegateNotFound
		}

		return Delegate{}, result.Error
	}

	return delegate, nil
}

func (d *PeopleDAO) FindDelegatesByProgramYear(ctx context.Context, programYearID uint) ([]Delegate, error) {
	var delegates []Delegate

	result := d.db.WithContext(ctx).
		Order("last_name, first_name").
		Find(&delegates, "program_year_id = ?", programYearID)
	if result.Error != nil {
		return nil, result.Error
	}

	return delegates, nil
}

func (d *PeopleDAO) UpdateDelegate(ctx context.Context, delegate Delegate) (Delegate, error) {
	result := d.db.WithContext(ctx).Save(&delegate)
	if result.Error != nil {
		return Delegate{}, result.Error
	}

	return delegate, nil
}

func (d *PeopleDAO) InsertStaff(ctx context.Context, staff Staff) (Staff, error) {
	result := d.db.WithContext(ctx).Create(&staff)
	if result.Error != nil {
		return Staff{}, result.Error
	}

	return staff, nil
}

func (d *PeopleDAO) FindStaffByID(ctx context.Context, id uint) (Staff, error) {
	var staff Staff

	result := d.db.WithContext(ctx).First(&staff, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Staff{}, ErrStaffNotFound
		}

		return Staff{}, result.Error
	}

	return staff, nil
}

func (d *PeopleDAO) FindStaffByProgramYear(ctx context.Context, programYearID uint) ([]Staff, error) {
	var staff []Staff

	result := d.db.WithContext(ctx).
		Order("last_name, first_name").
		Find(&staff, "program_year_id = ?", programYearID)
	if result.Error != nil {
		return nil, result.Error
	}

	return staff, nil
}

func (d *PeopleDAO) UpdateStaff(ctx context.Context, staff Staff) (Staff, error) {
	result := d.db.WithContext(ctx).Save(&staff)
	if result.Error != nil {
		return Staff{}, result.Error
	}

	return staff, nil
}

func (d *PeopleDAO) InsertParent(ctx context.Context, parent Parent) (Parent, error) {
	result := d.db.WithContext(ctx).Create(&parent)
	if result.Error != nil {
		return Parent{}, result.Error
	}

	return parent, nil
}

func (d *PeopleDAO) FindParentByID(ctx context.Context, id uint) (Parent, error) {
	var parent Parent

	result := d.db.WithContext(ctx).First(&parent, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Parent{}, ErrParentNotFound
		}

		return Parent{}, result.Error
	}

	return parent, nil
}

func (d *PeopleDAO) FindParentsByProgramYear(ctx context.Context, programYearID uint) ([]Parent, error) {
	var parents []Parent

	result := d.db.WithContext(ctx).
		Order("last_name, first_name").
		Find(&parents, "program_year_id = ?", programYearID)
	if result.Error != nil {
		return nil, result.Error
	}

	return parents, nil
}

func (d *PeopleDAO) UpdateParent(ctx context.Context, parent Parent) (Parent, error) {
	result := d.db.WithContext(ctx).Save(&parent)
	if result.Error != nil {
		return Parent{}, result.Error
	}

	return parent, nil
}

func (d *PeopleDAO) InsertLink(ctx context.Context, link DelegateParentLink) (DelegateParentLink, error) {
	result := d.db.WithContext(ctx).Create(&link)
	if result.Error != nil {
		return DelegateParentLink{}, result.Error
	}

	return link, nil
}

func (d *PeopleDAO) FindLinkByID(ctx context.Context, id uint) (DelegateParentLink, error) {
	var link DelegateParentLink

	result := d.db.WithContext(ctx).First(&link, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return DelegateParentLink{}, ErrLinkNotFound
		}

		return DelegateParentLink{}, result.Error
	}

	return link, nil
}

func (d *PeopleDAO) FindLinksByProgramYear(ctx context.Context, programYearID uint) ([]DelegateParentLink, error) {
	var links []DelegateParentLink

	result := d.db.WithContext(ctx).Order("id").Find(&links, "program_year_id = ?", programYearID)
	if result.Error != nil {
		return nil, result.Error
	}

	return links, nil
}

func (d *PeopleDAO) UpdateLink(ctx context.Context, link DelegateParentLink) (DelegateParentLink, error) {
	result := d.db.WithContext(ctx).Save(&link)
	if result.Error != nil {
		return DelegateParentLink{}, result.Error
	}

	return link, nil
}
