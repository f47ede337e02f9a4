package repository

import (
	"context"
	"fmt"

	"github.com/civiclab/program-api/internal/domain"
	"github.com/civiclab/program-api/internal/repository/dao"
)

var ErrProgramYearNotFound = dao.ErrProgramYearNotFound

type ProgramYearDAO interface {
	Insert(ctx context.Context, year dao.ProgramYear) (dao.ProgramYear, error)
	FindByID(ctx context.Context, id uint) (dao.ProgramYear, error)
	FindByProgram(ctx context.Context, programID uint) ([]dao.ProgramYear, error)
	Update(ctx context.Context, year dao.ProgramYear) (dao.ProgramYear, error)
}

type ProgramYearRepository struct {
	dao ProgramYearDAO
}

func NewProgramYearRepository(dao ProgramYearDAO) *ProgramYearRepository {
	return &ProgramYearRepository{
		dao: dao,
	}
}

func (r *ProgramYearRepository) Create(ctx context.Context, year domain.ProgramYear) (domain.ProgramYear, error) {
	created, err := r.dao.Insert(ctx, dao.ProgramYear{
		ProgramID: year.ProgramID,
		Year:      year.Year,
		StartDate: year.StartDate,
		EndDate:   year.EndDate,
		Status:    domain.ProgramYearStatusActive,
		Notes:     year.Notes,
	})
	if err != nil {
		return domain.ProgramYear{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ProgramYearRepository) FindByID(ctx context.Context, id uint) (domain.ProgramYear, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.ProgramYear{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ProgramYearRepository) FindByProgram(ctx context.Context, programID uint) ([]domain.ProgramYear, error) {
	found, err := r.dao.FindByProgram(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByProgram -> %w", err)
	}

	years := make([]domain.ProgramYear, len(found))
	for i, y := range found {
		years[i] = r.daoToDomain(y)
	}

	return years, nil
}

func (r *ProgramYearRepository) Update(ctx context.Context, year domain.ProgramYear) (domain.ProgramYear, error) {
	updated, err := r.dao.Update(ctx, dao.ProgramYear{
		ID:        year.ID,
		ProgramID: year.ProgramID,
		Year:      year.Year,
		StartDate: year.StartDate,
		EndDate:   year.EndDate,
		Status:    year.Status,
		Notes:     year.Notes,
		CreatedAt: year.CreatedAt,
	})
	if err != nil {
		return domain.ProgramYear{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *ProgramYearRepository) daoToDomain(y dao.ProgramYear) domain.ProgramYear {
	return domain.ProgramYear{
		ID:        y.ID,
		ProgramID: y.ProgramID,
		Year:      y.Year,
		StartDate: y.StartDate,
		EndDate:   y.EndDate,
		Status:    y.Status,
		Notes:     y.Notes,
		CreatedAt: y.CreatedAt,
		UpdatedAt: y.UpdatedAt,
	}
}
