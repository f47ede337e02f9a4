package repository

import (
	"context"
	"fmt"

	"github.com/civiclab/program-api/internal/domain"
	"github.com/civiclab/program-api/internal/repository/dao"
)

var (
	ErrGroupingTypeNotFound = dao.ErrGroupingTypeNotFound
	ErrGroupingNotFound     = dao.ErrGroupingNotFound
)

type GroupingDAO interface {
	InsertType(ctx context.Context, gt dao.GroupingType) (dao.GroupingType, error)
	FindTypeByID(ctx context.Context, id uint) (dao.GroupingType, error)
	FindTypesByProgram(ctx context.Context, programID uint) ([]dao.GroupingType, error)
	UpdateType(ctx context.Context, gt dao.GroupingType) (dao.GroupingType, error)
	Insert(ctx context.Context, grouping dao.Grouping) (dao.Grouping, error)
	FindByID(ctx context.Context, id uint) (dao.Grouping, error)
	FindByProgram(ctx context.Context, programID uint) ([]dao.Grouping, error)
	Update(ctx context.Context, grouping dao.Grouping) (dao.Grouping, error)
	FindActivations(ctx context.Context, programYearID uint) ([]dao.ProgramYearGrouping, error)
	InsertActivation(ctx context.Context, activation dao.ProgramYearGrouping) (dao.ProgramYearGrouping, error)
	UpdateActivationStatus(ctx context.Context, id uint, status string) error
}

type GroupingRepository struct {
	dao GroupingDAO
}

func NewGroupingRepository(dao GroupingDAO) *GroupingRepository {
	return &GroupingRepository{
		dao: dao,
	}
}

func (r *GroupingRepository) CreateType(ctx context.Context, gt domain.GroupingType) (domain.GroupingType, error) {
	created, err := r.dao.InsertType(ctx, dao.GroupingType{
		ProgramID:    gt.ProgramID,
		Name:         gt.Name,
		DisplayOrder: gt.DisplayOrder,
		Status:       domain.GroupingStatusActive,
	})
	if err != nil {
		return domain.GroupingType{}, fmt.Errorf("r.dao.InsertType -> %w", err)
	}

	return r.typeToDomain(created), nil
}

func (r *GroupingRepository) FindTypeByID(ctx context.Context, id uint) (domain.GroupingType, error) {
	found, err := r.dao.FindTypeByID(ctx, id)
	if err != nil {
		return domain.GroupingType{}, fmt.Errorf("r.dao.FindTypeByID -> %w", err)
	}

	return r.typeToDomain(found), nil
}

func (r *GroupingRepository) FindTypesByProgram(ctx context.Context, programID uint) ([]domain.GroupingType, error) {
	found, err := r.dao.FindTypesByProgram(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindTypesByProgram -> %w", err)
	}

	types := make([]domain.GroupingType, len(found))
	for i, gt := range found {
		types[i] = r.typeToDomain(gt)
	}

	return types, nil
}

func (r *GroupingRepository) UpdateType(ctx context.Context, gt domain.GroupingType) (domain.GroupingType, error) {
	updated, err := r.dao.UpdateType(ctx, dao.GroupingType{
		ID:           gt.ID,
		ProgramID:    gt.ProgramID,
		Name:         gt.Name,
		DisplayOrder: gt.DisplayOrder,
		Status:       gt.Status,
		CreatedAt:    gt.CreatedAt,
	})
	if err != nil {
		return domain.GroupingType{}, fmt.Errorf("r.dao.UpdateType -> %w", err)
	}

	return r.typeToDomain(updated), nil
}

func (r *GroupingRepository) Create(ctx context.Context, grouping domain.Grouping) (domain.Grouping, error) {
	created, err := r.dao.Insert(ctx, dao.Grouping{
		ProgramID:        grouping.ProgramID,
		GroupingTypeID:   grouping.GroupingTypeID,
		ParentGroupingID: grouping.ParentGroupingID,
		Name:             grouping.Name,
		Status:           domain.GroupingStatusActive,
	})
	if err != nil {
		return domain.Grouping{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.groupingToDomain(created), nil
}

func (r *GroupingRepository) FindByID(ctx context.Context, id uint) (domain.Grouping, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Grouping{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.groupingToDomain(found), nil
}

func (r *GroupingRepository) FindByProgram(ctx context.Context, programID uint) ([]domain.Grouping, error) {
	found, err := r.dao.FindByProgram(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByProgram -> %w", err)
	}

	groupings := make([]domain.Grouping, len(found))
	for i, g := range found {
		groupings[i] = r.groupingToDomain(g)
	}

	return groupings, nil
}

func (r *GroupingRepository) Update(ctx context.Context, grouping domain.Grouping) (domain.Grouping, error) {
	updated, err := r.dao.Update(ctx, dao.Grouping{
		ID:               grouping.ID,
		ProgramID:        grouping.ProgramID,
		GroupingTypeID:   grouping.GroupingTypeID,
		ParentGroupingID: grouping.ParentGroupingID,
		Name:             grouping.Name,
		Status:           grouping.Status,
		CreatedAt:        grouping.CreatedAt,
	})
	if err != nil {
		return domain.Grouping{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.groupingToDomain(updated), nil
}

func (r *GroupingRepository) FindActivations(ctx context.Context, programYearID uint) ([]domain.ProgramYearGrouping, error) {
	found, err := r.dao.FindActivations(ctx, programYearID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindActivations -> %w", err)
	}

	activations := make([]domain.ProgramYearGrouping, len(found))
	for i, a := range found {
		activations[i] = domain.ProgramYearGrouping{
			ID:            a.ID,
			ProgramYearID: a.ProgramYearID,
			GroupingID:    a.GroupingID,
			Status:        a.Status,
		}
	}

	return activations, nil
}

func (r *GroupingRepository) CreateActivation(ctx context.Context, activation domain.ProgramYearGrouping) (domain.ProgramYearGrouping, error) {
	created, err := r.dao.InsertActivation(ctx, dao.ProgramYearGrouping{
		ProgramYearID: activation.ProgramYearID,
		GroupingID:    activation.GroupingID,
		Status:        domain.ActivationStatusActive,
	})
	if err != nil {
		return domain.ProgramYearGrouping{}, fmt.Errorf("r.dao.InsertActivation -> %w", err)
	}

	return domain.ProgramYearGrouping{
		ID:            created.ID,
		ProgramYearID: created.ProgramYearID,
		GroupingID:    created.GroupingID,
		Status:        created.Status,
	}, nil
}

func (r *GroupingRepository) UpdateActivationStatus(ctx context.Context, id uint, status string) error {
	if err := r.dao.UpdateActivationStatus(ctx, id, status); err != nil {
		return fmt.Errorf("r.dao.UpdateActivationStatus -> %w", err)
	}

	return nil
}

func (r *GroupingRepository) typeToDomain(gt dao.GroupingType) domain.GroupingType {
	return domain.GroupingType{
		ID:           gt.ID,
		ProgramID:    gt.ProgramID,
		Name:         gt.Name,
		DisplayOrder: gt.DisplayOrder,
		Status:       gt.Status,
		CreatedAt:    gt.CreatedAt,
		UpdatedAt:    gt.UpdatedAt,
	}
}

func (r *GroupingRepository) groupingToDomain(g dao.Grouping) domain.Grouping {
	return domain.Grouping{
		ID:               g.ID,
		ProgramID:        g.ProgramID,
		GroupingTypeID:   g.GroupingTypeID,
		ParentGroupingID: g.ParentGroupingID,
		Name:             g.Name,
		Status:           g.Status,
		CreatedAt:        g.CreatedAt,
		UpdatedAt:        g.UpdatedAt,
	}
}
