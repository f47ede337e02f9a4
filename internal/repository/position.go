package repository

import (
	"context"
	"fmt"

	"github.com/civiclab/program-api/internal/domain"
	"github.com/civiclab/program-api/internal/repository/dao"
)

var ErrPositionNotFound = dao.ErrPositionNotFound

type PositionDAO interface {
	Insert(ctx context.Context, position dao.Position) (dao.Position, error)
	FindByID(ctx context.Context, id uint) (dao.Position, error)
	FindByProgram(ctx context.Context, programID uint) ([]dao.Position, error)
	Update(ctx context.Context, position dao.Position) (dao.Position, error)
	InsertActivation(ctx context.Context, activation dao.ProgramYearPosition) (dao.ProgramYearPosition, error)
	FindActivations(ctx context.Context, programYearID uint) ([]dao.ProgramYearPosition, error)
}

type PositionRepository struct {
	dao PositionDAO
}

func NewPositionRepository(dao PositionDAO) *PositionRepository {
	return &PositionRepository{
		dao: dao,
	}
}

func (r *PositionRepository) Create(ctx context.Context, position domain.Position) (domain.Position, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(position))
	if err != nil {
		return domain.Position{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *PositionRepository) FindByID(ctx context.Context, id uint) (domain.Position, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Position{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *PositionRepository) FindByProgram(ctx context.Context, programID uint) ([]domain.Position, error) {
	found, err := r.dao.FindByProgram(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByProgram -> %w", err)
	}

	positions := make([]domain.Position, len(found))
	for i, p := range found {
		positions[i] = r.daoToDomain(p)
	}

	return positions, nil
}

func (r *PositionRepository) Update(ctx context.Context, position domain.Position) (domain.Position, error) {
	updated, err := r.dao.Update(ctx, r.domainToDAO(position))
	if err != nil {
		return domain.Position{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *PositionRepository) CreateActivation(ctx context.Context, activation domain.ProgramYearPosition) (domain.ProgramYearPosition, error) {
	created, err := r.dao.InsertActivation(ctx, dao.ProgramYearPosition{
		ProgramYearID:       activation.ProgramYearID,
		PositionID:          activation.PositionID,
		IncumbentDelegateID: activation.IncumbentDelegateID,
		Status:              domain.ActivationStatusActive,
	})
	if err != nil {
		return domain.ProgramYearPosition{}, fmt.Errorf("r.dao.InsertActivation -> %w", err)
	}

	return domain.ProgramYearPosition{
		ID:                  created.ID,
		ProgramYearID:       created.ProgramYearID,
		PositionID:          created.PositionID,
		IncumbentDelegateID: created.IncumbentDelegateID,
		Status:              created.Status,
	}, nil
}

func (r *PositionRepository) FindActivations(ctx context.Context, programYearID uint) ([]domain.ProgramYearPosition, error) {
	found, err := r.dao.FindActivations(ctx, programYearID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindActivations -> %w", err)
	}

	activations := make([]domain.ProgramYearPosition, len(found))
	for i, a := range found {
		activations[i] = domain.ProgramYearPosition{
			ID:                  a.ID,
			ProgramYearID:       a.ProgramYearID,
			PositionID:          a.PositionID,
			IncumbentDelegateID: a.IncumbentDelegateID,
			Status:              a.Status,
		}
	}

	return activations, nil
}

func (r *PositionRepository) domainToDAO(p domain.Position) dao.Position {
	var method *string
	if p.ElectionMethod != nil {
		m := string(*p.ElectionMethod)
		method = &m
	}

	return dao.Position{
		ID:                   p.ID,
		ProgramID:            p.ProgramID,
		Name:                 p.Name,
		Description:          p.Description,
		DisplayOrder:         p.DisplayOrder,
		Status:               p.Status,
		GroupingTypeID:       p.GroupingTypeID,
		IsElected:            p.IsElected,
		BallotGroupingTypeID: p.BallotGroupingTypeID,
		IsNonPartisan:        p.IsNonPartisan,
		SeatCount:            p.SeatCount,
		RequiresDeclaration:  p.RequiresDeclaration,
		RequiresPetition:     p.RequiresPetition,
		PetitionSignatures:   p.PetitionSignatures,
		ElectionMethod:       method,
		CreatedAt:            p.CreatedAt,
	}
}

func (r *PositionRepository) daoToDomain(p dao.Position) domain.Position {
	var method *domain.ElectionMethod
	if p.ElectionMethod != nil {
		m := domain.ElectionMethod(*p.ElectionMethod)
		method = &m
	}

	return domain.Position{
		ID:                   p.ID,
		ProgramID:            p.ProgramID,
		Name:                 p.Name,
		Description:          p.Description,
		DisplayOrder:         p.DisplayOrder,
		Status:               p.Status,
		GroupingTypeID:       p.GroupingTypeID,
		IsElected:            p.IsElected,
		BallotGroupingTypeID: p.BallotGroupingTypeID,
		IsNonPartisan:        p.IsNonPartisan,
		SeatCount:            p.SeatCount,
		RequiresDeclaration:  p.RequiresDeclaration,
		RequiresPetition:     p.RequiresPetition,
		PetitionSignatures:   p.PetitionSignatures,
		ElectionMethod:       method,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}
