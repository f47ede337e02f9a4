package repository

import (
	"context"
	"fmt"

	"github.com/civiclab/program-api/internal/domain"
	"github.com/civiclab/program-api/internal/repository/dao"
)

var ErrPartyNotFound = dao.ErrPartyNotFound

type PartyDAO interface {
	Insert(ctx context.Context, party dao.Party) (dao.Party, error)
	FindByID(ctx context.Context, id uint) (dao.Party, error)
	FindByProgram(ctx context.Context, programID uint) ([]dao.Party, error)
	Update(ctx context.Context, party dao.Party) (dao.Party, error)
	FindActivations(ctx context.Context, programYearID uint) ([]dao.ProgramYearParty, error)
	InsertActivation(ctx context.Context, activation dao.ProgramYearParty) (dao.ProgramYearParty, error)
	UpdateActivationStatus(ctx context.Context, id uint, status string) error
}

type PartyRepository struct {
	dao PartyDAO
}

func NewPartyRepository(dao PartyDAO) *PartyRepository {
	return &PartyRepository{
		dao: dao,
	}
}

func (r *PartyRepository) Create(ctx context.Context, party domain.Party) (domain.Party, error) {
	created, err := r.dao.Insert(ctx, dao.Party{
		ProgramID:    party.ProgramID,
		Name:         party.Name,
		Abbreviation: party.Abbreviation,
		Color:        party.Color,
		Icon:         party.Icon,
		DisplayOrder: party.DisplayOrder,
		Status:       domain.ProgramStatusActive,
	})
	if err != nil {
		return domain.Party{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *PartyRepository) FindByID(ctx context.Context, id uint) (domain.Party, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Party{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *PartyRepository) FindByProgram(ctx context.Context, programID uint) ([]domain.Party, error) {
	found, err := r.dao.FindByProgram(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByProgram -> %w", err)
	}

	parties := make([]domain.Party, len(found))
	for i, p := range found {
		parties[i] = r.daoToDomain(p)
	}

	return parties, nil
}

func (r *PartyRepository) Update(ctx context.Context, party domain.Party) (domain.Party, error) {
	updated, err := r.dao.Update(ctx, dao.Party{
		ID:           party.ID,
		ProgramID:    party.ProgramID,
		Name:         party.Name,
		Abbreviation: party.Abbreviation,
		Color:        party.Color,
		Icon:         party.Icon,
		DisplayOrder: party.DisplayOrder,
		Status:       party.Status,
		CreatedAt:    party.CreatedAt,
	})
	if err != nil {
		return domain.Party{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *PartyRepository) FindActivations(ctx context.Context, programYearID uint) ([]domain.ProgramYearParty, error) {
	found, err := r.dao.FindActivations(ctx, programYearID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindActivations -> %w", err)
	}

	activations := make([]domain.ProgramYearParty, len(found))
	for i, a := range found {
		activations[i] = domain.ProgramYearParty{
			ID:            a.ID,
			ProgramYearID: a.ProgramYearID,
			PartyID:       a.PartyID,
			Status:        a.Status,
		}
	}

	return activations, nil
}

func (r *PartyRepository) CreateActivation(ctx context.Context, activation domain.ProgramYearParty) (domain.ProgramYearParty, error) {
	created, err := r.dao.InsertActivation(ctx, dao.ProgramYearParty{
		ProgramYearID: activation.ProgramYearID,
		PartyID:       activation.PartyID,
		Status:        domain.ActivationStatusActive,
	})
	if err != nil {
		return domain.ProgramYearParty{}, fmt.Errorf("r.dao.InsertActivation -> %w", err)
	}

	return domain.ProgramYearParty{
		ID:            created.ID,
		ProgramYearID: created.ProgramYearID,
		PartyID:       created.PartyID,
		Status:        created.Status,
	}, nil
}

func (r *PartyRepository) UpdateActivationStatus(ctx context.Context, id uint, status string) error {
	if err := r.dao.UpdateActivationStatus(ctx, id, status); err != nil {
		return fmt.Errorf("r.dao.UpdateActivationStatus -> %w", err)
	}

	return nil
}

func (r *PartyRepository) daoToDomain(p dao.Party) domain.Party {
	return domain.Party{
		ID:           p.ID,
		ProgramID:    p.ProgramID,
		Name:         p.Name,
		Abbreviation: p.Abbreviation,
		Color:        p.Color,
		Icon:         p.Icon,
		DisplayOrder: p.DisplayOrder,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
