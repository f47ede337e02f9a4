package service

import (
	"context"
	"fmt"

	"github.com/civiclab/program-api/internal/domain"
	"github.com/civiclab/program-api/internal/repository"
)

var ErrPartyNotFound = repository.ErrPartyNotFound

type PartiesRepository interface {
	Create(ctx context.Context, party domain.Party) (domain.Party, error)
	FindByID(ctx context.Context, id uint) (domain.Party, error)
	FindByProgram(ctx context.Context, programID uint) ([]domain.Party, error)
	Update(ctx context.Context, party domain.Party) (domain.Party, error)
	FindActivations(ctx context.Context, programYearID uint) ([]domain.ProgramYearParty, error)
	CreateActivation(ctx context.Context, activation domain.ProgramYearParty) (domain.ProgramYearParty, error)
	UpdateActivationStatus(ctx context.Context, id uint, status string) error
}

// PartyUpdateInput merges onto a persisted party; nil means the caller
// omitted the field.
type PartyUpdateInput struct {
	Name         *string
	Abbreviation *string
	Color        *string
	Icon         *string
	DisplayOrder *int
	Status       *string
}

type PartyService struct {
	repo            PartiesRepository
	programRepo     PositionProgramRepository
	programYearRepo ElectionProgramYearRepository
	authz           Authorizer
	audit           AuditLogger
}

func NewPartyService(repo PartiesRepository, programRepo PositionProgramRepository, programYearRepo ElectionProgramYearRepository, authz Authorizer, audit AuditLogger) *PartyService {
	return &PartyService{
		repo:            repo,
		programRepo:     programRepo,
		programYearRepo: programYearRepo,
		authz:           authz,
		audit:           audit,
	}
}

func (s *PartyService) CreateParty(ctx context.Context, userID uint, party domain.Party) (domain.Party, error) {
	if _, err := s.programRepo.FindByID(ctx, party.ProgramID); err != nil {
		return domain.Party{}, fmt.Errorf("s.programRepo.FindByID -> %w", err)
	}

	isAdmin, err := s.authz.IsProgramAdmin(ctx, userID, party.ProgramID)
	if err != nil {
		return domain.Party{}, fmt.Errorf("s.authz.IsProgramAdmin -> %w", err)
	}
	if !isAdmin {
		return domain.Party{}, ErrNotProgramAdmin
	}

	created, err := s.repo.Create(ctx, party)
	if err != nil {
		return domain.Party{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.audit.Log(party.ProgramID, fmt.Sprintf("party %q created by user %d", party.Name, userID))

	return created, nil
}

func (s *PartyService) ListParties(ctx context.Context, userID, programID uint) ([]domain.Party, error) {
	if _, err := s.programRepo.FindByID(ctx, programID); err != nil {
		return nil, fmt.Errorf("s.programRepo.FindByID -> %w", err)
	}

	isMember, err := s.authz.IsProgramMember(ctx, userID, programID)
	if err != nil {
		return nil, fmt.Errorf("s.authz.IsProgramMember -> %w", err)
	}
	if !isMember {
		return nil, ErrNotProgramMember
	}

	return s.repo.FindByProgram(ctx, programID)
}

func (s *PartyService) UpdateParty(ctx context.Context, userID, partyID uint, input PartyUpdateInput) (domain.Party, error) {
	party, err := s.repo.FindByID(ctx, partyID)
	if err != nil {
		return domain.Party{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	isAdmin, err := s.authz.IsProgramAdmin(ctx, userID, party.ProgramID)
	if err != nil {
		return domain.Party{}, fmt.Errorf("s.authz.IsProgramAdmin -> %w", err)
	}
	if !isAdmin {
		return domain.Party{}, ErrNotProgramAdmin
	}

	if input.Name != nil {
		party.Name = *input.Name
	}
	if input.Abbreviation != nil {
		party.Abbreviation = *input.Abbreviation
	}
	if input.Color != nil {
		party.Color = *input.Color
	}
	if input.Icon != nil {
		party.Icon = *input.Icon
	}
	if input.DisplayOrder != nil {
		party.DisplayOrder = *input.DisplayOrder
	}
	if input.Status != nil {
		party.Status = *input.Status
	}

	updated, err := s.repo.Update(ctx, party)
	if err != nil {
		return domain.Party{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	s.audit.Log(party.ProgramID, fmt.Sprintf("party %d updated by user %d", partyID, userID))

	return updated, nil
}

func (s *PartyService) RetireParty(ctx context.Context, userID, partyID uint) (domain.Party, error) {
	party, err := s.repo.FindByID(ctx, partyID)
	if err != nil {
		return domain.Party{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	isAdmin, err := s.authz.IsProgramAdmin(ctx, userID, party.ProgramID)
	if err != nil {
		return domain.Party{}, fmt.Errorf("s.authz.IsProgramAdmin -> %w", err)
	}
	if !isAdmin {
		return domain.Party{}, ErrNotProgramAdmin
	}

	party.Status = domain.ProgramStatusRetired

	updated, err := s.repo.Update(ctx, party)
	if err != nil {
		return domain.Party{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	s.audit.Log(party.ProgramID, fmt.Sprintf("party %d retired by user %d", partyID, userID))

	return updated, nil
}

// SetActiveParties reconciles a program year's party activations against
// the desired set, the same diff the grouping activation uses: create
// missing rows, reactivate inactive ones, deactivate rows not in the set.
// Row-by-row, not transactional.
func (s *PartyService) SetActiveParties(ctx context.Context, userID, programYearID uint, partyIDs []uint) ([]domain.ProgramYearParty, error) {
	year, err := s.programYearRepo.FindByID(ctx, programYearID)
	if err != nil {
		return nil, fmt.Errorf("s.programYearRepo.FindByID -> %w", err)
	}

	isAdmin, err := s.authz.IsProgramAdmin(ctx, userID, year.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("s.authz.IsProgramAdmin -> %w", err)
	}
	if !isAdmin {
		return nil, ErrNotProgramAdmin
	}

	for _, id := range partyIDs {
		party, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
		}
		if party.ProgramID != year.ProgramID {
			return nil, ErrPartyNotFound
		}
	}

	existing, err := s.repo.FindActivations(ctx, programYearID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindActivations -> %w", err)
	}

	byParty := make(map[uint]domain.ProgramYearParty, len(existing))
	for _, a := range existing {
		byParty[a.PartyID] = a
	}

	desired := make(map[uint]bool, len(partyIDs))
	for _, id := range partyIDs {
		desired[id] = true

		current, ok := byParty[id]
		if !ok {
			if _, err := s.repo.CreateActivation(ctx, domain.ProgramYearParty{
				ProgramYearID: programYearID,
				PartyID:       id,
			}); err != nil {
				return nil, fmt.Errorf("s.repo.CreateActivation -> %w", err)
			}

			continue
		}

		if current.Status == domain.ActivationStatusInactive {
			if err := s.repo.UpdateActivationStatus(ctx, current.ID, domain.ActivationStatusActive); err != nil {
				return nil, fmt.Errorf("s.repo.UpdateActivationStatus -> %w", err)
			}
		}
	}

	for _, a := range existing {
		if !desired[a.PartyID] && a.Status == domain.ActivationStatusActive {
			if err := s.repo.UpdateActivationStatus(ctx, a.ID, domain.ActivationStatusInactive); err != nil {
				return nil, fmt.Errorf("s.repo.UpdateActivationStatus -> %w", err)
			}
		}
	}

	s.audit.Log(year.ProgramID, fmt.Sprintf("program year %d party activations set by user %d", programYearID, userID))

	return s.repo.FindActivations(ctx, programYearID)
}
