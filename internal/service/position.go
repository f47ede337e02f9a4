package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/civiclab/program-api/internal/domain"
	"github.com/civiclab/program-api/internal/repository"
)

var (
	ErrPositionNotFound      = repository.ErrPositionNotFound
	ErrInvalidElectionMethod = domain.ErrInvalidElectionMethod
	ErrMissingPositionName   = errors.New("position name is required")
)

type PositionsRepository interface {
	Create(ctx context.Context, position domain.Position) (domain.Position, error)
	FindByID(ctx context.Context, id uint) (domain.Position, error)
	FindByProgram(ctx context.Context, programID uint) ([]domain.Position, error)
	Update(ctx context.Context, position domain.Position) (domain.Position, error)
	CreateActivation(ctx context.Context, activation domain.ProgramYearPosition) (domain.ProgramYearPosition, error)
}

type PositionProgramRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Program, error)
}

// PositionUpdateInput is the raw update payload: a nil pointer means the
// caller omitted the field and the persisted value is retained.
type PositionUpdateInput struct {
	Name         *string
	Description  *string
	DisplayOrder *int
	Status       *string
	Config       domain.PositionConfigInput
}

// PositionService normalizes and persists position configuration. The
// elected/appointed field rules live in domain.NormalizePositionConfig;
// this service wraps them with authorization and persistence.
type PositionService struct {
	repo        PositionsRepository
	programRepo PositionProgramRepository
	authz       Authorizer
	audit       AuditLogger
}

func NewPositionService(repo PositionsRepository, programRepo PositionProgramRepository, authz Authorizer, audit AuditLogger) *PositionService {
	return &PositionService{
		repo:        repo,
		programRepo: programRepo,
		authz:       authz,
		audit:       audit,
	}
}

func (s *PositionService) CreatePosition(ctx context.Context, userID, programID uint, name, description string, displayOrder int, config domain.PositionConfigInput) (domain.Position, error) {
	if _, err := s.programRepo.FindByID(ctx, programID); err != nil {
		return domain.Position{}, fmt.Errorf("s.programRepo.FindByID -> %w", err)
	}

	isAdmin, err := s.authz.IsProgramAdmin(ctx, userID, programID)
	if err != nil {
		return domain.Position{}, fmt.Errorf("s.authz.IsProgramAdmin -> %w", err)
	}
	if !isAdmin {
		return domain.Position{}, ErrNotProgramAdmin
	}

	if name == "" {
		return domain.Position{}, ErrMissingPositionName
	}

	normalized, err := domain.NormalizePositionConfig(config, domain.Position{})
	if err != nil {
		return domain.Position{}, err
	}

	normalized.ProgramID = programID
	normalized.Name = name
	normalized.Description = description
	normalized.DisplayOrder = displayOrder
	normalized.Status = domain.PositionStatusActive

	created, err := s.repo.Create(ctx, normalized)
	if err != nil {
		return domain.Position{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.audit.Log(programID, fmt.Sprintf("position %q created by user %d", name, userID))

	return created, nil
}

func (s *PositionService) GetPosition(ctx context.Context, userID, positionID uint) (domain.Position, error) {
	position, err := s.repo.FindByID(ctx, positionID)
	if err != nil {
		return domain.Position{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	isMember, err := s.authz.IsProgramMember(ctx, userID, position.ProgramID)
	if err != nil {
		return domain.Position{}, fmt.Errorf("s.authz.IsProgramMember -> %w", err)
	}
	if !isMember {
		return domain.Position{}, ErrNotProgramMember
	}

	return position, nil
}

func (s *PositionService) ListPositions(ctx context.Context, userID, programID uint) ([]domain.Position, error) {
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

// UpdatePosition merges the payload onto the persisted position and
// re-normalizes the election configuration against the merged state, so an
// update that flips IsElected to false wipes every election-only field no
// matter what else the request carried.
func (s *PositionService) UpdatePosition(ctx context.Context, userID, positionID uint, input PositionUpdateInput) (domain.Position, error) {
	current, err := s.repo.FindByID(ctx, positionID)
	if err != nil {
		return domain.Position{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	isAdmin, err := s.authz.IsProgramAdmin(ctx, userID, current.ProgramID)
	if err != nil {
		return domain.Position{}, fmt.Errorf("s.authz.IsProgramAdmin -> %w", err)
	}
	if !isAdmin {
		return domain.Position{}, ErrNotProgramAdmin
	}

	normalized, err := domain.NormalizePositionConfig(input.Config, current)
	if err != nil {
		return domain.Position{}, err
	}

	if input.Name != nil {
		normalized.Name = *input.Name
	}
	if input.Description != nil {
		normalized.Description = *input.Description
	}
	if input.DisplayOrder != nil {
		normalized.DisplayOrder = *input.DisplayOrder
	}
	if input.Status != nil {
		normalized.Status = *input.Status
	}

	updated, err := s.repo.Update(ctx, normalized)
	if err != nil {
		return domain.Position{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	s.audit.Log(updated.ProgramID, fmt.Sprintf("position %d updated by user %d", positionID, userID))

	return updated, nil
}

// RetirePosition is the soft delete for positions.
func (s *PositionService) RetirePosition(ctx context.Context, userID, positionID uint) (domain.Position, error) {
	current, err := s.repo.FindByID(ctx, positionID)
	if err != nil {
		return domain.Position{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	isAdmin, err := s.authz.IsProgramAdmin(ctx, userID, current.ProgramID)
	if err != nil {
		return domain.Position{}, fmt.Errorf("s.authz.IsProgramAdmin -> %w", err)
	}
	if !isAdmin {
		return domain.Position{}, ErrNotProgramAdmin
	}

	current.Status = domain.PositionStatusRetired

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		return domain.Position{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	s.audit.Log(updated.ProgramID, fmt.Sprintf("position %d retired by user %d", positionID, userID))

	return updated, nil
}

// ActivateForProgramYear joins a position into a program year, optionally
// recording the incumbent delegate.
func (s *PositionService) ActivateForProgramYear(ctx context.Context, userID uint, activation domain.ProgramYearPosition) (domain.ProgramYearPosition, error) {
	position, err := s.repo.FindByID(ctx, activation.PositionID)
	if err != nil {
		return domain.ProgramYearPosition{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	isAdmin, err := s.authz.IsProgramAdmin(ctx, userID, position.ProgramID)
	if err != nil {
		return domain.ProgramYearPosition{}, fmt.Errorf("s.authz.IsProgramAdmin -> %w", err)
	}
	if !isAdmin {
		return domain.ProgramYearPosition{}, ErrNotProgramAdmin
	}

	created, err := s.repo.CreateActivation(ctx, activation)
	if err != nil {
		return domain.ProgramYearPosition{}, fmt.Errorf("s.repo.CreateActivation -> %w", err)
	}

	s.audit.Log(position.ProgramID, fmt.Sprintf("position %d activated for program year %d by user %d", activation.PositionID, activation.ProgramYearID, userID))

	return created, nil
}
