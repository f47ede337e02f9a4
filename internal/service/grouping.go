package service

import (
	"context"
	"fmt"

	"github.com/civiclab/program-api/internal/domain"
	"github.com/civiclab/program-api/internal/repository"
)

var (
	ErrGroupingTypeNotFound = repository.ErrGroupingTypeNotFound
	ErrGroupingNotFound     = repository.ErrGroupingNotFound
)

type GroupingsRepository interface {
	CreateType(ctx context.Context, gt domain.GroupingType) (domain.GroupingType, error)
	FindTypeByID(ctx context.Context, id uint) (domain.GroupingType, error)
	FindTypesByProgram(ctx context.Context, programID uint) ([]domain.GroupingType, error)
	UpdateType(ctx context.Context, gt domain.GroupingType) (domain.GroupingType, error)
	Create(ctx context.Context, grouping domain.Grouping) (domain.Grouping, error)
	FindByID(ctx context.Context, id uint) (domain.Grouping, error)
	FindByProgram(ctx context.Context, programID uint) ([]domain.Grouping, error)
	Update(ctx context.Context, grouping domain.Grouping) (domain.Grouping, error)
	FindActivations(ctx context.Context, programYearID uint) ([]domain.ProgramYearGrouping, error)
	CreateActivation(ctx context.Context, activation domain.ProgramYearGrouping) (domain.ProgramYearGrouping, error)
	UpdateActivationStatus(ctx context.Context, id uint, status string) error
}

// GroupingService manages the organizational taxonomy of a program and its
// per-year activation.
type GroupingService struct {
	repo            GroupingsRepository
	programRepo     PositionProgramRepository
	programYearRepo ElectionProgramYearRepository
	authz           Authorizer
	audit           AuditLogger
}

func NewGroupingService(repo GroupingsRepository, programRepo PositionProgramRepository, programYearRepo ElectionProgramYearRepository, authz Authorizer, audit AuditLogger) *GroupingService {
	return &GroupingService{
		repo:            repo,
		programRepo:     programRepo,
		programYearRepo: programYearRepo,
		authz:           authz,
		audit:           audit,
	}
}

func (s *GroupingService) CreateGroupingType(ctx context.Context, userID uint, gt domain.GroupingType) (domain.GroupingType, error) {
	if _, err := s.programRepo.FindByID(ctx, gt.ProgramID); err != nil {
		return domain.GroupingType{}, fmt.Errorf("s.programRepo.FindByID -> %w", err)
	}

	isAdmin, err := s.authz.IsProgramAdmin(ctx, userID, gt.ProgramID)
	if err != nil {
		return domain.GroupingType{}, fmt.Errorf("s.authz.IsProgramAdmin -> %w", err)
	}
	if !isAdmin {
		return domain.GroupingType{}, ErrNotProgramAdmin
	}

	created, err := s.repo.CreateType(ctx, gt)
	if err != nil {
		return domain.GroupingType{}, fmt.Errorf("s.repo.CreateType -> %w", err)
	}

	s.audit.Log(gt.ProgramID, fmt.Sprintf("grouping type %q created by user %d", gt.Name, userID))

	return created, nil
}

func (s *GroupingService) ListGroupingTypes(ctx context.Context, userID, programID uint) ([]domain.GroupingType, error) {
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

	return s.repo.FindTypesByProgram(ctx, programID)
}

func (s *GroupingService) RetireGroupingType(ctx context.Context, userID, groupingTypeID uint) (domain.GroupingType, error) {
	gt, err := s.repo.FindTypeByID(ctx, groupingTypeID)
	if err != nil {
		return domain.GroupingType{}, fmt.Errorf("s.repo.FindTypeByID -> %w", err)
	}

	isAdmin, err := s.authz.IsProgramAdmin(ctx, userID, gt.ProgramID)
	if err != nil {
		return domain.GroupingType{}, fmt.Errorf("s.authz.IsProgramAdmin -> %w", err)
	}
	if !isAdmin {
		return domain.GroupingType{}, ErrNotProgramAdmin
	}

	gt.Status = domain.GroupingStatusRetired

	updated, err := s.repo.UpdateType(ctx, gt)
	if err != nil {
		return domain.GroupingType{}, fmt.Errorf("s.repo.UpdateType -> %w", err)
	}

	s.audit.Log(gt.ProgramID, fmt.Sprintf("grouping type %d retired by user %d", groupingTypeID, userID))

	return updated, nil
}

// CreateGrouping adds one unit to the hierarchy. The grouping type and any
// parent grouping must belong to the same program.
func (s *GroupingService) CreateGrouping(ctx context.Context, userID uint, grouping domain.Grouping) (domain.Grouping, error) {
	gt, err := s.repo.FindTypeByID(ctx, grouping.GroupingTypeID)
	if err != nil {
		return domain.Grouping{}, fmt.Errorf("s.repo.FindTypeByID -> %w", err)
	}
	if gt.ProgramID != grouping.ProgramID {
		return domain.Grouping{}, ErrGroupingTypeNotFound
	}

	if grouping.ParentGroupingID != nil {
		parent, err := s.repo.FindByID(ctx, *grouping.ParentGroupingID)
		if err != nil {
			return domain.Grouping{}, fmt.Errorf("s.repo.FindByID -> %w", err)
		}
		if parent.ProgramID != grouping.ProgramID {
			return domain.Grouping{}, ErrGroupingNotFound
		}
	}

	isAdmin, err := s.authz.IsProgramAdmin(ctx, userID, grouping.ProgramID)
	if err != nil {
		return domain.Grouping{}, fmt.Errorf("s.authz.IsProgramAdmin -> %w", err)
	}
	if !isAdmin {
		return domain.Grouping{}, ErrNotProgramAdmin
	}

	created, err := s.repo.Create(ctx, grouping)
	if err != nil {
		return domain.Grouping{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.audit.Log(grouping.ProgramID, fmt.Sprintf("grouping %q created by user %d", grouping.Name, userID))

	return created, nil
}

func (s *GroupingService) ListGroupings(ctx context.Context, userID, programID uint) ([]domain.Grouping, error) {
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

func (s *GroupingService) RetireGrouping(ctx context.Context, userID, groupingID uint) (domain.Grouping, error) {
	grouping, err := s.repo.FindByID(ctx, groupingID)
	if err != nil {
		return domain.Grouping{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	isAdmin, err := s.authz.IsProgramAdmin(ctx, userID, grouping.ProgramID)
	if err != nil {
		return domain.Grouping{}, fmt.Errorf("s.authz.IsProgramAdmin -> %w", err)
	}
	if !isAdmin {
		return domain.Grouping{}, ErrNotProgramAdmin
	}

	grouping.Status = domain.GroupingStatusRetired

	updated, err := s.repo.Update(ctx, grouping)
	if err != nil {
		return domain.Grouping{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	s.audit.Log(grouping.ProgramID, fmt.Sprintf("grouping %d retired by user %d", groupingID, userID))

	return updated, nil
}

// SetActiveGroupings reconciles a program year's grouping activations
// against the desired set: absent groupings are activated fresh,
// deactivated ones flip back to active, and active rows not in the set are
// deactivated. The steps run row by row, not in one transaction; a failure
// partway leaves earlier rows applied.
func (s *GroupingService) SetActiveGroupings(ctx context.Context, userID, programYearID uint, groupingIDs []uint) ([]domain.ProgramYearGrouping, error) {
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

	for _, id := range groupingIDs {
		grouping, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
		}
		if grouping.ProgramID != year.ProgramID {
			return nil, ErrGroupingNotFound
		}
	}

	existing, err := s.repo.FindActivations(ctx, programYearID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindActivations -> %w", err)
	}

	byGrouping := make(map[uint]domain.ProgramYearGrouping, len(existing))
	for _, a := range existing {
		byGrouping[a.GroupingID] = a
	}

	desired := make(map[uint]bool, len(groupingIDs))
	for _, id := range groupingIDs {
		desired[id] = true

		current, ok := byGrouping[id]
		if !ok {
			if _, err := s.repo.CreateActivation(ctx, domain.ProgramYearGrouping{
				ProgramYearID: programYearID,
				GroupingID:    id,
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
		if !desired[a.GroupingID] && a.Status == domain.ActivationStatusActive {
			if err := s.repo.UpdateActivationStatus(ctx, a.ID, domain.ActivationStatusInactive); err != nil {
				return nil, fmt.Errorf("s.repo.UpdateActivationStatus -> %w", err)
			}
		}
	}

	s.audit.Log(year.ProgramID, fmt.Sprintf("program year %d grouping activations set by user %d", programYearID, userID))

	return s.repo.FindActivations(ctx, programYearID)
}
