package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/civiclab/program-api/internal/domain"
	"github.com/civiclab/program-api/internal/repository"
)

var (
	ErrUserNotFound     = repository.ErrUserNotFound
	ErrNotProgramAdmin  = errors.New("caller is not an admin of this program")
	ErrNotProgramMember = errors.New("caller is not a member of this program")
)

type AuthzProgramRepository interface {
	FindAll(ctx context.Context) ([]domain.Program, error)
	FindAssignment(ctx context.Context, userID, programID uint) (domain.ProgramAssignment, bool, error)
	FindAssignmentsByUser(ctx context.Context, userID uint) ([]domain.AssignmentWithProgram, error)
	FindRoleByID(ctx context.Context, id uint) (domain.ProgramRole, error)
}

type AuthzUserRepository interface {
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

// AuthorizationService answers "can this caller act on this program, and
// how?". All operations are pure reads; a missing assignment means no
// access rather than an error.
type AuthorizationService struct {
	repo     AuthzProgramRepository
	userRepo AuthzUserRepository

	// devOverride enables the DEVELOPMENT program listing escalation.
	devOverride bool
}

func NewAuthorizationService(repo AuthzProgramRepository, userRepo AuthzUserRepository, devOverride bool) *AuthorizationService {
	return &AuthorizationService{
		repo:        repo,
		userRepo:    userRepo,
		devOverride: devOverride,
	}
}

// IsProgramAdmin reports whether the user's assignment for the program
// carries role "admin". The comparison is exact and case-sensitive; the
// data layer guarantees at most one assignment per (user, program) pair.
func (s *AuthorizationService) IsProgramAdmin(ctx context.Context, userID, programID uint) (bool, error) {
	assignment, ok, err := s.repo.FindAssignment(ctx, userID, programID)
	if err != nil {
		return false, fmt.Errorf("s.repo.FindAssignment -> %w", err)
	}
	if !ok {
		return false, nil
	}

	return assignment.Role == domain.RoleAdmin, nil
}

// IsProgramMember reports whether any assignment exists for the pair,
// regardless of role. Every admin is also a member.
func (s *AuthorizationService) IsProgramMember(ctx context.Context, userID, programID uint) (bool, error) {
	_, ok, err := s.repo.FindAssignment(ctx, userID, programID)
	if err != nil {
		return false, fmt.Errorf("s.repo.FindAssignment -> %w", err)
	}

	return ok, nil
}

// GetUserPermissions computes the caller's effective permission set for a
// program. Admins hold the full permission universe without explicit
// grants; members with a named role get exactly that role's permissions;
// everyone else gets the empty set.
func (s *AuthorizationService) GetUserPermissions(ctx context.Context, userID, programID uint) (domain.PermissionSet, error) {
	assignment, ok, err := s.repo.FindAssignment(ctx, userID, programID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAssignment -> %w", err)
	}
	if !ok {
		return domain.NewPermissionSet(), nil
	}

	if assignment.Role == domain.RoleAdmin {
		return domain.FullPermissionSet(), nil
	}

	if assignment.ProgramRoleID == nil {
		return domain.NewPermissionSet(), nil
	}

	role, err := s.repo.FindRoleByID(ctx, *assignment.ProgramRoleID)
	if err != nil {
		if errors.Is(err, repository.ErrProgramRoleNotFound) {
			return domain.NewPermissionSet(), nil
		}

		return nil, fmt.Errorf("s.repo.FindRoleByID -> %w", err)
	}

	return domain.NewPermissionSet(role.Permissions...), nil
}

func (s *AuthorizationService) HasPermission(ctx context.Context, userID, programID uint, permission domain.Permission) (bool, error) {
	perms, err := s.GetUserPermissions(ctx, userID, programID)
	if err != nil {
		return false, err
	}

	return perms.Has(permission), nil
}

// GetUserPrograms resolves a user by email and lists their programs.
//
// DEVELOPMENT override: when enabled and the user holds an assignment to a
// program named exactly "DEVELOPMENT", the listing is replaced with every
// program in the system; programs the user has no assignment to show the
// sentinel role "developer". This is a deliberate, documented backdoor for
// development installs, controlled by configuration.
func (s *AuthorizationService) GetUserPrograms(ctx context.Context, email string) (domain.UserPrograms, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.UserPrograms{}, ErrUserNotFound
		}

		return domain.UserPrograms{}, fmt.Errorf("s.userRepo.FindByEmail -> %w", err)
	}

	assignments, err := s.repo.FindAssignmentsByUser(ctx, user.ID)
	if err != nil {
		return domain.UserPrograms{}, fmt.Errorf("s.repo.FindAssignmentsByUser -> %w", err)
	}

	if s.devOverride {
		for _, a := range assignments {
			if a.Program.Name == domain.DevProgramName {
				return s.developerListing(ctx, email, assignments)
			}
		}
	}

	programs := make([]domain.UserProgram, len(assignments))
	for i, a := range assignments {
		programs[i] = domain.UserProgram{
			ProgramID:   a.Program.ID,
			ProgramName: a.Program.Name,
			Role:        a.Assignment.Role,
		}
	}

	return domain.UserPrograms{
		Username: email,
		Listing:  domain.NormalListing,
		Programs: programs,
	}, nil
}

func (s *AuthorizationService) developerListing(ctx context.Context, email string, assignments []domain.AssignmentWithProgram) (domain.UserPrograms, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return domain.UserPrograms{}, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	rolesByProgram := make(map[uint]string, len(assignments))
	for _, a := range assignments {
		rolesByProgram[a.Program.ID] = a.Assignment.Role
	}

	programs := make([]domain.UserProgram, len(all))
	for i, p := range all {
		role, ok := rolesByProgram[p.ID]
		if !ok {
			role = domain.RoleDeveloper
		}

		programs[i] = domain.UserProgram{
			ProgramID:   p.ID,
			ProgramName: p.Name,
			Role:        role,
		}
	}

	return domain.UserPrograms{
		Username: email,
		Listing:  domain.DeveloperOverrideListing,
		Programs: programs,
	}, nil
}
