package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/civiclab/program-api/internal/domain"
	"github.com/civiclab/program-api/internal/repository"
)

var (
	ErrProgramNotFound     = repository.ErrProgramNotFound
	ErrProgramRoleNotFound = repository.ErrProgramRoleNotFound
	ErrAssignmentExists    = repository.ErrAssignmentExists
	ErrInvalidPermission   = errors.New("unknown permission")
)

// Authorizer is the slice of AuthorizationService the other services need
// to gate their operations.
type Authorizer interface {
	IsProgramAdmin(ctx context.Context, userID, programID uint) (bool, error)
	IsProgramMember(ctx context.Context, userID, programID uint) (bool, error)
}

type ProgramsRepository interface {
	Create(ctx context.Context, program domain.Program) (domain.Program, error)
	FindByID(ctx context.Context, id uint) (domain.Program, error)
	Update(ctx context.Context, program domain.Program) (domain.Program, error)
	CreateAssignment(ctx context.Context, assignment domain.ProgramAssignment) (domain.ProgramAssignment, error)
	CreateRole(ctx context.Context, role domain.ProgramRole) (domain.ProgramRole, error)
	FindRoleByID(ctx context.Context, id uint) (domain.ProgramRole, error)
	FindRolesByProgram(ctx context.Context, programID uint) ([]domain.ProgramRole, error)
}

type ProgramService struct {
	repo  ProgramsRepository
	authz Authorizer
	audit AuditLogger
}

func NewProgramService(repo ProgramsRepository, authz Authorizer, audit AuditLogger) *ProgramService {
	return &ProgramService{
		repo:  repo,
		authz: authz,
		audit: audit,
	}
}

// CreateProgram persists a program and assigns its creator as admin. The
// two writes are not atomic; a failed assignment leaves the program without
// an admin and surfaces the error to the caller.
func (s *ProgramService) CreateProgram(ctx context.Context, userID uint, program domain.Program) (domain.Program, error) {
	program.CreatedByID = userID

	created, err := s.repo.Create(ctx, program)
	if err != nil {
		return domain.Program{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	_, err = s.repo.CreateAssignment(ctx, domain.ProgramAssignment{
		UserID:    userID,
		ProgramID: created.ID,
		Role:      domain.RoleAdmin,
	})
	if err != nil {
		return domain.Program{}, fmt.Errorf("s.repo.CreateAssignment -> %w", err)
	}

	s.audit.Log(created.ID, fmt.Sprintf("program %q created by user %d", created.Name, userID))

	return created, nil
}

func (s *ProgramService) GetProgram(ctx context.Context, userID, programID uint) (domain.Program, error) {
	program, err := s.repo.FindByID(ctx, programID)
	if err != nil {
		return domain.Program{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	isMember, err := s.authz.IsProgramMember(ctx, userID, programID)
	if err != nil {
		return domain.Program{}, fmt.Errorf("s.authz.IsProgramMember -> %w", err)
	}
	if !isMember {
		return domain.Program{}, ErrNotProgramMember
	}

	return program, nil
}

func (s *ProgramService) UpdateProgram(ctx context.Context, userID uint, program domain.Program) (domain.Program, error) {
	current, err := s.repo.FindByID(ctx, program.ID)
	if err != nil {
		return domain.Program{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	isAdmin, err := s.authz.IsProgramAdmin(ctx, userID, program.ID)
	if err != nil {
		return domain.Program{}, fmt.Errorf("s.authz.IsProgramAdmin -> %w", err)
	}
	if !isAdmin {
		return domain.Program{}, ErrNotProgramAdmin
	}

	if program.Name != "" {
		current.Name = program.Name
	}
	if program.Year != 0 {
		current.Year = program.Year
	}
	if program.Config != "" {
		current.Config = program.Config
	}
	if program.Status != "" {
		current.Status = program.Status
	}

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		return domain.Program{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	s.audit.Log(updated.ID, fmt.Sprintf("program %d updated by user %d", updated.ID, userID))

	return updated, nil
}

// RetireProgram flips the program status to retired. Rows are never
// physically deleted.
func (s *ProgramService) RetireProgram(ctx context.Context, userID, programID uint) (domain.Program, error) {
	program, err := s.repo.FindByID(ctx, programID)
	if err != nil {
		return domain.Program{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	isAdmin, err := s.authz.IsProgramAdmin(ctx, userID, programID)
	if err != nil {
		return domain.Program{}, fmt.Errorf("s.authz.IsProgramAdmin -> %w", err)
	}
	if !isAdmin {
		return domain.Program{}, ErrNotProgramAdmin
	}

	program.Status = domain.ProgramStatusRetired

	updated, err := s.repo.Update(ctx, program)
	if err != nil {
		return domain.Program{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	s.audit.Log(programID, fmt.Sprintf("program %d retired by user %d", programID, userID))

	return updated, nil
}

func (s *ProgramService) CreateRole(ctx context.Context, userID uint, role domain.ProgramRole) (domain.ProgramRole, error) {
	if _, err := s.repo.FindByID(ctx, role.ProgramID); err != nil {
		return domain.ProgramRole{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	isAdmin, err := s.authz.IsProgramAdmin(ctx, userID, role.ProgramID)
	if err != nil {
		return domain.ProgramRole{}, fmt.Errorf("s.authz.IsProgramAdmin -> %w", err)
	}
	if !isAdmin {
		return domain.ProgramRole{}, ErrNotProgramAdmin
	}

	for _, p := range role.Permissions {
		if !p.IsValid() {
			return domain.ProgramRole{}, fmt.Errorf("%w: %q", ErrInvalidPermission, p)
		}
	}

	created, err := s.repo.CreateRole(ctx, role)
	if err != nil {
		return domain.ProgramRole{}, fmt.Errorf("s.repo.CreateRole -> %w", err)
	}

	s.audit.Log(role.ProgramID, fmt.Sprintf("role %q created by user %d", role.Name, userID))

	return created, nil
}

func (s *ProgramService) ListRoles(ctx context.Context, userID, programID uint) ([]domain.ProgramRole, error) {
	if _, err := s.repo.FindByID(ctx, programID); err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	isMember, err := s.authz.IsProgramMember(ctx, userID, programID)
	if err != nil {
		return nil, fmt.Errorf("s.authz.IsProgramMember -> %w", err)
	}
	if !isMember {
		return nil, ErrNotProgramMember
	}

	return s.repo.FindRolesByProgram(ctx, programID)
}

// AssignUser binds a user to a program with role "admin" or a named role.
// A named role must exist and belong to the target program.
func (s *ProgramService) AssignUser(ctx context.Context, callerID uint, assignment domain.ProgramAssignment) (domain.ProgramAssignment, error) {
	if _, err := s.repo.FindByID(ctx, assignment.ProgramID); err != nil {
		return domain.ProgramAssignment{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	isAdmin, err := s.authz.IsProgramAdmin(ctx, callerID, assignment.ProgramID)
	if err != nil {
		return domain.ProgramAssignment{}, fmt.Errorf("s.authz.IsProgramAdmin -> %w", err)
	}
	if !isAdmin {
		return domain.ProgramAssignment{}, ErrNotProgramAdmin
	}

	if assignment.ProgramRoleID != nil {
		role, err := s.repo.FindRoleByID(ctx, *assignment.ProgramRoleID)
		if err != nil {
			return domain.ProgramAssignment{}, fmt.Errorf("s.repo.FindRoleByID -> %w", err)
		}
		if role.ProgramID != assignment.ProgramID {
			return domain.ProgramAssignment{}, ErrProgramRoleNotFound
		}
	}

	created, err := s.repo.CreateAssignment(ctx, assignment)
	if err != nil {
		if errors.Is(err, repository.ErrAssignmentExists) {
			return domain.ProgramAssignment{}, ErrAssignmentExists
		}

		return domain.ProgramAssignment{}, fmt.Errorf("s.repo.CreateAssignment -> %w", err)
	}

	s.audit.Log(assignment.ProgramID, fmt.Sprintf("user %d assigned role %q by user %d", assignment.UserID, assignment.Role, callerID))

	return created, nil
}
