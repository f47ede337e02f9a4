package service

import (
	"context"
	"fmt"
	"time"

	"github.com/civiclab/program-api/internal/domain"
)

type ProgramYearsRepository interface {
	Create(ctx context.Context, year domain.ProgramYear) (domain.ProgramYear, error)
	FindByID(ctx context.Context, id uint) (domain.ProgramYear, error)
	FindByProgram(ctx context.Context, programID uint) ([]domain.ProgramYear, error)
	Update(ctx context.Context, year domain.ProgramYear) (domain.ProgramYear, error)
}

// ProgramYearUpdateInput merges onto a persisted program year; nil means
// the caller omitted the field.
type ProgramYearUpdateInput struct {
	Year      *int
	StartDate *time.Time
	EndDate   *time.Time
	Status    *string
	Notes     *string
}

type ProgramYearService struct {
	repo        ProgramYearsRepository
	programRepo PositionProgramRepository
	authz       Authorizer
	audit       AuditLogger
}

func NewProgramYearService(repo ProgramYearsRepository, programRepo PositionProgramRepository, authz Authorizer, audit AuditLogger) *ProgramYearService {
	return &ProgramYearService{
		repo:        repo,
		programRepo: programRepo,
		authz:       authz,
		audit:       audit,
	}
}

func (s *ProgramYearService) CreateProgramYear(ctx context.Context, userID uint, year domain.ProgramYear) (domain.ProgramYear, error) {
	if _, err := s.programRepo.FindByID(ctx, year.ProgramID); err != nil {
		return domain.ProgramYear{}, fmt.Errorf("s.programRepo.FindByID -> %w", err)
	}

	isAdmin, err := s.authz.IsProgramAdmin(ctx, userID, year.ProgramID)
	if err != nil {
		return domain.ProgramYear{}, fmt.Errorf("s.authz.IsProgramAdmin -> %w", err)
	}
	if !isAdmin {
		return domain.ProgramYear{}, ErrNotProgramAdmin
	}

	created, err := s.repo.Create(ctx, year)
	if err != nil {
		return domain.ProgramYear{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.audit.Log(year.ProgramID, fmt.Sprintf("program year %d created by user %d", created.Year, userID))

	return created, nil
}

func (s *ProgramYearService) GetProgramYear(ctx context.Context, userID, programYearID uint) (domain.ProgramYear, error) {
	year, err := s.repo.FindByID(ctx, programYearID)
	if err != nil {
		return domain.ProgramYear{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	isMember, err := s.authz.IsProgramMember(ctx, userID, year.ProgramID)
	if err != nil {
		return domain.ProgramYear{}, fmt.Errorf("s.authz.IsProgramMember -> %w", err)
	}
	if !isMember {
		return domain.ProgramYear{}, ErrNotProgramMember
	}

	return year, nil
}

func (s *ProgramYearService) ListProgramYears(ctx context.Context, userID, programID uint) ([]domain.ProgramYear, error) {
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

func (s *ProgramYearService) UpdateProgramYear(ctx context.Context, userID, programYearID uint, input ProgramYearUpdateInput) (domain.ProgramYear, error) {
	year, err := s.repo.FindByID(ctx, programYearID)
	if err != nil {
		return domain.ProgramYear{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	isAdmin, err := s.authz.IsProgramAdmin(ctx, userID, year.ProgramID)
	if err != nil {
		return domain.ProgramYear{}, fmt.Errorf("s.authz.IsProgramAdmin -> %w", err)
	}
	if !isAdmin {
		return domain.ProgramYear{}, ErrNotProgramAdmin
	}

	if input.Year != nil {
		year.Year = *input.Year
	}
	if input.StartDate != nil {
		year.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		year.EndDate = input.EndDate
	}
	if input.Status != nil {
		year.Status = *input.Status
	}
	if input.Notes != nil {
		year.Notes = *input.Notes
	}

	updated, err := s.repo.Update(ctx, year)
	if err != nil {
		return domain.ProgramYear{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	s.audit.Log(year.ProgramID, fmt.Sprintf("program year %d updated by user %d", programYearID, userID))

	return updated, nil
}

// ArchiveProgramYear closes out a session; archived years stay readable.
func (s *ProgramYearService) ArchiveProgramYear(ctx context.Context, userID, programYearID uint) (domain.ProgramYear, error) {
	year, err := s.repo.FindByID(ctx, programYearID)
	if err != nil {
		return domain.ProgramYear{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	isAdmin, err := s.authz.IsProgramAdmin(ctx, userID, year.ProgramID)
	if err != nil {
		return domain.ProgramYear{}, fmt.Errorf("s.authz.IsProgramAdmin -> %w", err)
	}
	if !isAdmin {
		return domain.ProgramYear{}, ErrNotProgramAdmin
	}

	year.Status = domain.ProgramYearStatusArchived

	updated, err := s.repo.Update(ctx, year)
	if err != nil {
		return domain.ProgramYear{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	s.audit.Log(year.ProgramID, fmt.Sprintf("program year %d archived by user %d", programYearID, userID))

	return updated, nil
}
