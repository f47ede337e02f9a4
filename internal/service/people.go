package service

import (
	"context"
	"fmt"

	"github.com/civiclab/program-api/internal/domain"
	"github.com/civiclab/program-api/internal/repository"
)

var (
	ErrDelegateNotFound = repository.ErrDelegateNotFound
	ErrStaffNotFound    = repository.ErrStaffNotFound
	ErrParentNotFound   = repository.ErrParentNotFound
	ErrLinkNotFound     = repository.ErrLinkNotFound
)

type PeopleStore interface {
	CreateDelegate(ctx context.Context, delegate domain.Delegate) (domain.Delegate, error)
	FindDelegateByID(ctx context.Context, id uint) (domain.Delegate, error)
	FindDelegatesByProgramYear(ctx context.Context, programYearID uint) ([]domain.Delegate, error)
	UpdateDelegate(ctx context.Context, delegate domain.Delegate) (domain.Delegate, error)
	CreateStaff(ctx context.Context, staff domain.Staff) (domain.Staff, error)
	FindStaffByID(ctx context.Context, id uint) (domain.Staff, error)
	FindStaffByProgramYear(ctx context.Context, programYearID uint) ([]domain.Staff, error)
	UpdateStaff(ctx context.Context, staff domain.Staff) (domain.Staff, error)
	CreateParent(ctx context.Context, parent domain.Parent) (domain.Parent, error)
	FindParentByID(ctx context.Context, id uint) (domain.Parent, error)
	FindParentsByProgramYear(ctx context.Context, programYearID uint) ([]domain.Parent, error)
	UpdateParent(ctx context.Context, parent domain.Parent) (domain.Parent, error)
	CreateLink(ctx context.Context, link domain.DelegateParentLink) (domain.DelegateParentLink, error)
	FindLinkByID(ctx context.Context, id uint) (domain.DelegateParentLink, error)
	FindLinksByProgramYear(ctx context.Context, programYearID uint) ([]domain.DelegateParentLink, error)
	UpdateLink(ctx context.Context, link domain.DelegateParentLink) (domain.DelegateParentLink, error)
}

// PeopleService manages the program-year rosters: delegates, staff,
// parents, and the delegate/parent links.
type PeopleService struct {
	repo            PeopleStore
	programYearRepo ElectionProgramYearRepository
	authz           Authorizer
	audit           AuditLogger
}

func NewPeopleService(repo PeopleStore, programYearRepo ElectionProgramYearRepository, authz Authorizer, audit AuditLogger) *PeopleService {
	return &PeopleService{
		repo:            repo,
		programYearRepo: programYearRepo,
		authz:           authz,
		audit:           audit,
	}
}

func (s *PeopleService) requireAdmin(ctx context.Context, userID, programYearID uint) (domain.ProgramYear, error) {
	year, err := s.programYearRepo.FindByID(ctx, programYearID)
	if err != nil {
		return domain.ProgramYear{}, fmt.Errorf("s.programYearRepo.FindByID -> %w", err)
	}

	isAdmin, err := s.authz.IsProgramAdmin(ctx, userID, year.ProgramID)
	if err != nil {
		return domain.ProgramYear{}, fmt.Errorf("s.authz.IsProgramAdmin -> %w", err)
	}
	if !isAdmin {
		return domain.ProgramYear{}, ErrNotProgramAdmin
	}

	return year, nil
}

func (s *PeopleService) requireMember(ctx context.Context, userID, programYearID uint) (domain.ProgramYear, error) {
	year, err := s.programYearRepo.FindByID(ctx, programYearID)
	if err != nil {
		return domain.ProgramYear{}, fmt.Errorf("s.programYearRepo.FindByID -> %w", err)
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

func (s *PeopleService) CreateDelegate(ctx context.Context, userID uint, delegate domain.Delegate) (domain.Delegate, error) {
	year, err := s.requireAdmin(ctx, userID, delegate.ProgramYearID)
	if err != nil {
		return domain.Delegate{}, err
	}

	created, err := s.repo.CreateDelegate(ctx, delegate)
	if err != nil {
		return domain.Delegate{}, fmt.Errorf("s.repo.CreateDelegate -> %w", err)
	}

	s.audit.Log(year.ProgramID, fmt.Sprintf("delegate %d created by user %d", created.ID, userID))

	return created, nil
}

func (s *PeopleService) ListDelegates(ctx context.Context, userID, programYearID uint) ([]domain.Delegate, error) {
	if _, err := s.requireMember(ctx, userID, programYearID); err != nil {
		return nil, err
	}

	return s.repo.FindDelegatesByProgramYear(ctx, programYearID)
}

// UpdateDelegate merges non-zero fields onto the persisted delegate.
// Withdrawal is a status update; delegate rows are never deleted.
func (s *PeopleService) UpdateDelegate(ctx context.Context, userID uint, delegate domain.Delegate) (domain.Delegate, error) {
	current, err := s.repo.FindDelegateByID(ctx, delegate.ID)
	if err != nil {
		return domain.Delegate{}, fmt.Errorf("s.repo.FindDelegateByID -> %w", err)
	}

	year, err := s.requireAdmin(ctx, userID, current.ProgramYearID)
	if err != nil {
		return domain.Delegate{}, err
	}

	if delegate.FirstName != "" {
		current.FirstName = delegate.FirstName
	}
	if delegate.LastName != "" {
		current.LastName = delegate.LastName
	}
	if delegate.Email != "" {
		current.Email = delegate.Email
	}
	if delegate.GroupingID != nil {
		current.GroupingID = delegate.GroupingID
	}
	if delegate.PartyID != nil {
		current.PartyID = delegate.PartyID
	}
	if delegate.Status != "" {
		current.Status = delegate.Status
	}

	updated, err := s.repo.UpdateDelegate(ctx, current)
	if err != nil {
		return domain.Delegate{}, fmt.Errorf("s.repo.UpdateDelegate -> %w", err)
	}

	s.audit.Log(year.ProgramID, fmt.Sprintf("delegate %d updated by user %d", delegate.ID, userID))

	return updated, nil
}

func (s *PeopleService) CreateStaff(ctx context.Context, userID uint, staff domain.Staff) (domain.Staff, error) {
	year, err := s.requireAdmin(ctx, userID, staff.ProgramYearID)
	if err != nil {
		return domain.Staff{}, err
	}

	created, err := s.repo.CreateStaff(ctx, staff)
	if err != nil {
		return domain.Staff{}, fmt.Errorf("s.repo.CreateStaff -> %w", err)
	}

	s.audit.Log(year.ProgramID, fmt.Sprintf("staff %d created by user %d", created.ID, userID))

	return created, nil
}

func (s *PeopleService) ListStaff(ctx context.Context, userID, programYearID uint) ([]domain.Staff, error) {
	if _, err := s.requireMember(ctx, userID, programYearID); err != nil {
		return nil, err
	}

	return s.repo.FindStaffByProgramYear(ctx, programYearID)
}

func (s *PeopleService) UpdateStaff(ctx context.Context, userID uint, staff domain.Staff) (domain.Staff, error) {
	current, err := s.repo.FindStaffByID(ctx, staff.ID)
	if err != nil {
		return domain.Staff{}, fmt.Errorf("s.repo.FindStaffByID -> %w", err)
	}

	year, err := s.requireAdmin(ctx, userID, current.ProgramYearID)
	if err != nil {
		return domain.Staff{}, err
	}

	if staff.FirstName != "" {
		current.FirstName = staff.FirstName
	}
	if staff.LastName != "" {
		current.LastName = staff.LastName
	}
	if staff.Email != "" {
		current.Email = staff.Email
	}
	if staff.Role != "" {
		current.Role = staff.Role
	}
	if staff.Status != "" {
		current.Status = staff.Status
	}

	updated, err := s.repo.UpdateStaff(ctx, current)
	if err != nil {
		return domain.Staff{}, fmt.Errorf("s.repo.UpdateStaff -> %w", err)
	}

	s.audit.Log(year.ProgramID, fmt.Sprintf("staff %d updated by user %d", staff.ID, userID))

	return updated, nil
}

func (s *PeopleService) CreateParent(ctx context.Context, userID uint, parent domain.Parent) (domain.Parent, error) {
	year, err := s.requireAdmin(ctx, userID, parent.ProgramYearID)
	if err != nil {
		return domain.Parent{}, err
	}

	created, err := s.repo.CreateParent(ctx, parent)
	if err != nil {
		return domain.Parent{}, fmt.Errorf("s.repo.CreateParent -> %w", err)
	}

	s.audit.Log(year.ProgramID, fmt.Sprintf("parent %d created by user %d", created.ID, userID))

	return created, nil
}

func (s *PeopleService) ListParents(ctx context.Context, userID, programYearID uint) ([]domain.Parent, error) {
	if _, err := s.requireMember(ctx, userID, programYearID); err != nil {
		return nil, err
	}

	return s.repo.FindParentsByProgramYear(ctx, programYearID)
}

func (s *PeopleService) UpdateParent(ctx context.Context, userID uint, parent domain.Parent) (domain.Parent, error) {
	current, err := s.repo.FindParentByID(ctx, parent.ID)
	if err != nil {
		return domain.Parent{}, fmt.Errorf("s.repo.FindParentByID -> %w", err)
	}

	year, err := s.requireAdmin(ctx, userID, current.ProgramYearID)
	if err != nil {
		return domain.Parent{}, err
	}

	if parent.FirstName != "" {
		current.FirstName = parent.FirstName
	}
	if parent.LastName != "" {
		current.LastName = parent.LastName
	}
	if parent.Email != "" {
		current.Email = parent.Email
	}
	if parent.Phone != "" {
		current.Phone = parent.Phone
	}
	if parent.Status != "" {
		current.Status = parent.Status
	}

	updated, err := s.repo.UpdateParent(ctx, current)
	if err != nil {
		return domain.Parent{}, fmt.Errorf("s.repo.UpdateParent -> %w", err)
	}

	s.audit.Log(year.ProgramID, fmt.Sprintf("parent %d updated by user %d", parent.ID, userID))

	return updated, nil
}

// LinkDelegateParent creates a pending link between a delegate and a
// parent. Both must belong to the same program year.
func (s *PeopleService) LinkDelegateParent(ctx context.Context, userID, delegateID, parentID uint) (domain.DelegateParentLink, error) {
	delegate, err := s.repo.FindDelegateByID(ctx, delegateID)
	if err != nil {
		return domain.DelegateParentLink{}, fmt.Errorf("s.repo.FindDelegateByID -> %w", err)
	}

	parent, err := s.repo.FindParentByID(ctx, parentID)
	if err != nil {
		return domain.DelegateParentLink{}, fmt.Errorf("s.repo.FindParentByID -> %w", err)
	}
	if parent.ProgramYearID != delegate.ProgramYearID {
		return domain.DelegateParentLink{}, ErrParentNotFound
	}

	year, err := s.requireAdmin(ctx, userID, delegate.ProgramYearID)
	if err != nil {
		return domain.DelegateParentLink{}, err
	}

	created, err := s.repo.CreateLink(ctx, domain.DelegateParentLink{
		ProgramYearID: delegate.ProgramYearID,
		DelegateID:    delegateID,
		ParentID:      parentID,
		Status:        domain.LinkStatusPending,
	})
	if err != nil {
		return domain.DelegateParentLink{}, fmt.Errorf("s.repo.CreateLink -> %w", err)
	}

	s.audit.Log(year.ProgramID, fmt.Sprintf("delegate %d linked to parent %d by user %d", delegateID, parentID, userID))

	return created, nil
}

func (s *PeopleService) ListLinks(ctx context.Context, userID, programYearID uint) ([]domain.DelegateParentLink, error) {
	if _, err := s.requireMember(ctx, userID, programYearID); err != nil {
		return nil, err
	}

	return s.repo.FindLinksByProgramYear(ctx, programYearID)
}

// ReviewLink approves or rejects a pending delegate/parent link.
func (s *PeopleService) ReviewLink(ctx context.Context, userID, linkID uint, status string) (domain.DelegateParentLink, error) {
	link, err := s.repo.FindLinkByID(ctx, linkID)
	if err != nil {
		return domain.DelegateParentLink{}, fmt.Errorf("s.repo.FindLinkByID -> %w", err)
	}

	year, err := s.requireAdmin(ctx, userID, link.ProgramYearID)
	if err != nil {
		return domain.DelegateParentLink{}, err
	}

	link.Status = status

	updated, err := s.repo.UpdateLink(ctx, link)
	if err != nil {
		return domain.DelegateParentLink{}, fmt.Errorf("s.repo.UpdateLink -> %w", err)
	}

	s.audit.Log(year.ProgramID, fmt.Sprintf("link %d reviewed as %q by user %d", linkID, status, userID))

	return updated, nil
}
