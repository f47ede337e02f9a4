package repository

import (
	"context"
	"fmt"

	"github.com/civiclab/program-api/internal/domain"
	"github.com/civiclab/program-api/internal/repository/dao"
)

var (
	ErrDelegateNotFound = dao.ErrDelegateNotFound
	ErrStaffNotFound    = dao.ErrStaffNotFound
	ErrParentNotFound   = dao.ErrParentNotFound
	ErrLinkNotFound     = dao.ErrLinkNotFound
)

type PeopleDAO interface {
	InsertDelegate(ctx context.Context, delegate dao.Delegate) (dao.Delegate, error)
	FindDelegateByID(ctx context.Context, id uint) (dao.Delegate, error)
	FindDelegatesByProgramYear(ctx context.Context, programYearID uint) ([]dao.Delegate, error)
	UpdateDelegate(ctx context.Context, delegate dao.Delegate) (dao.Delegate, error)
	InsertStaff(ctx context.Context, staff dao.Staff) (dao.Staff, error)
	FindStaffByID(ctx context.Context, id uint) (dao.Staff, error)
	FindStaffByProgramYear(ctx context.Context, programYearID uint) ([]dao.Staff, error)
	UpdateStaff(ctx context.Context, staff dao.Staff) (dao.Staff, error)
	InsertParent(ctx context.Context, parent dao.Parent) (dao.Parent, error)
	FindParentByID(ctx context.Context, id uint) (dao.Parent, error)
	FindParentsByProgramYear(ctx context.Context, programYearID uint) ([]dao.Parent, error)
	UpdateParent(ctx context.Context, parent dao.Parent) (dao.Parent, error)
	InsertLink(ctx context.Context, link dao.DelegateParentLink) (dao.DelegateParentLink, error)
	FindLinkByID(ctx context.Context, id uint) (dao.DelegateParentLink, error)
	FindLinksByProgramYear(ctx context.Context, programYearID uint) ([]dao.DelegateParentLink, error)
	UpdateLink(ctx context.Context, link dao.DelegateParentLink) (dao.DelegateParentLink, error)
}

type PeopleRepository struct {
	dao PeopleDAO
}

func NewPeopleRepository(dao PeopleDAO) *PeopleRepository {
	return &PeopleRepository{
		dao: dao,
	}
}

func (r *PeopleRepository) CreateDelegate(ctx context.Context, delegate domain.Delegate) (domain.Delegate, error) {
	created, err := r.dao.InsertDelegate(ctx, dao.Delegate{
		ProgramYearID: delegate.ProgramYearID,
		FirstName:     delegate.FirstName,
		LastName:      delegate.LastName,
		Email:         delegate.Email,
		GroupingID:    delegate.GroupingID,
		PartyID:       delegate.PartyID,
		Status:        domain.PersonStatusActive,
	})
	if err != nil {
		return domain.Delegate{}, fmt.Errorf("r.dao.InsertDelegate -> %w", err)
	}

	return r.delegateToDomain(created), nil
}

func (r *PeopleRepository) FindDelegateByID(ctx context.Context, id uint) (domain.Delegate, error) {
	found, err := r.dao.FindDelegateByID(ctx, id)
	if err != nil {
		return domain.Delegate{}, fmt.Errorf("r.dao.FindDelegateByID -> %w", err)
	}

	return r.delegateToDomain(found), nil
}

func (r *PeopleRepository) FindDelegatesByProgramYear(ctx context.Context, programYearID uint) ([]domain.Delegate, error) {
	found, err := r.dao.FindDelegatesByProgramYear(ctx, programYearID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindDelegatesByProgramYear -> %w", err)
	}

	delegates := make([]domain.Delegate, len(found))
	for i, d := range found {
		delegates[i] = r.delegateToDomain(d)
	}

	return delegates, nil
}

func (r *PeopleRepository) UpdateDelegate(ctx context.Context, delegate domain.Delegate) (domain.Delegate, error) {
	updated, err := r.dao.UpdateDelegate(ctx, dao.Delegate{
		ID:            delegate.ID,
		ProgramYearID: delegate.ProgramYearID,
		FirstName:     delegate.FirstName,
		LastName:      delegate.LastName,
		Email:         delegate.Email,
		GroupingID:    delegate.GroupingID,
		PartyID:       delegate.PartyID,
		Status:        delegate.Status,
		CreatedAt:     delegate.CreatedAt,
	})
	if err != nil {
		return domain.Delegate{}, fmt.Errorf("r.dao.UpdateDelegate -> %w", err)
	}

	return r.delegateToDomain(updated), nil
}

func (r *PeopleRepository) CreateStaff(ctx context.Context, staff domain.Staff) (domain.Staff, error) {
	created, err := r.dao.InsertStaff(ctx, dao.Staff{
		ProgramYearID: staff.ProgramYearID,
		FirstName:     staff.FirstName,
		LastName:      staff.LastName,
		Email:         staff.Email,
		Role:          staff.Role,
		Status:        domain.PersonStatusActive,
	})
	if err != nil {
		return domain.Staff{}, fmt.Errorf("r.dao.InsertStaff -> %w", err)
	}

	return r.staffToDomain(created), nil
}

func (r *PeopleRepository) FindStaffByID(ctx context.Context, id uint) (domain.Staff, error) {
	found, err := r.dao.FindStaffByID(ctx, id)
	if err != nil {
		return domain.Staff{}, fmt.Errorf("r.dao.FindStaffByID -> %w", err)
	}

	return r.staffToDomain(found), nil
}

func (r *PeopleRepository) FindStaffByProgramYear(ctx context.Context, programYearID uint) ([]domain.Staff, error) {
	found, err := r.dao.FindStaffByProgramYear(ctx, programYearID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindStaffByProgramYear -> %w", err)
	}

	staff := make([]domain.Staff, len(found))
	for i, s := range found {
		staff[i] = r.staffToDomain(s)
	}

	return staff, nil
}

func (r *PeopleRepository) UpdateStaff(ctx context.Context, staff domain.Staff) (domain.Staff, error) {
	updated, err := r.dao.UpdateStaff(ctx, dao.Staff{
		ID:            staff.ID,
		ProgramYearID: staff.ProgramYearID,
		FirstName:     staff.FirstName,
		LastName:      staff.LastName,
		Email:         staff.Email,
		Role:          staff.Role,
		Status:        staff.Status,
		CreatedAt:     staff.CreatedAt,
	})
	if err != nil {
		return domain.Staff{}, fmt.Errorf("r.dao.UpdateStaff -> %w", err)
	}

	return r.staffToDomain(updated), nil
}

func (r *PeopleRepository) CreateParent(ctx context.Context, parent domain.Parent) (domain.Parent, error) {
	created, err := r.dao.InsertParent(ctx, dao.Parent{
		ProgramYearID: parent.ProgramYearID,
		FirstName:     parent.FirstName,
		LastName:      parent.LastName,
		Email:         parent.Email,
		Phone:         parent.Phone,
		Status:        domain.PersonStatusActive,
	})
	if err != nil {
		return domain.Parent{}, fmt.Errorf("r.dao.InsertParent -> %w", err)
	}

	return r.parentToDomain(created), nil
}

func (r *PeopleRepository) FindParentByID(ctx context.Context, id uint) (domain.Parent, error) {
	found, err := r.dao.FindParentByID(ctx, id)
	if err != nil {
		return domain.Parent{}, fmt.Errorf("r.dao.FindParentByID -> %w", err)
	}

	return r.parentToDomain(found), nil
}

func (r *PeopleRepository) FindParentsByProgramYear(ctx context.Context, programYearID uint) ([]domain.Parent, error) {
	found, err := r.dao.FindParentsByProgramYear(ctx, programYearID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindParentsByProgramYear -> %w", err)
	}

	parents := make([]domain.Parent, len(found))
	for i, p := range found {
		parents[i] = r.parentToDomain(p)
	}

	return parents, nil
}

func (r *PeopleRepository) UpdateParent(ctx context.Context, parent domain.Parent) (domain.Parent, error) {
	updated, err := r.dao.UpdateParent(ctx, dao.Parent{
		ID:            parent.ID,
		ProgramYearID: parent.ProgramYearID,
		FirstName:     parent.FirstName,
		LastName:      parent.LastName,
		Email:         parent.Email,
		Phone:         parent.Phone,
		Status:        parent.Status,
		CreatedAt:     parent.CreatedAt,
	})
	if err != nil {
		return domain.Parent{}, fmt.Errorf("r.dao.UpdateParent -> %w", err)
	}

	return r.parentToDomain(updated), nil
}

func (r *PeopleRepository) CreateLink(ctx context.Context, link domain.DelegateParentLink) (domain.DelegateParentLink, error) {
	created, err := r.dao.InsertLink(ctx, dao.DelegateParentLink{
		ProgramYearID: link.ProgramYearID,
		DelegateID:    link.DelegateID,
		ParentID:      link.ParentID,
		Status:        domain.LinkStatusPending,
	})
	if err != nil {
		return domain.DelegateParentLink{}, fmt.Errorf("r.dao.InsertLink -> %w", err)
	}

	return r.linkToDomain(created), nil
}

func (r *PeopleRepository) FindLinkByID(ctx context.Context, id uint) (domain.DelegateParentLink, error) {
	found, err := r.dao.FindLinkByID(ctx, id)
	if err != nil {
		return domain.DelegateParentLink{}, fmt.Errorf("r.dao.FindLinkByID -> %w", err)
	}

	return r.linkToDomain(found), nil
}

func (r *PeopleRepository) FindLinksByProgramYear(ctx context.Context, programYearID uint) ([]domain.DelegateParentLink, error) {
	found, err := r.dao.FindLinksByProgramYear(ctx, programYearID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindLinksByProgramYear -> %w", err)
	}

	links := make([]domain.DelegateParentLink, len(found))
	for i, l := range found {
		links[i] = r.linkToDomain(l)
	}

	return links, nil
}

func (r *PeopleRepository) UpdateLink(ctx context.Context, link domain.DelegateParentLink) (domain.DelegateParentLink, error) {
	updated, err := r.dao.UpdateLink(ctx, dao.DelegateParentLink{
		ID:            link.ID,
		ProgramYearID: link.ProgramYearID,
		DelegateID:    link.DelegateID,
		ParentID:      link.ParentID,
		Status:        link.Status,
		CreatedAt:     link.CreatedAt,
	})
	if err != nil {
		return domain.DelegateParentLink{}, fmt.Errorf("r.dao.UpdateLink -> %w", err)
	}

	return r.linkToDomain(updated), nil
}

func (r *PeopleRepository) delegateToDomain(d dao.Delegate) domain.Delegate {
	return domain.Delegate{
		ID:            d.ID,
		ProgramYearID: d.ProgramYearID,
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		Email:         d.Email,
		GroupingID:    d.GroupingID,
		PartyID:       d.PartyID,
		Status:        d.Status,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (r *PeopleRepository) staffToDomain(s dao.Staff) domain.Staff {
	return domain.Staff{
		ID:            s.ID,
		ProgramYearID: s.ProgramYearID,
		FirstName:     s.FirstName,
		LastName:      s.LastName,
		Email:         s.Email,
		Role:          s.Role,
		Status:        s.Status,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func (r *PeopleRepository) parentToDomain(p dao.Parent) domain.Parent {
	return domain.Parent{
		ID:            p.ID,
		ProgramYearID: p.ProgramYearID,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Email:         p.Email,
		Phone:         p.Phone,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (r *PeopleRepository) linkToDomain(l dao.DelegateParentLink) domain.DelegateParentLink {
	return domain.DelegateParentLink{
		ID:            l.ID,
		ProgramYearID: l.ProgramYearID,
		DelegateID:    l.DelegateID,
		ParentID:      l.ParentID,
		Status:        l.Status,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}
