package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civiclab/program-api/internal/domain"
)

type mockPeopleStore struct {
	createDelegateFunc             func(ctx context.Context, delegate domain.Delegate) (domain.Delegate, error)
	findDelegateByIDFunc           func(ctx context.Context, id uint) (domain.Delegate, error)
	findDelegatesByProgramYearFunc func(ctx context.Context, programYearID uint) ([]domain.Delegate, error)
	updateDelegateFunc             func(ctx context.Context, delegate domain.Delegate) (domain.Delegate, error)
	createStaffFunc                func(ctx context.Context, staff domain.Staff) (domain.Staff, error)
	findStaffByIDFunc              func(ctx context.Context, id uint) (domain.Staff, error)
	findStaffByProgramYearFunc     func(ctx context.Context, programYearID uint) ([]domain.Staff, error)
	updateStaffFunc                func(ctx context.Context, staff domain.Staff) (domain.Staff, error)
	createParentFunc               func(ctx context.Context, parent domain.Parent) (domain.Parent, error)
	findParentByIDFunc             func(ctx context.Context, id uint) (domain.Parent, error)
	findParentsByProgramYearFunc   func(ctx context.Context, programYearID uint) ([]domain.Parent, error)
	updateParentFunc               func(ctx context.Context, parent domain.Parent) (domain.Parent, error)
	createLinkFunc                 func(ctx context.Context, link domain.DelegateParentLink) (domain.DelegateParentLink, error)
	findLinkByIDFunc               func(ctx context.Context, id uint) (domain.DelegateParentLink, error)
	findLinksByProgramYearFunc     func(ctx context.Context, programYearID uint) ([]domain.DelegateParentLink, error)
	updateLinkFunc                 func(ctx context.Context, link domain.DelegateParentLink) (domain.DelegateParentLink, error)
}

func (m *mockPeopleStore) CreateDelegate(ctx context.Context, delegate domain.Delegate) (domain.Delegate, error) {
	if m.createDelegateFunc != nil {
		return m.createDelegateFunc(ctx, delegate)
	}
	return domain.Delegate{}, errNotImplemented
}

func (m *mockPeopleStore) FindDelegateByID(ctx context.Context, id uint) (domain.Delegate, error) {
	if m.findDelegateByIDFunc != nil {
		return m.findDelegateByIDFunc(ctx, id)
	}
	return domain.Delegate{}, errNotImplemented
}

func (m *mockPeopleStore) FindDelegatesByProgramYear(ctx context.Context, programYearID uint) ([]domain.Delegate, error) {
	if m.findDelegatesByProgramYearFunc != nil {
		return m.findDelegatesByProgramYearFunc(ctx, programYearID)
	}
	return nil, errNotImplemented
}

func (m *mockPeopleStore) UpdateDelegate(ctx context.Context, delegate domain.Delegate) (domain.Delegate, error) {
	if m.updateDelegateFunc != nil {
		return m.updateDelegateFunc(ctx, delegate)
	}
	return domain.Delegate{}, errNotImplemented
}

func (m *mockPeopleStore) CreateStaff(ctx context.Context, staff domain.Staff) (domain.Staff, error) {
	if m.createStaffFunc != nil {
		return m.createStaffFunc(ctx, staff)
	}
	return domain.Staff{}, errNotImplemented
}

func (m *mockPeopleStore) FindStaffByID(ctx context.Context, id uint) (domain.Staff, error) {
	if m.findStaffByIDFunc != nil {
		return m.findStaffByIDFunc(ctx, id)
	}
	return domain.Staff{}, errNotImplemented
}

func (m *mockPeopleStore) FindStaffByProgramYear(ctx context.Context, programYearID uint) ([]domain.Staff, error) {
	if m.findStaffByProgramYearFunc != nil {
		return m.findStaffByProgramYearFunc(ctx, programYearID)
	}
	return nil, errNotImplemented
}

func (m *mockPeopleStore) UpdateStaff(ctx context.Context, staff domain.Staff) (domain.Staff, error) {
	if m.updateStaffFunc != nil {
		return m.updateStaffFunc(ctx, staff)
	}
	return domain.Staff{}, errNotImplemented
}

func (m *mockPeopleStore) CreateParent(ctx context.Context, parent domain.Parent) (domain.Parent, error) {
	if m.createParentFunc != nil {
		return m.createParentFunc(ctx, parent)
	}
	return domain.Parent{}, errNotImplemented
}

func (m *mockPeopleStore) FindParentByID(ctx context.Context, id uint) (domain.Parent, error) {
	if m.findParentByIDFunc != nil {
		return m.findParentByIDFunc(ctx, id)
	}
	return domain.Parent{}, errNotImplemented
}

func (m *mockPeopleStore) FindParentsByProgramYear(ctx context.Context, programYearID uint) ([]domain.Parent, error) {
	if m.findParentsByProgramYearFunc != nil {
		return m.findParentsByProgramYearFunc(ctx, programYearID)
	}
	return nil, errNotImplemented
}

func (m *mockPeopleStore) UpdateParent(ctx context.Context, parent domain.Parent) (domain.Parent, error) {
	if m.updateParentFunc != nil {
		return m.updateParentFunc(ctx, parent)
	}
	return domain.Parent{}, errNotImplemented
}

func (m *mockPeopleStore) CreateLink(ctx context.Context, link domain.DelegateParentLink) (domain.DelegateParentLink, error) {
	if m.createLinkFunc != nil {
		return m.createLinkFunc(ctx, link)
	}
	return domain.DelegateParentLink{}, errNotImplemented
}

func (m *mockPeopleStore) FindLinkByID(ctx context.Context, id uint) (domain.DelegateParentLink, error) {
	if m.findLinkByIDFunc != nil {
		return m.findLinkByIDFunc(ctx, id)
	}
	return domain.DelegateParentLink{}, errNotImplemented
}

func (m *mockPeopleStore) FindLinksByProgramYear(ctx context.Context, programYearID uint) ([]domain.DelegateParentLink, error) {
	if m.findLinksByProgramYearFunc != nil {
		return m.findLinksByProgramYearFunc(ctx, programYearID)
	}
	return nil, errNotImplemented
}

func (m *mockPeopleStore) UpdateLink(ctx context.Context, link domain.DelegateParentLink) (domain.DelegateParentLink, error) {
	if m.updateLinkFunc != nil {
		return m.updateLinkFunc(ctx, link)
	}
	return domain.DelegateParentLink{}, errNotImplemented
}

func TestPeopleService_LinkDelegateParent(t *testing.T) {
	year := domain.ProgramYear{ID: 10, ProgramID: 3}

	t.Run("creates a pending link", func(t *testing.T) {
		repo := &mockPeopleStore{
			findDelegateByIDFunc: func(_ context.Context, id uint) (domain.Delegate, error) {
				return domain.Delegate{ID: id, ProgramYearID: 10}, nil
			},
			findParentByIDFunc: func(_ context.Context, id uint) (domain.Parent, error) {
				return domain.Parent{ID: id, ProgramYearID: 10}, nil
			},
			createLinkFunc: func(_ context.Context, l domain.DelegateParentLink) (domain.DelegateParentLink, error) {
				l.ID = 1
				return l, nil
			},
		}
		svc := NewPeopleService(repo, yearRepoReturning(year), &stubAuthorizer{admin: true}, &recordingAudit{})

		link, err := svc.LinkDelegateParent(context.Background(), 1, 8, 9)

		require.NoError(t, err)
		assert.Equal(t, domain.LinkStatusPending, link.Status)
		assert.Equal(t, uint(10), link.ProgramYearID)
	})

	t.Run("rejects a parent from another program year", func(t *testing.T) {
		repo := &mockPeopleStore{
			findDelegateByIDFunc: func(_ context.Context, id uint) (domain.Delegate, error) {
				return domain.Delegate{ID: id, ProgramYearID: 10}, nil
			},
			findParentByIDFunc: func(_ context.Context, id uint) (domain.Parent, error) {
				return domain.Parent{ID: id, ProgramYearID: 11}, nil
			},
		}
		svc := NewPeopleService(repo, yearRepoReturning(year), &stubAuthorizer{admin: true}, &recordingAudit{})

		_, err := svc.LinkDelegateParent(context.Background(), 1, 8, 9)

		assert.ErrorIs(t, err, ErrParentNotFound)
	})

	t.Run("admin only", func(t *testing.T) {
		repo := &mockPeopleStore{
			findDelegateByIDFunc: func(_ context.Context, id uint) (domain.Delegate, error) {
				return domain.Delegate{ID: id, ProgramYearID: 10}, nil
			},
			findParentByIDFunc: func(_ context.Context, id uint) (domain.Parent, error) {
				return domain.Parent{ID: id, ProgramYearID: 10}, nil
			},
		}
		svc := NewPeopleService(repo, yearRepoReturning(year), &stubAuthorizer{member: true}, &recordingAudit{})

		_, err := svc.LinkDelegateParent(context.Background(), 1, 8, 9)

		assert.ErrorIs(t, err, ErrNotProgramAdmin)
	})
}

func TestPeopleService_ReviewLink(t *testing.T) {
	year := domain.ProgramYear{ID: 10, ProgramID: 3}

	var saved domain.DelegateParentLink
	repo := &mockPeopleStore{
		findLinkByIDFunc: func(_ context.Context, id uint) (domain.DelegateParentLink, error) {
			return domain.DelegateParentLink{ID: id, ProgramYearID: 10, Status: domain.LinkStatusPending}, nil
		},
		updateLinkFunc: func(_ context.Context, l domain.DelegateParentLink) (domain.DelegateParentLink, error) {
			saved = l
			return l, nil
		},
	}
	svc := NewPeopleService(repo, yearRepoReturning(year), &stubAuthorizer{admin: true}, &recordingAudit{})

	link, err := svc.ReviewLink(context.Background(), 1, 5, domain.LinkStatusApproved)

	require.NoError(t, err)
	assert.Equal(t, domain.LinkStatusApproved, link.Status)
	assert.Equal(t, domain.LinkStatusApproved, saved.Status)
}

func TestPeopleService_UpdateDelegate(t *testing.T) {
	year := domain.ProgramYear{ID: 10, ProgramID: 3}
	partyID := uint(4)

	current := domain.Delegate{
		ID:            8,
		ProgramYearID: 10,
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Email:         "ada@example.com",
		Status:        "active",
	}

	var saved domain.Delegate
	repo := &mockPeopleStore{
		findDelegateByIDFunc: func(_ context.Context, _ uint) (domain.Delegate, error) {
			return current, nil
		},
		updateDelegateFunc: func(_ context.Context, d domain.Delegate) (domain.Delegate, error) {
			saved = d
			return d, nil
		},
	}
	svc := NewPeopleService(repo, yearRepoReturning(year), &stubAuthorizer{admin: true}, &recordingAudit{})

	// Only the supplied fields change; withdrawal is just a status update.
	_, err := svc.UpdateDelegate(context.Background(), 1, domain.Delegate{
		ID:      8,
		PartyID: &partyID,
		Status:  "withdrawn",
	})

	require.NoError(t, err)
	assert.Equal(t, "Ada", saved.FirstName)
	assert.Equal(t, "ada@example.com", saved.Email)
	assert.Equal(t, "withdrawn", saved.Status)
	require.NotNil(t, saved.PartyID)
	assert.Equal(t, partyID, *saved.PartyID)
}
