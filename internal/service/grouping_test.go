package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civiclab/program-api/internal/domain"
)

type mockGroupingsRepo struct {
	createTypeFunc             func(ctx context.Context, gt domain.GroupingType) (domain.GroupingType, error)
	findTypeByIDFunc           func(ctx context.Context, id uint) (domain.GroupingType, error)
	findTypesByProgramFunc     func(ctx context.Context, programID uint) ([]domain.GroupingType, error)
	updateTypeFunc             func(ctx context.Context, gt domain.GroupingType) (domain.GroupingType, error)
	createFunc                 func(ctx context.Context, grouping domain.Grouping) (domain.Grouping, error)
	findByIDFunc               func(ctx context.Context, id uint) (domain.Grouping, error)
	findByProgramFunc          func(ctx context.Context, programID uint) ([]domain.Grouping, error)
	updateFunc                 func(ctx context.Context, grouping domain.Grouping) (domain.Grouping, error)
	findActivationsFunc        func(ctx context.Context, programYearID uint) ([]domain.ProgramYearGrouping, error)
	createActivationFunc       func(ctx context.Context, activation domain.ProgramYearGrouping) (domain.ProgramYearGrouping, error)
	updateActivationStatusFunc func(ctx context.Context, id uint, status string) error
}

func (m *mockGroupingsRepo) CreateType(ctx context.Context, gt domain.GroupingType) (domain.GroupingType, error) {
	if m.createTypeFunc != nil {
		return m.createTypeFunc(ctx, gt)
	}
	return domain.GroupingType{}, errNotImplemented
}

func (m *mockGroupingsRepo) FindTypeByID(ctx context.Context, id uint) (domain.GroupingType, error) {
	if m.findTypeByIDFunc != nil {
		return m.findTypeByIDFunc(ctx, id)
	}
	return domain.GroupingType{}, errNotImplemented
}

func (m *mockGroupingsRepo) FindTypesByProgram(ctx context.Context, programID uint) ([]domain.GroupingType, error) {
	if m.findTypesByProgramFunc != nil {
		return m.findTypesByProgramFunc(ctx, programID)
	}
	return nil, errNotImplemented
}

func (m *mockGroupingsRepo) UpdateType(ctx context.Context, gt domain.GroupingType) (domain.GroupingType, error) {
	if m.updateTypeFunc != nil {
		return m.updateTypeFunc(ctx, gt)
	}
	return domain.GroupingType{}, errNotImplemented
}

func (m *mockGroupingsRepo) Create(ctx context.Context, grouping domain.Grouping) (domain.Grouping, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, grouping)
	}
	return domain.Grouping{}, errNotImplemented
}

func (m *mockGroupingsRepo) FindByID(ctx context.Context, id uint) (domain.Grouping, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return domain.Grouping{}, errNotImplemented
}

func (m *mockGroupingsRepo) FindByProgram(ctx context.Context, programID uint) ([]domain.Grouping, error) {
	if m.findByProgramFunc != nil {
		return m.findByProgramFunc(ctx, programID)
	}
	return nil, errNotImplemented
}

func (m *mockGroupingsRepo) Update(ctx context.Context, grouping domain.Grouping) (domain.Grouping, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, grouping)
	}
	return domain.Grouping{}, errNotImplemented
}

func (m *mockGroupingsRepo) FindActivations(ctx context.Context, programYearID uint) ([]domain.ProgramYearGrouping, error) {
	if m.findActivationsFunc != nil {
		return m.findActivationsFunc(ctx, programYearID)
	}
	return nil, errNotImplemented
}

func (m *mockGroupingsRepo) CreateActivation(ctx context.Context, activation domain.ProgramYearGrouping) (domain.ProgramYearGrouping, error) {
	if m.createActivationFunc != nil {
		return m.createActivationFunc(ctx, activation)
	}
	return domain.ProgramYearGrouping{}, errNotImplemented
}

func (m *mockGroupingsRepo) UpdateActivationStatus(ctx context.Context, id uint, status string) error {
	if m.updateActivationStatusFunc != nil {
		return m.updateActivationStatusFunc(ctx, id, status)
	}
	return errNotImplemented
}

func TestGroupingService_SetActiveGroupings(t *testing.T) {
	year := domain.ProgramYear{ID: 10, ProgramID: 3}
	yearRepo := yearRepoReturning(year)

	// Groupings 1..4 belong to program 3, grouping 5 to another program.
	groupingByID := func(_ context.Context, id uint) (domain.Grouping, error) {
		programID := uint(3)
		if id == 5 {
			programID = 4
		}
		return domain.Grouping{ID: id, ProgramID: programID}, nil
	}

	t.Run("reconciles creates, reactivations and deactivations", func(t *testing.T) {
		existing := []domain.ProgramYearGrouping{
			{ID: 100, ProgramYearID: 10, GroupingID: 1, Status: domain.ActivationStatusActive},
			{ID: 101, ProgramYearID: 10, GroupingID: 2, Status: domain.ActivationStatusInactive},
			{ID: 102, ProgramYearID: 10, GroupingID: 3, Status: domain.ActivationStatusActive},
		}

		var created []domain.ProgramYearGrouping
		statusChanges := make(map[uint]string)

		repo := &mockGroupingsRepo{
			findByIDFunc: groupingByID,
			findActivationsFunc: func(_ context.Context, _ uint) ([]domain.ProgramYearGrouping, error) {
				return existing, nil
			},
			createActivationFunc: func(_ context.Context, a domain.ProgramYearGrouping) (domain.ProgramYearGrouping, error) {
				created = append(created, a)
				return a, nil
			},
			updateActivationStatusFunc: func(_ context.Context, id uint, status string) error {
				statusChanges[id] = status
				return nil
			},
		}
		svc := NewGroupingService(repo, &mockProgramFinder{}, yearRepo, &stubAuthorizer{admin: true}, &recordingAudit{})

		// Desired: keep 1, reactivate 2, add 4. Grouping 3 drops out.
		_, err := svc.SetActiveGroupings(context.Background(), 1, 10, []uint{1, 2, 4})

		require.NoError(t, err)

		require.Len(t, created, 1)
		assert.Equal(t, uint(4), created[0].GroupingID)
		assert.Equal(t, uint(10), created[0].ProgramYearID)

		assert.Equal(t, domain.ActivationStatusActive, statusChanges[101], "inactive row flips back")
		assert.Equal(t, domain.ActivationStatusInactive, statusChanges[102], "dropped grouping deactivates")
		assert.NotContains(t, statusChanges, uint(100), "already active desired row is untouched")
	})

	t.Run("rejects groupings from another program", func(t *testing.T) {
		repo := &mockGroupingsRepo{findByIDFunc: groupingByID}
		svc := NewGroupingService(repo, &mockProgramFinder{}, yearRepo, &stubAuthorizer{admin: true}, &recordingAudit{})

		_, err := svc.SetActiveGroupings(context.Background(), 1, 10, []uint{1, 5})

		assert.ErrorIs(t, err, ErrGroupingNotFound)
	})

	t.Run("admin only", func(t *testing.T) {
		svc := NewGroupingService(&mockGroupingsRepo{}, &mockProgramFinder{}, yearRepo, &stubAuthorizer{member: true}, &recordingAudit{})

		_, err := svc.SetActiveGroupings(context.Background(), 1, 10, []uint{1})

		assert.ErrorIs(t, err, ErrNotProgramAdmin)
	})

	t.Run("empty set deactivates everything active", func(t *testing.T) {
		existing := []domain.ProgramYearGrouping{
			{ID: 100, GroupingID: 1, Status: domain.ActivationStatusActive},
			{ID: 101, GroupingID: 2, Status: domain.ActivationStatusInactive},
		}
		statusChanges := make(map[uint]string)

		repo := &mockGroupingsRepo{
			findByIDFunc: groupingByID,
			findActivationsFunc: func(_ context.Context, _ uint) ([]domain.ProgramYearGrouping, error) {
				return existing, nil
			},
			updateActivationStatusFunc: func(_ context.Context, id uint, status string) error {
				statusChanges[id] = status
				return nil
			},
		}
		svc := NewGroupingService(repo, &mockProgramFinder{}, yearRepo, &stubAuthorizer{admin: true}, &recordingAudit{})

		_, err := svc.SetActiveGroupings(context.Background(), 1, 10, []uint{})

		require.NoError(t, err)
		assert.Equal(t, map[uint]string{100: domain.ActivationStatusInactive}, statusChanges)
	})
}

func TestGroupingService_CreateGrouping(t *testing.T) {
	programRepo := &mockProgramFinder{
		findByIDFunc: func(_ context.Context, id uint) (domain.Program, error) {
			return domain.Program{ID: id}, nil
		},
	}

	t.Run("grouping type must belong to the program", func(t *testing.T) {
		repo := &mockGroupingsRepo{
			findTypeByIDFunc: func(_ context.Context, id uint) (domain.GroupingType, error) {
				return domain.GroupingType{ID: id, ProgramID: 99}, nil
			},
		}
		svc := NewGroupingService(repo, programRepo, &mockProgramYearRepo{}, &stubAuthorizer{admin: true}, &recordingAudit{})

		_, err := svc.CreateGrouping(context.Background(), 1, domain.Grouping{ProgramID: 3, GroupingTypeID: 2, Name: "Travis County"})

		assert.ErrorIs(t, err, ErrGroupingTypeNotFound)
	})

	t.Run("parent must belong to the program", func(t *testing.T) {
		parentID := uint(7)
		repo := &mockGroupingsRepo{
			findTypeByIDFunc: func(_ context.Context, id uint) (domain.GroupingType, error) {
				return domain.GroupingType{ID: id, ProgramID: 3}, nil
			},
			findByIDFunc: func(_ context.Context, id uint) (domain.Grouping, error) {
				return domain.Grouping{ID: id, ProgramID: 99}, nil
			},
		}
		svc := NewGroupingService(repo, programRepo, &mockProgramYearRepo{}, &stubAuthorizer{admin: true}, &recordingAudit{})

		_, err := svc.CreateGrouping(context.Background(), 1, domain.Grouping{
			ProgramID:        3,
			GroupingTypeID:   2,
			ParentGroupingID: &parentID,
			Name:             "Austin",
		})

		assert.ErrorIs(t, err, ErrGroupingNotFound)
	})

	t.Run("creates under a valid parent", func(t *testing.T) {
		parentID := uint(7)
		repo := &mockGroupingsRepo{
			findTypeByIDFunc: func(_ context.Context, id uint) (domain.GroupingType, error) {
				return domain.GroupingType{ID: id, ProgramID: 3}, nil
			},
			findByIDFunc: func(_ context.Context, id uint) (domain.Grouping, error) {
				return domain.Grouping{ID: id, ProgramID: 3}, nil
			},
			createFunc: func(_ context.Context, g domain.Grouping) (domain.Grouping, error) {
				g.ID = 8
				return g, nil
			},
		}
		svc := NewGroupingService(repo, programRepo, &mockProgramYearRepo{}, &stubAuthorizer{admin: true}, &recordingAudit{})

		created, err := svc.CreateGrouping(context.Background(), 1, domain.Grouping{
			ProgramID:        3,
			GroupingTypeID:   2,
			ParentGroupingID: &parentID,
			Name:             "Austin",
		})

		require.NoError(t, err)
		assert.Equal(t, uint(8), created.ID)
	})
}
