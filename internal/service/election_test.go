package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civiclab/program-api/internal/domain"
	"github.com/civiclab/program-api/internal/repository"
)

type mockElectionsRepo struct {
	createFunc            func(ctx context.Context, election domain.Election) (domain.Election, error)
	findByIDFunc          func(ctx context.Context, id uint) (domain.Election, error)
	findByProgramYearFunc func(ctx context.Context, programYearID uint) ([]domain.Election, error)
	updateFunc            func(ctx context.Context, election domain.Election) (domain.Election, error)
	createVoteFunc        func(ctx context.Context, vote domain.ElectionVote) (domain.ElectionVote, error)
	tallyVotesFunc        func(ctx context.Context, electionID uint) ([]domain.CandidateTally, error)
}

func (m *mockElectionsRepo) Create(ctx context.Context, election domain.Election) (domain.Election, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, election)
	}
	return domain.Election{}, errNotImplemented
}

func (m *mockElectionsRepo) FindByID(ctx context.Context, id uint) (domain.Election, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return domain.Election{}, errNotImplemented
}

func (m *mockElectionsRepo) FindByProgramYear(ctx context.Context, programYearID uint) ([]domain.Election, error) {
	if m.findByProgramYearFunc != nil {
		return m.findByProgramYearFunc(ctx, programYearID)
	}
	return nil, errNotImplemented
}

func (m *mockElectionsRepo) Update(ctx context.Context, election domain.Election) (domain.Election, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, election)
	}
	return domain.Election{}, errNotImplemented
}

func (m *mockElectionsRepo) CreateVote(ctx context.Context, vote domain.ElectionVote) (domain.ElectionVote, error) {
	if m.createVoteFunc != nil {
		return m.createVoteFunc(ctx, vote)
	}
	return domain.ElectionVote{}, errNotImplemented
}

func (m *mockElectionsRepo) TallyVotes(ctx context.Context, electionID uint) ([]domain.CandidateTally, error) {
	if m.tallyVotesFunc != nil {
		return m.tallyVotesFunc(ctx, electionID)
	}
	return nil, errNotImplemented
}

func yearRepoReturning(year domain.ProgramYear) *mockProgramYearRepo {
	return &mockProgramYearRepo{
		findByIDFunc: func(_ context.Context, _ uint) (domain.ProgramYear, error) {
			return year, nil
		},
	}
}

func TestElectionService_CreateElection(t *testing.T) {
	year := domain.ProgramYear{ID: 10, ProgramID: 3}

	t.Run("validates required fields", func(t *testing.T) {
		svc := NewElectionService(&mockElectionsRepo{}, yearRepoReturning(year), &stubAuthorizer{admin: true}, &recordingAudit{})

		_, err := svc.CreateElection(context.Background(), 1, domain.Election{
			ProgramYearID: 10,
			PositionID:    5,
		})

		assert.ErrorIs(t, err, ErrMissingElectionData)
	})

	t.Run("rejects unknown method", func(t *testing.T) {
		svc := NewElectionService(&mockElectionsRepo{}, yearRepoReturning(year), &stubAuthorizer{admin: true}, &recordingAudit{})

		_, err := svc.CreateElection(context.Background(), 1, domain.Election{
			ProgramYearID: 10,
			PositionID:    5,
			GroupingID:    7,
			Method:        "approval",
		})

		assert.ErrorIs(t, err, ErrInvalidElectionMethod)
	})

	t.Run("requires admin before any validation side effects", func(t *testing.T) {
		repo := &mockElectionsRepo{
			createFunc: func(_ context.Context, _ domain.Election) (domain.Election, error) {
				t.Fatal("create must not run for non-admins")
				return domain.Election{}, nil
			},
		}
		svc := NewElectionService(repo, yearRepoReturning(year), &stubAuthorizer{admin: false}, &recordingAudit{})

		_, err := svc.CreateElection(context.Background(), 1, domain.Election{
			ProgramYearID: 10,
			PositionID:    5,
			GroupingID:    7,
			Method:        domain.MethodPlurality,
		})

		assert.ErrorIs(t, err, ErrNotProgramAdmin)
	})

	t.Run("unknown program year surfaces before anything else", func(t *testing.T) {
		yearRepo := &mockProgramYearRepo{
			findByIDFunc: func(_ context.Context, _ uint) (domain.ProgramYear, error) {
				return domain.ProgramYear{}, repository.ErrProgramYearNotFound
			},
		}
		svc := NewElectionService(&mockElectionsRepo{}, yearRepo, &stubAuthorizer{admin: true}, &recordingAudit{})

		_, err := svc.CreateElection(context.Background(), 1, domain.Election{ProgramYearID: 404})

		assert.ErrorIs(t, err, ErrProgramYearNotFound)
	})

	t.Run("creates and audits", func(t *testing.T) {
		repo := &mockElectionsRepo{
			createFunc: func(_ context.Context, e domain.Election) (domain.Election, error) {
				e.ID = 55
				e.Status = domain.ElectionStatusScheduled
				return e, nil
			},
		}
		audit := &recordingAudit{}
		svc := NewElectionService(repo, yearRepoReturning(year), &stubAuthorizer{admin: true}, audit)

		created, err := svc.CreateElection(context.Background(), 1, domain.Election{
			ProgramYearID: 10,
			PositionID:    5,
			GroupingID:    7,
			Method:        domain.MethodRanked,
		})

		require.NoError(t, err)
		assert.Equal(t, uint(55), created.ID)
		assert.Equal(t, domain.ElectionStatusScheduled, created.Status)
		assert.Len(t, audit.entries, 1)
	})
}

func TestElectionService_ArchiveElection(t *testing.T) {
	year := domain.ProgramYear{ID: 10, ProgramID: 3}

	newRepo := func(status string, saved *domain.Election) *mockElectionsRepo {
		return &mockElectionsRepo{
			findByIDFunc: func(_ context.Context, id uint) (domain.Election, error) {
				return domain.Election{ID: id, ProgramYearID: 10, Status: status}, nil
			},
			updateFunc: func(_ context.Context, e domain.Election) (domain.Election, error) {
				*saved = e
				return e, nil
			},
		}
	}

	t.Run("archives an open election", func(t *testing.T) {
		var saved domain.Election
		svc := NewElectionService(newRepo(domain.ElectionStatusOpen, &saved), yearRepoReturning(year), &stubAuthorizer{admin: true}, &recordingAudit{})

		got, err := svc.ArchiveElection(context.Background(), 1, 55)

		require.NoError(t, err)
		assert.Equal(t, domain.ElectionStatusArchived, got.Status)
		assert.Equal(t, domain.ElectionStatusArchived, saved.Status)
	})

	t.Run("archiving twice still succeeds", func(t *testing.T) {
		var saved domain.Election
		svc := NewElectionService(newRepo(domain.ElectionStatusArchived, &saved), yearRepoReturning(year), &stubAuthorizer{admin: true}, &recordingAudit{})

		got, err := svc.ArchiveElection(context.Background(), 1, 55)

		require.NoError(t, err)
		assert.Equal(t, domain.ElectionStatusArchived, got.Status)
	})

	t.Run("members cannot archive", func(t *testing.T) {
		var saved domain.Election
		svc := NewElectionService(newRepo(domain.ElectionStatusOpen, &saved), yearRepoReturning(year), &stubAuthorizer{member: true}, &recordingAudit{})

		_, err := svc.ArchiveElection(context.Background(), 1, 55)

		assert.ErrorIs(t, err, ErrNotProgramAdmin)
		assert.Zero(t, saved.ID, "no update may run")
	})
}

func TestElectionService_CastVote(t *testing.T) {
	year := domain.ProgramYear{ID: 10, ProgramID: 3}
	election := domain.Election{ID: 55, ProgramYearID: 10, Status: domain.ElectionStatusOpen}

	baseRepo := func() *mockElectionsRepo {
		return &mockElectionsRepo{
			findByIDFunc: func(_ context.Context, _ uint) (domain.Election, error) {
				return election, nil
			},
		}
	}

	t.Run("records a ballot", func(t *testing.T) {
		repo := baseRepo()
		repo.createVoteFunc = func(_ context.Context, v domain.ElectionVote) (domain.ElectionVote, error) {
			v.ID = 1
			return v, nil
		}
		svc := NewElectionService(repo, yearRepoReturning(year), &stubAuthorizer{member: true}, &recordingAudit{})

		got, err := svc.CastVote(context.Background(), 1, domain.ElectionVote{
			ElectionID:          55,
			CandidateDelegateID: 8,
			VoterDelegateID:     9,
		})

		require.NoError(t, err)
		assert.Equal(t, uint(1), got.ID)
	})

	t.Run("second ballot by the same voter is a duplicate", func(t *testing.T) {
		repo := baseRepo()
		repo.createVoteFunc = func(_ context.Context, _ domain.ElectionVote) (domain.ElectionVote, error) {
			return domain.ElectionVote{}, repository.ErrDuplicateVote
		}
		svc := NewElectionService(repo, yearRepoReturning(year), &stubAuthorizer{member: true}, &recordingAudit{})

		_, err := svc.CastVote(context.Background(), 1, domain.ElectionVote{
			ElectionID:          55,
			CandidateDelegateID: 8,
			VoterDelegateID:     9,
		})

		assert.ErrorIs(t, err, ErrDuplicateVote)
	})

	t.Run("candidate and voter are required", func(t *testing.T) {
		svc := NewElectionService(baseRepo(), yearRepoReturning(year), &stubAuthorizer{member: true}, &recordingAudit{})

		_, err := svc.CastVote(context.Background(), 1, domain.ElectionVote{ElectionID: 55})

		assert.ErrorIs(t, err, ErrMissingVoteData)
	})

	t.Run("non-members cannot vote", func(t *testing.T) {
		svc := NewElectionService(baseRepo(), yearRepoReturning(year), &stubAuthorizer{}, &recordingAudit{})

		_, err := svc.CastVote(context.Background(), 1, domain.ElectionVote{
			ElectionID:          55,
			CandidateDelegateID: 8,
			VoterDelegateID:     9,
		})

		assert.ErrorIs(t, err, ErrNotProgramMember)
	})
}

func TestElectionService_TallyResults(t *testing.T) {
	year := domain.ProgramYear{ID: 10, ProgramID: 3}
	repo := &mockElectionsRepo{
		findByIDFunc: func(_ context.Context, _ uint) (domain.Election, error) {
			return domain.Election{ID: 55, ProgramYearID: 10}, nil
		},
		tallyVotesFunc: func(_ context.Context, _ uint) ([]domain.CandidateTally, error) {
			return []domain.CandidateTally{
				{CandidateDelegateID: 8, Count: 3},
				{CandidateDelegateID: 9, Count: 1},
			}, nil
		},
	}

	svc := NewElectionService(repo, yearRepoReturning(year), &stubAuthorizer{member: true}, &recordingAudit{})

	got, err := svc.TallyResults(context.Background(), 1, 55)

	require.NoError(t, err)
	require.Len(t, got, 2)

	total := 0
	for _, tally := range got {
		total += tally.Count
	}
	assert.Equal(t, 4, total)

	t.Run("unknown election", func(t *testing.T) {
		missing := &mockElectionsRepo{
			findByIDFunc: func(_ context.Context, _ uint) (domain.Election, error) {
				return domain.Election{}, repository.ErrElectionNotFound
			},
		}
		svc := NewElectionService(missing, yearRepoReturning(year), &stubAuthorizer{member: true}, &recordingAudit{})

		_, err := svc.TallyResults(context.Background(), 1, 404)

		assert.ErrorIs(t, err, ErrElectionNotFound)
	})
}
