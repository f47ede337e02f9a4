package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civiclab/program-api/internal/api/middleware"
	"github.com/civiclab/program-api/internal/domain"
	"github.com/civiclab/program-api/internal/service"
)

type mockUserService struct {
	getUserFunc func(ctx context.Context, id uint) (domain.User, error)
}

func (m *mockUserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	if m.getUserFunc != nil {
		return m.getUserFunc(ctx, id)
	}
	return domain.User{ID: id, Email: "user@example.com"}, nil
}

type mockElectionService struct {
	createElectionFunc  func(ctx context.Context, userID uint, election domain.Election) (domain.Election, error)
	listElectionsFunc   func(ctx context.Context, userID, programYearID uint) ([]domain.Election, error)
	getElectionFunc     func(ctx context.Context, userID, electionID uint) (domain.Election, error)
	updateElectionFunc  func(ctx context.Context, userID, electionID uint, input service.ElectionUpdateInput) (domain.Election, error)
	archiveElectionFunc func(ctx context.Context, userID, electionID uint) (domain.Election, error)
	castVoteFunc        func(ctx context.Context, userID uint, vote domain.ElectionVote) (domain.ElectionVote, error)
	tallyResultsFunc    func(ctx context.Context, userID, electionID uint) ([]domain.CandidateTally, error)
}

func (m *mockElectionService) CreateElection(ctx context.Context, userID uint, election domain.Election) (domain.Election, error) {
	return m.createElectionFunc(ctx, userID, election)
}

func (m *mockElectionService) ListElections(ctx context.Context, userID, programYearID uint) ([]domain.Election, error) {
	return m.listElectionsFunc(ctx, userID, programYearID)
}

func (m *mockElectionService) GetElection(ctx context.Context, userID, electionID uint) (domain.Election, error) {
	return m.getElectionFunc(ctx, userID, electionID)
}

func (m *mockElectionService) UpdateElection(ctx context.Context, userID, electionID uint, input service.ElectionUpdateInput) (domain.Election, error) {
	return m.updateElectionFunc(ctx, userID, electionID, input)
}

func (m *mockElectionService) ArchiveElection(ctx context.Context, userID, electionID uint) (domain.Election, error) {
	return m.archiveElectionFunc(ctx, userID, electionID)
}

func (m *mockElectionService) CastVote(ctx context.Context, userID uint, vote domain.ElectionVote) (domain.ElectionVote, error) {
	return m.castVoteFunc(ctx, userID, vote)
}

func (m *mockElectionService) TallyResults(ctx context.Context, userID, electionID uint) ([]domain.CandidateTally, error) {
	return m.tallyResultsFunc(ctx, userID, electionID)
}

// electionRouter mounts the election routes behind a stub that injects the
// authenticated user ID the way the JWT middleware does.
func electionRouter(svc ElectionService, authenticated bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := NewElectionHandler(svc, &mockUserService{})

	group := router.Group("/api/v1", func(ctx *gin.Context) {
		if authenticated {
			ctx.Set(middleware.ContextKeyUserID, uint(1))
		}
		ctx.Next()
	})
	group.POST("/program-years/:yearID/elections", handler.HandleCreateElection)
	group.POST("/elections/:electionID/votes", handler.HandleCastVote)
	group.GET("/elections/:electionID/results", handler.HandleGetResults)
	group.DELETE("/elections/:electionID", handler.HandleArchiveElection)

	return router
}

func TestElectionHandler_HandleCreateElection(t *testing.T) {
	t.Run("201 on success", func(t *testing.T) {
		svc := &mockElectionService{
			createElectionFunc: func(_ context.Context, _ uint, e domain.Election) (domain.Election, error) {
				e.ID = 55
				e.Status = domain.ElectionStatusScheduled
				return e, nil
			},
		}
		router := electionRouter(svc, true)

		w := httptest.NewRecorder()
		body := `{"position_id":5,"grouping_id":7,"method":"plurality"}`
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/program-years/10/elections", strings.NewReader(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":55`)
		assert.Contains(t, w.Body.String(), `"status":"scheduled"`)
	})

	t.Run("400 on unknown method", func(t *testing.T) {
		router := electionRouter(&mockElectionService{}, true)

		w := httptest.NewRecorder()
		body := `{"position_id":5,"grouping_id":7,"method":"approval"}`
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/program-years/10/elections", strings.NewReader(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("404 on unknown program year", func(t *testing.T) {
		svc := &mockElectionService{
			createElectionFunc: func(_ context.Context, _ uint, _ domain.Election) (domain.Election, error) {
				return domain.Election{}, service.ErrProgramYearNotFound
			},
		}
		router := electionRouter(svc, true)

		w := httptest.NewRecorder()
		body := `{"position_id":5,"grouping_id":7,"method":"plurality"}`
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/program-years/404/elections", strings.NewReader(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("401 without authentication", func(t *testing.T) {
		router := electionRouter(&mockElectionService{}, false)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/program-years/10/elections", strings.NewReader(`{}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("400 on a non-numeric year ID", func(t *testing.T) {
		router := electionRouter(&mockElectionService{}, true)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/program-years/abc/elections", strings.NewReader(`{}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestElectionHandler_HandleCastVote(t *testing.T) {
	t.Run("201 on the first ballot", func(t *testing.T) {
		svc := &mockElectionService{
			castVoteFunc: func(_ context.Context, _ uint, v domain.ElectionVote) (domain.ElectionVote, error) {
				v.ID = 1
				return v, nil
			},
		}
		router := electionRouter(svc, true)

		w := httptest.NewRecorder()
		body := `{"candidate_delegate_id":8,"voter_delegate_id":9}`
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/elections/55/votes", strings.NewReader(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("409 on a duplicate ballot", func(t *testing.T) {
		svc := &mockElectionService{
			castVoteFunc: func(_ context.Context, _ uint, _ domain.ElectionVote) (domain.ElectionVote, error) {
				return domain.ElectionVote{}, service.ErrDuplicateVote
			},
		}
		router := electionRouter(svc, true)

		w := httptest.NewRecorder()
		body := `{"candidate_delegate_id":8,"voter_delegate_id":9}`
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/elections/55/votes", strings.NewReader(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("403 for non-members", func(t *testing.T) {
		svc := &mockElectionService{
			castVoteFunc: func(_ context.Context, _ uint, _ domain.ElectionVote) (domain.ElectionVote, error) {
				return domain.ElectionVote{}, service.ErrNotProgramMember
			},
		}
		router := electionRouter(svc, true)

		w := httptest.NewRecorder()
		body := `{"candidate_delegate_id":8,"voter_delegate_id":9}`
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/elections/55/votes", strings.NewReader(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestElectionHandler_HandleGetResults(t *testing.T) {
	svc := &mockElectionService{
		tallyResultsFunc: func(_ context.Context, _ uint, _ uint) ([]domain.CandidateTally, error) {
			return []domain.CandidateTally{
				{CandidateDelegateID: 8, Count: 3},
				{CandidateDelegateID: 9, Count: 1},
			}, nil
		},
	}
	router := electionRouter(svc, true)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/elections/55/results", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":3`)
}

func TestElectionHandler_HandleArchiveElection(t *testing.T) {
	svc := &mockElectionService{
		archiveElectionFunc: func(_ context.Context, _ uint, electionID uint) (domain.Election, error) {
			return domain.Election{ID: electionID, Status: domain.ElectionStatusArchived}, nil
		},
	}
	router := electionRouter(svc, true)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/elections/55", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"archived"`)
}
