package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/civiclab/program-api/internal/api/handler/v1/request"
	"github.com/civiclab/program-api/internal/api/handler/v1/response"
	"github.com/civiclab/program-api/internal/domain"
	"github.com/civiclab/program-api/internal/service"
)

type ElectionService interface {
	CreateElection(ctx context.Context, userID uint, election domain.Election) (domain.Election, error)
	ListElections(ctx context.Context, userID, programYearID uint) ([]domain.Election, error)
	GetElection(ctx context.Context, userID, electionID uint) (domain.Election, error)
	UpdateElection(ctx context.Context, userID, electionID uint, input service.ElectionUpdateInput) (domain.Election, error)
	ArchiveElection(ctx context.Context, userID, electionID uint) (domain.Election, error)
	CastVote(ctx context.Context, userID uint, vote domain.ElectionVote) (domain.ElectionVote, error)
	TallyResults(ctx context.Context, userID, electionID uint) ([]domain.CandidateTally, error)
}

type ElectionHandler struct {
	svc  ElectionService
	uSvc UserService
}

func NewElectionHandler(svc ElectionService, uSvc UserService) *ElectionHandler {
	return &ElectionHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateElection godoc
// @Summary      Schedule an election
// @Tags         elections
// @Accept       json
// @Produce      json
// @Param        yearID   path      int                           true "program year ID"
// @Param        request  body      request.CreateElectionRequest true "request body"
// @Success      201      {object}  domain.Election
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /program-years/{yearID}/elections [post]
// @Security BearerAuth
func (h *ElectionHandler) HandleCreateElection(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	yearID, respErr := parseIDParam(ctx, "yearID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.CreateElectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	election, err := h.svc.CreateElection(ctx.Request.Context(), user.ID, domain.Election{
		ProgramYearID: yearID,
		PositionID:    req.PositionID,
		GroupingID:    req.GroupingID,
		Method:        domain.ElectionMethod(req.Method),
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
	})
	if err != nil {
		if errors.Is(err, service.ErrMissingElectionData) || errors.Is(err, service.ErrInvalidElectionMethod) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		renderElectionErr(ctx, "v1.HandleCreateElection", yearID, err)

		return
	}

	ctx.JSON(http.StatusCreated, election)
}

// HandleListElections godoc
// @Summary      List a program year's elections
// @Description  Archived elections are included.
// @Tags         elections
// @Produce      json
// @Param        yearID  path      int  true "program year ID"
// @Success      200     {array}   domain.Election
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /program-years/{yearID}/elections [get]
// @Security BearerAuth
func (h *ElectionHandler) HandleListElections(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	yearID, respErr := parseIDParam(ctx, "yearID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	elections, err := h.svc.ListElections(ctx.Request.Context(), user.ID, yearID)
	if err != nil {
		renderElectionErr(ctx, "v1.HandleListElections", yearID, err)

		return
	}

	ctx.JSON(http.StatusOK, elections)
}

// HandleGetElection godoc
// @Summary      Get an election
// @Tags         elections
// @Produce      json
// @Param        electionID  path      int  true "election ID"
// @Success      200         {object}  domain.Election
// @Failure      400         {object}  response.Err
// @Failure      403         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /elections/{electionID} [get]
// @Security BearerAuth
func (h *ElectionHandler) HandleGetElection(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	electionID, respErr := parseIDParam(ctx, "electionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	election, err := h.svc.GetElection(ctx.Request.Context(), user.ID, electionID)
	if err != nil {
		renderElectionErr(ctx, "v1.HandleGetElection", electionID, err)

		return
	}

	ctx.JSON(http.StatusOK, election)
}

// HandleUpdateElection godoc
// @Summary      Update an election
// @Description  Moves the election through its lifecycle and adjusts the
// @Description  schedule. Omitted fields keep their stored value.
// @Tags         elections
// @Accept       json
// @Produce      json
// @Param        electionID  path      int                           true "election ID"
// @Param        request     body      request.UpdateElectionRequest true "request body"
// @Success      200         {object}  domain.Election
// @Failure      400         {object}  response.Err
// @Failure      403         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /elections/{electionID} [patch]
// @Security BearerAuth
func (h *ElectionHandler) HandleUpdateElection(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	electionID, respErr := parseIDParam(ctx, "electionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.UpdateElectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	election, err := h.svc.UpdateElection(ctx.Request.Context(), user.ID, electionID, service.ElectionUpdateInput{
		Status:    req.Status,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		renderElectionErr(ctx, "v1.HandleUpdateElection", electionID, err)

		return
	}

	ctx.JSON(http.StatusOK, election)
}

// HandleArchiveElection godoc
// @Summary      Archive an election
// @Description  Sets the status to archived regardless of the current state.
// @Description  Votes stay queryable. Archiving twice succeeds.
// @Tags         elections
// @Produce      json
// @Param        electionID  path      int  true "election ID"
// @Success      200         {object}  domain.Election
// @Failure      400         {object}  response.Err
// @Failure      403         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /elections/{electionID} [delete]
// @Security BearerAuth
func (h *ElectionHandler) HandleArchiveElection(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	electionID, respErr := parseIDParam(ctx, "electionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	election, err := h.svc.ArchiveElection(ctx.Request.Context(), user.ID, electionID)
	if err != nil {
		renderElectionErr(ctx, "v1.HandleArchiveElection", electionID, err)

		return
	}

	ctx.JSON(http.StatusOK, election)
}

// HandleCastVote godoc
// @Summary      Cast a vote
// @Description  Records one ballot. A voter may vote once per election; a
// @Description  second ballot fails with 409.
// @Tags         elections
// @Accept       json
// @Produce      json
// @Param        electionID  path      int                     true "election ID"
// @Param        request     body      request.CastVoteRequest true "request body"
// @Success      201         {object}  domain.ElectionVote
// @Failure      400         {object}  response.Err
// @Failure      403         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      409         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /elections/{electionID}/votes [post]
// @Security BearerAuth
func (h *ElectionHandler) HandleCastVote(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	electionID, respErr := parseIDParam(ctx, "electionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.CastVoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	vote, err := h.svc.CastVote(ctx.Request.Context(), user.ID, domain.ElectionVote{
		ElectionID:          electionID,
		CandidateDelegateID: req.CandidateDelegateID,
		VoterDelegateID:     req.VoterDelegateID,
		VoteRank:            req.VoteRank,
	})
	if err != nil {
		if errors.Is(err, service.ErrDuplicateVote) {
			response.RenderErr(ctx, response.ErrConflict(err))

			return
		}
		if errors.Is(err, service.ErrMissingVoteData) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		renderElectionErr(ctx, "v1.HandleCastVote", electionID, err)

		return
	}

	ctx.JSON(http.StatusCreated, vote)
}

// HandleGetResults godoc
// @Summary      Tally an election
// @Description  Returns per-candidate vote counts in descending order.
// @Description  Candidates without votes are omitted.
// @Tags         elections
// @Produce      json
// @Param        electionID  path      int  true "election ID"
// @Success      200         {array}   domain.CandidateTally
// @Failure      400         {object}  response.Err
// @Failure      403         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /elections/{electionID}/results [get]
// @Security BearerAuth
func (h *ElectionHandler) HandleGetResults(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	electionID, respErr := parseIDParam(ctx, "electionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	tallies, err := h.svc.TallyResults(ctx.Request.Context(), user.ID, electionID)
	if err != nil {
		renderElectionErr(ctx, "v1.HandleGetResults", electionID, err)

		return
	}

	ctx.JSON(http.StatusOK, tallies)
}

func renderElectionErr(ctx *gin.Context, op string, id uint, err error) {
	switch {
	case errors.Is(err, service.ErrElectionNotFound):
		response.RenderErr(ctx, response.ErrNotFound("election", "ID", id))
	case errors.Is(err, service.ErrProgramYearNotFound):
		response.RenderErr(ctx, response.ErrNotFound("program year", "ID", id))
	case errors.Is(err, service.ErrNotProgramAdmin), errors.Is(err, service.ErrNotProgramMember):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%v -> %w", op, err)))
	}
}
