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

type PartyService interface {
	CreateParty(ctx context.Context, userID uint, party domain.Party) (domain.Party, error)
	ListParties(ctx context.Context, userID, programID uint) ([]domain.Party, error)
	UpdateParty(ctx context.Context, userID, partyID uint, input service.PartyUpdateInput) (domain.Party, error)
	RetireParty(ctx context.Context, userID, partyID uint) (domain.Party, error)
	SetActiveParties(ctx context.Context, userID, programYearID uint, partyIDs []uint) ([]domain.ProgramYearParty, error)
}

type PartyHandler struct {
	svc  PartyService
	uSvc UserService
}

func NewPartyHandler(svc PartyService, uSvc UserService) *PartyHandler {
	return &PartyHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateParty godoc
// @Summary      Create a party
// @Tags         parties
// @Accept       json
// @Produce      json
// @Param        programID  path      int                        true "program ID"
// @Param        request    body      request.CreatePartyRequest true "request body"
// @Success      201        {object}  domain.Party
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /programs/{programID}/parties [post]
// @Security BearerAuth
func (h *PartyHandler) HandleCreateParty(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	programID, respErr := parseIDParam(ctx, "programID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.CreatePartyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	party, err := h.svc.CreateParty(ctx.Request.Context(), user.ID, domain.Party{
		ProgramID:    programID,
		Name:         req.Name,
		Abbreviation: req.Abbreviation,
		Color:        req.Color,
		Icon:         req.Icon,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		renderProgramErr(ctx, "v1.HandleCreateParty", programID, err)

		return
	}

	ctx.JSON(http.StatusCreated, party)
}

// HandleListParties godoc
// @Summary      List a program's parties
// @Tags         parties
// @Produce      json
// @Param        programID  path      int  true "program ID"
// @Success      200        {array}   domain.Party
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /programs/{programID}/parties [get]
// @Security BearerAuth
func (h *PartyHandler) HandleListParties(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	programID, respErr := parseIDParam(ctx, "programID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	parties, err := h.svc.ListParties(ctx.Request.Context(), user.ID, programID)
	if err != nil {
		renderProgramErr(ctx, "v1.HandleListParties", programID, err)

		return
	}

	ctx.JSON(http.StatusOK, parties)
}

// HandleUpdateParty godoc
// @Summary      Update a party
// @Tags         parties
// @Accept       json
// @Produce      json
// @Param        partyID  path      int                        true "party ID"
// @Param        request  body      request.UpdatePartyRequest true "request body"
// @Success      200      {object}  domain.Party
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /parties/{partyID} [patch]
// @Security BearerAuth
func (h *PartyHandler) HandleUpdateParty(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	partyID, respErr := parseIDParam(ctx, "partyID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.UpdatePartyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	party, err := h.svc.UpdateParty(ctx.Request.Context(), user.ID, partyID, service.PartyUpdateInput{
		Name:         req.Name,
		Abbreviation: req.Abbreviation,
		Color:        req.Color,
		Icon:         req.Icon,
		DisplayOrder: req.DisplayOrder,
		Status:       req.Status,
	})
	if err != nil {
		renderPartyErr(ctx, "v1.HandleUpdateParty", partyID, err)

		return
	}

	ctx.JSON(http.StatusOK, party)
}

// HandleRetireParty godoc
// @Summary      Retire a party
// @Tags         parties
// @Produce      json
// @Param        partyID  path      int  true "party ID"
// @Success      200      {object}  domain.Party
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /parties/{partyID} [delete]
// @Security BearerAuth
func (h *PartyHandler) HandleRetireParty(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	partyID, respErr := parseIDParam(ctx, "partyID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	party, err := h.svc.RetireParty(ctx.Request.Context(), user.ID, partyID)
	if err != nil {
		renderPartyErr(ctx, "v1.HandleRetireParty", partyID, err)

		return
	}

	ctx.JSON(http.StatusOK, party)
}

// HandleSetActiveParties godoc
// @Summary      Set a program year's active parties
// @Description  Replaces the active set the same way grouping activation
// @Description  does: create, reactivate, deactivate.
// @Tags         parties
// @Accept       json
// @Produce      json
// @Param        yearID   path      int                             true "program year ID"
// @Param        request  body      request.SetActivePartiesRequest true "request body"
// @Success      200      {array}   domain.ProgramYearParty
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /program-years/{yearID}/parties [put]
// @Security BearerAuth
func (h *PartyHandler) HandleSetActiveParties(ctx *gin.Context) {
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

	var req request.SetActivePartiesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	activations, err := h.svc.SetActiveParties(ctx.Request.Context(), user.ID, yearID, req.PartyIDs)
	if err != nil {
		if errors.Is(err, service.ErrPartyNotFound) {
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("party does not belong to this program")))

			return
		}

		renderProgramYearErr(ctx, "v1.HandleSetActiveParties", yearID, err)

		return
	}

	ctx.JSON(http.StatusOK, activations)
}

func renderPartyErr(ctx *gin.Context, op string, partyID uint, err error) {
	switch {
	case errors.Is(err, service.ErrPartyNotFound):
		response.RenderErr(ctx, response.ErrNotFound("party", "ID", partyID))
	case errors.Is(err, service.ErrNotProgramAdmin), errors.Is(err, service.ErrNotProgramMember):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%v -> %w", op, err)))
	}
}
