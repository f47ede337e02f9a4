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

type PositionService interface {
	CreatePosition(ctx context.Context, userID, programID uint, name, description string, displayOrder int, config domain.PositionConfigInput) (domain.Position, error)
	GetPosition(ctx context.Context, userID, positionID uint) (domain.Position, error)
	ListPositions(ctx context.Context, userID, programID uint) ([]domain.Position, error)
	UpdatePosition(ctx context.Context, userID, positionID uint, input service.PositionUpdateInput) (domain.Position, error)
	RetirePosition(ctx context.Context, userID, positionID uint) (domain.Position, error)
	ActivateForProgramYear(ctx context.Context, userID uint, activation domain.ProgramYearPosition) (domain.ProgramYearPosition, error)
}

type PositionHandler struct {
	svc  PositionService
	uSvc UserService
}

func NewPositionHandler(svc PositionService, uSvc UserService) *PositionHandler {
	return &PositionHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreatePosition godoc
// @Summary      Create a position
// @Description  Creates an office. Election-only fields are normalized away
// @Description  when the position is appointed.
// @Tags         positions
// @Accept       json
// @Produce      json
// @Param        programID  path      int                           true "program ID"
// @Param        request    body      request.CreatePositionRequest true "request body"
// @Success      201        {object}  domain.Position
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /programs/{programID}/positions [post]
// @Security BearerAuth
func (h *PositionHandler) HandleCreatePosition(ctx *gin.Context) {
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

	var req request.CreatePositionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	position, err := h.svc.CreatePosition(ctx.Request.Context(), user.ID, programID, req.Name, req.Description, req.DisplayOrder, req.ConfigInput())
	if err != nil {
		if errors.Is(err, service.ErrInvalidElectionMethod) || errors.Is(err, service.ErrMissingPositionName) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		renderProgramErr(ctx, "v1.HandleCreatePosition", programID, err)

		return
	}

	ctx.JSON(http.StatusCreated, position)
}

// HandleListPositions godoc
// @Summary      List a program's positions
// @Tags         positions
// @Produce      json
// @Param        programID  path      int  true "program ID"
// @Success      200        {array}   domain.Position
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /programs/{programID}/positions [get]
// @Security BearerAuth
func (h *PositionHandler) HandleListPositions(ctx *gin.Context) {
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

	positions, err := h.svc.ListPositions(ctx.Request.Context(), user.ID, programID)
	if err != nil {
		renderProgramErr(ctx, "v1.HandleListPositions", programID, err)

		return
	}

	ctx.JSON(http.StatusOK, positions)
}

// HandleGetPosition godoc
// @Summary      Get a position
// @Tags         positions
// @Produce      json
// @Param        positionID  path      int  true "position ID"
// @Success      200         {object}  domain.Position
// @Failure      400         {object}  response.Err
// @Failure      403         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /positions/{positionID} [get]
// @Security BearerAuth
func (h *PositionHandler) HandleGetPosition(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	positionID, respErr := parseIDParam(ctx, "positionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	position, err := h.svc.GetPosition(ctx.Request.Context(), user.ID, positionID)
	if err != nil {
		renderPositionErr(ctx, "v1.HandleGetPosition", positionID, err)

		return
	}

	ctx.JSON(http.StatusOK, position)
}

// HandleUpdatePosition godoc
// @Summary      Update a position
// @Description  Merges the payload onto the stored position and re-normalizes
// @Description  the election configuration. Sending election_method as null
// @Description  clears it; omitting it keeps the stored method.
// @Tags         positions
// @Accept       json
// @Produce      json
// @Param        positionID  path      int                           true "position ID"
// @Param        request     body      request.UpdatePositionRequest true "request body"
// @Success      200         {object}  domain.Position
// @Failure      400         {object}  response.Err
// @Failure      403         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /positions/{positionID} [patch]
// @Security BearerAuth
func (h *PositionHandler) HandleUpdatePosition(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	positionID, respErr := parseIDParam(ctx, "positionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.UpdatePositionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	position, err := h.svc.UpdatePosition(ctx.Request.Context(), user.ID, positionID, service.PositionUpdateInput{
		Name:         req.Name,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
		Status:       req.Status,
		Config:       req.ConfigInput(),
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidElectionMethod) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		renderPositionErr(ctx, "v1.HandleUpdatePosition", positionID, err)

		return
	}

	ctx.JSON(http.StatusOK, position)
}

// HandleRetirePosition godoc
// @Summary      Retire a position
// @Tags         positions
// @Produce      json
// @Param        positionID  path      int  true "position ID"
// @Success      200         {object}  domain.Position
// @Failure      400         {object}  response.Err
// @Failure      403         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /positions/{positionID} [delete]
// @Security BearerAuth
func (h *PositionHandler) HandleRetirePosition(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	positionID, respErr := parseIDParam(ctx, "positionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	position, err := h.svc.RetirePosition(ctx.Request.Context(), user.ID, positionID)
	if err != nil {
		renderPositionErr(ctx, "v1.HandleRetirePosition", positionID, err)

		return
	}

	ctx.JSON(http.StatusOK, position)
}

// HandleActivatePosition godoc
// @Summary      Activate a position for a program year
// @Tags         positions
// @Accept       json
// @Produce      json
// @Param        positionID  path      int                             true "position ID"
// @Param        request     body      request.ActivatePositionRequest true "request body"
// @Success      201         {object}  domain.ProgramYearPosition
// @Failure      400         {object}  response.Err
// @Failure      403         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /positions/{positionID}/activations [post]
// @Security BearerAuth
func (h *PositionHandler) HandleActivatePosition(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	positionID, respErr := parseIDParam(ctx, "positionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.ActivatePositionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	activation, err := h.svc.ActivateForProgramYear(ctx.Request.Context(), user.ID, domain.ProgramYearPosition{
		ProgramYearID:       req.ProgramYearID,
		PositionID:          positionID,
		IncumbentDelegateID: req.IncumbentDelegateID,
	})
	if err != nil {
		renderPositionErr(ctx, "v1.HandleActivatePosition", positionID, err)

		return
	}

	ctx.JSON(http.StatusCreated, activation)
}

func renderPositionErr(ctx *gin.Context, op string, positionID uint, err error) {
	switch {
	case errors.Is(err, service.ErrPositionNotFound):
		response.RenderErr(ctx, response.ErrNotFound("position", "ID", positionID))
	case errors.Is(err, service.ErrNotProgramAdmin), errors.Is(err, service.ErrNotProgramMember):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%v -> %w", op, err)))
	}
}
