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

type GroupingService interface {
	CreateGroupingType(ctx context.Context, userID uint, gt domain.GroupingType) (domain.GroupingType, error)
	ListGroupingTypes(ctx context.Context, userID, programID uint) ([]domain.GroupingType, error)
	RetireGroupingType(ctx context.Context, userID, groupingTypeID uint) (domain.GroupingType, error)
	CreateGrouping(ctx context.Context, userID uint, grouping domain.Grouping) (domain.Grouping, error)
	ListGroupings(ctx context.Context, userID, programID uint) ([]domain.Grouping, error)
	RetireGrouping(ctx context.Context, userID, groupingID uint) (domain.Grouping, error)
	SetActiveGroupings(ctx context.Context, userID, programYearID uint, groupingIDs []uint) ([]domain.ProgramYearGrouping, error)
}

type GroupingHandler struct {
	svc  GroupingService
	uSvc UserService
}

func NewGroupingHandler(svc GroupingService, uSvc UserService) *GroupingHandler {
	return &GroupingHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateGroupingType godoc
// @Summary      Create a grouping type
// @Tags         groupings
// @Accept       json
// @Produce      json
// @Param        programID  path      int                               true "program ID"
// @Param        request    body      request.CreateGroupingTypeRequest true "request body"
// @Success      201        {object}  domain.GroupingType
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /programs/{programID}/grouping-types [post]
// @Security BearerAuth
func (h *GroupingHandler) HandleCreateGroupingType(ctx *gin.Context) {
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

	var req request.CreateGroupingTypeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	gt, err := h.svc.CreateGroupingType(ctx.Request.Context(), user.ID, domain.GroupingType{
		ProgramID:    programID,
		Name:         req.Name,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		renderProgramErr(ctx, "v1.HandleCreateGroupingType", programID, err)

		return
	}

	ctx.JSON(http.StatusCreated, gt)
}

// HandleListGroupingTypes godoc
// @Summary      List a program's grouping types
// @Tags         groupings
// @Produce      json
// @Param        programID  path      int  true "program ID"
// @Success      200        {array}   domain.GroupingType
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /programs/{programID}/grouping-types [get]
// @Security BearerAuth
func (h *GroupingHandler) HandleListGroupingTypes(ctx *gin.Context) {
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

	types, err := h.svc.ListGroupingTypes(ctx.Request.Context(), user.ID, programID)
	if err != nil {
		renderProgramErr(ctx, "v1.HandleListGroupingTypes", programID, err)

		return
	}

	ctx.JSON(http.StatusOK, types)
}

// HandleRetireGroupingType godoc
// @Summary      Retire a grouping type
// @Tags         groupings
// @Produce      json
// @Param        typeID  path      int  true "grouping type ID"
// @Success      200     {object}  domain.GroupingType
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /grouping-types/{typeID} [delete]
// @Security BearerAuth
func (h *GroupingHandler) HandleRetireGroupingType(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	typeID, respErr := parseIDParam(ctx, "typeID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	gt, err := h.svc.RetireGroupingType(ctx.Request.Context(), user.ID, typeID)
	if err != nil {
		renderGroupingErr(ctx, "v1.HandleRetireGroupingType", typeID, err)

		return
	}

	ctx.JSON(http.StatusOK, gt)
}

// HandleCreateGrouping godoc
// @Summary      Create a grouping
// @Tags         groupings
// @Accept       json
// @Produce      json
// @Param        programID  path      int                           true "program ID"
// @Param        request    body      request.CreateGroupingRequest true "request body"
// @Success      201        {object}  domain.Grouping
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /programs/{programID}/groupings [post]
// @Security BearerAuth
func (h *GroupingHandler) HandleCreateGrouping(ctx *gin.Context) {
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

	var req request.CreateGroupingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	grouping, err := h.svc.CreateGrouping(ctx.Request.Context(), user.ID, domain.Grouping{
		ProgramID:        programID,
		GroupingTypeID:   req.GroupingTypeID,
		ParentGroupingID: req.ParentGroupingID,
		Name:             req.Name,
	})
	if err != nil {
		renderGroupingErr(ctx, "v1.HandleCreateGrouping", programID, err)

		return
	}

	ctx.JSON(http.StatusCreated, grouping)
}

// HandleListGroupings godoc
// @Summary      List a program's groupings
// @Tags         groupings
// @Produce      json
// @Param        programID  path      int  true "program ID"
// @Success      200        {array}   domain.Grouping
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /programs/{programID}/groupings [get]
// @Security BearerAuth
func (h *GroupingHandler) HandleListGroupings(ctx *gin.Context) {
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

	groupings, err := h.svc.ListGroupings(ctx.Request.Context(), user.ID, programID)
	if err != nil {
		renderProgramErr(ctx, "v1.HandleListGroupings", programID, err)

		return
	}

	ctx.JSON(http.StatusOK, groupings)
}

// HandleRetireGrouping godoc
// @Summary      Retire a grouping
// @Tags         groupings
// @Produce      json
// @Param        groupingID  path      int  true "grouping ID"
// @Success      200         {object}  domain.Grouping
// @Failure      400         {object}  response.Err
// @Failure      403         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /groupings/{groupingID} [delete]
// @Security BearerAuth
func (h *GroupingHandler) HandleRetireGrouping(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	groupingID, respErr := parseIDParam(ctx, "groupingID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	grouping, err := h.svc.RetireGrouping(ctx.Request.Context(), user.ID, groupingID)
	if err != nil {
		renderGroupingErr(ctx, "v1.HandleRetireGrouping", groupingID, err)

		return
	}

	ctx.JSON(http.StatusOK, grouping)
}

// HandleSetActiveGroupings godoc
// @Summary      Set a program year's active groupings
// @Description  Replaces the active set: missing activations are created,
// @Description  inactive ones reactivated, and active rows not listed are
// @Description  deactivated.
// @Tags         groupings
// @Accept       json
// @Produce      json
// @Param        yearID   path      int                               true "program year ID"
// @Param        request  body      request.SetActiveGroupingsRequest true "request body"
// @Success      200      {array}   domain.ProgramYearGrouping
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /program-years/{yearID}/groupings [put]
// @Security BearerAuth
func (h *GroupingHandler) HandleSetActiveGroupings(ctx *gin.Context) {
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

	var req request.SetActiveGroupingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	activations, err := h.svc.SetActiveGroupings(ctx.Request.Context(), user.ID, yearID, req.GroupingIDs)
	if err != nil {
		if errors.Is(err, service.ErrGroupingNotFound) {
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("grouping does not belong to this program")))

			return
		}

		renderProgramYearErr(ctx, "v1.HandleSetActiveGroupings", yearID, err)

		return
	}

	ctx.JSON(http.StatusOK, activations)
}

func renderGroupingErr(ctx *gin.Context, op string, id uint, err error) {
	switch {
	case errors.Is(err, service.ErrGroupingTypeNotFound):
		response.RenderErr(ctx, response.ErrNotFound("grouping type", "ID", id))
	case errors.Is(err, service.ErrGroupingNotFound):
		response.RenderErr(ctx, response.ErrNotFound("grouping", "ID", id))
	case errors.Is(err, service.ErrNotProgramAdmin), errors.Is(err, service.ErrNotProgramMember):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%v -> %w", op, err)))
	}
}
