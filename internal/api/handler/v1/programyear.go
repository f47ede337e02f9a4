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

type ProgramYearService interface {
	CreateProgramYear(ctx context.Context, userID uint, year domain.ProgramYear) (domain.ProgramYear, error)
	GetProgramYear(ctx context.Context, userID, programYearID uint) (domain.ProgramYear, error)
	ListProgramYears(ctx context.Context, userID, programID uint) ([]domain.ProgramYear, error)
	UpdateProgramYear(ctx context.Context, userID, programYearID uint, input service.ProgramYearUpdateInput) (domain.ProgramYear, error)
	ArchiveProgramYear(ctx context.Context, userID, programYearID uint) (domain.ProgramYear, error)
}

type ProgramYearHandler struct {
	svc  ProgramYearService
	uSvc UserService
}

func NewProgramYearHandler(svc ProgramYearService, uSvc UserService) *ProgramYearHandler {
	return &ProgramYearHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateProgramYear godoc
// @Summary      Create a program year
// @Tags         program-years
// @Accept       json
// @Produce      json
// @Param        programID  path      int                              true "program ID"
// @Param        request    body      request.CreateProgramYearRequest true "request body"
// @Success      201        {object}  domain.ProgramYear
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /programs/{programID}/years [post]
// @Security BearerAuth
func (h *ProgramYearHandler) HandleCreateProgramYear(ctx *gin.Context) {
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

	var req request.CreateProgramYearRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	year, err := h.svc.CreateProgramYear(ctx.Request.Context(), user.ID, domain.ProgramYear{
		ProgramID: programID,
		Year:      req.Year,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Notes:     req.Notes,
	})
	if err != nil {
		renderProgramErr(ctx, "v1.HandleCreateProgramYear", programID, err)

		return
	}

	ctx.JSON(http.StatusCreated, year)
}

// HandleListProgramYears godoc
// @Summary      List a program's years
// @Tags         program-years
// @Produce      json
// @Param        programID  path      int  true "program ID"
// @Success      200        {array}   domain.ProgramYear
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /programs/{programID}/years [get]
// @Security BearerAuth
func (h *ProgramYearHandler) HandleListProgramYears(ctx *gin.Context) {
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

	years, err := h.svc.ListProgramYears(ctx.Request.Context(), user.ID, programID)
	if err != nil {
		renderProgramErr(ctx, "v1.HandleListProgramYears", programID, err)

		return
	}

	ctx.JSON(http.StatusOK, years)
}

// HandleGetProgramYear godoc
// @Summary      Get a program year
// @Tags         program-years
// @Produce      json
// @Param        yearID  path      int  true "program year ID"
// @Success      200     {object}  domain.ProgramYear
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /program-years/{yearID} [get]
// @Security BearerAuth
func (h *ProgramYearHandler) HandleGetProgramYear(ctx *gin.Context) {
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

	year, err := h.svc.GetProgramYear(ctx.Request.Context(), user.ID, yearID)
	if err != nil {
		renderProgramYearErr(ctx, "v1.HandleGetProgramYear", yearID, err)

		return
	}

	ctx.JSON(http.StatusOK, year)
}

// HandleUpdateProgramYear godoc
// @Summary      Update a program year
// @Tags         program-years
// @Accept       json
// @Produce      json
// @Param        yearID   path      int                              true "program year ID"
// @Param        request  body      request.UpdateProgramYearRequest true "request body"
// @Success      200      {object}  domain.ProgramYear
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /program-years/{yearID} [patch]
// @Security BearerAuth
func (h *ProgramYearHandler) HandleUpdateProgramYear(ctx *gin.Context) {
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

	var req request.UpdateProgramYearRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	year, err := h.svc.UpdateProgramYear(ctx.Request.Context(), user.ID, yearID, service.ProgramYearUpdateInput{
		Year:      req.Year,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    req.Status,
		Notes:     req.Notes,
	})
	if err != nil {
		renderProgramYearErr(ctx, "v1.HandleUpdateProgramYear", yearID, err)

		return
	}

	ctx.JSON(http.StatusOK, year)
}

// HandleArchiveProgramYear godoc
// @Summary      Archive a program year
// @Tags         program-years
// @Produce      json
// @Param        yearID  path      int  true "program year ID"
// @Success      200     {object}  domain.ProgramYear
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /program-years/{yearID} [delete]
// @Security BearerAuth
func (h *ProgramYearHandler) HandleArchiveProgramYear(ctx *gin.Context) {
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

	year, err := h.svc.ArchiveProgramYear(ctx.Request.Context(), user.ID, yearID)
	if err != nil {
		renderProgramYearErr(ctx, "v1.HandleArchiveProgramYear", yearID, err)

		return
	}

	ctx.JSON(http.StatusOK, year)
}

func renderProgramYearErr(ctx *gin.Context, op string, yearID uint, err error) {
	switch {
	case errors.Is(err, service.ErrProgramYearNotFound):
		response.RenderErr(ctx, response.ErrNotFound("program year", "ID", yearID))
	case errors.Is(err, service.ErrNotProgramAdmin), errors.Is(err, service.ErrNotProgramMember):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%v -> %w", op, err)))
	}
}
