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

type ProgramService interface {
	CreateProgram(ctx context.Context, userID uint, program domain.Program) (domain.Program, error)
	GetProgram(ctx context.Context, userID, programID uint) (domain.Program, error)
	UpdateProgram(ctx context.Context, userID uint, program domain.Program) (domain.Program, error)
	RetireProgram(ctx context.Context, userID, programID uint) (domain.Program, error)
	CreateRole(ctx context.Context, userID uint, role domain.ProgramRole) (domain.ProgramRole, error)
	ListRoles(ctx context.Context, userID, programID uint) ([]domain.ProgramRole, error)
	AssignUser(ctx context.Context, callerID uint, assignment domain.ProgramAssignment) (domain.ProgramAssignment, error)
}

type ProgramHandler struct {
	svc  ProgramService
	uSvc UserService
}

func NewProgramHandler(svc ProgramService, uSvc UserService) *ProgramHandler {
	return &ProgramHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateProgram godoc
// @Summary      Create a program
// @Description  Creates a program and assigns the caller as its admin.
// @Tags         programs
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateProgramRequest true "request body"
// @Success      201      {object}  domain.Program
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /programs [post]
// @Security BearerAuth
func (h *ProgramHandler) HandleCreateProgram(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.CreateProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	program, err := h.svc.CreateProgram(ctx.Request.Context(), user.ID, domain.Program{
		Name:   req.Name,
		Year:   req.Year,
		Config: req.Config,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateProgram -> h.svc.CreateProgram -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, program)
}

// HandleGetProgram godoc
// @Summary      Get a program
// @Tags         programs
// @Produce      json
// @Param        programID  path      int  true "program ID"
// @Success      200        {object}  domain.Program
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /programs/{programID} [get]
// @Security BearerAuth
func (h *ProgramHandler) HandleGetProgram(ctx *gin.Context) {
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

	program, err := h.svc.GetProgram(ctx.Request.Context(), user.ID, programID)
	if err != nil {
		renderProgramErr(ctx, "v1.HandleGetProgram", programID, err)

		return
	}

	ctx.JSON(http.StatusOK, program)
}

// HandleUpdateProgram godoc
// @Summary      Update a program
// @Tags         programs
// @Accept       json
// @Produce      json
// @Param        programID  path      int                          true "program ID"
// @Param        request    body      request.UpdateProgramRequest true "request body"
// @Success      200        {object}  domain.Program
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /programs/{programID} [patch]
// @Security BearerAuth
func (h *ProgramHandler) HandleUpdateProgram(ctx *gin.Context) {
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

	var req request.UpdateProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	program, err := h.svc.UpdateProgram(ctx.Request.Context(), user.ID, domain.Program{
		ID:     programID,
		Name:   req.Name,
		Year:   req.Year,
		Config: req.Config,
		Status: req.Status,
	})
	if err != nil {
		renderProgramErr(ctx, "v1.HandleUpdateProgram", programID, err)

		return
	}

	ctx.JSON(http.StatusOK, program)
}

// HandleRetireProgram godoc
// @Summary      Retire a program
// @Tags         programs
// @Produce      json
// @Param        programID  path      int  true "program ID"
// @Success      200        {object}  domain.Program
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /programs/{programID} [delete]
// @Security BearerAuth
func (h *ProgramHandler) HandleRetireProgram(ctx *gin.Context) {
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

	program, err := h.svc.RetireProgram(ctx.Request.Context(), user.ID, programID)
	if err != nil {
		renderProgramErr(ctx, "v1.HandleRetireProgram", programID, err)

		return
	}

	ctx.JSON(http.StatusOK, program)
}

// HandleCreateRole godoc
// @Summary      Create a program role
// @Tags         programs
// @Accept       json
// @Produce      json
// @Param        programID  path      int                       true "program ID"
// @Param        request    body      request.CreateRoleRequest true "request body"
// @Success      201        {object}  domain.ProgramRole
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /programs/{programID}/roles [post]
// @Security BearerAuth
func (h *ProgramHandler) HandleCreateRole(ctx *gin.Context) {
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

	var req request.CreateRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	perms := make([]domain.Permission, len(req.Permissions))
	for i, p := range req.Permissions {
		perms[i] = domain.Permission(p)
	}

	role, err := h.svc.CreateRole(ctx.Request.Context(), user.ID, domain.ProgramRole{
		ProgramID:   programID,
		Name:        req.Name,
		Permissions: perms,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidPermission) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		renderProgramErr(ctx, "v1.HandleCreateRole", programID, err)

		return
	}

	ctx.JSON(http.StatusCreated, role)
}

// HandleListRoles godoc
// @Summary      List program roles
// @Tags         programs
// @Produce      json
// @Param        programID  path      int  true "program ID"
// @Success      200        {array}   domain.ProgramRole
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /programs/{programID}/roles [get]
// @Security BearerAuth
func (h *ProgramHandler) HandleListRoles(ctx *gin.Context) {
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

	roles, err := h.svc.ListRoles(ctx.Request.Context(), user.ID, programID)
	if err != nil {
		renderProgramErr(ctx, "v1.HandleListRoles", programID, err)

		return
	}

	ctx.JSON(http.StatusOK, roles)
}

// HandleAssignUser godoc
// @Summary      Assign a user to a program
// @Tags         programs
// @Accept       json
// @Produce      json
// @Param        programID  path      int                       true "program ID"
// @Param        request    body      request.AssignUserRequest true "request body"
// @Success      201        {object}  domain.ProgramAssignment
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      409        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /programs/{programID}/assignments [post]
// @Security BearerAuth
func (h *ProgramHandler) HandleAssignUser(ctx *gin.Context) {
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

	var req request.AssignUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	assignment, err := h.svc.AssignUser(ctx.Request.Context(), user.ID, domain.ProgramAssignment{
		UserID:        req.UserID,
		ProgramID:     programID,
		Role:          req.Role,
		ProgramRoleID: req.ProgramRoleID,
	})
	if err != nil {
		if errors.Is(err, service.ErrAssignmentExists) {
			response.RenderErr(ctx, response.ErrConflict(err))

			return
		}
		if errors.Is(err, service.ErrProgramRoleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("role", "ID", req.ProgramRoleID))

			return
		}

		renderProgramErr(ctx, "v1.HandleAssignUser", programID, err)

		return
	}

	ctx.JSON(http.StatusCreated, assignment)
}

// renderProgramErr maps the shared program service failures every handler
// in this group can hit.
func renderProgramErr(ctx *gin.Context, op string, programID uint, err error) {
	switch {
	case errors.Is(err, service.ErrProgramNotFound):
		response.RenderErr(ctx, response.ErrNotFound("program", "ID", programID))
	case errors.Is(err, service.ErrNotProgramAdmin), errors.Is(err, service.ErrNotProgramMember):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%v -> %w", op, err)))
	}
}
