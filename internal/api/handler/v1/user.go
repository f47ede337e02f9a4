package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/civiclab/program-api/internal/api/handler/v1/response"
	"github.com/civiclab/program-api/internal/domain"
	"github.com/civiclab/program-api/internal/service"
)

type AuthorizationService interface {
	GetUserPrograms(ctx context.Context, email string) (domain.UserPrograms, error)
	GetUserPermissions(ctx context.Context, userID, programID uint) (domain.PermissionSet, error)
}

type UserHandler struct {
	svc   UserService
	authz AuthorizationService
}

func NewUserHandler(svc UserService, authz AuthorizationService) *UserHandler {
	return &UserHandler{
		svc:   svc,
		authz: authz,
	}
}

// HandleGetUser godoc
// @Summary      Get a user by ID
// @Tags         users
// @Produce      json
// @Param        userID   path      int  true "user ID"
// @Success      200      {object}  domain.User
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /users/{userID} [get]
// @Security BearerAuth
func (h *UserHandler) HandleGetUser(ctx *gin.Context) {
	userID, respErr := parseIDParam(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	user, err := h.svc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", userID))

			return
		}

		err = fmt.Errorf("v1.HandleGetUser -> h.svc.GetUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleGetMyPrograms godoc
// @Summary      List the caller's programs
// @Description  Lists every program the caller is assigned to. On development
// @Description  installs, DEVELOPMENT program members see all programs.
// @Tags         users
// @Produce      json
// @Success      200  {object}  domain.UserPrograms
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/me/programs [get]
// @Security BearerAuth
func (h *UserHandler) HandleGetMyPrograms(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	programs, err := h.authz.GetUserPrograms(ctx.Request.Context(), user.Email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "email", user.Email))

			return
		}

		err = fmt.Errorf("v1.HandleGetMyPrograms -> h.authz.GetUserPrograms -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, programs)
}

// HandleGetMyPermissions godoc
// @Summary      List the caller's permissions for a program
// @Tags         users
// @Produce      json
// @Param        programID   path      int  true "program ID"
// @Success      200  {object}  map[string][]string
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /programs/{programID}/permissions [get]
// @Security BearerAuth
func (h *UserHandler) HandleGetMyPermissions(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	programID, respErr := parseIDParam(ctx, "programID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	perms, err := h.authz.GetUserPermissions(ctx.Request.Context(), user.ID, programID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetMyPermissions -> h.authz.GetUserPermissions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"permissions": perms.Values()})
}
