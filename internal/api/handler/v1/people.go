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

type PeopleService interface {
	CreateDelegate(ctx context.Context, userID uint, delegate domain.Delegate) (domain.Delegate, error)
	ListDelegates(ctx context.Context, userID, programYearID uint) ([]domain.Delegate, error)
	UpdateDelegate(ctx context.Context, userID uint, delegate domain.Delegate) (domain.Delegate, error)
	CreateStaff(ctx context.Context, userID uint, staff domain.Staff) (domain.Staff, error)
	ListStaff(ctx context.Context, userID, programYearID uint) ([]domain.Staff, error)
	UpdateStaff(ctx context.Context, userID uint, staff domain.Staff) (domain.Staff, error)
	CreateParent(ctx context.Context, userID uint, parent domain.Parent) (domain.Parent, error)
	ListParents(ctx context.Context, userID, programYearID uint) ([]domain.Parent, error)
	UpdateParent(ctx context.Context, userID uint, parent domain.Parent) (domain.Parent, error)
	LinkDelegateParent(ctx context.Context, userID, delegateID, parentID uint) (domain.DelegateParentLink, error)
	ListLinks(ctx context.Context, userID, programYearID uint) ([]domain.DelegateParentLink, error)
	ReviewLink(ctx context.Context, userID, linkID uint, status string) (domain.DelegateParentLink, error)
}

type PeopleHandler struct {
	svc  PeopleService
	uSvc UserService
}

func NewPeopleHandler(svc PeopleService, uSvc UserService) *PeopleHandler {
	return &PeopleHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateDelegate godoc
// @Summary      Add a delegate to a program year
// @Tags         people
// @Accept       json
// @Produce      json
// @Param        yearID   path      int                           true "program year ID"
// @Param        request  body      request.CreateDelegateRequest true "request body"
// @Success      201      {object}  domain.Delegate
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /program-years/{yearID}/delegates [post]
// @Security BearerAuth
func (h *PeopleHandler) HandleCreateDelegate(ctx *gin.Context) {
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

	var req request.CreateDelegateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	delegate, err := h.svc.CreateDelegate(ctx.Request.Context(), user.ID, domain.Delegate{
		ProgramYearID: yearID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		GroupingID:    req.GroupingID,
		PartyID:       req.PartyID,
	})
	if err != nil {
		renderProgramYearErr(ctx, "v1.HandleCreateDelegate", yearID, err)

		return
	}

	ctx.JSON(http.StatusCreated, delegate)
}

// HandleListDelegates godoc
// @Summary      List a program year's delegates
// @Tags         people
// @Produce      json
// @Param        yearID  path      int  true "program year ID"
// @Success      200     {array}   domain.Delegate
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /program-years/{yearID}/delegates [get]
// @Security BearerAuth
func (h *PeopleHandler) HandleListDelegates(ctx *gin.Context) {
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

	delegates, err := h.svc.ListDelegates(ctx.Request.Context(), user.ID, yearID)
	if err != nil {
		renderProgramYearErr(ctx, "v1.HandleListDelegates", yearID, err)

		return
	}

	ctx.JSON(http.StatusOK, delegates)
}

// HandleUpdateDelegate godoc
// @Summary      Update a delegate
// @Description  Withdrawal is a status update; delegates are never deleted.
// @Tags         people
// @Accept       json
// @Produce      json
// @Param        delegateID  path      int                           true "delegate ID"
// @Param        request     body      request.UpdateDelegateRequest true "request body"
// @Success      200         {object}  domain.Delegate
// @Failure      400         {object}  response.Err
// @Failure      403         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /delegates/{delegateID} [patch]
// @Security BearerAuth
func (h *PeopleHandler) HandleUpdateDelegate(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	delegateID, respErr := parseIDParam(ctx, "delegateID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.UpdateDelegateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	delegate, err := h.svc.UpdateDelegate(ctx.Request.Context(), user.ID, domain.Delegate{
		ID:         delegateID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		GroupingID: req.GroupingID,
		PartyID:    req.PartyID,
		Status:     req.Status,
	})
	if err != nil {
		renderPeopleErr(ctx, "v1.HandleUpdateDelegate", delegateID, err)

		return
	}

	ctx.JSON(http.StatusOK, delegate)
}

// HandleCreateStaff godoc
// @Summary      Add a staff member to a program year
// @Tags         people
// @Accept       json
// @Produce      json
// @Param        yearID   path      int                        true "program year ID"
// @Param        request  body      request.CreateStaffRequest true "request body"
// @Success      201      {object}  domain.Staff
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /program-years/{yearID}/staff [post]
// @Security BearerAuth
func (h *PeopleHandler) HandleCreateStaff(ctx *gin.Context) {
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

	var req request.CreateStaffRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	staff, err := h.svc.CreateStaff(ctx.Request.Context(), user.ID, domain.Staff{
		ProgramYearID: yearID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Role:          req.Role,
	})
	if err != nil {
		renderProgramYearErr(ctx, "v1.HandleCreateStaff", yearID, err)

		return
	}

	ctx.JSON(http.StatusCreated, staff)
}

// HandleListStaff godoc
// @Summary      List a program year's staff
// @Tags         people
// @Produce      json
// @Param        yearID  path      int  true "program year ID"
// @Success      200     {array}   domain.Staff
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /program-years/{yearID}/staff [get]
// @Security BearerAuth
func (h *PeopleHandler) HandleListStaff(ctx *gin.Context) {
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

	staff, err := h.svc.ListStaff(ctx.Request.Context(), user.ID, yearID)
	if err != nil {
		renderProgramYearErr(ctx, "v1.HandleListStaff", yearID, err)

		return
	}

	ctx.JSON(http.StatusOK, staff)
}

// HandleUpdateStaff godoc
// @Summary      Update a staff member
// @Tags         people
// @Accept       json
// @Produce      json
// @Param        staffID  path      int                        true "staff ID"
// @Param        request  body      request.UpdateStaffRequest true "request body"
// @Success      200      {object}  domain.Staff
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /staff/{staffID} [patch]
// @Security BearerAuth
func (h *PeopleHandler) HandleUpdateStaff(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	staffID, respErr := parseIDParam(ctx, "staffID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.UpdateStaffRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	staff, err := h.svc.UpdateStaff(ctx.Request.Context(), user.ID, domain.Staff{
		ID:        staffID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,
		Status:    req.Status,
	})
	if err != nil {
		renderPeopleErr(ctx, "v1.HandleUpdateStaff", staffID, err)

		return
	}

	ctx.JSON(http.StatusOK, staff)
}

// HandleCreateParent godoc
// @Summary      Add a parent to a program year
// @Tags         people
// @Accept       json
// @Produce      json
// @Param        yearID   path      int                         true "program year ID"
// @Param        request  body      request.CreateParentRequest true "request body"
// @Success      201      {object}  domain.Parent
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /program-years/{yearID}/parents [post]
// @Security BearerAuth
func (h *PeopleHandler) HandleCreateParent(ctx *gin.Context) {
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

	var req request.CreateParentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	parent, err := h.svc.CreateParent(ctx.Request.Context(), user.ID, domain.Parent{
		ProgramYearID: yearID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
	})
	if err != nil {
		renderProgramYearErr(ctx, "v1.HandleCreateParent", yearID, err)

		return
	}

	ctx.JSON(http.StatusCreated, parent)
}

// HandleListParents godoc
// @Summary      List a program year's parents
// @Tags         people
// @Produce      json
// @Param        yearID  path      int  true "program year ID"
// @Success      200     {array}   domain.Parent
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /program-years/{yearID}/parents [get]
// @Security BearerAuth
func (h *PeopleHandler) HandleListParents(ctx *gin.Context) {
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

	parents, err := h.svc.ListParents(ctx.Request.Context(), user.ID, yearID)
	if err != nil {
		renderProgramYearErr(ctx, "v1.HandleListParents", yearID, err)

		return
	}

	ctx.JSON(http.StatusOK, parents)
}

// HandleUpdateParent godoc
// @Summary      Update a parent
// @Tags         people
// @Accept       json
// @Produce      json
// @Param        parentID  path      int                         true "parent ID"
// @Param        request   body      request.UpdateParentRequest true "request body"
// @Success      200       {object}  domain.Parent
// @Failure      400       {object}  response.Err
// @Failure      403       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /parents/{parentID} [patch]
// @Security BearerAuth
func (h *PeopleHandler) HandleUpdateParent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	parentID, respErr := parseIDParam(ctx, "parentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.UpdateParentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	parent, err := h.svc.UpdateParent(ctx.Request.Context(), user.ID, domain.Parent{
		ID:        parentID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Status:    req.Status,
	})
	if err != nil {
		renderPeopleErr(ctx, "v1.HandleUpdateParent", parentID, err)

		return
	}

	ctx.JSON(http.StatusOK, parent)
}

// HandleLinkDelegateParent godoc
// @Summary      Link a delegate and a parent
// @Description  Creates a pending link; both must belong to the same program
// @Description  year.
// @Tags         people
// @Accept       json
// @Produce      json
// @Param        request  body      request.LinkDelegateParentRequest true "request body"
// @Success      201      {object}  domain.DelegateParentLink
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /delegate-parent-links [post]
// @Security BearerAuth
func (h *PeopleHandler) HandleLinkDelegateParent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.LinkDelegateParentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	link, err := h.svc.LinkDelegateParent(ctx.Request.Context(), user.ID, req.DelegateID, req.ParentID)
	if err != nil {
		renderPeopleErr(ctx, "v1.HandleLinkDelegateParent", req.DelegateID, err)

		return
	}

	ctx.JSON(http.StatusCreated, link)
}

// HandleListLinks godoc
// @Summary      List a program year's delegate/parent links
// @Tags         people
// @Produce      json
// @Param        yearID  path      int  true "program year ID"
// @Success      200     {array}   domain.DelegateParentLink
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /program-years/{yearID}/delegate-parent-links [get]
// @Security BearerAuth
func (h *PeopleHandler) HandleListLinks(ctx *gin.Context) {
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

	links, err := h.svc.ListLinks(ctx.Request.Context(), user.ID, yearID)
	if err != nil {
		renderProgramYearErr(ctx, "v1.HandleListLinks", yearID, err)

		return
	}

	ctx.JSON(http.StatusOK, links)
}

// HandleReviewLink godoc
// @Summary      Approve or reject a delegate/parent link
// @Tags         people
// @Accept       json
// @Produce      json
// @Param        linkID   path      int                       true "link ID"
// @Param        request  body      request.ReviewLinkRequest true "request body"
// @Success      200      {object}  domain.DelegateParentLink
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /delegate-parent-links/{linkID} [patch]
// @Security BearerAuth
func (h *PeopleHandler) HandleReviewLink(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	linkID, respErr := parseIDParam(ctx, "linkID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.ReviewLinkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	link, err := h.svc.ReviewLink(ctx.Request.Context(), user.ID, linkID, req.Status)
	if err != nil {
		renderPeopleErr(ctx, "v1.HandleReviewLink", linkID, err)

		return
	}

	ctx.JSON(http.StatusOK, link)
}

func renderPeopleErr(ctx *gin.Context, op string, id uint, err error) {
	switch {
	case errors.Is(err, service.ErrDelegateNotFound):
		response.RenderErr(ctx, response.ErrNotFound("delegate", "ID", id))
	case errors.Is(err, service.ErrStaffNotFound):
		response.RenderErr(ctx, response.ErrNotFound("staff", "ID", id))
	case errors.Is(err, service.ErrParentNotFound):
		response.RenderErr(ctx, response.ErrNotFound("parent", "ID", id))
	case errors.Is(err, service.ErrLinkNotFound):
		response.RenderErr(ctx, response.ErrNotFound("link", "ID", id))
	case errors.Is(err, service.ErrProgramYearNotFound):
		response.RenderErr(ctx, response.ErrNotFound("program year", "ID", id))
	case errors.Is(err, service.ErrNotProgramAdmin), errors.Is(err, service.ErrNotProgramMember):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%v -> %w", op, err)))
	}
}
