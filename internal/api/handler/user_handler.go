package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/renovatepro/renovate-api/internal/core/domain"
	"github.com/renovatepro/renovate-api/internal/core/ports"
)

// UserHandler exposes account administration.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" validate:"omitempty,email"`
	Role  *string `json:"role"  validate:"omitempty,oneof=user designer worker admin"`
}

type listUsersQuery struct {
	Role   string `query:"role"   json:"role"   validate:"omitempty,oneof=user designer worker admin"`
	Search string `query:"search" json:"search"`
	PageQuery
}

type byRoleQuery struct {
	Role string `query:"role" json:"role" validate:"required,oneof=user designer worker admin"`
}

type usersResponse struct {
	Data []*domain.User `json:"data"`
}

// List handles GET /v1/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Param        role    query     string  false  "Filter by role"
// @Param        search  query     string  false  "Match on name or email"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  listResponse[domain.User]
// @Failure      403     {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	var q listUsersQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	result, err := h.service.ListUsers(c.Request().Context(), session, ports.ListUsersFilter{
		Role:        q.Role,
		Search:      q.Search,
		PageRequest: q.toPageRequest(),
	})
	recordAuthz("user.list", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result, identity[domain.User]))
}

// ByRole handles GET /v1/users/by-role?role=designer, used to fill the
// designer and worker pickers.
//
// @Summary      List users with a role
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Param        role  query     string  true  "Role"
// @Success      200   {object}  usersResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/users/by-role [get]
func (h *UserHandler) ByRole(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	var q byRoleQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	users, err := h.service.ListByRole(c.Request().Context(), session, q.Role)
	recordAuthz("user.by_role", err)
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return c.JSON(http.StatusOK, usersResponse{Data: users})
}

// Get handles GET /v1/users/:id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  domain.User
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	user, err := h.service.GetUser(c.Request().Context(), session, c.Param("id"))
	recordAuthz("user.read", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PUT /v1/users/:id.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string             true  "User ID"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.UpdateUser(c.Request().Context(), session, c.Param("id"), domain.UserChanges{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
	recordAuthz("user.update", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /v1/users/:id.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	err = h.service.DeleteUser(c.Request().Context(), session, c.Param("id"))
	recordAuthz("user.delete", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted"})
}
