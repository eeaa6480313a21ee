package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/acquisitions/accounts-api/internal/api/middleware"
	"github.com/acquisitions/accounts-api/internal/core/domain"
	"github.com/acquisitions/accounts-api/internal/core/ports"
)

// UserHandler serves the /users routes. Route middleware has already
// established who the caller is and that they may touch the target
// resource; the one remaining check here is the body-dependent rule that
// only admins may change roles.
type UserHandler struct {
	userService ports.UserService
	audit       ports.AuditTrail
}

func NewUserHandler(userService ports.UserService, audit ports.AuditTrail) *UserHandler {
	return &UserHandler{userService: userService, audit: audit}
}

type updateUserRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=255"`
	Email *string `json:"email" validate:"omitempty,email"`
	Role  *string `json:"role" validate:"omitempty,oneof=user admin"`
}

type userResponse struct {
	Message string       `json:"message,omitempty"`
	User    *domain.User `json:"user"`
}

type userListResponse struct {
	Message string        `json:"message"`
	Users   []domain.User `json:"users"`
	Count   int           `json:"count"`
}

// List returns all accounts.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {object}  userListResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userListResponse{
		Message: "Successfully retrieved users",
		Users:   users,
		Count:   len(users),
	})
}

// GetByID returns a single account.
//
// @Summary      Get user by id
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userResponse{User: user})
}

// Update applies a partial update to an account.
//
// @Summary      Update user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	if req.Role != nil && identity.Role != domain.RoleAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "only admins may change roles")
	}

	updated, err := h.userService.Update(c.Request().Context(), id, domain.UserPatch{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		return err
	}

	h.audit.Enqueue(domain.AuditEvent{
		Action:  domain.AuditUserUpdated,
		ActorID: identity.ID,
		Subject: updated.Email,
		IP:      c.RealIP(),
	})

	return c.JSON(http.StatusOK, userResponse{User: updated})
}

// Delete removes an account.
//
// @Summary      Delete user
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	deleted, err := h.userService.Delete(c.Request().Context(), id)
	if err != nil {
		return err
	}

	if identity, ok := middleware.IdentityFromContext(c); ok {
		h.audit.Enqueue(domain.AuditEvent{
			Action:  domain.AuditUserDeleted,
			ActorID: identity.ID,
			Subject: deleted.Email,
			IP:      c.RealIP(),
		})
	}

	return c.JSON(http.StatusOK, userResponse{Message: "User deleted.", User: deleted})
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid resource id")
	}
	return id, nil
}
