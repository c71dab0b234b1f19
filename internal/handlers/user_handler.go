package handlers

import (
	"net/http"

	"hiremind_backend/internal/auth"
	"hiremind_backend/internal/middleware"
	"hiremind_backend/internal/services"
	"hiremind_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	users.Use(h.Auth())
	{
		users.PUT("/me", h.UpdateMe)
		users.DELETE("/me", h.DeleteMe)
	}

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(h.Auth(), middleware.RequirePermission(auth.PermUsersRead))
	{
		admin.GET("/users", h.ListUsers)
	}
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteMe удаляет аккаунт вместе со всеми вакансиями и кандидатами
func (h *UserHandler) DeleteMe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteAccount(c.Request.Context(), h.GetDB(c), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	limit, offset := ParsePagination(c)

	users, err := h.userService.ListUsers(c.Request.Context(), h.GetDB(c), limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}
