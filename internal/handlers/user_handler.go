package handlers

import (
	"net/http"

	"carhub_backend/internal/services"
	"carhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewUserHandler(base *BaseHandler, authService services.AuthService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		authService: authService,
	}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.POST("/signup", h.Signup)
		users.POST("/verify", h.Verify)
		users.POST("/login", h.Login)
	}
}

// Signup - регистрация: запись создается сразу, код уходит на почту,
// ответ не ждет ни доставки письма, ни отложенной очистки
func (h *UserHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.Signup(&req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Verification code sent to your email",
	})
}

func (h *UserHandler) Verify(c *gin.Context) {
	var req dto.VerifyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.Verify(&req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Verification successful",
	})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.authService.Login(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
