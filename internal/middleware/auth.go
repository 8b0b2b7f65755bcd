package middleware

import (
	"strconv"
	"strings"

	"carhub_backend/internal/appErrors"
	"carhub_backend/internal/auth"
	"carhub_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware - middleware проверки JWT.
// Заголовок Authorization обязан существовать и начинаться с "Bearer ";
// токен без префикса отклоняется независимо от его валидности.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			appErrors.AbortWithError(c, appErrors.ErrUnauthorized)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			appErrors.AbortWithError(c, appErrors.ErrInvalidToken)
			return
		}

		// Сохраняем claims в контекст
		c.Set("userID", claims.UserID)
		c.Set("userEmail", claims.Email)

		ctx := logger.WithUserID(c.Request.Context(), strconv.Itoa(claims.UserID))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) int {
	userID, exists := c.Get("userID")
	if !exists {
		return 0
	}

	id, ok := userID.(int)
	if !ok {
		return 0
	}

	return id
}

// GetUserEmail извлекает email пользователя из контекста
func GetUserEmail(c *gin.Context) string {
	email, exists := c.Get("userEmail")
	if !exists {
		return ""
	}

	e, ok := email.(string)
	if !ok {
		return ""
	}

	return e
}
