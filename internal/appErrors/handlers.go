package appErrors

import (
	"carhub_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// HandleError - обработка ошибок для Gin контекста
func HandleError(c *gin.Context, err *AppError) {
	if err.HTTPCode >= 500 {
		// Детали внутренней ошибки остаются в логах, клиенту не уходят
		logger.CtxWithError(c.Request.Context(), "Server error", err, "path", c.Request.URL.Path)
	}

	c.JSON(err.HTTPCode, ErrorResponse{Error: err})
}

// AbortWithError - обработка ошибки с прерыванием цепочки middleware
func AbortWithError(c *gin.Context, err *AppError) {
	HandleError(c, err)
	c.Abort()
}

// FromError преобразует произвольную ошибку в AppError
func FromError(err error) *AppError {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr
	}
	return InternalError(err)
}
