package handlers

import (
	"carhub_backend/internal/appErrors"
	"carhub_backend/internal/logger"
	"carhub_backend/internal/validator"

	"github.com/gin-gonic/gin"
)

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{
		validator: v,
	}
}

// BindAndValidate_JSON привязывает JSON тело и валидирует его.
// Нарушение binding-правил дает 400 с картой ошибок по полям,
// нечитаемое тело - 400 без деталей. При ошибке ответ уже отправлен,
// хендлеру достаточно выйти.
func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil {
		if vErr, ok := h.validator.MapBindError(err, obj); ok {
			logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			appErrors.HandleError(c, appErrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Failed to bind JSON body", err, "path", c.Request.URL.Path)
			appErrors.HandleError(c, appErrors.ErrValidationFailed)
		}
		return false
	}
	return true
}

// BindAndValidate_Query привязывает query параметры и валидирует их
func (h *BaseHandler) BindAndValidate_Query(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindQuery(obj); err != nil {
		if vErr, ok := h.validator.MapBindError(err, obj); ok {
			logger.CtxWarn(ctx, "Validation failed (query)", "errors", vErr.Errors, "path", c.Request.URL.Path)
			appErrors.HandleError(c, appErrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Failed to bind query params", err, "path", c.Request.URL.Path)
			appErrors.HandleError(c, appErrors.ErrValidationFailed)
		}
		return false
	}
	return true
}

// HandleServiceError преобразует ошибку сервиса в HTTP ответ
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *appErrors.AppError
	if appErrors.As(err, &appErr) {
		if appErr.HTTPCode < 500 {
			logger.CtxWarn(ctx, "Service error",
				"code", appErr.Code,
				"path", c.Request.URL.Path,
			)
		}
		appErrors.HandleError(c, appErr)
	} else {
		appErrors.HandleError(c, appErrors.InternalError(err))
	}
}
