package handlers

import (
	"net/http"
	"strconv"

	"carhub_backend/internal/appErrors"
	"carhub_backend/internal/middleware"
	"carhub_backend/internal/services"
	"carhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CarHandler struct {
	*BaseHandler
	carService services.CarService
}

func NewCarHandler(base *BaseHandler, carService services.CarService) *CarHandler {
	return &CarHandler{
		BaseHandler: base,
		carService:  carService,
	}
}

func (h *CarHandler) RegisterRoutes(r *gin.RouterGroup) {
	cars := r.Group("/cars")
	cars.Use(middleware.AuthMiddleware())
	{
		cars.GET("/:category", h.ListByCategory)
		cars.POST("/create", h.Create)
		cars.PUT("/:id", h.Update)
		cars.DELETE("/:id", h.Delete)
	}
}

func (h *CarHandler) ListByCategory(c *gin.Context) {
	category := c.Param("category")

	var query dto.ListCarsQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	response, err := h.carService.ListByCategory(category, query.Page, query.Limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *CarHandler) Create(c *gin.Context) {
	var req dto.CarRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.carService.Create(&req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "New car added successfully",
	})
}

func (h *CarHandler) Update(c *gin.Context) {
	id, ok := h.carID(c)
	if !ok {
		return
	}

	var req dto.CarRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.carService.Update(id, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Car updated successfully",
	})
}

func (h *CarHandler) Delete(c *gin.Context) {
	id, ok := h.carID(c)
	if !ok {
		return
	}

	if err := h.carService.DeleteByID(id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Car deleted successfully",
	})
}

// carID разбирает числовой :id из пути
func (h *CarHandler) carID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		appErrors.HandleError(c, appErrors.ErrValidationFailed.WithDetails(gin.H{"id": "Must be an integer"}))
		return 0, false
	}
	return id, true
}
