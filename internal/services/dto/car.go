package dto

import "carhub_backend/internal/models"

// CarRequest - тело POST /cars/create и PUT /cars/:id
type CarRequest struct {
	Category  string `json:"category" binding:"required"`
	Color     string `json:"color" binding:"required"`
	Model     string `json:"model" binding:"required"`
	CarNumber string `json:"carNumber" binding:"required"`
}

// ListCarsQuery - query параметры GET /cars/:category
type ListCarsQuery struct {
	Page  int `form:"page,default=0" binding:"min=0"`
	Limit int `form:"limit,default=10" binding:"min=1,max=100"`
}

// CarListResponse - страница объявлений
type CarListResponse struct {
	Data       []models.Car `json:"data"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	TotalPages int          `json:"totalPages"`
}
