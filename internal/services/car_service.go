package services

import (
	"carhub_backend/internal/appErrors"
	"carhub_backend/internal/models"
	"carhub_backend/internal/repositories"
	"carhub_backend/internal/services/dto"
)

type CarService interface {
	ListByCategory(category string, page, limit int) (*dto.CarListResponse, error)
	Create(req *dto.CarRequest) error
	Update(id int, req *dto.CarRequest) error
	DeleteByID(id int) error
}

type CarServiceImpl struct {
	carRepo repositories.CarRepository
}

func NewCarService(carRepo repositories.CarRepository) CarService {
	return &CarServiceImpl{carRepo: carRepo}
}

// ListByCategory - страница объявлений с точным совпадением категории.
// Порядок - порядок хранения: самые новые записи первыми.
func (s *CarServiceImpl) ListByCategory(category string, page, limit int) (*dto.CarListResponse, error) {
	if page < 0 {
		page = 0
	}
	if limit <= 0 {
		limit = 10
	}

	cars, err := s.carRepo.FindAll()
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	filtered := make([]models.Car, 0)
	for _, c := range cars {
		if c.Category == category {
			filtered = append(filtered, c)
		}
	}

	total := len(filtered)
	totalPages := (total + limit - 1) / limit

	start := page * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &dto.CarListResponse{
		Data:       filtered[start:end],
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

// Create - новая запись всегда получает id 1, существующие id
// сдвигаются на единицу; клиенты полагаются на этот порядок
func (s *CarServiceImpl) Create(req *dto.CarRequest) error {
	car := &models.Car{
		Category:  req.Category,
		Color:     req.Color,
		Model:     req.Model,
		CarNumber: req.CarNumber,
	}

	if err := s.carRepo.Create(car); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

// Update - полная замена записи, id сохраняется
func (s *CarServiceImpl) Update(id int, req *dto.CarRequest) error {
	car := &models.Car{
		Category:  req.Category,
		Color:     req.Color,
		Model:     req.Model,
		CarNumber: req.CarNumber,
	}

	if err := s.carRepo.Replace(id, car); err != nil {
		if appErrors.Is(err, repositories.ErrCarNotFound) {
			return appErrors.ErrCarNotFound
		}
		return appErrors.InternalError(err)
	}
	return nil
}

// DeleteByID - удаление успешно и при отсутствующем id
func (s *CarServiceImpl) DeleteByID(id int) error {
	if err := s.carRepo.DeleteByID(id); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}
