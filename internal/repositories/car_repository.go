package repositories

import (
	"encoding/json"
	"errors"

	"carhub_backend/internal/models"
	"carhub_backend/internal/storage"
)

var ErrCarNotFound = errors.New("car not found")

type CarRepository interface {
	FindAll() ([]models.Car, error)

	// Create сдвигает id всех существующих записей на единицу,
	// назначает новой записи id 1 и вставляет её в начало таблицы.
	Create(car *models.Car) error

	// Replace заменяет запись с данным id целиком (id сохраняется).
	// Отсутствующий id - ErrCarNotFound.
	Replace(id int, car *models.Car) error

	// DeleteByID удаляет запись; отсутствующий id не является ошибкой
	DeleteByID(id int) error
}

type CarRepositoryImpl struct {
	store storage.Store
}

func NewCarRepository(store storage.Store) CarRepository {
	return &CarRepositoryImpl{store: store}
}

func marshalCars(cars []models.Car) ([]byte, error) {
	if cars == nil {
		cars = []models.Car{}
	}
	return json.Marshal(cars)
}

func (r *CarRepositoryImpl) FindAll() ([]models.Car, error) {
	data, err := r.store.Load(storage.TableCars)
	if err != nil {
		return nil, err
	}
	var cars []models.Car
	if err := json.Unmarshal(data, &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

func (r *CarRepositoryImpl) Create(car *models.Car) error {
	return r.store.Update(storage.TableCars, func(data []byte) ([]byte, error) {
		var cars []models.Car
		if err := json.Unmarshal(data, &cars); err != nil {
			return nil, err
		}

		for i := range cars {
			cars[i].ID++
		}

		car.ID = 1
		cars = append([]models.Car{*car}, cars...)
		return marshalCars(cars)
	})
}

func (r *CarRepositoryImpl) Replace(id int, car *models.Car) error {
	return r.store.Update(storage.TableCars, func(data []byte) ([]byte, error) {
		var cars []models.Car
		if err := json.Unmarshal(data, &cars); err != nil {
			return nil, err
		}

		for i := range cars {
			if cars[i].ID == id {
				car.ID = id
				cars[i] = *car
				return marshalCars(cars)
			}
		}
		return nil, ErrCarNotFound
	})
}

func (r *CarRepositoryImpl) DeleteByID(id int) error {
	return r.store.Update(storage.TableCars, func(data []byte) ([]byte, error) {
		var cars []models.Car
		if err := json.Unmarshal(data, &cars); err != nil {
			return nil, err
		}

		kept := cars[:0]
		for _, c := range cars {
			if c.ID == id {
				continue
			}
			kept = append(kept, c)
		}
		return marshalCars(kept)
	})
}
