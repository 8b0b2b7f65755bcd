package repositories

import (
	"encoding/json"
	"errors"

	"carhub_backend/internal/models"
	"carhub_backend/internal/storage"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	FindByEmail(email string) (*models.User, error)
	FindAll() ([]models.User, error)

	// Create назначает пользователю id = количество записей + 1
	// и добавляет его в таблицу. Email сравнивается чувствительно
	// к регистру; дубликат - ErrUserAlreadyExists.
	Create(user *models.User) error

	// Mutate атомарно изменяет запись с данным email
	Mutate(email string, fn func(user *models.User) error) error

	// DeleteUnverified удаляет запись, если она существует и не
	// верифицирована. Возвращает true, если запись была удалена.
	DeleteUnverified(email string) (bool, error)

	// DeleteExpiredUnverified удаляет все неверифицированные записи,
	// у которых код истек на момент now (epoch ms)
	DeleteExpiredUnverified(now int64) (int, error)
}

type UserRepositoryImpl struct {
	store storage.Store
}

func NewUserRepository(store storage.Store) UserRepository {
	return &UserRepositoryImpl{store: store}
}

// marshalUsers сериализует таблицу; пустая таблица - всегда "[]", не "null"
func marshalUsers(users []models.User) ([]byte, error) {
	if users == nil {
		users = []models.User{}
	}
	return json.Marshal(users)
}

func (r *UserRepositoryImpl) load() ([]models.User, error) {
	data, err := r.store.Load(storage.TableUsers)
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	users, err := r.load()
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *UserRepositoryImpl) FindAll() ([]models.User, error) {
	return r.load()
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	return r.store.Update(storage.TableUsers, func(data []byte) ([]byte, error) {
		var users []models.User
		if err := json.Unmarshal(data, &users); err != nil {
			return nil, err
		}

		for i := range users {
			if users[i].Email == user.Email {
				return nil, ErrUserAlreadyExists
			}
		}

		user.ID = len(users) + 1
		users = append(users, *user)
		return marshalUsers(users)
	})
}

func (r *UserRepositoryImpl) Mutate(email string, fn func(user *models.User) error) error {
	return r.store.Update(storage.TableUsers, func(data []byte) ([]byte, error) {
		var users []models.User
		if err := json.Unmarshal(data, &users); err != nil {
			return nil, err
		}

		for i := range users {
			if users[i].Email == email {
				if err := fn(&users[i]); err != nil {
					return nil, err
				}
				return marshalUsers(users)
			}
		}
		return nil, ErrUserNotFound
	})
}

func (r *UserRepositoryImpl) DeleteUnverified(email string) (bool, error) {
	deleted := false

	err := r.store.Update(storage.TableUsers, func(data []byte) ([]byte, error) {
		var users []models.User
		if err := json.Unmarshal(data, &users); err != nil {
			return nil, err
		}

		kept := users[:0]
		for _, u := range users {
			if u.Email == email && !u.IsVerified {
				deleted = true
				continue
			}
			kept = append(kept, u)
		}
		return marshalUsers(kept)
	})

	return deleted, err
}

func (r *UserRepositoryImpl) DeleteExpiredUnverified(now int64) (int, error) {
	removed := 0

	err := r.store.Update(storage.TableUsers, func(data []byte) ([]byte, error) {
		var users []models.User
		if err := json.Unmarshal(data, &users); err != nil {
			return nil, err
		}

		kept := users[:0]
		for _, u := range users {
			if !u.IsVerified && u.CodeExpired(now) {
				removed++
				continue
			}
			kept = append(kept, u)
		}
		return marshalUsers(kept)
	})

	return removed, err
}
