package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"carhub_backend/internal/appErrors"
	"carhub_backend/internal/auth"
	"carhub_backend/internal/config"
	"carhub_backend/internal/email"
	"carhub_backend/internal/logger"
	"carhub_backend/internal/models"
	"carhub_backend/internal/repositories"
	"carhub_backend/internal/services/dto"
)

// VerificationScheduler планирует отложенное удаление неверифицированных
// записей. Задача ключуется по email и отменяется при успешной верификации.
type VerificationScheduler interface {
	Schedule(email string)
	Cancel(email string)
}

type AuthService interface {
	Signup(req *dto.SignupRequest) error
	Verify(req *dto.VerifyRequest) error
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	emailProvider email.Provider
	scheduler     VerificationScheduler
	cfg           *config.Config
}

func NewAuthService(
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
	scheduler VerificationScheduler,
	cfg *config.Config,
) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		emailProvider: emailProvider,
		scheduler:     scheduler,
		cfg:           cfg,
	}
}

// Signup - регистрация нового пользователя.
// Запись создается сразу, код уходит по почте в фоне, через TTL
// неверифицированная запись удаляется отложенной задачей.
func (s *AuthServiceImpl) Signup(req *dto.SignupRequest) error {
	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return appErrors.InternalError(err)
	}

	code, err := generateVerificationCode()
	if err != nil {
		return appErrors.InternalError(err)
	}

	ttl := time.Duration(s.cfg.Verification.CodeTTLSeconds) * time.Second

	user := &models.User{
		Name:             req.Name,
		Email:            req.Email,
		PasswordHash:     passwordHash,
		VerificationCode: code,
		CodeExpireTime:   time.Now().Add(ttl).UnixMilli(),
	}

	if err := s.userRepo.Create(user); err != nil {
		if appErrors.Is(err, repositories.ErrUserAlreadyExists) {
			return appErrors.ErrDuplicateEmail
		}
		return appErrors.InternalError(err)
	}

	s.sendVerificationCode(user.Email, code)

	if s.scheduler != nil {
		s.scheduler.Schedule(user.Email)
	}

	return nil
}

// Verify - подтверждение email по коду.
// Истечение срока проверяется даже при совпавшем коде.
func (s *AuthServiceImpl) Verify(req *dto.VerifyRequest) error {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return appErrors.ErrInvalidVerificationCode
		}
		return appErrors.InternalError(err)
	}

	if user.VerificationCode != req.VerificationCode {
		return appErrors.ErrInvalidVerificationCode
	}

	if user.CodeExpired(time.Now().UnixMilli()) {
		return appErrors.ErrVerificationCodeExpired
	}

	err = s.userRepo.Mutate(req.Email, func(u *models.User) error {
		u.IsVerified = true
		return nil
	})
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			// Запись успела уйти под отложенное удаление
			return appErrors.ErrInvalidVerificationCode
		}
		return appErrors.InternalError(err)
	}

	if s.scheduler != nil {
		s.scheduler.Cancel(req.Email)
	}

	return nil
}

// Login - аутентификация по email и паролю.
// Статус верификации намеренно не проверяется: неверифицированный
// аккаунт может войти, пока его не удалила отложенная задача.
func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, appErrors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	bearerToken := "Bearer " + token

	// Последний выданный токен сохраняется на записи
	err = s.userRepo.Mutate(user.Email, func(u *models.User) error {
		u.Token = bearerToken
		return nil
	})
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	return &dto.LoginResponse{
		Name:  user.Name,
		Email: user.Email,
		Token: bearerToken,
	}, nil
}

// sendVerificationCode отправляет письмо в фоне; ошибка доставки
// логируется и не возвращается вызывающему
func (s *AuthServiceImpl) sendVerificationCode(to, code string) {
	if s.emailProvider == nil {
		return
	}

	go func() {
		if err := s.emailProvider.SendVerificationCode(to, code); err != nil {
			logger.WithError(err).Error("failed to send verification email", "to", to)
		}
	}()
}

// generateVerificationCode генерирует код из 6 ASCII цифр
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
