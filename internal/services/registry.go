package services

import (
	"carhub_backend/internal/email"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService  AuthService
	CarService   CarService
	EmailService email.Provider
}
