package appErrors

// ErrorCode - тип для кодов ошибок
type ErrorCode string

const (
	// Системные и неизвестные ошибки
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeStorageError  ErrorCode = "STORAGE_ERROR"

	// Валидация
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Аутентификация
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	// Пользователи и верификация
	CodeDuplicateEmail          ErrorCode = "DUPLICATE_EMAIL"
	CodeInvalidVerificationCode ErrorCode = "INVALID_VERIFICATION_CODE"
	CodeVerificationCodeExpired ErrorCode = "VERIFICATION_CODE_EXPIRED"

	// Каталог
	CodeCarNotFound ErrorCode = "CAR_NOT_FOUND"
)
