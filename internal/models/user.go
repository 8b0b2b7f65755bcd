package models

// User - запись пользователя в таблице users.json.
// Id назначается как количество записей + 1 на момент регистрации
// и не переиспользуется после удаления.
type User struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	PasswordHash     string `json:"password"`
	VerificationCode string `json:"verificationCode"`
	CodeExpireTime   int64  `json:"codeExpireTime"` // epoch миллисекунды
	IsVerified       bool   `json:"isVerified,omitempty"`
	Token            string `json:"token,omitempty"` // последний выданный токен, формат "Bearer <jwt>"
}

// CodeExpired сообщает, истек ли код верификации на момент now (epoch ms)
func (u *User) CodeExpired(now int64) bool {
	return now > u.CodeExpireTime
}
