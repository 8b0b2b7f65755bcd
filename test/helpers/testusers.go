package helpers

import (
	"encoding/json"
	"net/http"
	"testing"

	"carhub_backend/internal/repositories"
	"carhub_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
)

// ReadVerificationCode читает код верификации напрямую из хранилища.
// В тестах SMTP не настроен, это единственный способ получить код.
func ReadVerificationCode(t *testing.T, ts *TestServer, email string) string {
	t.Helper()

	userRepo := repositories.NewUserRepository(ts.Store)
	user, err := userRepo.FindByEmail(email)
	if err != nil {
		t.Fatalf("Не удалось найти пользователя %s в хранилище: %v", email, err)
	}
	return user.VerificationCode
}

// SignupUser регистрирует пользователя через API
func SignupUser(t *testing.T, ts *TestServer, name, email, password string) {
	t.Helper()

	body := map[string]interface{}{
		"name":     name,
		"email":    email,
		"password": password,
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/users/signup", "", body)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Регистрация должна быть успешной. Ответ: "+bodyStr)
}

// SignupAndVerifyUser регистрирует и верифицирует пользователя
func SignupAndVerifyUser(t *testing.T, ts *TestServer, name, email, password string) {
	t.Helper()

	SignupUser(t, ts, name, email, password)

	code := ReadVerificationCode(t, ts, email)
	body := map[string]interface{}{
		"email":            email,
		"verificationCode": code,
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/users/verify", "", body)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Верификация должна быть успешной. Ответ: "+bodyStr)
}

// CreateAndLoginUser проводит полный цикл регистрации и возвращает
// значение заголовка Authorization для защищенных маршрутов
func CreateAndLoginUser(t *testing.T, ts *TestServer, name, email, password string) string {
	t.Helper()

	SignupAndVerifyUser(t, ts, name, email, password)

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/users/login", "", loginBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Логин должен быть успешным. Ответ: "+bodyStr)

	var loginResponse dto.LoginResponse
	err := json.Unmarshal([]byte(bodyStr), &loginResponse)
	assert.NoError(t, err, "Не удалось распарсить JSON ответа логина")
	assert.NotEmpty(t, loginResponse.Token, "Токен не должен быть пустым")

	return loginResponse.Token
}
