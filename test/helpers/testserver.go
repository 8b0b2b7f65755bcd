package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"carhub_backend/internal/app"
	"carhub_backend/internal/config"
	"carhub_backend/internal/storage"
)

type TestServer struct {
	Server *httptest.Server
	Store  storage.Store
	Cfg    *config.Config
}

// NewTestServer собирает полное приложение поверх временного каталога
// данных. SMTP не настраивается, коды верификации уходят в лог и
// читаются тестами напрямую из хранилища.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Storage.Type = "jsonfile"
	cfg.Storage.DataDir = t.TempDir()
	cfg.JWT.Secret = "my_super_secret_key_for_tests_12345"
	cfg.JWT.TTLMinutes = 60
	cfg.Verification.CodeTTLSeconds = 60
	cfg.Verification.SweepIntervalSeconds = 300
	cfg.Email.FromEmail = "noreply@carhub.test"
	cfg.Email.FromName = "CarHub"

	// Глобальный конфиг читают auth.GenerateToken и ParseToken
	config.AppConfig = cfg

	store, err := storage.NewStore(storage.Config{
		Type:    cfg.Storage.Type,
		DataDir: cfg.Storage.DataDir,
	})
	if err != nil {
		t.Fatalf("Не удалось инициализировать хранилище: %v", err)
	}

	router, _ := app.SetupRouter(cfg, store)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestServer{
		Server: server,
		Store:  store,
		Cfg:    cfg,
	}
}

// SendRequest отправляет JSON-запрос на тестовый сервер.
// token передается как готовое значение заголовка Authorization
// (логин возвращает его уже с префиксом "Bearer ").
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	url := ts.Server.URL + path

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Ошибка кодирования JSON для запроса: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("Ошибка создания HTTP-запроса: %v", err)
	}

	if token != "" {
		req.Header.Set("Authorization", token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("Ошибка отправки HTTP-запроса: %v", err)
	}
	defer res.Body.Close()

	resBodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Ошибка чтения тела ответа: %v", err)
	}

	return res, string(resBodyBytes)
}
