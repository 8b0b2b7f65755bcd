package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"carhub_backend/internal/repositories"
	"carhub_backend/internal/services/dto"
	"carhub_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

func carBody(category, color, model, number string) map[string]interface{} {
	return map[string]interface{}{
		"category":  category,
		"color":     color,
		"model":     model,
		"carNumber": number,
	}
}

func listCars(t *testing.T, ts *helpers.TestServer, token, category string, page, limit int) dto.CarListResponse {
	t.Helper()

	path := fmt.Sprintf("/cars/%s?page=%d&limit=%d", category, page, limit)
	res, bodyStr := ts.SendRequest(t, http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

	var response dto.CarListResponse
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &response))
	return response
}

// TestCarCRUDFlow - создание, список, обновление и удаление через API
func TestCarCRUDFlow(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token := helpers.CreateAndLoginUser(t, ts, "Владелец", "owner@test.com", "password123")

	// --- Создание ---
	createRes, createBodyStr := ts.SendRequest(t, http.MethodPost, "/cars/create", token,
		carBody("sedan", "black", "Toyota Camry", "A111BC"))
	assert.Equal(t, http.StatusOK, createRes.StatusCode)
	assert.Contains(t, createBodyStr, "New car added successfully")

	// --- Список ---
	list := listCars(t, ts, token, "sedan", 0, 10)
	assert.Equal(t, 1, list.Total)
	assert.Len(t, list.Data, 1)
	assert.Equal(t, 1, list.Data[0].ID)
	assert.Equal(t, "Toyota Camry", list.Data[0].Model)

	// --- Обновление ---
	updRes, updBodyStr := ts.SendRequest(t, http.MethodPut, "/cars/1", token,
		carBody("sedan", "white", "Toyota Camry", "A111BC"))
	assert.Equal(t, http.StatusOK, updRes.StatusCode)
	assert.Contains(t, updBodyStr, "Car updated successfully")

	list = listCars(t, ts, token, "sedan", 0, 10)
	assert.Equal(t, "white", list.Data[0].Color)

	// --- Удаление ---
	delRes, delBodyStr := ts.SendRequest(t, http.MethodDelete, "/cars/1", token, nil)
	assert.Equal(t, http.StatusOK, delRes.StatusCode)
	assert.Contains(t, delBodyStr, "Car deleted successfully")

	list = listCars(t, ts, token, "sedan", 0, 10)
	assert.Equal(t, 0, list.Total)
	assert.Len(t, list.Data, 0)
}

// TestCreateCar_IDChurn - новая машина получает id 1,
// прежние идентификаторы сдвигаются на единицу
func TestCreateCar_IDChurn(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token := helpers.CreateAndLoginUser(t, ts, "Владелец", "churn@test.com", "password123")

	for i, model := range []string{"First", "Second", "Third"} {
		res, bodyStr := ts.SendRequest(t, http.MethodPost, "/cars/create", token,
			carBody("suv", "grey", model, fmt.Sprintf("B%03dCD", i+1)))
		assert.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)
	}

	list := listCars(t, ts, token, "suv", 0, 10)
	assert.Equal(t, 3, list.Total)

	// Последняя добавленная машина стоит первой с id 1
	assert.Equal(t, 1, list.Data[0].ID)
	assert.Equal(t, "Third", list.Data[0].Model)
	assert.Equal(t, 2, list.Data[1].ID)
	assert.Equal(t, "Second", list.Data[1].Model)
	assert.Equal(t, 3, list.Data[2].ID)
	assert.Equal(t, "First", list.Data[2].Model)
}

// TestListCars_Pagination - форма ответа и подсчет страниц
func TestListCars_Pagination(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token := helpers.CreateAndLoginUser(t, ts, "Владелец", "pages@test.com", "password123")

	for i := 0; i < 12; i++ {
		res, _ := ts.SendRequest(t, http.MethodPost, "/cars/create", token,
			carBody("sedan", "blue", fmt.Sprintf("Model %d", i), fmt.Sprintf("C%03dDE", i)))
		assert.Equal(t, http.StatusOK, res.StatusCode)
	}
	res, _ := ts.SendRequest(t, http.MethodPost, "/cars/create", token,
		carBody("suv", "red", "Other", "X999YZ"))
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// Фильтр по категории не задевает чужие записи
	list := listCars(t, ts, token, "sedan", 0, 5)
	assert.Equal(t, 12, list.Total)
	assert.Equal(t, 0, list.Page)
	assert.Equal(t, 3, list.TotalPages)
	assert.Len(t, list.Data, 5)

	// Последняя страница неполная
	list = listCars(t, ts, token, "sedan", 2, 5)
	assert.Len(t, list.Data, 2)

	// Страница за пределами данных пустая
	list = listCars(t, ts, token, "sedan", 9, 5)
	assert.Len(t, list.Data, 0)
	assert.Equal(t, 12, list.Total)
}

// TestUpdateCar_MissingField - неполное тело не меняет запись
func TestUpdateCar_MissingField(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token := helpers.CreateAndLoginUser(t, ts, "Владелец", "badupd@test.com", "password123")

	res, _ := ts.SendRequest(t, http.MethodPost, "/cars/create", token,
		carBody("sedan", "black", "Kia Rio", "D444EF"))
	assert.Equal(t, http.StatusOK, res.StatusCode)

	body := map[string]interface{}{
		"category": "sedan",
		"color":    "green",
	}
	updRes, updBodyStr := ts.SendRequest(t, http.MethodPut, "/cars/1", token, body)
	assert.Equal(t, http.StatusBadRequest, updRes.StatusCode)
	assert.Contains(t, updBodyStr, "Please provide all the required fields")

	var errResponse struct {
		Error struct {
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	assert.NoError(t, json.Unmarshal([]byte(updBodyStr), &errResponse))
	assert.Equal(t, "This field is required", errResponse.Error.Details["model"])
	assert.Equal(t, "This field is required", errResponse.Error.Details["carNumber"])

	list := listCars(t, ts, token, "sedan", 0, 10)
	assert.Equal(t, "black", list.Data[0].Color)
}

// TestListCars_InvalidLimit - нарушение границ query параметров дает 400
// с именем параметра в деталях
func TestListCars_InvalidLimit(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token := helpers.CreateAndLoginUser(t, ts, "Владелец", "badlimit@test.com", "password123")

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/cars/sedan?limit=0", token, nil)

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "limit")
	assert.Contains(t, bodyStr, "Must be at least 1")
}

// TestUpdateCar_NotFound - обновление несуществующего id дает 404
func TestUpdateCar_NotFound(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token := helpers.CreateAndLoginUser(t, ts, "Владелец", "upd404@test.com", "password123")

	res, bodyStr := ts.SendRequest(t, http.MethodPut, "/cars/99", token,
		carBody("sedan", "black", "Ghost", "E555FG"))
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, bodyStr, "Car not found")
}

// TestDeleteCar_MissingIDSucceeds - удаление несуществующего id идемпотентно
func TestDeleteCar_MissingIDSucceeds(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token := helpers.CreateAndLoginUser(t, ts, "Владелец", "del200@test.com", "password123")

	res, bodyStr := ts.SendRequest(t, http.MethodDelete, "/cars/99", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Car deleted successfully")
}

// TestDeleteCar_NonNumericID - нечисловой id отклоняется до обращения
// к хранилищу
func TestDeleteCar_NonNumericID(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token := helpers.CreateAndLoginUser(t, ts, "Владелец", "delnan@test.com", "password123")

	res, bodyStr := ts.SendRequest(t, http.MethodDelete, "/cars/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "Must be an integer")
}

// TestCars_RequireAuthorization - все маршруты каталога закрыты токеном
func TestCars_RequireAuthorization(t *testing.T) {
	ts := helpers.NewTestServer(t)

	// Без заголовка
	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/cars/sedan", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Contains(t, bodyStr, "Unauthorized")

	res, _ = ts.SendRequest(t, http.MethodPost, "/cars/create", "",
		carBody("sedan", "black", "NoAuth", "F666GH"))
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodDelete, "/cars/1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

// TestCars_TokenWithoutBearerPrefix - сырой JWT без префикса отклоняется
func TestCars_TokenWithoutBearerPrefix(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token := helpers.CreateAndLoginUser(t, ts, "Владелец", "prefix@test.com", "password123")

	rawJWT := strings.TrimPrefix(token, "Bearer ")
	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/cars/sedan", rawJWT, nil)

	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Contains(t, bodyStr, "Unauthorized")
}

// TestCars_GarbageToken - заголовок с мусором вместо JWT дает 401
func TestCars_GarbageToken(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/cars/sedan", "Bearer not-a-jwt", nil)

	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Contains(t, bodyStr, "Invalid or expired token")
}

// TestCars_PersistedFieldNames - данные на диске совместимы со старым форматом
func TestCars_PersistedFieldNames(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token := helpers.CreateAndLoginUser(t, ts, "Владелец", "disk@test.com", "password123")

	res, _ := ts.SendRequest(t, http.MethodPost, "/cars/create", token,
		carBody("hatchback", "yellow", "VW Golf", "G777HI"))
	assert.Equal(t, http.StatusOK, res.StatusCode)

	carRepo := repositories.NewCarRepository(ts.Store)
	cars, err := carRepo.FindAll()
	assert.NoError(t, err)
	assert.Len(t, cars, 1)
	assert.Equal(t, "VW Golf", cars[0].Model)
	assert.Equal(t, "G777HI", cars[0].CarNumber)
}
