package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type signupForm struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type pageQuery struct {
	Page  int `form:"page,default=0" binding:"min=0"`
	Limit int `form:"limit,default=10" binding:"min=1,max=100"`
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&signupForm{Name: "Имя", Email: "user@test.com"})

	var vErr *ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Equal(t, map[string]string{
		"password": "This field is required",
	}, vErr.Errors)
}

func TestValidate_ReportsFormFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&pageQuery{Page: 0, Limit: 0})

	var vErr *ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Errors, "limit")
	assert.Equal(t, "Must be at least 1", vErr.Errors["limit"])
}

func TestValidate_ValidStruct(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&signupForm{
		Name:     "Имя",
		Email:    "user@test.com",
		Password: "password123",
	}))
}

// Gin валидирует binding-теги своим экземпляром validator/v10;
// его ошибка должна превращаться в ту же карту с json-именами
func TestMapBindError_ConvertsFieldErrors(t *testing.T) {
	v := New()

	form := &signupForm{Name: "Имя"}
	bindErr := v.validate.Struct(form)
	assert.Error(t, bindErr)

	vErr, ok := v.MapBindError(bindErr, form)
	assert.True(t, ok)
	assert.Equal(t, map[string]string{
		"email":    "This field is required",
		"password": "This field is required",
	}, vErr.Errors)
}

func TestMapBindError_DecodeErrorNotMapped(t *testing.T) {
	v := New()

	vErr, ok := v.MapBindError(errors.New("unexpected EOF"), &signupForm{})
	assert.False(t, ok)
	assert.Nil(t, vErr)
}
