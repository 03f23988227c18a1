package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without cause",
			err:  NotFound("affectation %s not found", "A1"),
			want: "NOT_FOUND: affectation A1 not found",
		},
		{
			name: "with cause",
			err:  Database(fmt.Errorf("connection refused"), "storage failure"),
			want: "DATABASE_ERROR: storage failure: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestKindStatus(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{Validation("v"), http.StatusBadRequest},
		{Authentication("a"), http.StatusUnauthorized},
		{Authorization("f"), http.StatusForbidden},
		{NotFound("n"), http.StatusNotFound},
		{Conflict("c"), http.StatusConflict},
		{Database(errors.New("x"), "d"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Kind), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestDatabase_KeepsCauseAndStack(t *testing.T) {
	cause := errors.New("pq: deadlock detected")
	err := Database(cause, "storage failure")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, fmt.Sprintf("%+v", err.Err), "errors_test.go")
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("close: %w", Conflict("already closed"))

	assert.Equal(t, KindConflict, KindOf(wrapped))
	assert.Equal(t, KindDatabase, KindOf(errors.New("boom")))
	assert.Equal(t, Kind(""), KindOf(nil))
	assert.True(t, Is(wrapped, KindConflict))
	assert.False(t, Is(nil, KindConflict))
}

func TestFromBinding(t *testing.T) {
	type body struct {
		NumSerie string `validate:"required"`
	}

	verr := validator.New().Struct(body{})
	require.Error(t, verr)

	got := FromBinding(verr)
	assert.Equal(t, KindValidation, got.Kind)
	require.Len(t, got.FieldErrors, 1)
	assert.Equal(t, "NumSerie", got.FieldErrors[0].Field)
	assert.Equal(t, "required", got.FieldErrors[0].Rule)

	var target struct {
		Etage int `json:"etage"`
	}
	jerr := json.Unmarshal([]byte(`{"etage":"deux"}`), &target)
	require.Error(t, jerr)
	assert.Equal(t, KindValidation, FromBinding(jerr).Kind)

	assert.Equal(t, KindValidation, FromBinding(errors.New("EOF")).Kind)
}
