package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAppError_UnwrapsWrapped(t *testing.T) {
	err := fmt.Errorf("saving order: %w", NewConflictError("phone already used"))

	appErr := GetAppError(err)

	assert.Equal(t, http.StatusConflict, appErr.Code)
	assert.True(t, IsAppError(err))
}

func TestGetAppError_PlainErrorIs500(t *testing.T) {
	appErr := GetAppError(errors.New("connection reset"))

	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Equal(t, "connection reset", appErr.Message)
}

func TestNewFieldError(t *testing.T) {
	err := NewFieldError("status", "cannot move order from ready to washing")

	assert.Equal(t, http.StatusUnprocessableEntity, err.Code)
	assert.Equal(t, "status", err.Errors[0].Field)
}
