package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAppError(t *testing.T) {
	wrapped := fmt.Errorf("saving: %w", NewNotFoundError("Bill"))
	appErr := GetAppError(wrapped)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Equal(t, "Bill not found", appErr.Message)

	plain := GetAppError(errors.New("connection reset"))
	assert.Equal(t, http.StatusInternalServerError, plain.Code)
	assert.Equal(t, "connection reset", plain.Message)
}

func TestNewStoreError(t *testing.T) {
	err := NewStoreError("insert bill", errors.New("check constraint failed"))
	assert.True(t, IsAppError(err))
	assert.Equal(t, "insert bill: check constraint failed", err.Message)
}
