package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetErrorStatusCode(t *testing.T) {
	validation := &ValidationError{}
	validation.Add("name", "required")

	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"duplicate name", ErrDuplicateName, http.StatusConflict},
		{"wrapped not found", fmt.Errorf("get product: %w", ErrNotFound), http.StatusNotFound},
		{"validation", validation, http.StatusBadRequest},
		{"not logged in", ErrNotLoggedIn, http.StatusUnauthorized},
		{"not admin", ErrUnauthorized, http.StatusForbidden},
		{"storage", ErrStorage, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GetErrorStatusCode(tc.err))
		})
	}
}

func TestValidationError(t *testing.T) {
	v := &ValidationError{}
	assert.NoError(t, v.OrNil())

	v.Add("quantity", "gt=0")
	err := v.OrNil()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrClient))
	assert.Contains(t, err.Error(), "quantity (gt=0)")

	known, ok := Known(err)
	assert.True(t, ok)
	assert.Equal(t, ErrClient, known)
}
