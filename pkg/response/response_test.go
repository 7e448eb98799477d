package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/ohmfruit/fruitstore-service/pkg/errs"
	"github.com/stretchr/testify/assert"
)

func TestWriteErrorResponse(t *testing.T) {
	verr := &errs.ValidationError{}
	verr.Add("price", "gt=0")

	testCases := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "wrapped known error keeps its message",
			err:      fmt.Errorf("update: %w", errs.ErrNotFound),
			wantCode: http.StatusNotFound,
			wantBody: `{"status":"error","message":"Resource not found","errors":null}`,
		},
		{
			name:     "validation lists fields",
			err:      verr,
			wantCode: http.StatusBadRequest,
			wantBody: `{"status":"error","message":"Bad request","errors":[{"field":"price","tag":"gt=0"}]}`,
		},
		{
			name:     "unknown error is hidden",
			err:      errors.New("mongo: connection refused"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"status":"error","message":"Internal server error","errors":null}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			assert.NoError(t, WriteErrorResponse(c, tc.err, nil))
			assert.Equal(t, tc.wantCode, rec.Code)
			assert.JSONEq(t, tc.wantBody, rec.Body.String())
		})
	}
}

func TestWriteSuccessResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	assert.NoError(t, WriteSuccessResponse(c, "pong", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success","message":"pong","data":null}`, rec.Body.String())
}
