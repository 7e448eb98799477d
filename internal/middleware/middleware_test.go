package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/ohmfruit/fruitstore-service/pkg/errs"
	"github.com/ohmfruit/fruitstore-service/pkg/utils"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

type stubGuard struct {
	tokens map[string]utils.AdminClaims
	seen   []string
}

func (g *stubGuard) Verify(ctx context.Context, token string) (utils.AdminClaims, error) {
	g.seen = append(g.seen, token)
	if token == "" {
		return utils.AdminClaims{}, errs.ErrNotLoggedIn
	}

	claims, ok := g.tokens[token]
	if !ok {
		return utils.AdminClaims{}, errs.ErrNotLoggedIn
	}
	if !claims.IsAdmin {
		return claims, errs.ErrUnauthorized
	}

	return claims, nil
}

func TestRequireAdmin(t *testing.T) {
	guard := &stubGuard{tokens: map[string]utils.AdminClaims{
		"admin-token": {Username: "Admin", IsAdmin: true},
		"guest-token": {Username: "guest"},
	}}

	testCases := []struct {
		name       string
		header     string
		wantStatus int
		wantCalled bool
	}{
		{"missing token", "", http.StatusUnauthorized, false},
		{"wrong scheme", "Basic admin-token", http.StatusUnauthorized, false},
		{"invalid token", "Bearer nope", http.StatusUnauthorized, false},
		{"not admin", "Bearer guest-token", http.StatusForbidden, false},
		{"admin", "bearer admin-token", http.StatusOK, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/abc", nil)
			if tc.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			called := false
			handler := RequireAdmin(guard)(func(c echo.Context) error {
				called = true
				claims, ok := Claims(c)
				assert.True(t, ok)
				assert.Equal(t, "Admin", claims.Username)
				return c.NoContent(http.StatusOK)
			})

			assert.NoError(t, handler(c))
			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantCalled, called)
		})
	}
}

func TestLoggerSetsRequestID(t *testing.T) {
	e := echo.New()
	e.Use(Logger, AccessLog())
	e.GET("/api/v1/ping", func(c echo.Context) error {
		assert.NotNil(t, zerolog.Ctx(c.Request().Context()))
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	req.Header.Set(echo.HeaderXRequestID, "abc-123")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(echo.HeaderXRequestID))
}

func TestAccessLogRecordsAdmin(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = prev }()

	guard := &stubGuard{tokens: map[string]utils.AdminClaims{
		"admin-token": {Username: "Admin", IsAdmin: true},
	}}

	e := echo.New()
	e.Use(Logger, AccessLog())
	e.DELETE("/api/v1/products/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, RequireAdmin(guard))
	e.GET("/api/v1/products", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/abc", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer admin-token")
	e.ServeHTTP(httptest.NewRecorder(), req)
	assert.Contains(t, buf.String(), `"admin":"Admin"`)

	buf.Reset()
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
	assert.Contains(t, buf.String(), `"status":200`)
	assert.NotContains(t, buf.String(), `"admin"`)
}
