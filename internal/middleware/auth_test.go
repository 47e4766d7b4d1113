package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pageturn/internal/apperr"
	"pageturn/internal/config"
	"pageturn/internal/model"
	"pageturn/internal/token"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, UserID(c))
}

func TestAuthMiddleware(t *testing.T) {
	tokens := token.NewManager(&config.Auth{JWTSecret: "s3cret", TokenTTL: time.Hour})
	tok, err := tokens.Issue(&model.User{ID: "user-1", Role: model.RoleUser})
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		c, rec := newContext("Bearer " + tok)
		require.NoError(t, AuthMiddleware(tokens)(okHandler)(c))
		assert.Equal(t, "user-1", rec.Body.String())
		assert.Equal(t, "user", c.Get(ContextRole))
	})

	t.Run("missing header", func(t *testing.T) {
		c, _ := newContext("")
		err := AuthMiddleware(tokens)(okHandler)(c)
		assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))
	})

	t.Run("bad token", func(t *testing.T) {
		c, _ := newContext("Bearer nope")
		err := AuthMiddleware(tokens)(okHandler)(c)
		assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))
	})
}

func TestRequireRole(t *testing.T) {
	c, _ := newContext("")
	c.Set(ContextRole, "user")
	err := RequireRole(model.RoleAdmin)(okHandler)(c)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	c, rec := newContext("")
	c.Set(ContextRole, "admin")
	c.Set(ContextUserID, "admin-1")
	require.NoError(t, RequireRole(model.RoleAdmin)(okHandler)(c))
	assert.Equal(t, "admin-1", rec.Body.String())
}
