package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkspot/booking-front/internal/model"
	"github.com/parkspot/booking-front/internal/session"
	"github.com/parkspot/booking-front/internal/utils"
)

func runChain(t *testing.T, mws []echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/session", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	h := func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	}
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	require.NoError(t, h(c))
	return rec, c, reached
}

func TestJWTAuthValidToken(t *testing.T) {
	tok, err := utils.NewSessionToken("secret", "sess-1", "7", 30)
	require.NoError(t, err)

	_, c, reached := runChain(t, []echo.MiddlewareFunc{JWTAuth("secret")}, "Bearer "+tok.Token)
	assert.True(t, reached)
	assert.Equal(t, "sess-1", c.Get("session_id"))
	assert.Equal(t, "7", c.Get("user_id"))
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec, _, reached := runChain(t, []echo.MiddlewareFunc{JWTAuth("secret")}, "")
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	tok, err := utils.NewSessionToken("other", "sess-1", "7", 30)
	require.NoError(t, err)

	rec, _, reached := runChain(t, []echo.MiddlewareFunc{JWTAuth("secret")}, "Bearer "+tok.Token)
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionLookupResolvesSession(t *testing.T) {
	store := session.NewStore(time.Hour)
	s := store.Create(model.User{ID: "7"}, "up-tok")
	tok, err := utils.NewSessionToken("secret", s.ID, "7", 30)
	require.NoError(t, err)

	_, c, reached := runChain(t,
		[]echo.MiddlewareFunc{JWTAuth("secret"), SessionLookup(store)},
		"Bearer "+tok.Token)
	require.True(t, reached)

	got, ok := SessionFrom(c)
	require.True(t, ok)
	assert.Equal(t, s.ID, got.ID)
}

func TestSessionLookupExpiredSession(t *testing.T) {
	store := session.NewStore(time.Hour)
	tok, err := utils.NewSessionToken("secret", "gone", "7", 30)
	require.NoError(t, err)

	rec, _, reached := runChain(t,
		[]echo.MiddlewareFunc{JWTAuth("secret"), SessionLookup(store)},
		"Bearer "+tok.Token)
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
