package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkspot/booking-front/internal/model"
	"github.com/parkspot/booking-front/internal/session"
	"github.com/parkspot/booking-front/internal/upstream"
)

func TestLoginCreatesSession(t *testing.T) {
	e := newTestEcho()
	store := session.NewStore(time.Hour)
	backend := &stubBackend{
		loginFn: func(ctx context.Context, email, password string) (upstream.LoginResult, error) {
			assert.Equal(t, "a@b.c", email)
			return upstream.LoginResult{
				AccessToken: "up-tok",
				User:        model.User{ID: "7", Email: email, Name: "Kim"},
			}, nil
		},
	}
	h := NewAuthHandler(testConfig(), backend, store)

	rec := call(t, e, nil, http.MethodPost, "/v1/auth/login",
		`{"email":"a@b.c","password":"pw"}`, h.Login)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp loginResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "7", resp.User.ID)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, 1, store.Len())
}

func TestLoginRejectedUpstream(t *testing.T) {
	e := newTestEcho()
	store := session.NewStore(time.Hour)
	backend := &stubBackend{
		loginFn: func(ctx context.Context, email, password string) (upstream.LoginResult, error) {
			return upstream.LoginResult{}, upstream.ErrUnauthorized
		},
	}
	h := NewAuthHandler(testConfig(), backend, store)

	rec := call(t, e, nil, http.MethodPost, "/v1/auth/login",
		`{"email":"a@b.c","password":"bad"}`, h.Login)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, store.Len())
}

func TestLoginValidatesEmail(t *testing.T) {
	e := newTestEcho()
	store := session.NewStore(time.Hour)
	h := NewAuthHandler(testConfig(), &stubBackend{}, store)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login",
		strings.NewReader(`{"email":"not-an-email","password":"pw"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Login(c)
	require.Error(t, err)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestLogoutDropsSession(t *testing.T) {
	e := newTestEcho()
	store := session.NewStore(time.Hour)
	s := store.Create(model.User{ID: "7"}, "tok")
	h := NewAuthHandler(testConfig(), &stubBackend{}, store)

	rec := call(t, e, s, http.MethodPost, "/v1/auth/logout", "", h.Logout)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, ok := store.Get(s.ID)
	assert.False(t, ok)
}

func TestMeReturnsIdentity(t *testing.T) {
	e := newTestEcho()
	store := session.NewStore(time.Hour)
	s := store.Create(model.User{ID: "7", Email: "a@b.c", Name: "Kim"}, "tok")
	h := NewAuthHandler(testConfig(), &stubBackend{}, store)

	rec := call(t, e, s, http.MethodGet, "/v1/me", "", h.Me)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp userPart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Kim", resp.Name)
}
