package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/parkspot/booking-front/internal/config"
	"github.com/parkspot/booking-front/internal/flow"
	"github.com/parkspot/booking-front/internal/middleware"
	"github.com/parkspot/booking-front/internal/session"
	"github.com/parkspot/booking-front/internal/upstream"
	"github.com/parkspot/booking-front/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.  The gateway does
// not store credentials; login is delegated to the parking backend and
// the returned access token is kept server-side in the session.
type AuthHandler struct {
	Cfg      config.Config
	Upstream Backend
	Sessions *session.Store
}

func NewAuthHandler(cfg config.Config, b Backend, st *session.Store) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Upstream: b, Sessions: st}
}

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userPart struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type loginResp struct {
	User    userPart  `json:"user"`
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// Login delegates the credentials to the backend, opens a gateway
// session and returns a signed session JWT.  The upstream access token
// never leaves the gateway.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Cfg.UpstreamTimeout)
	defer cancel()

	res, err := h.Upstream.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "login failed"})
	}

	s := h.Sessions.Create(res.User, res.AccessToken)
	tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, s.ID, res.User.ID, h.Cfg.SessionTTLMin)
	if err != nil {
		h.Sessions.Delete(s.ID)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusOK, loginResp{
		User:    userPart{ID: res.User.ID, Email: res.User.Email, Name: res.User.Name, Phone: res.User.Phone},
		Token:   tok.Token,
		Expires: tok.Exp,
	})
}

// Logout resets the flow state and drops the session, so a later login
// on the same browser starts from a clean home screen.
func (h *AuthHandler) Logout(c echo.Context) error {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	s.WithFlow(func(f *flow.Controller) { f.Reset() })
	h.Sessions.Delete(s.ID)
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated user's identity.
func (h *AuthHandler) Me(c echo.Context) error {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, userPart{
		ID: s.User.ID, Email: s.User.Email, Name: s.User.Name, Phone: s.User.Phone,
	})
}
