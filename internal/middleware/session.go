package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/parkspot/booking-front/internal/session"
)

// sessionKey is the context key the resolved *session.Session is stored
// under.  Handlers fetch it via SessionFrom.
const sessionKey = "session"

// SessionLookup resolves the session id injected by JWTAuth into a live
// session.  A token whose session has expired or been logged out yields
// 401 so the client knows to re-authenticate.
func SessionLookup(store *session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid, _ := c.Get("session_id").(string)
			s, ok := store.Get(sid)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired"})
			}
			c.Set(sessionKey, s)
			return next(c)
		}
	}
}

// SessionFrom returns the session placed in the context by SessionLookup.
func SessionFrom(c echo.Context) (*session.Session, bool) {
	s, ok := c.Get(sessionKey).(*session.Session)
	return s, ok
}
