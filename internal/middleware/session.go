package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-booking/internal/logger"
	"github.com/iliyamo/cinema-ticket-booking/internal/session"
	"github.com/iliyamo/cinema-ticket-booking/internal/utils"
)

// SessionCookie is the name of the login cookie.
const SessionCookie = "SESSION"

// LoadSession resolves the login cookie into a user id.  The cookie holds
// a signed token naming a server-side session; a request whose token is
// forged or whose session no longer exists simply proceeds anonymously
// and the stale cookie is cleared.  A store failure also proceeds
// anonymously but leaves the cookie alone.  Pages decide on their own whether
// they need a user.
func LoadSession(secret string, store session.Store, log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(SessionCookie)
			if err != nil || ck.Value == "" {
				return next(c)
			}
			sid, err := utils.ParseSessionToken(secret, ck.Value)
			if err != nil {
				log.LogSecurity("BAD_SESSION_TOKEN", c.RealIP())
				ClearSessionCookie(c)
				return next(c)
			}
			uid, err := store.Get(c.Request().Context(), sid)
			if errors.Is(err, session.ErrNotFound) {
				ClearSessionCookie(c)
				return next(c)
			}
			if err != nil {
				// the session may still be live; keep the cookie for the next request
				log.Errorf("SESSION", "lookup failed: %v", err)
				return next(c)
			}
			c.Set(ctxUserID, uid)
			c.Set(ctxSessionID, sid)
			return next(c)
		}
	}
}

// SetSessionCookie writes the login cookie carrying token.
func SetSessionCookie(c echo.Context, token utils.SessionToken) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token.Token,
		Path:     "/",
		Expires:  token.Exp,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
