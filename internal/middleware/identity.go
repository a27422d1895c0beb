package middleware

// identity.go holds the context keys the session middleware fills in and
// the helpers handlers and other middleware use to read them back.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	ctxUserID    = "user_id"
	ctxSessionID = "sid"
)

// UserID returns the logged-in user's id, or false for an anonymous
// request.
func UserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(ctxUserID).(uint64)
	return id, ok && id != 0
}

// SessionID returns the server-side session id of the request, if any.
func SessionID(c echo.Context) (string, bool) {
	sid, ok := c.Get(ctxSessionID).(string)
	return sid, ok && sid != ""
}

// userKey identifies the caller in rate-limit keys; "anon" when nobody is
// logged in.
func userKey(c echo.Context) string {
	if id, ok := UserID(c); ok {
		return strconv.FormatUint(id, 10)
	}
	return "anon"
}
