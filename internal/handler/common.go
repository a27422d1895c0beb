package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-booking/internal/logger"
	"github.com/iliyamo/cinema-ticket-booking/internal/middleware"
)

// dbTimeout bounds the storage work of a single request.
const dbTimeout = 5 * time.Second

const flashCookie = "FLASH"

// Page is the data every template receives.  Data carries the
// page-specific payload.
type Page struct {
	Title    string
	LoggedIn bool
	Flash    string
	Error    string
	Data     any
}

func newPage(c echo.Context, title string, data any) Page {
	_, ok := middleware.UserID(c)
	return Page{Title: title, LoggedIn: ok, Data: data}
}

// getUserID returns the logged-in user or false for anonymous requests.
func getUserID(c echo.Context) (uint64, bool) {
	return middleware.UserID(c)
}

// parseID reads a positive numeric path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

func renderPage(c echo.Context, status int, name string, p Page) error {
	return c.Render(status, name, p)
}

// renderError shows the error page with a human message.
func renderError(c echo.Context, status int, msg string) error {
	p := newPage(c, http.StatusText(status), nil)
	p.Error = msg
	return renderPage(c, status, "error", p)
}

func notFound(c echo.Context) error {
	return renderError(c, http.StatusNotFound, "The page you requested does not exist.")
}

// serverError logs err and shows a generic message; details never reach
// the visitor.
func serverError(c echo.Context, log *logger.Logger, err error) error {
	log.Errorf("API", "%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	return renderError(c, http.StatusInternalServerError, "Something went wrong. Please try again later.")
}

func setFlash(c echo.Context, msg string) {
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// takeFlash returns the pending flash message and clears it.
func takeFlash(c echo.Context) string {
	ck, err := c.Cookie(flashCookie)
	if err != nil || ck.Value == "" {
		return ""
	}
	c.SetCookie(&http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1})
	msg, err := url.QueryUnescape(ck.Value)
	if err != nil {
		return ""
	}
	return msg
}
