package router // package router defines how HTTP routes are registered

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-booking/internal/handler"
)

// Handlers bundles every page handler the router mounts.
type Handlers struct {
	Films    *handler.FilmHandler
	Sessions *handler.SessionHandler
	Tickets  *handler.TicketHandler
	Users    *handler.UserHandler
	Files    *handler.FileHandler
}

// Middlewares holds the per-route middleware built from configuration.
// RateLimit guards login and purchase; FileCache fronts poster bytes.
type Middlewares struct {
	RateLimit echo.MiddlewareFunc
	FileCache echo.MiddlewareFunc
}

// RegisterRoutes registers the health check and the root redirect.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/", handler.Index)
}

// RegisterPages mounts every page route.
func RegisterPages(e *echo.Echo, h Handlers, mw Middlewares) {
	rl := orNoop(mw.RateLimit)

	e.GET("/films", h.Films.List)
	e.GET("/films/:id/sessions", h.Films.Sessions)
	e.GET("/sessions", h.Sessions.List)

	t := e.Group("/tickets")
	t.GET("/buy/:sessionId", h.Tickets.BuyPage)
	t.POST("/buy", h.Tickets.Buy, rl)
	t.GET("/my", h.Tickets.My)
	t.GET("/:id/qr", h.Tickets.QR)

	u := e.Group("/users")
	u.GET("/register", h.Users.RegisterPage)
	u.POST("/register", h.Users.Register, rl)
	u.GET("/login", h.Users.LoginPage)
	u.POST("/login", h.Users.Login, rl)
	u.GET("/logout", h.Users.Logout)

	e.GET("/files/:id", h.Files.Get, orNoop(mw.FileCache))
}

func orNoop(mw echo.MiddlewareFunc) echo.MiddlewareFunc {
	if mw != nil {
		return mw
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
}
