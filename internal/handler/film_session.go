package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-booking/internal/logger"
	"github.com/iliyamo/cinema-ticket-booking/internal/model"
	"github.com/iliyamo/cinema-ticket-booking/internal/service"
)

type SessionHandler struct {
	Sessions *service.FilmSessionService
	Log      *logger.Logger
}

func NewSessionHandler(sessions *service.FilmSessionService, log *logger.Logger) *SessionHandler {
	return &SessionHandler{Sessions: sessions, Log: log}
}

type sessionsData struct {
	Sessions []model.FilmSessionDto
	Today    bool
}

// List handles GET /sessions; ?day=today narrows it to today's sessions.
func (h *SessionHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	today := c.QueryParam("day") == "today"
	var (
		list []model.FilmSessionDto
		err  error
	)
	if today {
		list, err = h.Sessions.FindToday(ctx)
	} else {
		list, err = h.Sessions.FindAll(ctx)
	}
	if err != nil {
		return serverError(c, h.Log, err)
	}
	return renderPage(c, http.StatusOK, "sessions", newPage(c, "Schedule", sessionsData{Sessions: list, Today: today}))
}
