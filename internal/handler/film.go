package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-booking/internal/logger"
	"github.com/iliyamo/cinema-ticket-booking/internal/model"
	"github.com/iliyamo/cinema-ticket-booking/internal/service"
)

// FilmHandler serves the film listing and the per-film schedule.
type FilmHandler struct {
	Films    *service.FilmService
	FilmSessions *service.FilmSessionService
	Log      *logger.Logger
}

func NewFilmHandler(films *service.FilmService, sessions *service.FilmSessionService, log *logger.Logger) *FilmHandler {
	return &FilmHandler{Films: films, FilmSessions: sessions, Log: log}
}

// List handles GET /films.
func (h *FilmHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	films, err := h.Films.FindAll(ctx)
	if err != nil {
		return serverError(c, h.Log, err)
	}
	return renderPage(c, http.StatusOK, "films", newPage(c, "Films", films))
}

type filmSessionsData struct {
	Film     *model.FilmDto
	Sessions []model.FilmSessionDto
}

// Sessions handles GET /films/:id/sessions.  Unknown and malformed ids
// both get the 404 page.
func (h *FilmHandler) Sessions(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return notFound(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	film, err := h.Films.FindByID(ctx, id)
	if errors.Is(err, service.ErrNotFound) {
		return notFound(c)
	}
	if err != nil {
		return serverError(c, h.Log, err)
	}
	sessions, err := h.FilmSessions.FindByFilmID(ctx, id)
	if err != nil {
		return serverError(c, h.Log, err)
	}
	return renderPage(c, http.StatusOK, "film_sessions", newPage(c, film.Name, filmSessionsData{Film: film, Sessions: sessions}))
}
