package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-booking/internal/logger"
	"github.com/iliyamo/cinema-ticket-booking/internal/service"
)

type FileHandler struct {
	Files *service.FileService
	Log   *logger.Logger
}

func NewFileHandler(files *service.FileService, log *logger.Logger) *FileHandler {
	return &FileHandler{Files: files, Log: log}
}

// Get handles GET /files/:id and streams the poster bytes.
func (h *FileHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	b, err := h.Files.Content(ctx, id)
	if errors.Is(err, service.ErrNotFound) {
		return c.NoContent(http.StatusNotFound)
	}
	if err != nil {
		h.Log.Errorf("API", "file %d: %v", id, err)
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.Blob(http.StatusOK, "image/jpeg", b)
}
