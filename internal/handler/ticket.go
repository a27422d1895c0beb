package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/skip2/go-qrcode"

	"github.com/iliyamo/cinema-ticket-booking/internal/logger"
	"github.com/iliyamo/cinema-ticket-booking/internal/model"
	"github.com/iliyamo/cinema-ticket-booking/internal/service"
)

const (
	msgLoginToBuy  = "Please log in to buy tickets."
	msgSeatTaken   = "Could not buy the ticket. The place may already be taken."
	msgBadPurchase = "Please choose a session, a row and a place."
)

// TicketHandler serves the purchase flow, the buyer's ticket list and
// ticket QR codes.
type TicketHandler struct {
	Tickets  *service.TicketService
	Sessions *service.FilmSessionService
	Log      *logger.Logger
}

func NewTicketHandler(tickets *service.TicketService, sessions *service.FilmSessionService, log *logger.Logger) *TicketHandler {
	return &TicketHandler{Tickets: tickets, Sessions: sessions, Log: log}
}

type buyPageData struct {
	Session *model.FilmSessionDetailDto
	Places  []model.Place
	Sold    int
}

// BuyPage handles GET /tickets/buy/:sessionId.
func (h *TicketHandler) BuyPage(c echo.Context) error {
	id, ok := parseID(c, "sessionId")
	if !ok {
		return notFound(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	detail, err := h.Sessions.FindByID(ctx, id)
	if errors.Is(err, service.ErrNotFound) {
		return notFound(c)
	}
	if err != nil {
		return serverError(c, h.Log, err)
	}
	places, err := h.Tickets.AvailablePlaces(ctx, id)
	if err != nil {
		return serverError(c, h.Log, err)
	}
	sold, err := h.Tickets.SoldCount(ctx, id)
	if err != nil {
		return serverError(c, h.Log, err)
	}
	data := buyPageData{Session: detail, Places: places, Sold: sold}
	return renderPage(c, http.StatusOK, "buy", newPage(c, detail.FilmName, data))
}

type buyForm struct {
	SessionID   uint64 `form:"session_id" validate:"required,gt=0"`
	RowNumber   uint32 `form:"row_number" validate:"required,gt=0"`
	PlaceNumber uint32 `form:"place_number" validate:"required,gt=0"`
}

type boughtData struct {
	Ticket  *model.Ticket
	Session *model.FilmSessionDetailDto
}

// Buy handles POST /tickets/buy.  Anonymous visitors are sent to the
// login page with a flash message.
func (h *TicketHandler) Buy(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		setFlash(c, msgLoginToBuy)
		return c.Redirect(http.StatusSeeOther, "/users/login")
	}
	var form buyForm
	if err := bindForm(c, &form); err != nil {
		return renderError(c, http.StatusBadRequest, msgBadPurchase)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	_, err := h.Sessions.FindByID(ctx, form.SessionID)
	if errors.Is(err, service.ErrNotFound) {
		return notFound(c)
	}
	if err != nil {
		return serverError(c, h.Log, err)
	}

	ticket, err := h.Tickets.BuyTicket(ctx, model.Ticket{
		SessionID:   form.SessionID,
		RowNumber:   form.RowNumber,
		PlaceNumber: form.PlaceNumber,
		UserID:      uid,
	})
	if errors.Is(err, service.ErrSeatUnavailable) {
		return renderError(c, http.StatusConflict, msgSeatTaken)
	}
	if err != nil {
		return serverError(c, h.Log, err)
	}

	data := boughtData{Ticket: ticket, Session: h.sessionOrPlaceholder(ctx, ticket.SessionID)}
	return renderPage(c, http.StatusCreated, "bought", newPage(c, "Ticket purchased", data))
}

// My handles GET /tickets/my.
func (h *TicketHandler) My(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/users/login")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	tickets, err := h.Tickets.FindByUserID(ctx, uid)
	if err != nil {
		return serverError(c, h.Log, err)
	}
	views := make([]boughtData, 0, len(tickets))
	for _, t := range tickets {
		views = append(views, boughtData{Ticket: t, Session: h.sessionOrPlaceholder(ctx, t.SessionID)})
	}
	return renderPage(c, http.StatusOK, "my_tickets", newPage(c, "My tickets", views))
}

// QR handles GET /tickets/:id/qr.  Only the buyer can fetch the code; any
// other ticket looks like a missing one.
func (h *TicketHandler) QR(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/users/login")
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	t, err := h.Tickets.FindByID(ctx, id)
	if errors.Is(err, service.ErrNotFound) || (err == nil && t.UserID != uid) {
		return c.NoContent(http.StatusNotFound)
	}
	if err != nil {
		h.Log.Errorf("API", "ticket %d: %v", id, err)
		return c.NoContent(http.StatusInternalServerError)
	}
	png, err := qrcode.Encode(ticketPayload(t), qrcode.Medium, 256)
	if err != nil {
		h.Log.Errorf("API", "qr for ticket %d: %v", id, err)
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

// ticketPayload is the text encoded into a ticket's QR code.
func ticketPayload(t *model.Ticket) string {
	return fmt.Sprintf("ticket:%d;session:%d;row:%d;place:%d;user:%d", t.ID, t.SessionID, t.RowNumber, t.PlaceNumber, t.UserID)
}

func (h *TicketHandler) sessionOrPlaceholder(ctx context.Context, id uint64) *model.FilmSessionDetailDto {
	d, err := h.Sessions.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, service.ErrNotFound) {
			h.Log.Errorf("API", "session %d: %v", id, err)
		}
		return &model.FilmSessionDetailDto{ID: id, FilmName: service.UnknownFilm, HallName: service.UnknownHall}
	}
	return d
}
