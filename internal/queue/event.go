// Package queue carries ticket purchase events over RabbitMQ: the
// publisher used by the booking path and the background consumer that
// keeps an audit log of sales.
package queue

// TicketPurchasedQueue is the durable queue purchase events go to.
const TicketPurchasedQueue = "ticket.purchased"

// TicketPurchasedEvent is published after a seat has been sold.  It holds
// enough context for consumers to log or notify without querying the
// primary database.
type TicketPurchasedEvent struct {
	TicketID    uint64 `json:"ticket_id"`
	SessionID   uint64 `json:"session_id"`
	UserID      uint64 `json:"user_id"`
	RowNumber   uint32 `json:"row_number"`
	PlaceNumber uint32 `json:"place_number"`
	FilmName    string `json:"film_name"`
	HallName    string `json:"hall_name"`
	StartsAt    string `json:"starts_at"`
	Price       uint32 `json:"price"`
	PurchasedAt string `json:"purchased_at"`
}
