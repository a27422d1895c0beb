package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/cinema-ticket-booking/internal/logger"
)

// DefaultLogPath is where the consumer appends sold tickets.
var DefaultLogPath = filepath.Join("logs", "tickets.log")

// Consumer listens on the ticket.purchased queue and appends one line per
// sale to a log file.
type Consumer struct {
	url     string
	logPath string
	log     *logger.Logger
}

func NewConsumer(url, logPath string, log *logger.Logger) *Consumer {
	if logPath == "" {
		logPath = DefaultLogPath
	}
	return &Consumer{url: url, logPath: logPath, log: log}
}

// Run dials the broker and consumes until ctx is cancelled, reconnecting
// with exponential backoff (capped at 30s) whenever the connection drops.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Errorf("QUEUE", "consumer dial failed: %v; retrying in %s", err, backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Errorf("QUEUE", "consume loop ended: %v; reconnecting", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.log.Errorf("QUEUE", "set QoS failed: %v", err)
	}
	if _, err := ch.QueueDeclare(TicketPurchasedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(TicketPurchasedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}
	c.log.LogQueue("CONSUME", TicketPurchasedQueue, "listening")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.Handle(d.Body); err != nil {
				c.log.Errorf("QUEUE", "handle message failed: %v", err)
				_ = d.Nack(false, false) // no requeue: a bad payload would loop forever
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// Handle decodes one message body and appends it to the ticket log.
func (c *Consumer) Handle(body []byte) error {
	var ev TicketPurchasedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.logPath), 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(c.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatLine(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatLine renders ev as a single newline-terminated log line.
func FormatLine(ev TicketPurchasedEvent) string {
	return fmt.Sprintf("[%s] Ticket purchased | ticket_id=%d | user_id=%d | session_id=%d | film=%q | hall=%q | starts_at=%s | row=%d | place=%d | price=%d\n",
		ev.PurchasedAt, ev.TicketID, ev.UserID, ev.SessionID, ev.FilmName, ev.HallName, ev.StartsAt, ev.RowNumber, ev.PlaceNumber, ev.Price)
}

func formatID(id uint64) string { return strconv.FormatUint(id, 10) }

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
