package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/cinema-ticket-booking/internal/logger"
)

// Publisher sends purchase events to RabbitMQ.  Each call dials the
// broker; purchases are infrequent enough that a pooled channel is not
// worth the reconnect handling.
type Publisher struct {
	url string
	log *logger.Logger
}

func NewPublisher(url string, log *logger.Logger) *Publisher {
	return &Publisher{url: url, log: log}
}

// PublishTicketPurchased publishes ev as a persistent JSON message.  Errors
// are logged and returned so the caller can choose to ignore them.
func (p *Publisher) PublishTicketPurchased(ctx context.Context, ev TicketPurchasedEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Errorf("QUEUE", "dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Errorf("QUEUE", "channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(TicketPurchasedQueue, true, false, false, false, nil); err != nil {
		p.log.Errorf("QUEUE", "queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", TicketPurchasedQueue, false, false, pub); err != nil {
		p.log.Errorf("QUEUE", "publish failed: %v", err)
		return err
	}
	p.log.LogQueue("PUBLISH", TicketPurchasedQueue, "ticket "+formatID(ev.TicketID))
	return nil
}
