// Package queue_publisher publishes domain events to RabbitMQ.  Publish only
// enqueues; a single background loop owns the broker connection, so a slow
// or unreachable broker never holds up the request that produced the event.
package queue_publisher

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/iliyamo/filmes-api/internal/queue"
)

// ErrBufferFull is returned by Publish when the outgoing buffer has no room;
// the event is dropped.
var ErrBufferFull = errors.New("event buffer full")

// Defaults used by NewPublisher.
const (
	DefaultBuffer      = 256
	DefaultDialTimeout = 3 * time.Second
)

// Publisher sends movie events to the filme.events queue on the broker at
// URL.  Events are buffered and drained by Run over one long-lived
// connection that is re-established with back-off after a failure.
type Publisher struct {
	URL         string
	DialTimeout time.Duration

	events chan q.MovieEvent

	// owned by Run
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher returns a Publisher for the given AMQP url holding up to
// buffer pending events (DefaultBuffer when buffer < 1).
func NewPublisher(url string, buffer int) *Publisher {
	if buffer < 1 {
		buffer = DefaultBuffer
	}
	return &Publisher{
		URL:         url,
		DialTimeout: DefaultDialTimeout,
		events:      make(chan q.MovieEvent, buffer),
	}
}

// Publish enqueues event for delivery and returns immediately.  It never
// waits on the broker.
func (p *Publisher) Publish(ctx context.Context, event q.MovieEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case p.events <- event:
		return nil
	default:
		return ErrBufferFull
	}
}

// Run delivers queued events until ctx is cancelled.  An event that fails is
// retried after a back-off (doubling up to 30s) on a fresh connection, so
// ordering is preserved; new events keep buffering meanwhile.
func (p *Publisher) Run(ctx context.Context) {
	defer p.reset()
	backoff := time.Second
	for {
		var ev q.MovieEvent
		select {
		case <-ctx.Done():
			return
		case ev = <-p.events:
		}
		for {
			err := p.send(ctx, ev)
			if err == nil {
				backoff = time.Second
				break
			}
			log.Printf("rabbitmq: publish %s for movie %d failed: %v; retrying in %s", ev.Type, ev.MovieID, err, backoff)
			p.reset()
			if !sleep(ctx, backoff) {
				return
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
		}
	}
}

func (p *Publisher) connect() error {
	conn, err := amqp.DialConfig(p.URL, amqp.Config{
		Dial: amqp.DefaultDial(p.DialTimeout),
	})
	if err != nil {
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return err
	}
	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		q.MovieEventsQueue, // name
		true,               // durable
		false,              // autoDelete
		false,              // exclusive
		false,              // noWait
		nil,                // args
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return err
	}
	p.conn, p.ch = conn, ch
	return nil
}

func (p *Publisher) send(ctx context.Context, event q.MovieEvent) error {
	if p.ch == nil || p.ch.IsClosed() {
		p.reset()
		if err := p.connect(); err != nil {
			return err
		}
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Type:         event.Type,
		Body:         body,
	}

	pctx, cancel := context.WithTimeout(ctx, p.DialTimeout)
	defer cancel()
	return p.ch.PublishWithContext(pctx,
		"",                 // default exchange
		q.MovieEventsQueue, // routing key = queue name
		false,              // mandatory
		false,              // immediate
		pub,
	)
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

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
