package queue

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher owns a long-lived broker connection opened once at startup and
// shared by every request.  Publishing is best-effort by contract: when the
// broker is disabled by configuration or was unreachable at startup, Publish
// reports false without any network I/O and the caller carries on.
type Publisher struct {
	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher connects to the broker and declares the durable email queue.
// When enabled is false a degraded publisher is returned immediately.  A
// failed dial is logged, not fatal; the web process must come up even when
// the broker is down.
func NewPublisher(enabled bool, url string) *Publisher {
	p := &Publisher{}
	if !enabled {
		return p
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return p
	}
	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		_ = conn.Close()
		return p
	}
	// Durable so jobs survive broker restarts until acknowledged.
	if _, err := ch.QueueDeclare(EmailQueue, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		_ = ch.Close()
		_ = conn.Close()
		return p
	}
	p.conn = conn
	p.ch = ch
	return p
}

// Publish enqueues one persistent JSON message on the named queue.  It
// returns true only when the broker accepted the message; every failure
// path is logged and swallowed into false.
func (p *Publisher) Publish(ctx context.Context, queueName string, payload any) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == nil {
		return false
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("rabbitmq: marshal payload failed: %v", err)
		return false
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := p.ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return false
	}
	return true
}

// Close releases the channel and connection.  Safe on a degraded publisher.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
