package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// FailurePolicy names what the consumer does with a job whose send failed.
type FailurePolicy string

const (
	// PolicyDrop logs the error and acknowledges anyway: at-most-once,
	// failed deliveries are lost.  This is the historical behavior and the
	// default.
	PolicyDrop FailurePolicy = "drop"
	// PolicyDeadLetter copies the job to the dead-letter queue before
	// acknowledging, preserving it for inspection.
	PolicyDeadLetter FailurePolicy = "dead-letter"
	// PolicyRequeue negatively acknowledges with requeue so the broker
	// redelivers the job.
	PolicyRequeue FailurePolicy = "requeue"
)

// ParseFailurePolicy validates a policy string from configuration.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch FailurePolicy(s) {
	case PolicyDrop, PolicyDeadLetter, PolicyRequeue:
		return FailurePolicy(s), nil
	case "":
		return PolicyDrop, nil
	}
	return "", fmt.Errorf("unknown failure policy %q", s)
}

// Sender delivers one rendered email.  The SMTP mailer implements it; tests
// substitute fakes.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody, fromEmail, fromName string) error
}

// Consumer is the long-running email worker.  It pulls one job at a time
// (prefetch 1), sends it over SMTP and applies the failure policy.  It has
// no internal concurrency; throughput scales by running more processes that
// compete for the same queue.
type Consumer struct {
	URL    string
	Sender Sender
	Policy FailurePolicy
}

// Run connects to the broker and consumes until the delivery channel
// closes.  The initial connection failure is returned to the caller, which
// treats it as fatal; there is no retry-with-backoff for startup.
func (c *Consumer) Run() error {
	conn, err := amqp.Dial(c.URL)
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(EmailQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	if c.Policy == PolicyDeadLetter {
		if _, err := ch.QueueDeclare(DeadLetterQueue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("dead-letter queue declare: %w", err)
		}
	}

	// Prefetch 1: at most one unacknowledged job in flight, which bounds
	// concurrent SMTP usage to one send per consumer process.
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}
	msgs, err := ch.Consume(EmailQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	log.Printf("email-consumer: waiting for messages on %s (policy=%s)", EmailQueue, c.Policy)
	for d := range msgs {
		c.handle(ch, d)
	}
	return errors.New("deliveries channel closed")
}

// handle processes one delivery end to end, including its acknowledgment.
func (c *Consumer) handle(ch *amqp.Channel, d amqp.Delivery) {
	var job EmailJob
	if err := json.Unmarshal(d.Body, &job); err != nil {
		// A message that cannot be decoded will never succeed; requeueing
		// it would spin forever, so it is dropped or dead-lettered.
		log.Printf("email-consumer: unmarshal failed: %v", err)
		if c.Policy == PolicyDeadLetter {
			c.deadLetter(ch, d.Body)
		}
		_ = d.Ack(false)
		return
	}
	if job.FromEmail == "" {
		job.FromEmail = "stock-api@example.com"
	}
	if job.FromName == "" {
		job.FromName = "Stock API"
	}

	log.Printf("email-consumer: received email request for %s", job.To)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err := c.Sender.Send(ctx, job.To, job.Subject, job.Body, job.FromEmail, job.FromName)
	cancel()

	if err == nil {
		log.Printf("email-consumer: email sent successfully to %s", job.To)
		_ = d.Ack(false)
		return
	}

	log.Printf("email-consumer: failed to send email to %s: %v", job.To, err)
	switch c.Policy {
	case PolicyRequeue:
		_ = d.Nack(false, true)
	case PolicyDeadLetter:
		c.deadLetter(ch, d.Body)
		_ = d.Ack(false)
	default: // PolicyDrop: the failure is logged and the job is gone.
		_ = d.Ack(false)
	}
}

func (c *Consumer) deadLetter(ch *amqp.Channel, body []byte) {
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ch.PublishWithContext(ctx, "", DeadLetterQueue, false, false, pub); err != nil {
		log.Printf("email-consumer: dead-letter publish failed: %v", err)
	}
}
