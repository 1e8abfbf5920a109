// Package queue defines message payloads exchanged over the message broker
// and the publisher/consumer pair that moves them.
package queue

// EmailQueue is the durable queue carrying notification jobs from the web
// process to the consumer.
const EmailQueue = "email_queue"

// DeadLetterQueue receives jobs the consumer gave up on when the
// dead-letter failure policy is active.
const DeadLetterQueue = EmailQueue + ".dead"

// EmailJob is one queued delivery.  It is fully self-contained: the consumer
// can build and send the mail without touching the database.  The JSON field
// names are the broker wire format and must not change.
type EmailJob struct {
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	FromEmail string `json:"from_email"`
	FromName  string `json:"from_name"`
}
