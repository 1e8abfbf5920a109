package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
)

func TestParseFailurePolicy(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    FailurePolicy
		wantErr bool
	}{
		{"", PolicyDrop, false},
		{"drop", PolicyDrop, false},
		{"dead-letter", PolicyDeadLetter, false},
		{"requeue", PolicyRequeue, false},
		{"retry", "", true},
		{"DROP", "", true},
	}
	for _, tc := range cases {
		got, err := ParseFailurePolicy(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseFailurePolicy(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseFailurePolicy(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseFailurePolicy(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// fakeAck records the acknowledgments a delivery receives.
type fakeAck struct {
	acks    int
	nacks   int
	requeue bool
}

func (f *fakeAck) Ack(uint64, bool) error { f.acks++; return nil }

func (f *fakeAck) Nack(_ uint64, _ bool, requeue bool) error {
	f.nacks++
	f.requeue = requeue
	return nil
}

func (f *fakeAck) Reject(_ uint64, requeue bool) error {
	f.nacks++
	f.requeue = requeue
	return nil
}

// stubSender returns a fixed error and records what it was asked to send.
type stubSender struct {
	err  error
	to   string
	from string
	name string
}

func (s *stubSender) Send(_ context.Context, to, _, _, fromEmail, fromName string) error {
	s.to = to
	s.from = fromEmail
	s.name = fromName
	return s.err
}

func delivery(t *testing.T, ack *fakeAck, job EmailJob) amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(job)
	if err != nil {
		t.Fatalf("marshal job: %v", err)
	}
	return amqp.Delivery{Acknowledger: ack, Body: body}
}

func TestHandle_AcksSuccessfulSend(t *testing.T) {
	t.Parallel()

	ack := &fakeAck{}
	sender := &stubSender{}
	c := &Consumer{Sender: sender, Policy: PolicyDrop}

	c.handle(nil, delivery(t, ack, EmailJob{To: "user@example.com", Subject: "AAPL"}))

	if ack.acks != 1 || ack.nacks != 0 {
		t.Fatalf("successful send: acks=%d nacks=%d, want 1/0", ack.acks, ack.nacks)
	}
	if sender.to != "user@example.com" {
		t.Fatalf("sender got recipient %q", sender.to)
	}
	if sender.from != "stock-api@example.com" || sender.name != "Stock API" {
		t.Fatalf("empty sender fields not defaulted: %q / %q", sender.from, sender.name)
	}
}

// A failed send under the drop policy is still acknowledged: the job is
// logged and lost, never redelivered.
func TestHandle_DropAcksFailedSend(t *testing.T) {
	t.Parallel()

	ack := &fakeAck{}
	c := &Consumer{Sender: &stubSender{err: errors.New("smtp down")}, Policy: PolicyDrop}

	c.handle(nil, delivery(t, ack, EmailJob{To: "user@example.com"}))

	if ack.acks != 1 {
		t.Fatalf("drop policy must ack a failed send, acks=%d", ack.acks)
	}
	if ack.nacks != 0 {
		t.Fatalf("drop policy must not nack, nacks=%d", ack.nacks)
	}
}

func TestHandle_RequeueNacksFailedSend(t *testing.T) {
	t.Parallel()

	ack := &fakeAck{}
	c := &Consumer{Sender: &stubSender{err: errors.New("smtp down")}, Policy: PolicyRequeue}

	c.handle(nil, delivery(t, ack, EmailJob{To: "user@example.com"}))

	if ack.nacks != 1 || ack.acks != 0 {
		t.Fatalf("requeue policy: acks=%d nacks=%d, want 0/1", ack.acks, ack.nacks)
	}
	if !ack.requeue {
		t.Fatalf("requeue policy must nack with requeue=true")
	}
}

// An undecodable body can never succeed, so it is acknowledged away rather
// than redelivered, even before the sender is consulted.
func TestHandle_UndecodableBodyAcked(t *testing.T) {
	t.Parallel()

	ack := &fakeAck{}
	sender := &stubSender{}
	c := &Consumer{Sender: sender, Policy: PolicyDrop}

	c.handle(nil, amqp.Delivery{Acknowledger: ack, Body: []byte("not json")})

	if ack.acks != 1 || ack.nacks != 0 {
		t.Fatalf("bad body: acks=%d nacks=%d, want 1/0", ack.acks, ack.nacks)
	}
	if sender.to != "" {
		t.Fatalf("sender must not be called for an undecodable body")
	}
}
