// Package notification renders stock-quote emails and enqueues them for the
// consumer.  Everything here is best-effort: a failed enqueue is reported as
// false, never as an error that could fail the caller's request.
package notification

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"strconv"

	"github.com/iliyamo/stock-quote-api/internal/queue"
	"github.com/iliyamo/stock-quote-api/internal/stooq"
)

//go:embed templates/stock_quote.html
var templateFS embed.FS

// missingkey=zero keeps rendering total: keys absent from the data map come
// out as empty strings instead of failing the render.
var stockQuoteTmpl = template.Must(
	template.New("stock_quote.html").
		Option("missingkey=zero").
		ParseFS(templateFS, "templates/stock_quote.html"))

// Publisher is the slice of queue.Publisher the notifier needs; tests
// substitute fakes.
type Publisher interface {
	Publish(ctx context.Context, queueName string, payload any) bool
}

// Notifier turns quotes into queued email jobs.
type Notifier struct {
	Pub       Publisher
	FromEmail string // sender defaults applied to every job
	FromName  string
}

func NewNotifier(pub Publisher, fromEmail, fromName string) *Notifier {
	return &Notifier{Pub: pub, FromEmail: fromEmail, FromName: fromName}
}

// Notify renders the quote into the email template and publishes one job on
// the durable email queue.  It returns false when the broker is disabled or
// unreachable; the caller treats that as a degraded success.
func (n *Notifier) Notify(ctx context.Context, recipient, subject string, q stooq.Quote) bool {
	body, err := Render(map[string]string{
		"symbol": q.Symbol,
		"name":   q.Name,
		"open":   formatPrice(q.Open),
		"high":   formatPrice(q.High),
		"low":    formatPrice(q.Low),
		"close":  formatPrice(q.Close),
	})
	if err != nil {
		return false
	}
	job := queue.EmailJob{
		To:        recipient,
		Subject:   subject,
		Body:      body,
		FromEmail: n.FromEmail,
		FromName:  n.FromName,
	}
	return n.Pub.Publish(ctx, queue.EmailQueue, job)
}

// Render produces the HTML body for a stock-quote mail from a flat data
// map.  Missing keys render as empty; well-formed input never errors.
func Render(data map[string]string) (string, error) {
	var buf bytes.Buffer
	if err := stockQuoteTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatPrice(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
