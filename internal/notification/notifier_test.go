package notification

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/stock-quote-api/internal/queue"
	"github.com/iliyamo/stock-quote-api/internal/stooq"
)

// fakePublisher records the last publish and answers with a fixed result.
type fakePublisher struct {
	result    bool
	queueName string
	payload   any
	calls     int
}

func (f *fakePublisher) Publish(_ context.Context, queueName string, payload any) bool {
	f.calls++
	f.queueName = queueName
	f.payload = payload
	return f.result
}

func TestRender_FullData(t *testing.T) {
	t.Parallel()

	body, err := Render(map[string]string{
		"symbol": "AAPL.US",
		"name":   "APPLE",
		"open":   "183.885",
		"high":   "186.28",
		"low":    "182.44",
		"close":  "185.9",
	})
	require.NoError(t, err)

	for _, want := range []string{"AAPL.US", "APPLE", "183.885", "186.28", "182.44", "185.9", "Stock Quote Information"} {
		assert.Contains(t, body, want)
	}
}

func TestRender_MissingKeysRenderEmpty(t *testing.T) {
	t.Parallel()

	// The template also references "date", which callers never set; missing
	// keys must render as empty, not fail and not leak placeholders.
	body, err := Render(map[string]string{"symbol": "AAPL.US"})
	require.NoError(t, err)
	assert.Contains(t, body, "AAPL.US")
	assert.NotContains(t, body, "no value")

	body, err = Render(map[string]string{})
	require.NoError(t, err)
	assert.NotContains(t, body, "no value")
}

func TestNotify_PublishesOneJob(t *testing.T) {
	t.Parallel()

	pub := &fakePublisher{result: true}
	n := NewNotifier(pub, "stock-api@example.com", "Stock API")

	ok := n.Notify(context.Background(), "trader@example.com", "Stock Quote Information", stooq.Quote{
		Symbol: "AAPL.US", Name: "APPLE", Open: 183.885, High: 186.28, Low: 182.44, Close: 185.9,
	})
	require.True(t, ok)
	require.Equal(t, 1, pub.calls)
	assert.Equal(t, queue.EmailQueue, pub.queueName)

	job, ok2 := pub.payload.(queue.EmailJob)
	require.True(t, ok2)
	assert.Equal(t, "trader@example.com", job.To)
	assert.Equal(t, "Stock Quote Information", job.Subject)
	assert.Equal(t, "stock-api@example.com", job.FromEmail)
	assert.Equal(t, "Stock API", job.FromName)
	assert.True(t, strings.Contains(job.Body, "AAPL.US"))
}

func TestNotify_BrokerDownReportsFalse(t *testing.T) {
	t.Parallel()

	pub := &fakePublisher{result: false}
	n := NewNotifier(pub, "stock-api@example.com", "Stock API")

	ok := n.Notify(context.Background(), "trader@example.com", "Stock Quote Information", stooq.Quote{Symbol: "AAPL.US"})
	assert.False(t, ok)
	assert.Equal(t, 1, pub.calls)
}
