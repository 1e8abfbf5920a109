package main // Entry point for the email consumer process

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/iliyamo/stock-quote-api/internal/config"
	"github.com/iliyamo/stock-quote-api/internal/mailer"
	"github.com/iliyamo/stock-quote-api/internal/queue"
)

// The consumer is deployed separately from the API and shares nothing with
// it but the broker and the environment.  A broker that cannot be reached at
// startup is fatal; restarts are the job of external process management.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	var sender queue.Sender = mailer.Discard{}
	if cfg.MailerEnabled {
		m, err := mailer.NewFromConfig(cfg)
		if err != nil {
			log.Fatalf("mailer: %v", err)
		}
		sender = m
	} else {
		log.Printf("MAILER_ENABLED=false: dequeued mails will be dropped")
	}
	policy, err := queue.ParseFailurePolicy(cfg.ConsumerFailurePolicy)
	if err != nil {
		log.Fatalf("consumer: %v", err)
	}

	c := &queue.Consumer{
		URL:    cfg.AMQPURL(),
		Sender: sender,
		Policy: policy,
	}
	if err := c.Run(); err != nil {
		log.Fatalf("consumer: %v", err)
	}
}
