package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/shopflow/checkout/internal/config"
	kafkax "github.com/shopflow/checkout/internal/kafka"
	"github.com/shopflow/checkout/internal/mailer"
	"github.com/shopflow/checkout/internal/orders"
	"github.com/shopflow/checkout/internal/redisx"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &mailer.Service{
		Sender:      mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom),
		Redis:       rdb,
		ServiceName: cfg.ServiceName + "-mailer",
	}

	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.MailerGroup, orders.TopicOrderPlaced, cfg.MailerWorkers)

	go func() {
		log.Printf("mailer consumer started: group=%s topic=%s workers=%d",
			cfg.MailerGroup, orders.TopicOrderPlaced, cfg.MailerWorkers)
		if err := cons.Start(ctx, svc.HandleOrderPlaced); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	log.Println("shutting down mailer...")
	cancel()
}
