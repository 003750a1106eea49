package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/shopflow/checkout/internal/catalog"
	"github.com/shopflow/checkout/internal/config"
	"github.com/shopflow/checkout/internal/httpx"
	kafkax "github.com/shopflow/checkout/internal/kafka"
	"github.com/shopflow/checkout/internal/orders"
	"github.com/shopflow/checkout/internal/postgres"
	"github.com/shopflow/checkout/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderPlaced, 1024)
	prod.Start(ctx)

	svc := &orders.Service{
		Catalog:  &catalog.Repo{DB: db},
		Orders:   &orders.Repo{DB: db},
		Notifier: &orders.KafkaNotifier{Producer: prod, Service: cfg.ServiceName},
	}

	router := httpx.NewRouter()
	oh := &httpx.OrdersHandler{
		Service: svc,
		Catalog: &catalog.Repo{DB: db},
		Redis:   rdb,
	}
	oh.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close() // flush remaining events, then close the writer
	prod.WaitClosed()
}
