package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/shopflow/checkout/internal/kafka"
	"github.com/shopflow/checkout/internal/orders"
	"github.com/shopflow/checkout/internal/redisx"
)

// Service consumes OrderPlaced events and sends the matching notification.
type Service struct {
	Sender      Sender
	Redis       *redis.Client
	ServiceName string
}

// HandleOrderPlaced is the consumer handler. Returning nil commits the
// offset: a failed send is logged and still committed, because notification
// is best-effort and the order's fate was sealed at persistence.
func (s *Service) HandleOrderPlaced(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderPlaced {
		return nil
	}

	if s.Redis != nil {
		dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
		if seen, _ := redisx.Exists(ctx, s.Redis, dkey); seen {
			return nil
		}
		_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
	}

	p, err := kafkax.UnwrapPayload[orders.OrderPlacedPayload](env.Payload)
	if err != nil {
		return err
	}

	subject, html := Compose(p)
	if err := s.Sender.Send(p.CustomerInfo.Email, subject, html); err != nil {
		log.Printf("order %s: send mail to %s: %v", p.OrderNumber, p.CustomerInfo.Email, err)
	}
	return nil
}
