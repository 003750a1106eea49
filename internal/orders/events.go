package orders

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/shopflow/checkout/internal/kafka"
)

const (
	EventOrderPlaced = "OrderPlaced"

	TopicOrderPlaced = "orders.placed"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// OrderPlacedPayload carries everything the mailer needs to render a
// notification without querying the store.
type OrderPlacedPayload struct {
	OrderNumber  string       `json:"order_number"`
	Status       Status       `json:"status"`
	ProductTitle string       `json:"product_title"`
	ProductPrice string       `json:"product_price"`
	Variant      string       `json:"variant"`
	Quantity     int          `json:"quantity"`
	CustomerInfo CustomerInfo `json:"customer_info"`
}

// PartitionKey keeps all events for one order on the same partition.
func PartitionKey(orderNumber string) []byte { return []byte(orderNumber) }

// KafkaNotifier publishes OrderPlaced envelopes. Publish is async and
// best-effort; delivery failures surface only in the producer's log.
type KafkaNotifier struct {
	Producer *kafkax.Producer
	Service  string
}

func (n *KafkaNotifier) OrderPlaced(ctx context.Context, o *Order) error {
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventOrderPlaced,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      n.Service,
		CorrelationID: o.OrderNumber,
		Payload: kafkax.MustMarshal(OrderPlacedPayload{
			OrderNumber:  o.OrderNumber,
			Status:       o.Status,
			ProductTitle: o.Product.Title,
			ProductPrice: o.Product.Price,
			Variant:      o.Variant,
			Quantity:     o.Quantity,
			CustomerInfo: o.CustomerInfo,
		}),
	}
	n.Producer.Publish(PartitionKey(o.OrderNumber), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(EventOrderPlaced)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
	return nil
}
