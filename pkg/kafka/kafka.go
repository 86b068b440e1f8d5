package kafka

import (
	"time"

	"github.com/IBM/sarama"
)

type Config struct {
	Addrs []string `envconfig:"KAFKA_ADDRS" default:"localhost:9092"`
	Topic string   `envconfig:"KAFKA_ORDER_TOPIC" default:"order-events"`
}

const (
	EventOrderCommitted     = "ORDER_COMMITTED"
	EventOrderCancelled     = "ORDER_CANCELLED"
	EventOrderStatusChanged = "ORDER_STATUS_CHANGED"
)

// OrderEvent is published on every order mutation and consumed by
// downstream reporting.
type OrderEvent struct {
	Timestamp     time.Time `json:"timestamp"`
	EventType     string    `json:"event_type"`
	OrderID       string    `json:"order_id"`
	BookID        string    `json:"book_id"`
	CustomerEmail string    `json:"customer_email"`
	SellerEmail   string    `json:"seller_email"`
	Status        string    `json:"status"`
	Amount        float64   `json:"amount,omitempty"`
	TransactionID string    `json:"transaction_id,omitempty"`
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}
