package handler

import (
	"encoding/json"

	"github.com/IBM/sarama"

	"github.com/ShahriarRefat0/Book2Door-server/pkg/kafka"
)

type Enqueuer interface {
	Enqueue(topic string, event kafka.OrderEvent) error
}

func NewEnqueuer(producer sarama.SyncProducer) Enqueuer {
	return &enqueuerImpl{
		producer: producer,
	}
}

type enqueuerImpl struct {
	producer sarama.SyncProducer
}

func (q *enqueuerImpl) Enqueue(topic string, event kafka.OrderEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{Topic: topic, Key: sarama.StringEncoder(event.OrderID), Value: sarama.StringEncoder(data)}
	if _, _, err = q.producer.SendMessage(msg); err != nil {
		return err
	}
	return nil
}
