package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

var ErrPublisherClosed = errors.New("publisher is closed")

//go:generate mockgen -source=kafka_publisher.go -destination=mock/mock_writer.go -package=mock_event
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer        Writer
	topic         string
	retryAttempts int
	closed        atomic.Bool
}

var _ Publisher = (*KafkaPublisher)(nil)

// NewKafkaWriter builds a synchronous writer; WriteMessages blocks until every broker ack.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		MaxAttempts:  3,
		Transport: &kafka.Transport{
			Dial: func(ctx context.Context, network string, address string) (net.Conn, error) {
				dialer := &kafka.Dialer{
					Timeout:   10 * time.Second,
					DualStack: true,
					KeepAlive: 30 * time.Second,
				}
				return dialer.DialContext(ctx, network, address)
			},
		},
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Error().Msgf("kafka producer error: "+msg, args...)
		}),
		Compression: kafka.Snappy,
	}
}

func NewKafkaPublisher(writer Writer, topic string, retryAttempts int) *KafkaPublisher {
	return &KafkaPublisher{
		writer:        writer,
		topic:         topic,
		retryAttempts: retryAttempts,
	}
}

// PublishOrderCreated keys the message by order id so one order always lands on one partition.
func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, evt OrderCreated) error {
	if p.closed.Load() {
		return ErrPublisherClosed
	}
	evt.Type = OrderCreatedType

	value, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(evt.OrderID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(OrderCreatedType)},
		},
	}

	for attempt := 0; attempt <= p.retryAttempts; attempt++ {
		if ctx.Err() != nil {
			return fmt.Errorf("publish %s to %s: %w", evt.Type, p.topic, ctx.Err())
		}
		err = p.writer.WriteMessages(ctx, msg)
		if err == nil {
			return nil
		}
		if !isTemporary(err) {
			break
		}
	}
	return fmt.Errorf("publish %s to %s: %w", evt.Type, p.topic, err)
}

func (p *KafkaPublisher) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.writer.Close()
}

func isTemporary(err error) bool {
	var kErr kafka.Error
	if errors.As(err, &kErr) {
		return kErr.Temporary()
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
