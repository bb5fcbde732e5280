// Package kafka publishes clean tickets to the dashboard feed topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/traffydata/ticket-etl/internal/domain"
)

// Writer produces clean tickets to a Kafka topic as JSON messages.
// It implements pipeline.Loader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured feed topic.
func NewWriter(brokers []string, topic string, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Load serializes and publishes the full clean record set in a single
// WriteMessages call so the export stays all-or-nothing.
func (w *Writer) Load(ctx context.Context, tickets []domain.CleanTicket) error {
	if len(tickets) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(tickets))
	for i := range tickets {
		msg, err := serializeToMessage(tickets[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish clean tickets: %w", err)
	}
	w.logger.Info("clean tickets published", "topic", w.writer.Topic, "count", len(tickets))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a CleanTicket into a Kafka message keyed by
// ticket ID so replays land on the same partition.
func serializeToMessage(ticket domain.CleanTicket) (kafkago.Message, error) {
	data, err := json.Marshal(ticket)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize ticket %q: %w", ticket.TicketID, err)
	}
	return kafkago.Message{
		Key:   []byte(ticket.TicketID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "district", Value: []byte(ticket.District)},
			{Key: "state", Value: []byte(ticket.State)},
		},
	}, nil
}
