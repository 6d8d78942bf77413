package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
)

// NATSStore publishes audit events onto a NATS subject so downstream
// compliance consumers can process them out of band. Publishing is fire and
// forget; NATS handles buffering and reconnects.
type NATSStore struct {
	conn    *nats.Conn
	subject string
	logger  *slog.Logger
}

// NewNATSStore connects to the given NATS URL and returns a store publishing
// to subject.
func NewNATSStore(url, subject string, logger *slog.Logger) (*NATSStore, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	logger.Info("connected to NATS audit sink", "url", url, "subject", subject)
	return &NATSStore{conn: conn, subject: subject, logger: logger}, nil
}

// Append publishes the event as JSON.
func (s *NATSStore) Append(_ context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}
	if err := s.conn.Publish(s.subject, data); err != nil {
		return fmt.Errorf("failed to publish audit event: %w", err)
	}
	return nil
}

// Close drains the connection.
func (s *NATSStore) Close() {
	if s.conn != nil {
		s.conn.Close()
	}
}
