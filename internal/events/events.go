// Package events publishes employee lifecycle notifications to a message
// broker. The feed is optional: when no backend is configured the rest of
// the system runs without it.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/empgraph/apiserver/config"
	"github.com/empgraph/apiserver/types"
)

// Employee event types carried in EmployeeEvent.Type.
const (
	TypeEmployeeCreated = "employee.created"
	TypeEmployeeUpdated = "employee.updated"
	TypeEmployeeDeleted = "employee.deleted"
)

// EmployeeEvent is the JSON payload published for every employee mutation.
type EmployeeEvent struct {
	Type       string    `json:"type"`
	EmployeeID string    `json:"employee_id"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Message represents a broker-agnostic payload delivered to subscribers.
type Message struct {
	ID         string
	Data       []byte
	Attributes map[string]string
}

// Handler processes a message. Return an error to signal a retry/nack.
type Handler func(ctx context.Context, msg Message) error

// Backend defines the broker-agnostic operations used by the feed.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Subscribe(ctx context.Context, channel string, handler Handler) error
	Close() error
}

// Feed publishes and consumes employee events on a fixed channel.
type Feed struct {
	backend Backend
	channel string
}

// New constructs a Feed from config. It returns (nil, nil) when no event
// backend is configured.
func New(ctx context.Context, cfg config.EventsConfig) (*Feed, error) {
	var backend Backend
	switch cfg.Backend {
	case "":
		return nil, nil
	case config.EventBackendRabbitMQ:
		client, err := NewRabbitMQClient(cfg.RabbitMQ)
		if err != nil {
			return nil, err
		}
		backend = client
	case config.EventBackendPubSub:
		client, err := NewPubSubClient(ctx, cfg.PubSub)
		if err != nil {
			return nil, err
		}
		backend = client
	default:
		return nil, fmt.Errorf("unknown event backend %q", cfg.Backend)
	}

	channel := cfg.Channel
	if channel == "" {
		channel = "employee-events"
	}
	return &Feed{backend: backend, channel: channel}, nil
}

// NewFeed wraps an already-constructed backend; used by tests.
func NewFeed(backend Backend, channel string) *Feed {
	return &Feed{backend: backend, channel: channel}
}

// Created publishes an employee.created event.
func (f *Feed) Created(ctx context.Context, employee types.Employee) error {
	return f.publish(ctx, TypeEmployeeCreated, employee)
}

// Updated publishes an employee.updated event.
func (f *Feed) Updated(ctx context.Context, employee types.Employee) error {
	return f.publish(ctx, TypeEmployeeUpdated, employee)
}

// Deleted publishes an employee.deleted event.
func (f *Feed) Deleted(ctx context.Context, employee types.Employee) error {
	return f.publish(ctx, TypeEmployeeDeleted, employee)
}

// Tail subscribes to the feed and invokes fn for every decoded event.
// Undecodable messages are acked and skipped.
func (f *Feed) Tail(ctx context.Context, fn func(EmployeeEvent)) error {
	return f.backend.Subscribe(ctx, f.channel, func(ctx context.Context, msg Message) error {
		var event EmployeeEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			return nil
		}
		fn(event)
		return nil
	})
}

// Close closes the underlying backend.
func (f *Feed) Close() error {
	return f.backend.Close()
}

func (f *Feed) publish(ctx context.Context, eventType string, employee types.Employee) error {
	event := EmployeeEvent{
		Type:       eventType,
		EmployeeID: employee.ID.Hex(),
		Email:      employee.Email,
		OccurredAt: time.Now().UTC(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = f.backend.Publish(ctx, f.channel, data, map[string]string{"type": eventType})
	return err
}
