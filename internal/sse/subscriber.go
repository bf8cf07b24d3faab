package sse

import (
	"context"

	"github.com/wrecklessracks/racks/internal/event"
	"github.com/wrecklessracks/racks/internal/logger"
)

// Subscriber forwards bus events to the hub
type Subscriber struct {
	hub *Hub
}

// NewSubscriber creates a subscriber for hub
func NewSubscriber(hub *Hub) *Subscriber {
	return &Subscriber{hub: hub}
}

// Register subscribes to every engine event type on bus
func (s *Subscriber) Register(bus event.Bus) {
	event.SubscribeAll(bus, s.forward, event.AllTypes...)
	logger.Info(LogMsgSubscriberReady, "types", len(event.AllTypes))
}

func (s *Subscriber) forward(_ context.Context, e event.Event) error {
	s.hub.Broadcast(string(e.Type), audience(e), e.Payload)
	return nil
}

// audience returns the account an event is private to, or "" when every client may see it.
// Jackpot wins are announced to everyone.
func audience(e event.Event) string {
	if e.Type == event.JackpotAwarded {
		return ""
	}
	return e.AccountID()
}
