// Package notifications adapts the event bus to per-user alert streams.
// One subscription exists per live connection; a user with several open tabs
// or devices holds several subscriptions, each receiving its own copy of
// every event addressed to that user.
package notifications

import (
	"dentlab/internal/core/domain/model/kernel"
	"dentlab/internal/eventbus"
)

// Gateway hands out per-user subscriptions on the alerts topic.
type Gateway struct {
	bus *eventbus.Bus
}

// NewGateway creates a gateway over the given bus.
func NewGateway(bus *eventbus.Bus) *Gateway {
	return &Gateway{bus: bus}
}

// Subscribe registers a subscription delivering only events addressed to
// userID. The caller owns the subscription and must Close it on disconnect;
// closing synchronously unregisters it from the bus and no events are
// delivered afterwards.
func (g *Gateway) Subscribe(userID kernel.UUID) *eventbus.Subscription {
	id := userID.String()
	return g.bus.Subscribe(eventbus.TopicAlerts, func(event eventbus.AlertEvent) bool {
		return event.ReceiverID == id
	})
}
