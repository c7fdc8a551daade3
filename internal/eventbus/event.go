package eventbus

import "time"

// Alert kinds carried on the bus.
const (
	// KindOrderStatusChanged is published after every committed status transition.
	KindOrderStatusChanged = "ORDER_STATUS_CHANGED"

	// KindOrderWorkOverdue is published by the reminder job for orders sitting
	// in production past the configured threshold.
	KindOrderWorkOverdue = "ORDER_WORK_OVERDUE"
)

// TopicAlerts is the bus topic carrying all user-facing alert events.
const TopicAlerts = "alerts"

// AlertEvent is one transient notification addressed to a single user.
// It is created at publish time, delivered at most once per live subscriber,
// and discarded afterwards; the bus keeps no history.
type AlertEvent struct {
	Kind       string            `json:"kind"`
	OrderID    string            `json:"orderId"`
	SenderID   string            `json:"senderId"`
	ReceiverID string            `json:"receiverId"`
	Payload    map[string]string `json:"payload,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
}
