// Package eventbus implements the in-process publish/subscribe channel that
// fans lifecycle alerts out to live subscribers.
//
// The bus is an explicitly constructed, injectable instance owned by the
// composition root; tests build isolated instances. It gives no delivery
// guarantee beyond "delivered to subscribers registered at publish time":
// events are not persisted, not replayed, and a subscriber that cannot keep
// up has events dropped rather than ever stalling the publisher.
package eventbus
