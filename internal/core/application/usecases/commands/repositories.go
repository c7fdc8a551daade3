// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"dentlab/internal/core/domain/model/kernel"
	"dentlab/internal/core/ports"
	"dentlab/internal/eventbus"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// AuditRepoFactory provides access to audit repository within a transaction.
	AuditRepoFactory interface {
		AuditRepository() ports.AuditRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions that span the order and its audit trail.
	// Used by commands that must persist a status change and its audit
	// record atomically.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   auditRepo := uow.AuditRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		AuditRepoFactory
	}

	// UoWFactory creates new unit of work instances for order+audit operations.
	UoWFactory interface {
		Create() UoW
	}
)

// AlertPublisher delivers real-time alerts to connected subscribers.
// Publishing is fire-and-forget: it happens after the transaction commits
// and a delivery failure never fails the command.
type AlertPublisher interface {
	PublishAlert(event eventbus.AlertEvent)
}

// RecipientDirectory resolves which lab-side users should receive alerts
// about clinic-initiated changes. Clinic-side recipients are derived from
// the order itself and need no directory.
type RecipientDirectory interface {
	LabRecipients(ctx context.Context) ([]kernel.UUID, error)
}
