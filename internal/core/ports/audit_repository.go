package ports

import (
	"context"

	"dentlab/internal/core/domain/model/audit"
)

// AuditRepository defines the append-only persistence contract for audit
// records. Records are immutable: there is deliberately no update or delete.
type AuditRepository interface {
	// Append persists a new audit record.
	Append(ctx context.Context, record *audit.Record) error
}
