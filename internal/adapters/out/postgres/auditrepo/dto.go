// Package auditrepo persists the append-only audit trail of order changes.
package auditrepo

import (
	"time"

	"dentlab/internal/core/domain/model/audit"

	"github.com/google/uuid"
)

// RecordDTO represents the database structure for persisting audit records.
// Rows are insert-only; there are deliberately no update or delete paths.
type RecordDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EntityID   uuid.UUID `gorm:"type:uuid;index"`
	Action     string    `gorm:"type:varchar(32)"`
	OldValue   string    `gorm:"type:varchar(64)"`
	NewValue   string    `gorm:"type:varchar(64)"`
	ActorID    uuid.UUID `gorm:"type:uuid"`
	OccurredAt time.Time
}

// TableName specifies the database table name for audit records.
func (RecordDTO) TableName() string {
	return "audit_records"
}

// fromDomain converts an audit record to its database representation.
func fromDomain(record *audit.Record) RecordDTO {
	return RecordDTO{
		ID:         record.ID().Bytes(),
		EntityID:   record.EntityID().Bytes(),
		Action:     record.Action(),
		OldValue:   record.OldValue(),
		NewValue:   record.NewValue(),
		ActorID:    record.ActorID().Bytes(),
		OccurredAt: record.OccurredAt(),
	}
}
