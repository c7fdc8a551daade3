package orderrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"dentlab/internal/core/domain/model/kernel"
	"dentlab/internal/core/domain/model/order"
	"dentlab/internal/core/ports"
	"dentlab/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolationCode is the postgres error code for unique constraint violations.
const uniqueViolationCode = "23505"

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order to the database.
// A unique violation on the order number surfaces as ports.ErrOrderNumberTaken
// so the allocation loop can retry with a fresh candidate.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isNumberTaken(err) {
			return ports.ErrOrderNumberTaken
		}
		return err
	}

	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateStatus persists a committed lifecycle transition.
// The write is conditional on the stored status still being expectedPrevious;
// zero affected rows means a competing transition won and
// *errs.ConcurrentModificationError is returned.
func (r *GormOrderRepository) UpdateStatus(
	ctx context.Context,
	aggregate *order.Order,
	expectedPrevious order.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := expectedPrevious.Validate(); err != nil {
		return err
	}

	updates := map[string]any{
		"status": aggregate.Status().String(),
	}
	timestamps := aggregate.LifecycleTimestamps()
	for column, value := range map[string]*time.Time{
		"submitted_at":      timestamps.SubmittedAt,
		"materials_sent_at": timestamps.MaterialsSentAt,
		"info_requested_at": timestamps.InfoRequestedAt,
		"started_at":        timestamps.StartedAt,
		"completed_at":      timestamps.CompletedAt,
		"cancelled_at":      timestamps.CancelledAt,
	} {
		if value != nil {
			updates[column] = *value
		}
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", aggregate.ID().Bytes(), expectedPrevious.String()).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConcurrentModificationError("order", aggregate.ID().String())
	}

	return nil
}

// GetStaleDrafts retrieves orders still in Draft status created before the cutoff.
func (r *GormOrderRepository) GetStaleDrafts(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND created_at < ?", order.Draft.String(), cutoff).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// isNumberTaken reports whether err is a unique violation on the order number index.
func isNumberTaken(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == uniqueViolationCode && strings.Contains(pgErr.ConstraintName, "number")
}
