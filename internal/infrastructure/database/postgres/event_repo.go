package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/fidc/receivables-core/internal/domain/entity"
	"github.com/fidc/receivables-core/internal/domain/ports"
)

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository builds the Event (audit trail) persistence adapter.
func NewEventRepository(db *gorm.DB) ports.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	return dbFromContext(ctx, r.db).Create(event).Error
}

func (r *eventRepository) ListByEntity(ctx context.Context, entityType, entityID string, limit, offset int) ([]*entity.Event, error) {
	var events []*entity.Event
	err := dbFromContext(ctx, r.db).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&events).Error
	return events, err
}
