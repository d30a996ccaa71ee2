package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/uniclubs/universe-backend/internal/domain/model"
	domainErrors "github.com/uniclubs/universe-backend/internal/domain/errors"
	domainRepo "github.com/uniclubs/universe-backend/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)


type eventRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB, logger *zap.Logger) domainRepo.EventRepository {
	return &eventRepository{
		db:     db,
		logger: logger,
	}
}

func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		r.logger.Error("Failed to create event", zap.String("title", event.Title), zap.Error(err))
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	var event model.Event

	err := r.db.WithContext(ctx).First(&event, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return &event, nil
}

func (r *eventRepository) GetAll(ctx context.Context) ([]*model.Event, error) {
	var events []*model.Event

	if err := r.db.WithContext(ctx).Order("starts_at").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return events, nil
}

func (r *eventRepository) GetByClubID(ctx context.Context, clubID int64) ([]*model.Event, error) {
	var events []*model.Event

	err := r.db.WithContext(ctx).
		Where("club_id = ?", clubID).
		Order("starts_at").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list events by club: %w", err)
	}

	return events, nil
}

func (r *eventRepository) Update(ctx context.Context, event *model.Event) error {
	if err := r.db.WithContext(ctx).Save(event).Error; err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.Event{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete event: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrEventNotFound
	}
	return nil
}
