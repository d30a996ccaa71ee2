package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/uniclubs/universe-backend/internal/domain/model"
	"github.com/uniclubs/universe-backend/internal/domain/repository"
)

// EventService manages club event listings.
type EventService struct {
	eventRepo repository.EventRepository
	clubRepo  repository.ClubRepository
	logger    *zap.Logger
}

func NewEventService(eventRepo repository.EventRepository, clubRepo repository.ClubRepository, logger *zap.Logger) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		clubRepo:  clubRepo,
		logger:    logger,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, event *model.Event) error {
	if event == nil {
		return fmt.Errorf("event is required")
	}
	if event.Title == "" {
		return fmt.Errorf("event title is required")
	}
	if event.StartsAt.IsZero() {
		return fmt.Errorf("event start time is required")
	}
	if event.EndsAt != nil && event.EndsAt.Before(event.StartsAt) {
		return fmt.Errorf("event end time cannot precede start time")
	}

	// Events must belong to an existing club.
	if _, err := s.clubRepo.GetByID(ctx, event.ClubID); err != nil {
		return err
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return err
	}

	s.logger.Info("event created",
		zap.Int64("event_id", event.ID),
		zap.Int64("club_id", event.ClubID))
	return nil
}

func (s *EventService) GetEvent(ctx context.Context, id int64) (*model.Event, error) {
	if id <= 0 {
		return nil, fmt.Errorf("event ID is required")
	}
	return s.eventRepo.GetByID(ctx, id)
}

func (s *EventService) ListEvents(ctx context.Context) ([]*model.Event, error) {
	return s.eventRepo.GetAll(ctx)
}

func (s *EventService) GetClubEvents(ctx context.Context, clubID int64) ([]*model.Event, error) {
	if clubID <= 0 {
		return nil, fmt.Errorf("club ID is required")
	}
	return s.eventRepo.GetByClubID(ctx, clubID)
}

func (s *EventService) UpdateEvent(ctx context.Context, event *model.Event) error {
	if event == nil || event.ID <= 0 {
		return fmt.Errorf("event ID is required")
	}
	if event.EndsAt != nil && event.EndsAt.Before(event.StartsAt) {
		return fmt.Errorf("event end time cannot precede start time")
	}

	if _, err := s.eventRepo.GetByID(ctx, event.ID); err != nil {
		return err
	}

	return s.eventRepo.Update(ctx, event)
}

func (s *EventService) DeleteEvent(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("event ID is required")
	}

	if _, err := s.eventRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return s.eventRepo.Delete(ctx, id)
}
