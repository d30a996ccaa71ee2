package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/uniclubs/universe-backend/internal/domain/model"
	"github.com/uniclubs/universe-backend/internal/domain/repository"
)

// AnnouncementService manages club and campus-wide announcements. A nil
// ClubID means the announcement is campus-wide.
type AnnouncementService struct {
	announcementRepo repository.AnnouncementRepository
	clubRepo         repository.ClubRepository
	logger           *zap.Logger
}

func NewAnnouncementService(announcementRepo repository.AnnouncementRepository, clubRepo repository.ClubRepository, logger *zap.Logger) *AnnouncementService {
	return &AnnouncementService{
		announcementRepo: announcementRepo,
		clubRepo:         clubRepo,
		logger:           logger,
	}
}

func (s *AnnouncementService) CreateAnnouncement(ctx context.Context, announcement *model.Announcement) error {
	if announcement == nil {
		return fmt.Errorf("announcement is required")
	}
	if announcement.Title == "" {
		return fmt.Errorf("announcement title is required")
	}
	if announcement.Content == "" {
		return fmt.Errorf("announcement content is required")
	}
	if announcement.AuthorID <= 0 {
		return fmt.Errorf("author ID is required")
	}

	if announcement.ClubID != nil {
		if _, err := s.clubRepo.GetByID(ctx, *announcement.ClubID); err != nil {
			return err
		}
	}

	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		return err
	}

	s.logger.Info("announcement created",
		zap.Int64("announcement_id", announcement.ID),
		zap.Int64("author_id", announcement.AuthorID))
	return nil
}

func (s *AnnouncementService) GetAnnouncement(ctx context.Context, id int64) (*model.Announcement, error) {
	if id <= 0 {
		return nil, fmt.Errorf("announcement ID is required")
	}
	return s.announcementRepo.GetByID(ctx, id)
}

func (s *AnnouncementService) ListAnnouncements(ctx context.Context) ([]*model.Announcement, error) {
	return s.announcementRepo.GetAll(ctx)
}

func (s *AnnouncementService) GetClubAnnouncements(ctx context.Context, clubID int64) ([]*model.Announcement, error) {
	if clubID <= 0 {
		return nil, fmt.Errorf("club ID is required")
	}
	return s.announcementRepo.GetByClubID(ctx, clubID)
}

func (s *AnnouncementService) UpdateAnnouncement(ctx context.Context, announcement *model.Announcement) error {
	if announcement == nil || announcement.ID <= 0 {
		return fmt.Errorf("announcement ID is required")
	}

	if _, err := s.announcementRepo.GetByID(ctx, announcement.ID); err != nil {
		return err
	}

	return s.announcementRepo.Update(ctx, announcement)
}

func (s *AnnouncementService) DeleteAnnouncement(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("announcement ID is required")
	}

	if _, err := s.announcementRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return s.announcementRepo.Delete(ctx, id)
}
