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


type announcementRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewAnnouncementRepository creates a new announcement repository
func NewAnnouncementRepository(db *gorm.DB, logger *zap.Logger) domainRepo.AnnouncementRepository {
	return &announcementRepository{
		db:     db,
		logger: logger,
	}
}

func (r *announcementRepository) Create(ctx context.Context, announcement *model.Announcement) error {
	if err := r.db.WithContext(ctx).Create(announcement).Error; err != nil {
		r.logger.Error("Failed to create announcement", zap.String("title", announcement.Title), zap.Error(err))
		return fmt.Errorf("failed to create announcement: %w", err)
	}
	return nil
}

func (r *announcementRepository) GetByID(ctx context.Context, id int64) (*model.Announcement, error) {
	var announcement model.Announcement

	err := r.db.WithContext(ctx).First(&announcement, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("failed to get announcement: %w", err)
	}

	return &announcement, nil
}

func (r *announcementRepository) GetAll(ctx context.Context) ([]*model.Announcement, error) {
	var announcements []*model.Announcement

	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&announcements).Error; err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}

	return announcements, nil
}

func (r *announcementRepository) GetByClubID(ctx context.Context, clubID int64) ([]*model.Announcement, error) {
	var announcements []*model.Announcement

	err := r.db.WithContext(ctx).
		Where("club_id = ?", clubID).
		Order("created_at DESC").
		Find(&announcements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements by club: %w", err)
	}

	return announcements, nil
}

func (r *announcementRepository) Update(ctx context.Context, announcement *model.Announcement) error {
	if err := r.db.WithContext(ctx).Save(announcement).Error; err != nil {
		return fmt.Errorf("failed to update announcement: %w", err)
	}
	return nil
}

func (r *announcementRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.Announcement{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete announcement: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrAnnouncementNotFound
	}
	return nil
}
