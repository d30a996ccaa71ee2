package repository

import (
	"context"
	"errors"
	"fmt"

	domainErrors "github.com/uniclubs/universe-backend/internal/domain/errors"
	"github.com/uniclubs/universe-backend/internal/domain/model"
	domainRepo "github.com/uniclubs/universe-backend/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type clubRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewClubRepository creates a new club repository
func NewClubRepository(db *gorm.DB, logger *zap.Logger) domainRepo.ClubRepository {
	return &clubRepository{
		db:     db,
		logger: logger,
	}
}

func (r *clubRepository) Create(ctx context.Context, club *model.Club) error {
	if err := r.db.WithContext(ctx).Create(club).Error; err != nil {
		r.logger.Error("Failed to create club", zap.String("name", club.Name), zap.Error(err))
		return fmt.Errorf("failed to create club: %w", err)
	}
	return nil
}

func (r *clubRepository) GetByID(ctx context.Context, id int64) (*model.Club, error) {
	var club model.Club

	err := r.db.WithContext(ctx).First(&club, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to get club: %w", err)
	}

	return &club, nil
}

func (r *clubRepository) GetAll(ctx context.Context) ([]*model.Club, error) {
	var clubs []*model.Club

	if err := r.db.WithContext(ctx).Order("name").Find(&clubs).Error; err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}

	return clubs, nil
}

func (r *clubRepository) GetByAdminID(ctx context.Context, adminID int64) ([]*model.Club, error) {
	var clubs []*model.Club

	err := r.db.WithContext(ctx).
		Where("admin_id = ?", adminID).
		Find(&clubs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list clubs by admin: %w", err)
	}

	return clubs, nil
}

func (r *clubRepository) SearchByName(ctx context.Context, name string) ([]*model.Club, error) {
	var clubs []*model.Club

	err := r.db.WithContext(ctx).
		Where("name ILIKE ?", "%"+name+"%").
		Order("name").
		Find(&clubs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search clubs: %w", err)
	}

	return clubs, nil
}

func (r *clubRepository) Update(ctx context.Context, club *model.Club) error {
	if err := r.db.WithContext(ctx).Save(club).Error; err != nil {
		r.logger.Error("Failed to update club", zap.Int64("club_id", club.ID), zap.Error(err))
		return fmt.Errorf("failed to update club: %w", err)
	}
	return nil
}

func (r *clubRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.Club{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete club: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrClubNotFound
	}
	return nil
}
