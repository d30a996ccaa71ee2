package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/uniclubs/universe-backend/internal/domain/model"
	"github.com/uniclubs/universe-backend/internal/domain/repository"
)

// ClubService manages club records.
type ClubService struct {
	clubRepo repository.ClubRepository
	logger   *zap.Logger
}

func NewClubService(clubRepo repository.ClubRepository, logger *zap.Logger) *ClubService {
	return &ClubService{
		clubRepo: clubRepo,
		logger:   logger,
	}
}

func (s *ClubService) CreateClub(ctx context.Context, club *model.Club) error {
	if club == nil {
		return fmt.Errorf("club is required")
	}
	if club.Name == "" {
		return fmt.Errorf("club name is required")
	}
	if club.MembershipFee.IsNegative() {
		return fmt.Errorf("membership fee cannot be negative")
	}

	if err := s.clubRepo.Create(ctx, club); err != nil {
		return err
	}

	s.logger.Info("club created",
		zap.Int64("club_id", club.ID),
		zap.String("name", club.Name))
	return nil
}

func (s *ClubService) GetClub(ctx context.Context, id int64) (*model.Club, error) {
	if id <= 0 {
		return nil, fmt.Errorf("club ID is required")
	}
	return s.clubRepo.GetByID(ctx, id)
}

func (s *ClubService) GetClubsByAdmin(ctx context.Context, adminID int64) ([]*model.Club, error) {
	if adminID <= 0 {
		return nil, fmt.Errorf("admin ID is required")
	}
	return s.clubRepo.GetByAdminID(ctx, adminID)
}

func (s *ClubService) SearchClubs(ctx context.Context, name string) ([]*model.Club, error) {
	if name == "" {
		return s.clubRepo.GetAll(ctx)
	}
	return s.clubRepo.SearchByName(ctx, name)
}

func (s *ClubService) UpdateClub(ctx context.Context, club *model.Club) error {
	if club == nil || club.ID <= 0 {
		return fmt.Errorf("club ID is required")
	}
	if club.MembershipFee.IsNegative() {
		return fmt.Errorf("membership fee cannot be negative")
	}

	// Make sure the record exists so a typo'd ID is a not-found, not an upsert.
	if _, err := s.clubRepo.GetByID(ctx, club.ID); err != nil {
		return err
	}

	return s.clubRepo.Update(ctx, club)
}

func (s *ClubService) DeleteClub(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("club ID is required")
	}

	if _, err := s.clubRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.clubRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("club deleted", zap.Int64("club_id", id))
	return nil
}
