package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	domainErrors "github.com/uniclubs/universe-backend/internal/domain/errors"
	"github.com/uniclubs/universe-backend/internal/domain/model"
	domainRepo "github.com/uniclubs/universe-backend/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Postgres error codes relevant to the serializable join transaction.
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
)

type membershipRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *gorm.DB, logger *zap.Logger) domainRepo.MembershipRepository {
	return &membershipRepository{
		db:     db,
		logger: logger,
	}
}

// CreateExclusive checks for an existing membership and inserts the new one
// in a single SERIALIZABLE transaction, so two concurrent joins for the same
// (user, club) serialize instead of both passing the check. The unique index
// on (user_id, club_id) is the final backstop; any conflict surfacing from
// the database is translated to ErrAlreadyMember.
func (r *membershipRepository) CreateExclusive(ctx context.Context, membership *model.ClubMembership) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.ClubMembership{}).
			Where("user_id = ? AND club_id = ?", membership.UserID, membership.ClubID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check existing membership: %w", err)
		}
		if count > 0 {
			return domainErrors.ErrAlreadyMember
		}

		return tx.Create(membership).Error
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyMember) {
			return domainErrors.ErrAlreadyMember
		}
		if isMembershipConflict(err) {
			r.logger.Info("Concurrent join resolved by database constraint",
				zap.Int64("user_id", membership.UserID),
				zap.Int64("club_id", membership.ClubID))
			return domainErrors.ErrAlreadyMember
		}
		r.logger.Error("Failed to create membership",
			zap.Int64("user_id", membership.UserID),
			zap.Int64("club_id", membership.ClubID),
			zap.Error(err))
		return fmt.Errorf("failed to create membership: %w", err)
	}

	return nil
}

// isMembershipConflict reports whether err is a unique violation or a
// serialization failure, both of which mean a competing join won the race.
func isMembershipConflict(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation || pgErr.Code == pgSerializationFailure
	}
	return false
}

func (r *membershipRepository) GetByUserAndClub(ctx context.Context, userID, clubID int64) (*model.ClubMembership, error) {
	var membership model.ClubMembership

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND club_id = ?", userID, clubID).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrMembershipNotFound
		}
		r.logger.Error("Failed to get membership",
			zap.Int64("user_id", userID),
			zap.Int64("club_id", clubID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	return &membership, nil
}

func (r *membershipRepository) GetByUserID(ctx context.Context, userID int64) ([]*model.ClubMembership, error) {
	var memberships []*model.ClubMembership

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&memberships).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships by user: %w", err)
	}

	return memberships, nil
}

func (r *membershipRepository) GetByClubID(ctx context.Context, clubID int64) ([]*model.ClubMembership, error) {
	var memberships []*model.ClubMembership

	err := r.db.WithContext(ctx).
		Where("club_id = ?", clubID).
		Find(&memberships).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships by club: %w", err)
	}

	return memberships, nil
}

func (r *membershipRepository) Exists(ctx context.Context, userID, clubID int64) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.ClubMembership{}).
		Where("user_id = ? AND club_id = ?", userID, clubID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}

	return count > 0, nil
}

func (r *membershipRepository) Delete(ctx context.Context, membership *model.ClubMembership) error {
	if err := r.db.WithContext(ctx).Delete(membership).Error; err != nil {
		r.logger.Error("Failed to delete membership",
			zap.Int64("membership_id", membership.ID),
			zap.Error(err))
		return fmt.Errorf("failed to delete membership: %w", err)
	}
	return nil
}
