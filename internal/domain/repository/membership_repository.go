package repository

import (
	"context"

	"github.com/uniclubs/universe-backend/internal/domain/model"
)

// MembershipRepository persists club memberships.
type MembershipRepository interface {
	// CreateExclusive runs the duplicate check and the insert in one
	// serializable transaction. It returns domain ErrAlreadyMember both when
	// the check finds an existing membership and when the database rejects a
	// concurrent insert via the uniqueness constraint.
	CreateExclusive(ctx context.Context, membership *model.ClubMembership) error

	GetByUserAndClub(ctx context.Context, userID, clubID int64) (*model.ClubMembership, error)
	GetByUserID(ctx context.Context, userID int64) ([]*model.ClubMembership, error)
	GetByClubID(ctx context.Context, clubID int64) ([]*model.ClubMembership, error)
	Exists(ctx context.Context, userID, clubID int64) (bool, error)

	// Delete hard-deletes the membership row.
	Delete(ctx context.Context, membership *model.ClubMembership) error
}
