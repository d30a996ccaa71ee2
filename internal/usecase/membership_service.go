package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	domainErrors "github.com/uniclubs/universe-backend/internal/domain/errors"
	"github.com/uniclubs/universe-backend/internal/domain/model"
	"github.com/uniclubs/universe-backend/internal/domain/repository"
	"github.com/uniclubs/universe-backend/internal/infrastructure/messaging"
)

// MembershipDetails is the optional profile information collected on the
// join form.
type MembershipDetails struct {
	FullName      string
	Address       string
	ContactNumber string
	Birthday      *time.Time
	Faculty       string
	Year          string
	Skills        []string
}

// MembershipService activates and removes club memberships. Paid joins are
// gated on a SUCCEEDED payment; the duplicate check and the insert run in one
// serializable transaction inside the repository so concurrent joins cannot
// both succeed.
type MembershipService struct {
	membershipRepo repository.MembershipRepository
	paymentRepo    repository.PaymentRepository
	clubRepo       repository.ClubRepository
	publisher      messaging.NotificationPublisher
	logger         *zap.Logger
}

func NewMembershipService(
	membershipRepo repository.MembershipRepository,
	paymentRepo repository.PaymentRepository,
	clubRepo repository.ClubRepository,
	publisher messaging.NotificationPublisher,
	logger *zap.Logger,
) *MembershipService {
	return &MembershipService{
		membershipRepo: membershipRepo,
		paymentRepo:    paymentRepo,
		clubRepo:       clubRepo,
		publisher:      publisher,
		logger:         logger,
	}
}

// JoinAfterPayment activates a membership backed by a completed payment.
// paymentID may be zero, in which case the most recently updated SUCCEEDED
// payment for the pair is used. An explicit payment that has not reached
// SUCCEEDED rejects the join with its current status.
func (s *MembershipService) JoinAfterPayment(ctx context.Context, userID, clubID, paymentID int64, details *MembershipDetails) (*model.ClubMembership, error) {
	if userID <= 0 || clubID <= 0 {
		return nil, fmt.Errorf("user ID and club ID are required")
	}

	payment, err := s.resolvePayment(ctx, userID, clubID, paymentID)
	if err != nil {
		return nil, err
	}

	membership, err := s.activate(ctx, userID, clubID, details)
	if err != nil {
		return nil, err
	}

	s.logger.Info("membership activated after payment",
		zap.Int64("membership_id", membership.ID),
		zap.Int64("payment_id", payment.ID),
		zap.Int64("user_id", userID),
		zap.Int64("club_id", clubID))
	return membership, nil
}

// JoinFree activates a membership for a club with no membership fee.
func (s *MembershipService) JoinFree(ctx context.Context, userID, clubID int64, details *MembershipDetails) (*model.ClubMembership, error) {
	if userID <= 0 || clubID <= 0 {
		return nil, fmt.Errorf("user ID and club ID are required")
	}

	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if club.IsPaid() {
		return nil, domainErrors.ErrPaymentRequired
	}

	membership, err := s.activate(ctx, userID, clubID, details)
	if err != nil {
		return nil, err
	}

	s.logger.Info("free membership activated",
		zap.Int64("membership_id", membership.ID),
		zap.Int64("user_id", userID),
		zap.Int64("club_id", clubID))
	return membership, nil
}

// LeaveClub removes the user's membership. The payment history is kept. The
// delete is verified afterwards; a row that survives a reported-successful
// delete is surfaced as an error rather than silently ignored.
func (s *MembershipService) LeaveClub(ctx context.Context, userID, clubID int64) error {
	membership, err := s.membershipRepo.GetByUserAndClub(ctx, userID, clubID)
	if err != nil {
		return err
	}

	if err := s.membershipRepo.Delete(ctx, membership); err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}

	stillThere, err := s.membershipRepo.Exists(ctx, userID, clubID)
	if err != nil {
		return fmt.Errorf("failed to verify membership delete: %w", err)
	}
	if stillThere {
		s.logger.Error("membership row survived delete",
			zap.Int64("membership_id", membership.ID),
			zap.Int64("user_id", userID),
			zap.Int64("club_id", clubID))
		return domainErrors.ErrDeleteNotEffective
	}

	s.publish(ctx, "membership.removed", membership)

	s.logger.Info("membership removed",
		zap.Int64("membership_id", membership.ID),
		zap.Int64("user_id", userID),
		zap.Int64("club_id", clubID))
	return nil
}

// GetUserMemberships returns all memberships for a user.
func (s *MembershipService) GetUserMemberships(ctx context.Context, userID int64) ([]*model.ClubMembership, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	return s.membershipRepo.GetByUserID(ctx, userID)
}

// GetClubMembers returns all memberships for a club.
func (s *MembershipService) GetClubMembers(ctx context.Context, clubID int64) ([]*model.ClubMembership, error) {
	if clubID <= 0 {
		return nil, fmt.Errorf("club ID is required")
	}
	return s.membershipRepo.GetByClubID(ctx, clubID)
}

// IsMember reports whether the user holds a membership in the club.
func (s *MembershipService) IsMember(ctx context.Context, userID, clubID int64) (bool, error) {
	return s.membershipRepo.Exists(ctx, userID, clubID)
}

// resolvePayment returns the payment backing a paid join. With an explicit
// paymentID the record must exist and be SUCCEEDED; without one, the most
// recently updated SUCCEEDED payment for the pair is picked.
func (s *MembershipService) resolvePayment(ctx context.Context, userID, clubID, paymentID int64) (*model.Payment, error) {
	if paymentID > 0 {
		payment, err := s.paymentRepo.GetByID(ctx, paymentID)
		if err != nil {
			return nil, err
		}
		if !payment.IsSucceeded() {
			return nil, &domainErrors.PaymentNotCompletedError{
				PaymentID: payment.ID,
				Status:    payment.Status,
			}
		}
		return payment, nil
	}

	payments, err := s.paymentRepo.GetAllByUserAndClub(ctx, userID, clubID)
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		if p.IsSucceeded() {
			return p, nil
		}
	}
	return nil, domainErrors.ErrNoSuccessfulPayment
}

func (s *MembershipService) activate(ctx context.Context, userID, clubID int64, details *MembershipDetails) (*model.ClubMembership, error) {
	membership := &model.ClubMembership{
		UserID:   userID,
		ClubID:   clubID,
		Status:   model.MembershipStatusActive,
		JoinedAt: time.Now(),
	}
	if details != nil {
		applyDetails(membership, details)
	}

	if err := s.membershipRepo.CreateExclusive(ctx, membership); err != nil {
		return nil, err
	}

	s.publish(ctx, "membership.activated", membership)
	return membership, nil
}

func applyDetails(membership *model.ClubMembership, details *MembershipDetails) {
	membership.FullName = optionalString(details.FullName)
	membership.Address = optionalString(details.Address)
	membership.ContactNumber = optionalString(details.ContactNumber)
	membership.Birthday = details.Birthday
	membership.Faculty = optionalString(details.Faculty)
	membership.Year = optionalString(details.Year)

	if len(details.Skills) > 0 {
		// Skills are stored as a JSON array in a text column.
		raw, err := json.Marshal(details.Skills)
		if err == nil {
			serialized := string(raw)
			membership.SkillsJSON = &serialized
		}
	}
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// publish emits a membership event, best effort. A notification failure never
// rolls back the membership change.
func (s *MembershipService) publish(ctx context.Context, eventType string, membership *model.ClubMembership) {
	if s.publisher == nil {
		return
	}

	err := s.publisher.PublishMembershipEvent(ctx, &messaging.MembershipEvent{
		Type:         eventType,
		UserID:       membership.UserID,
		ClubID:       membership.ClubID,
		MembershipID: membership.ID,
		OccurredAt:   time.Now(),
	})
	if err != nil {
		s.logger.Warn("failed to publish membership event",
			zap.String("event_type", eventType),
			zap.Int64("membership_id", membership.ID),
			zap.Error(err))
	}
}
