package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	domainErrors "github.com/uniclubs/universe-backend/internal/domain/errors"
	"github.com/uniclubs/universe-backend/internal/domain/model"
	"github.com/uniclubs/universe-backend/internal/infrastructure/messaging"
)

func newMembershipService(membershipRepo *MockMembershipRepository, paymentRepo *MockPaymentRepository, clubRepo *MockClubRepository, publisher *MockNotificationPublisher) *MembershipService {
	var p messaging.NotificationPublisher
	if publisher != nil {
		p = publisher
	}
	return NewMembershipService(membershipRepo, paymentRepo, clubRepo, p, zap.NewNop())
}

func succeededPayment(id int64) *model.Payment {
	paidAt := time.Now()
	return &model.Payment{
		ID:     id,
		UserID: 9,
		ClubID: 3,
		Status: model.PaymentStatusSucceeded,
		PaidAt: &paidAt,
	}
}

func TestJoinAfterPayment_WithExplicitPayment(t *testing.T) {
	membershipRepo := new(MockMembershipRepository)
	paymentRepo := new(MockPaymentRepository)
	clubRepo := new(MockClubRepository)
	service := newMembershipService(membershipRepo, paymentRepo, clubRepo, nil)

	paymentRepo.On("GetByID", mock.Anything, int64(17)).Return(succeededPayment(17), nil)
	membershipRepo.On("CreateExclusive", mock.Anything, mock.AnythingOfType("*model.ClubMembership")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.ClubMembership).ID = 5
		}).
		Return(nil)

	membership, err := service.JoinAfterPayment(context.Background(), 9, 3, 17, nil)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), membership.ID)
	assert.Equal(t, model.MembershipStatusActive, membership.Status)
	assert.Equal(t, int64(9), membership.UserID)
	assert.Equal(t, int64(3), membership.ClubID)
}

func TestJoinAfterPayment_PendingPaymentRejected(t *testing.T) {
	membershipRepo := new(MockMembershipRepository)
	paymentRepo := new(MockPaymentRepository)
	clubRepo := new(MockClubRepository)
	service := newMembershipService(membershipRepo, paymentRepo, clubRepo, nil)

	paymentRepo.On("GetByID", mock.Anything, int64(17)).Return(&model.Payment{
		ID:     17,
		Status: model.PaymentStatusPending,
	}, nil)

	_, err := service.JoinAfterPayment(context.Background(), 9, 3, 17, nil)

	pnc, ok := domainErrors.IsPaymentNotCompleted(err)
	assert.True(t, ok)
	assert.Equal(t, int64(17), pnc.PaymentID)
	assert.Equal(t, model.PaymentStatusPending, pnc.Status)
	membershipRepo.AssertNotCalled(t, "CreateExclusive", mock.Anything, mock.Anything)
}

func TestJoinAfterPayment_PicksLatestSucceededPayment(t *testing.T) {
	membershipRepo := new(MockMembershipRepository)
	paymentRepo := new(MockPaymentRepository)
	clubRepo := new(MockClubRepository)
	service := newMembershipService(membershipRepo, paymentRepo, clubRepo, nil)

	// Newest update first; the first FAILED attempt must be skipped.
	paymentRepo.On("GetAllByUserAndClub", mock.Anything, int64(9), int64(3)).Return([]*model.Payment{
		{ID: 21, Status: model.PaymentStatusFailed},
		succeededPayment(17),
		{ID: 11, Status: model.PaymentStatusCancelled},
	}, nil)
	membershipRepo.On("CreateExclusive", mock.Anything, mock.Anything).Return(nil)

	membership, err := service.JoinAfterPayment(context.Background(), 9, 3, 0, nil)

	assert.NoError(t, err)
	assert.NotNil(t, membership)
	paymentRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestJoinAfterPayment_NoSuccessfulPayment(t *testing.T) {
	membershipRepo := new(MockMembershipRepository)
	paymentRepo := new(MockPaymentRepository)
	clubRepo := new(MockClubRepository)
	service := newMembershipService(membershipRepo, paymentRepo, clubRepo, nil)

	paymentRepo.On("GetAllByUserAndClub", mock.Anything, int64(9), int64(3)).Return([]*model.Payment{
		{ID: 21, Status: model.PaymentStatusFailed},
		{ID: 11, Status: model.PaymentStatusPending},
	}, nil)

	_, err := service.JoinAfterPayment(context.Background(), 9, 3, 0, nil)

	assert.ErrorIs(t, err, domainErrors.ErrNoSuccessfulPayment)
	membershipRepo.AssertNotCalled(t, "CreateExclusive", mock.Anything, mock.Anything)
}

func TestJoinAfterPayment_DuplicateJoin(t *testing.T) {
	membershipRepo := new(MockMembershipRepository)
	paymentRepo := new(MockPaymentRepository)
	clubRepo := new(MockClubRepository)
	service := newMembershipService(membershipRepo, paymentRepo, clubRepo, nil)

	paymentRepo.On("GetByID", mock.Anything, int64(17)).Return(succeededPayment(17), nil)
	membershipRepo.On("CreateExclusive", mock.Anything, mock.Anything).
		Return(domainErrors.ErrAlreadyMember)

	_, err := service.JoinAfterPayment(context.Background(), 9, 3, 17, nil)

	assert.ErrorIs(t, err, domainErrors.ErrAlreadyMember)
}

func TestJoinAfterPayment_DetailsApplied(t *testing.T) {
	membershipRepo := new(MockMembershipRepository)
	paymentRepo := new(MockPaymentRepository)
	clubRepo := new(MockClubRepository)
	service := newMembershipService(membershipRepo, paymentRepo, clubRepo, nil)

	paymentRepo.On("GetByID", mock.Anything, int64(17)).Return(succeededPayment(17), nil)

	var created *model.ClubMembership
	membershipRepo.On("CreateExclusive", mock.Anything, mock.AnythingOfType("*model.ClubMembership")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*model.ClubMembership)
		}).
		Return(nil)

	birthday := time.Date(2004, 7, 15, 0, 0, 0, 0, time.UTC)
	_, err := service.JoinAfterPayment(context.Background(), 9, 3, 17, &MembershipDetails{
		FullName:      "Nadia Perera",
		ContactNumber: "+94 77 123 4567",
		Birthday:      &birthday,
		Faculty:       "Engineering",
		Year:          "2",
		Skills:        []string{"robotics", "python"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "Nadia Perera", *created.FullName)
	assert.Nil(t, created.Address)
	assert.Equal(t, birthday, *created.Birthday)
	assert.JSONEq(t, `["robotics","python"]`, *created.SkillsJSON)
}

func TestJoinAfterPayment_PublishFailureDoesNotFailJoin(t *testing.T) {
	membershipRepo := new(MockMembershipRepository)
	paymentRepo := new(MockPaymentRepository)
	clubRepo := new(MockClubRepository)
	publisher := new(MockNotificationPublisher)
	service := newMembershipService(membershipRepo, paymentRepo, clubRepo, publisher)

	paymentRepo.On("GetByID", mock.Anything, int64(17)).Return(succeededPayment(17), nil)
	membershipRepo.On("CreateExclusive", mock.Anything, mock.Anything).Return(nil)
	publisher.On("PublishMembershipEvent", mock.Anything, mock.AnythingOfType("*messaging.MembershipEvent")).
		Return(assert.AnError)

	membership, err := service.JoinAfterPayment(context.Background(), 9, 3, 17, nil)

	assert.NoError(t, err)
	assert.NotNil(t, membership)
	publisher.AssertExpectations(t)
}

func TestJoinFree_FreeClub(t *testing.T) {
	membershipRepo := new(MockMembershipRepository)
	paymentRepo := new(MockPaymentRepository)
	clubRepo := new(MockClubRepository)
	service := newMembershipService(membershipRepo, paymentRepo, clubRepo, nil)

	clubRepo.On("GetByID", mock.Anything, int64(3)).Return(&model.Club{
		ID:            3,
		Name:          "Hiking Club",
		MembershipFee: decimal.Zero,
	}, nil)
	membershipRepo.On("CreateExclusive", mock.Anything, mock.Anything).Return(nil)

	membership, err := service.JoinFree(context.Background(), 9, 3, nil)

	assert.NoError(t, err)
	assert.Equal(t, model.MembershipStatusActive, membership.Status)
	paymentRepo.AssertNotCalled(t, "GetAllByUserAndClub", mock.Anything, mock.Anything, mock.Anything)
}

func TestJoinFree_PaidClubRejected(t *testing.T) {
	membershipRepo := new(MockMembershipRepository)
	paymentRepo := new(MockPaymentRepository)
	clubRepo := new(MockClubRepository)
	service := newMembershipService(membershipRepo, paymentRepo, clubRepo, nil)

	clubRepo.On("GetByID", mock.Anything, int64(3)).Return(&model.Club{
		ID:            3,
		Name:          "Robotics Club",
		MembershipFee: decimal.RequireFromString("500.00"),
	}, nil)

	_, err := service.JoinFree(context.Background(), 9, 3, nil)

	assert.ErrorIs(t, err, domainErrors.ErrPaymentRequired)
	membershipRepo.AssertNotCalled(t, "CreateExclusive", mock.Anything, mock.Anything)
}

func TestLeaveClub_Success(t *testing.T) {
	membershipRepo := new(MockMembershipRepository)
	paymentRepo := new(MockPaymentRepository)
	clubRepo := new(MockClubRepository)
	service := newMembershipService(membershipRepo, paymentRepo, clubRepo, nil)

	membership := &model.ClubMembership{ID: 5, UserID: 9, ClubID: 3}
	membershipRepo.On("GetByUserAndClub", mock.Anything, int64(9), int64(3)).Return(membership, nil)
	membershipRepo.On("Delete", mock.Anything, membership).Return(nil)
	membershipRepo.On("Exists", mock.Anything, int64(9), int64(3)).Return(false, nil)

	err := service.LeaveClub(context.Background(), 9, 3)

	assert.NoError(t, err)
	membershipRepo.AssertExpectations(t)
}

func TestLeaveClub_NotAMember(t *testing.T) {
	membershipRepo := new(MockMembershipRepository)
	paymentRepo := new(MockPaymentRepository)
	clubRepo := new(MockClubRepository)
	service := newMembershipService(membershipRepo, paymentRepo, clubRepo, nil)

	membershipRepo.On("GetByUserAndClub", mock.Anything, int64(9), int64(3)).
		Return(nil, domainErrors.ErrMembershipNotFound)

	err := service.LeaveClub(context.Background(), 9, 3)

	assert.ErrorIs(t, err, domainErrors.ErrMembershipNotFound)
	membershipRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestLeaveClub_DeleteNotEffective(t *testing.T) {
	membershipRepo := new(MockMembershipRepository)
	paymentRepo := new(MockPaymentRepository)
	clubRepo := new(MockClubRepository)
	service := newMembershipService(membershipRepo, paymentRepo, clubRepo, nil)

	membership := &model.ClubMembership{ID: 5, UserID: 9, ClubID: 3}
	membershipRepo.On("GetByUserAndClub", mock.Anything, int64(9), int64(3)).Return(membership, nil)
	membershipRepo.On("Delete", mock.Anything, membership).Return(nil)
	// Row still present after the delete.
	membershipRepo.On("Exists", mock.Anything, int64(9), int64(3)).Return(true, nil)

	err := service.LeaveClub(context.Background(), 9, 3)

	assert.ErrorIs(t, err, domainErrors.ErrDeleteNotEffective)
}
