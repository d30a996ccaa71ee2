package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/uniclubs/universe-backend/internal/usecase"
)

// MembershipHandler exposes club join/leave and membership lookups.
type MembershipHandler struct {
	membershipService *usecase.MembershipService
	logger            *zap.Logger
}

func NewMembershipHandler(membershipService *usecase.MembershipService, logger *zap.Logger) *MembershipHandler {
	return &MembershipHandler{
		membershipService: membershipService,
		logger:            logger,
	}
}

type JoinClubRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
	ClubID int64 `json:"club_id" validate:"required,gt=0"`
	// PaymentID is optional; when omitted the latest successful payment for
	// the user/club pair is used.
	PaymentID     int64    `json:"payment_id" validate:"omitempty,gt=0"`
	FullName      string   `json:"full_name" validate:"omitempty,max=255"`
	Address       string   `json:"address" validate:"omitempty,max=500"`
	ContactNumber string   `json:"contact_number" validate:"omitempty,max=50"`
	Birthday      string   `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
	Faculty       string   `json:"faculty" validate:"omitempty,max=255"`
	Year          string   `json:"year" validate:"omitempty,max=20"`
	Skills        []string `json:"skills" validate:"omitempty,dive,max=100"`
}

func (r *JoinClubRequest) details() (*usecase.MembershipDetails, error) {
	details := &usecase.MembershipDetails{
		FullName:      r.FullName,
		Address:       r.Address,
		ContactNumber: r.ContactNumber,
		Faculty:       r.Faculty,
		Year:          r.Year,
		Skills:        r.Skills,
	}
	if r.Birthday != "" {
		birthday, err := time.Parse("2006-01-02", r.Birthday)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid birthday, expected YYYY-MM-DD")
		}
		details.Birthday = &birthday
	}
	return details, nil
}

// JoinAfterPayment handles POST /api/v1/memberships/join-after-payment. The
// join is gated on a successful payment.
func (h *MembershipHandler) JoinAfterPayment(c echo.Context) error {
	return h.joinPaid(c, false)
}

// JoinAfterPaymentWithDetails handles
// POST /api/v1/memberships/join-after-payment-with-details.
func (h *MembershipHandler) JoinAfterPaymentWithDetails(c echo.Context) error {
	return h.joinPaid(c, true)
}

func (h *MembershipHandler) joinPaid(c echo.Context, withDetails bool) error {
	var req JoinClubRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	var details *usecase.MembershipDetails
	if withDetails {
		var err error
		if details, err = req.details(); err != nil {
			return err
		}
	}

	membership, err := h.membershipService.JoinAfterPayment(c.Request().Context(), req.UserID, req.ClubID, req.PaymentID, details)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, membership)
}

// JoinFree handles POST /api/v1/memberships/join for clubs without a
// membership fee.
func (h *MembershipHandler) JoinFree(c echo.Context) error {
	return h.joinFree(c, false)
}

// JoinFreeWithDetails handles POST /api/v1/memberships/join-with-details.
func (h *MembershipHandler) JoinFreeWithDetails(c echo.Context) error {
	return h.joinFree(c, true)
}

func (h *MembershipHandler) joinFree(c echo.Context, withDetails bool) error {
	var req JoinClubRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	var details *usecase.MembershipDetails
	if withDetails {
		var err error
		if details, err = req.details(); err != nil {
			return err
		}
	}

	membership, err := h.membershipService.JoinFree(c.Request().Context(), req.UserID, req.ClubID, details)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, membership)
}

type LeaveClubRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
	ClubID int64 `json:"club_id" validate:"required,gt=0"`
}

// LeaveClub handles DELETE /api/v1/memberships/leave. The payment history is
// kept.
func (h *MembershipHandler) LeaveClub(c echo.Context) error {
	var req LeaveClubRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.membershipService.LeaveClub(c.Request().Context(), req.UserID, req.ClubID); err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "left club"})
}

// GetUserMemberships handles GET /api/v1/memberships/user/:userId.
func (h *MembershipHandler) GetUserMemberships(c echo.Context) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return err
	}

	memberships, err := h.membershipService.GetUserMemberships(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, memberships)
}

// GetClubMembers handles GET /api/v1/memberships/club/:clubId.
func (h *MembershipHandler) GetClubMembers(c echo.Context) error {
	clubID, err := parseIDParam(c, "clubId")
	if err != nil {
		return err
	}

	members, err := h.membershipService.GetClubMembers(c.Request().Context(), clubID)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, members)
}

// CheckMembership handles GET /api/v1/memberships/check?userId=&clubId=.
func (h *MembershipHandler) CheckMembership(c echo.Context) error {
	userID, err := parseIDQuery(c, "userId")
	if err != nil {
		return err
	}
	clubID, err := parseIDQuery(c, "clubId")
	if err != nil {
		return err
	}

	isMember, err := h.membershipService.IsMember(c.Request().Context(), userID, clubID)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user_id":   userID,
		"club_id":   clubID,
		"is_member": isMember,
	})
}
