package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/uniclubs/universe-backend/internal/domain/model"
	"github.com/uniclubs/universe-backend/internal/usecase"
)

// ClubHandler exposes club CRUD.
type ClubHandler struct {
	clubService *usecase.ClubService
	logger      *zap.Logger
}

func NewClubHandler(clubService *usecase.ClubService, logger *zap.Logger) *ClubHandler {
	return &ClubHandler{
		clubService: clubService,
		logger:      logger,
	}
}

type ClubRequest struct {
	Name          string          `json:"name" validate:"required,max=255"`
	Description   string          `json:"description" validate:"omitempty,max=5000"`
	LogoURL       string          `json:"logo_url" validate:"omitempty,url,max=500"`
	AdminID       int64           `json:"admin_id" validate:"omitempty,gt=0"`
	MembershipFee decimal.Decimal `json:"membership_fee"`
}

func (r *ClubRequest) toModel() *model.Club {
	club := &model.Club{
		Name:          r.Name,
		Description:   r.Description,
		MembershipFee: r.MembershipFee,
	}
	if r.LogoURL != "" {
		club.LogoURL = &r.LogoURL
	}
	if r.AdminID > 0 {
		club.AdminID = &r.AdminID
	}
	return club
}

// CreateClub handles POST /api/v1/clubs.
func (h *ClubHandler) CreateClub(c echo.Context) error {
	var req ClubRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	club := req.toModel()
	if err := h.clubService.CreateClub(c.Request().Context(), club); err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, club)
}

// GetClub handles GET /api/v1/clubs/:id.
func (h *ClubHandler) GetClub(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	club, err := h.clubService.GetClub(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, club)
}

// ListClubs handles GET /api/v1/clubs. Optional ?name= filters by name,
// ?admin_id= restricts to clubs run by that admin.
func (h *ClubHandler) ListClubs(c echo.Context) error {
	if c.QueryParam("admin_id") != "" {
		adminID, err := parseIDQuery(c, "admin_id")
		if err != nil {
			return err
		}
		clubs, err := h.clubService.GetClubsByAdmin(c.Request().Context(), adminID)
		if err != nil {
			return writeError(c, h.logger, err)
		}
		return c.JSON(http.StatusOK, clubs)
	}

	clubs, err := h.clubService.SearchClubs(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, clubs)
}

// UpdateClub handles PUT /api/v1/clubs/:id.
func (h *ClubHandler) UpdateClub(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req ClubRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	club := req.toModel()
	club.ID = id
	if err := h.clubService.UpdateClub(c.Request().Context(), club); err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, club)
}

// DeleteClub handles DELETE /api/v1/clubs/:id.
func (h *ClubHandler) DeleteClub(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.clubService.DeleteClub(c.Request().Context(), id); err != nil {
		return writeError(c, h.logger, err)
	}

	return c.NoContent(http.StatusNoContent)
}
