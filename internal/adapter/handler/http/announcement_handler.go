package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/uniclubs/universe-backend/internal/domain/model"
	"github.com/uniclubs/universe-backend/internal/usecase"
)

// AnnouncementHandler exposes announcement CRUD.
type AnnouncementHandler struct {
	announcementService *usecase.AnnouncementService
	logger              *zap.Logger
}

func NewAnnouncementHandler(announcementService *usecase.AnnouncementService, logger *zap.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcementService: announcementService,
		logger:              logger,
	}
}

type AnnouncementRequest struct {
	// ClubID is optional; zero means campus-wide.
	ClubID   int64  `json:"club_id" validate:"omitempty,gt=0"`
	Title    string `json:"title" validate:"required,max=255"`
	Content  string `json:"content" validate:"required"`
	AuthorID int64  `json:"author_id" validate:"required,gt=0"`
}

func (r *AnnouncementRequest) toModel() *model.Announcement {
	announcement := &model.Announcement{
		Title:    r.Title,
		Content:  r.Content,
		AuthorID: r.AuthorID,
	}
	if r.ClubID > 0 {
		announcement.ClubID = &r.ClubID
	}
	return announcement
}

// CreateAnnouncement handles POST /api/v1/announcements.
func (h *AnnouncementHandler) CreateAnnouncement(c echo.Context) error {
	var req AnnouncementRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	announcement := req.toModel()
	if err := h.announcementService.CreateAnnouncement(c.Request().Context(), announcement); err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, announcement)
}

// GetAnnouncement handles GET /api/v1/announcements/:id.
func (h *AnnouncementHandler) GetAnnouncement(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	announcement, err := h.announcementService.GetAnnouncement(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, announcement)
}

// ListAnnouncements handles GET /api/v1/announcements with an optional
// ?club_id= filter.
func (h *AnnouncementHandler) ListAnnouncements(c echo.Context) error {
	if c.QueryParam("club_id") != "" {
		clubID, err := parseIDQuery(c, "club_id")
		if err != nil {
			return err
		}
		announcements, err := h.announcementService.GetClubAnnouncements(c.Request().Context(), clubID)
		if err != nil {
			return writeError(c, h.logger, err)
		}
		return c.JSON(http.StatusOK, announcements)
	}

	announcements, err := h.announcementService.ListAnnouncements(c.Request().Context())
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, announcements)
}

// UpdateAnnouncement handles PUT /api/v1/announcements/:id.
func (h *AnnouncementHandler) UpdateAnnouncement(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req AnnouncementRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	announcement := req.toModel()
	announcement.ID = id
	if err := h.announcementService.UpdateAnnouncement(c.Request().Context(), announcement); err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, announcement)
}

// DeleteAnnouncement handles DELETE /api/v1/announcements/:id.
func (h *AnnouncementHandler) DeleteAnnouncement(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.announcementService.DeleteAnnouncement(c.Request().Context(), id); err != nil {
		return writeError(c, h.logger, err)
	}

	return c.NoContent(http.StatusNoContent)
}
