package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/uniclubs/universe-backend/internal/domain/model"
	"github.com/uniclubs/universe-backend/internal/usecase"
)

// EventHandler exposes club event CRUD.
type EventHandler struct {
	eventService *usecase.EventService
	logger       *zap.Logger
}

func NewEventHandler(eventService *usecase.EventService, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		logger:       logger,
	}
}

type EventRequest struct {
	ClubID      int64      `json:"club_id" validate:"required,gt=0"`
	Title       string     `json:"title" validate:"required,max=255"`
	Description string     `json:"description" validate:"omitempty,max=5000"`
	Location    string     `json:"location" validate:"omitempty,max=255"`
	StartsAt    time.Time  `json:"starts_at" validate:"required"`
	EndsAt      *time.Time `json:"ends_at"`
}

func (r *EventRequest) toModel() *model.Event {
	event := &model.Event{
		ClubID:      r.ClubID,
		Title:       r.Title,
		Description: r.Description,
		StartsAt:    r.StartsAt,
		EndsAt:      r.EndsAt,
	}
	if r.Location != "" {
		event.Location = &r.Location
	}
	return event
}

// CreateEvent handles POST /api/v1/events.
func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req EventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	event := req.toModel()
	if err := h.eventService.CreateEvent(c.Request().Context(), event); err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, event)
}

// GetEvent handles GET /api/v1/events/:id.
func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	event, err := h.eventService.GetEvent(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, event)
}

// ListEvents handles GET /api/v1/events. An optional ?club_id= filters by club.
func (h *EventHandler) ListEvents(c echo.Context) error {
	if c.QueryParam("club_id") != "" {
		clubID, err := parseIDQuery(c, "club_id")
		if err != nil {
			return err
		}
		events, err := h.eventService.GetClubEvents(c.Request().Context(), clubID)
		if err != nil {
			return writeError(c, h.logger, err)
		}
		return c.JSON(http.StatusOK, events)
	}

	events, err := h.eventService.ListEvents(c.Request().Context())
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, events)
}

// UpdateEvent handles PUT /api/v1/events/:id.
func (h *EventHandler) UpdateEvent(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req EventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	event := req.toModel()
	event.ID = id
	if err := h.eventService.UpdateEvent(c.Request().Context(), event); err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, event)
}

// DeleteEvent handles DELETE /api/v1/events/:id.
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.eventService.DeleteEvent(c.Request().Context(), id); err != nil {
		return writeError(c, h.logger, err)
	}

	return c.NoContent(http.StatusNoContent)
}
