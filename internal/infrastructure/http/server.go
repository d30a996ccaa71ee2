package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/uniclubs/universe-backend/internal/adapter/handler/http"
	"github.com/uniclubs/universe-backend/internal/config"
	"github.com/uniclubs/universe-backend/internal/domain/provider"
	"github.com/uniclubs/universe-backend/internal/infrastructure/database"
	"github.com/uniclubs/universe-backend/internal/infrastructure/messaging"
	"github.com/uniclubs/universe-backend/internal/middleware/auth"
	"github.com/uniclubs/universe-backend/internal/usecase"
	"github.com/uniclubs/universe-backend/pkg/logger"
)

type Server struct {
	config    *config.Config
	logger    *zap.Logger
	echo      *echo.Echo
	repos     *database.Repositories
	checkout  provider.CheckoutProvider
	publisher messaging.NotificationPublisher
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func NewServer(
	cfg *config.Config,
	log *zap.Logger,
	repos *database.Repositories,
	checkout provider.CheckoutProvider,
	publisher messaging.NotificationPublisher,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}

	e.Use(logger.NewEchoRequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.FrontendURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
	}))

	return &Server{
		config:    cfg,
		logger:    log,
		echo:      e,
		repos:     repos,
		checkout:  checkout,
		publisher: publisher,
	}
}

func (s *Server) Start() error {
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
			"version": s.config.Service.Version,
		})
	})

	// Services
	checkoutService := usecase.NewCheckoutService(s.repos.Payment, s.repos.Club, s.checkout, usecase.CheckoutConfig{
		FrontendURL:     s.config.Service.FrontendURL,
		StripeSecretKey: s.config.Service.StripeSecretKey,
	}, s.logger)
	paymentService := usecase.NewPaymentService(s.repos.Payment, s.checkout, s.logger)
	membershipService := usecase.NewMembershipService(s.repos.Membership, s.repos.Payment, s.repos.Club, s.publisher, s.logger)
	clubService := usecase.NewClubService(s.repos.Club, s.logger)
	userService := usecase.NewUserService(s.repos.User, s.logger)
	eventService := usecase.NewEventService(s.repos.Event, s.repos.Club, s.logger)
	announcementService := usecase.NewAnnouncementService(s.repos.Announcement, s.repos.Club, s.logger)

	// Handlers
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, s.logger)
	paymentHandler := handlers.NewPaymentHandler(paymentService, s.logger)
	webhookHandler := handlers.NewWebhookHandler(paymentService, s.logger)
	membershipHandler := handlers.NewMembershipHandler(membershipService, s.logger)
	clubHandler := handlers.NewClubHandler(clubService, s.logger)
	userHandler := handlers.NewUserHandler(userService, s.logger)
	eventHandler := handlers.NewEventHandler(eventService, s.logger)
	announcementHandler := handlers.NewAnnouncementHandler(announcementService, s.logger)

	jwtConfig := auth.JWTConfig{
		Secret: s.config.JWT.Secret,
		Logger: s.logger,
		SkipPaths: []string{
			"/health",
			"/webhook",
		},
	}

	v1 := s.echo.Group("/api/v1")

	// Public browsing routes
	v1.GET("/clubs", clubHandler.ListClubs)
	v1.GET("/clubs/:id", clubHandler.GetClub)
	v1.GET("/events", eventHandler.ListEvents)
	v1.GET("/events/:id", eventHandler.GetEvent)
	v1.GET("/announcements", announcementHandler.ListAnnouncements)
	v1.GET("/announcements/:id", announcementHandler.GetAnnouncement)

	protected := v1.Group("", auth.JWTMiddleware(jwtConfig))

	// Payment flow
	protected.POST("/payments/checkout-session", checkoutHandler.CreateCheckoutSession)
	protected.POST("/payments/:id/confirm", paymentHandler.ConfirmPayment)
	protected.GET("/payments/:id", paymentHandler.GetPayment)
	protected.GET("/payments/:id/verify", paymentHandler.VerifyPayment)
	protected.GET("/payments/session/:sessionId", paymentHandler.GetPaymentBySession)
	protected.GET("/payments", paymentHandler.GetPaymentHistory)

	// Membership flow
	memberships := protected.Group("/memberships")
	memberships.POST("/join-after-payment", membershipHandler.JoinAfterPayment)
	memberships.POST("/join-after-payment-with-details", membershipHandler.JoinAfterPaymentWithDetails)
	memberships.POST("/join", membershipHandler.JoinFree)
	memberships.POST("/join-with-details", membershipHandler.JoinFreeWithDetails)
	memberships.DELETE("/leave", membershipHandler.LeaveClub)
	memberships.GET("/user/:userId", membershipHandler.GetUserMemberships)
	memberships.GET("/club/:clubId", membershipHandler.GetClubMembers)
	memberships.GET("/check", membershipHandler.CheckMembership)

	// Club administration
	admin := protected.Group("", auth.RequireRole(s.logger, "admin", "club_admin"))
	admin.POST("/clubs", clubHandler.CreateClub)
	admin.PUT("/clubs/:id", clubHandler.UpdateClub)
	admin.DELETE("/clubs/:id", clubHandler.DeleteClub)
	admin.POST("/events", eventHandler.CreateEvent)
	admin.PUT("/events/:id", eventHandler.UpdateEvent)
	admin.DELETE("/events/:id", eventHandler.DeleteEvent)
	admin.POST("/announcements", announcementHandler.CreateAnnouncement)
	admin.PUT("/announcements/:id", announcementHandler.UpdateAnnouncement)
	admin.DELETE("/announcements/:id", announcementHandler.DeleteAnnouncement)

	// User management
	protected.GET("/users/:id", userHandler.GetUser)
	protected.PUT("/users/:id", userHandler.UpdateUser)
	adminOnly := protected.Group("", auth.RequireRole(s.logger, "admin"))
	adminOnly.POST("/users", userHandler.CreateUser)
	adminOnly.GET("/users", userHandler.ListUsers)
	adminOnly.DELETE("/users/:id", userHandler.DeleteUser)

	// Webhook route (outside API versioning); authenticated by signature.
	s.echo.POST("/webhook", webhookHandler.HandleWebhook)
}
