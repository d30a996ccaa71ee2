package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/uniclubs/universe-backend/internal/adapter/repository"
	domainRepo "github.com/uniclubs/universe-backend/internal/domain/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	Payment      domainRepo.PaymentRepository
	Membership   domainRepo.MembershipRepository
	Club         domainRepo.ClubRepository
	User         domainRepo.UserRepository
	Event        domainRepo.EventRepository
	Announcement domainRepo.AnnouncementRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Payment:      repository.NewPaymentRepository(db, logger),
		Membership:   repository.NewMembershipRepository(db, logger),
		Club:         repository.NewClubRepository(db, logger),
		User:         repository.NewUserRepository(db, logger),
		Event:        repository.NewEventRepository(db, logger),
		Announcement: repository.NewAnnouncementRepository(db, logger),
	}
}
