package repository

import (
	"context"

	"github.com/uniclubs/universe-backend/internal/domain/model"
)

// ClubRepository persists clubs.
type ClubRepository interface {
	Create(ctx context.Context, club *model.Club) error
	GetByID(ctx context.Context, id int64) (*model.Club, error)
	GetAll(ctx context.Context) ([]*model.Club, error)
	GetByAdminID(ctx context.Context, adminID int64) ([]*model.Club, error)
	SearchByName(ctx context.Context, name string) ([]*model.Club, error)
	Update(ctx context.Context, club *model.Club) error
	Delete(ctx context.Context, id int64) error
}
