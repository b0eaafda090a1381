package accounts

import (
	"context"

	"github.com/mkropacheva/storefront/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	List(ctx context.Context) ([]*models.Account, error)
	Update(ctx context.Context, account *models.Account) (*models.Account, error)
	Delete(ctx context.Context, id string) error
}
