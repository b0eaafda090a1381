package products

import (
	"context"

	"github.com/mkropacheva/storefront/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context) ([]*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}
