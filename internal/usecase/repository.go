package usecase

import (
	"context"

	"github.com/DRSN-tech/catalog-service/internal/domain"
)

type ProductRepository interface {
	Insert(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

type ImageRepository interface {
	Save(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}
