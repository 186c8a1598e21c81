package usecase

import (
	"context"

	"github.com/DRSN-tech/catalog-service/internal/domain"
)

type CatalogUC interface {
	CreateProduct(ctx context.Context, req *CreateProductReq) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, req *UpdateProductReq) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
}
