package mocks

import (
	"context"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/stretchr/testify/mock"
)

type MockCatalogUC struct {
	mock.Mock
}

func (m *MockCatalogUC) CreateProduct(ctx context.Context, req *usecase.CreateProductReq) (*domain.Product, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalogUC) UpdateProduct(ctx context.Context, id int64, req *usecase.UpdateProductReq) (*domain.Product, error) {
	args := m.Called(ctx, id, req)
	if res := args.Get(0); res != nil {
		return res.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalogUC) DeleteProduct(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogUC) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalogUC) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}
