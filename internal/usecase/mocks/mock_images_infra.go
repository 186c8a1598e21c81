package mocks

import (
	"context"

	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/stretchr/testify/mock"
)

type MockImagesInfra struct {
	mock.Mock
}

func (m *MockImagesInfra) StoreImage(ctx context.Context, req *usecase.StoreImageReq) (*usecase.StoreImageRes, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*usecase.StoreImageRes), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockImagesInfra) RemoveImage(ctx context.Context, imageURL string) error {
	args := m.Called(ctx, imageURL)
	return args.Error(0)
}

func (m *MockImagesInfra) CleanupImages(keys []string) {
	m.Called(keys)
}
