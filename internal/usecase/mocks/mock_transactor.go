package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTransactor исполняет fn без настоящей транзакции.
type MockTransactor struct {
	mock.Mock
}

func (m *MockTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}
