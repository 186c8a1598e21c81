package usecase

import "context"

type ImagesInfra interface {
	StoreImage(ctx context.Context, req *StoreImageReq) (*StoreImageRes, error)
	RemoveImage(ctx context.Context, imageURL string) error
	CleanupImages(keys []string)
}

// Transactor выполняет fn внутри транзакции базы данных.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
