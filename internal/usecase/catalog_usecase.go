package usecase

import (
	"context"
	"strings"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
)

// CatalogUseCase реализует бизнес-логику каталога товаров:
// CRUD по строкам и согласование жизненного цикла файла изображения со строкой.
type CatalogUseCase struct {
	productRepo ProductRepository
	imagesInfra ImagesInfra
	transactor  Transactor
	logger      logger.Logger
	locks       *idLocks
}

func NewCatalogUC(
	productRepo ProductRepository,
	imagesInfra ImagesInfra,
	transactor Transactor,
	logger logger.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo: productRepo,
		imagesInfra: imagesInfra,
		transactor:  transactor,
		logger:      logger,
		locks:       newIDLocks(),
	}
}

// CreateProduct создает товар. Файл, если он передан, записывается в хранилище
// до вставки строки: неудачная запись файла отменяет всю операцию и строка не
// появляется. Если вставка строки не удалась после записи файла, файл удаляется
// фоновой компенсацией.
func (c *CatalogUseCase) CreateProduct(ctx context.Context, req *CreateProductReq) (*domain.Product, error) {
	const op = "CatalogUseCase.CreateProduct"

	if err := validateProductFields(req.Description, req.Price); err != nil {
		return nil, e.Wrap(op, err)
	}

	var (
		imageURL *string
		imageKey string
	)
	if req.Upload != nil {
		stored, err := c.imagesInfra.StoreImage(ctx, NewStoreImageReq(*req.Upload))
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		imageURL = &stored.URL
		imageKey = stored.Key
	}

	var created *domain.Product
	err := c.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		created, err = c.productRepo.Insert(txCtx, domain.NewProduct(req.Description, req.Price, imageURL))
		return err
	})
	if err != nil {
		if imageKey != "" {
			c.logger.Warnf("cleaning up orphaned image after insert failure, key: %s, error: %v", imageKey, err)
			c.imagesInfra.CleanupImages([]string{imageKey})
		}
		return nil, e.Wrap(op, err)
	}

	return created, nil
}

// UpdateProduct полностью перезаписывает описание и цену товара. Новый файл,
// если он передан, вытесняет прежний: старый файл удаляется из хранилища
// (отсутствие файла не считается ошибкой), новый записывается под свежим
// именем. Без нового файла прежнее изображение остаётся нетронутым.
func (c *CatalogUseCase) UpdateProduct(ctx context.Context, id int64, req *UpdateProductReq) (*domain.Product, error) {
	const op = "CatalogUseCase.UpdateProduct"

	if err := validateProductFields(req.Description, req.Price); err != nil {
		return nil, e.Wrap(op, err)
	}

	c.locks.lock(id)
	defer c.locks.unlock(id)

	var (
		updated     *domain.Product
		newImageKey string
	)
	err := c.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := c.productRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		imageURL := current.ImageURL
		if req.Upload != nil {
			if current.ImageURL != nil {
				if err := c.imagesInfra.RemoveImage(txCtx, *current.ImageURL); err != nil {
					return err
				}
			}

			stored, err := c.imagesInfra.StoreImage(txCtx, NewStoreImageReq(*req.Upload))
			if err != nil {
				return err
			}
			imageURL = &stored.URL
			newImageKey = stored.Key
		}

		product := domain.NewProduct(req.Description, req.Price, imageURL)
		product.ID = id

		updated, err = c.productRepo.Update(txCtx, product)
		return err
	})
	if err != nil {
		if newImageKey != "" {
			c.logger.Warnf("cleaning up orphaned image after update failure, key: %s, error: %v", newImageKey, err)
			c.imagesInfra.CleanupImages([]string{newImageKey})
		}
		return nil, e.Wrap(op, err)
	}

	return updated, nil
}

// DeleteProduct удаляет товар и связанный с ним файл изображения.
// Отсутствие файла в хранилище считается успешной очисткой.
func (c *CatalogUseCase) DeleteProduct(ctx context.Context, id int64) error {
	const op = "CatalogUseCase.DeleteProduct"

	c.locks.lock(id)
	defer c.locks.unlock(id)

	err := c.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := c.productRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if current.ImageURL != nil {
			if err := c.imagesInfra.RemoveImage(txCtx, *current.ImageURL); err != nil {
				return err
			}
		}

		return c.productRepo.Delete(txCtx, id)
	})
	if err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// GetProduct возвращает товар по идентификатору.
func (c *CatalogUseCase) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	const op = "CatalogUseCase.GetProduct"

	product, err := c.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return product, nil
}

// ListProducts возвращает все товары в порядке их идентификаторов.
func (c *CatalogUseCase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "CatalogUseCase.ListProducts"

	products, err := c.productRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

// validateProductFields проверяет обязательные поля формы.
// Цена принимается любой непустой строкой, унаследовано от исходной схемы.
func validateProductFields(description string, price string) error {
	if strings.TrimSpace(description) == "" {
		return e.ErrDescriptionRequired
	}

	if price == "" {
		return e.ErrPriceRequired
	}

	return nil
}
