package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/DRSN-tech/catalog-service/internal/usecase/mocks"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCatalogUC(t *testing.T) (*usecase.CatalogUseCase, *mocks.MockProductRepository, *mocks.MockImagesInfra, *mocks.MockTransactor) {
	t.Helper()

	repo := new(mocks.MockProductRepository)
	infra := new(mocks.MockImagesInfra)
	transactor := new(mocks.MockTransactor)

	uc := usecase.NewCatalogUC(repo, infra, transactor, logger.NewSlogLogger())
	return uc, repo, infra, transactor
}

func strPtr(s string) *string { return &s }

func TestCreateProduct(t *testing.T) {
	ctx := context.TODO()

	t.Run("without file image url stays nil", func(t *testing.T) {
		uc, repo, infra, transactor := newCatalogUC(t)

		transactor.On("WithinTransaction", mock.Anything, mock.Anything).Return(nil).Once()
		repo.On("Insert", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
			return p.Description == "Pan" && p.Price == "2.50" && p.ImageURL == nil
		})).Return(&domain.Product{ID: 1, Description: "Pan", Price: "2.50"}, nil).Once()

		created, err := uc.CreateProduct(ctx, usecase.NewCreateProductReq("Pan", "2.50", nil))

		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
		assert.Nil(t, created.ImageURL)
		infra.AssertNotCalled(t, "StoreImage")
		repo.AssertExpectations(t)
	})

	t.Run("with file stores image before insert", func(t *testing.T) {
		uc, repo, infra, transactor := newCatalogUC(t)

		upload := usecase.NewUpload([]byte("bytes"), "image/png", 5, "foo.png")
		stored := usecase.NewStoreImageRes("abc_foo.png", "/static/images/abc_foo.png")

		infra.On("StoreImage", mock.Anything, mock.MatchedBy(func(req *usecase.StoreImageReq) bool {
			return req.Upload.Filename == "foo.png"
		})).Return(stored, nil).Once()
		transactor.On("WithinTransaction", mock.Anything, mock.Anything).Return(nil).Once()
		repo.On("Insert", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
			return p.ImageURL != nil && *p.ImageURL == stored.URL
		})).Return(&domain.Product{ID: 2, Description: "Pan", Price: "2.50", ImageURL: strPtr(stored.URL)}, nil).Once()

		created, err := uc.CreateProduct(ctx, usecase.NewCreateProductReq("Pan", "2.50", upload))

		require.NoError(t, err)
		require.NotNil(t, created.ImageURL)
		assert.Equal(t, stored.URL, *created.ImageURL)
		infra.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("store failure aborts before insert", func(t *testing.T) {
		uc, repo, infra, _ := newCatalogUC(t)

		infra.On("StoreImage", mock.Anything, mock.Anything).Return(nil, errors.New("disk full")).Once()

		_, err := uc.CreateProduct(ctx, usecase.NewCreateProductReq("Pan", "2.50", usecase.NewUpload([]byte("b"), "image/png", 1, "foo.png")))

		require.Error(t, err)
		repo.AssertNotCalled(t, "Insert")
	})

	t.Run("insert failure cleans up stored image", func(t *testing.T) {
		uc, repo, infra, transactor := newCatalogUC(t)

		stored := usecase.NewStoreImageRes("abc_foo.png", "/static/images/abc_foo.png")
		infra.On("StoreImage", mock.Anything, mock.Anything).Return(stored, nil).Once()
		transactor.On("WithinTransaction", mock.Anything, mock.Anything).Return(nil).Once()
		repo.On("Insert", mock.Anything, mock.Anything).Return(nil, errors.New("insert failed")).Once()
		infra.On("CleanupImages", []string{"abc_foo.png"}).Once()

		_, err := uc.CreateProduct(ctx, usecase.NewCreateProductReq("Pan", "2.50", usecase.NewUpload([]byte("b"), "image/png", 1, "foo.png")))

		require.Error(t, err)
		infra.AssertExpectations(t)
	})

	t.Run("empty description rejected", func(t *testing.T) {
		uc, repo, _, _ := newCatalogUC(t)

		_, err := uc.CreateProduct(ctx, usecase.NewCreateProductReq("  ", "2.50", nil))

		require.ErrorIs(t, err, e.ErrDescriptionRequired)
		repo.AssertNotCalled(t, "Insert")
	})
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.TODO()

	t.Run("not found leaves stores untouched", func(t *testing.T) {
		uc, repo, infra, transactor := newCatalogUC(t)

		transactor.On("WithinTransaction", mock.Anything, mock.Anything).Return(nil).Once()
		repo.On("GetByID", mock.Anything, int64(42)).Return(nil, e.ErrProductNotFound).Once()

		_, err := uc.UpdateProduct(ctx, 42, usecase.NewUpdateProductReq("Pan", "3.00", nil))

		require.ErrorIs(t, err, e.ErrProductNotFound)
		repo.AssertNotCalled(t, "Update")
		infra.AssertNotCalled(t, "RemoveImage")
		infra.AssertNotCalled(t, "StoreImage")
	})

	t.Run("without file keeps existing image", func(t *testing.T) {
		uc, repo, infra, transactor := newCatalogUC(t)

		existingURL := "/static/images/old_foo.png"
		transactor.On("WithinTransaction", mock.Anything, mock.Anything).Return(nil).Once()
		repo.On("GetByID", mock.Anything, int64(1)).
			Return(&domain.Product{ID: 1, Description: "Pan", Price: "2.50", ImageURL: strPtr(existingURL)}, nil).Once()
		repo.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
			return p.ID == 1 && p.Description == "Pan integral" && p.Price == "3.00" &&
				p.ImageURL != nil && *p.ImageURL == existingURL
		})).Return(&domain.Product{ID: 1, Description: "Pan integral", Price: "3.00", ImageURL: strPtr(existingURL)}, nil).Once()

		updated, err := uc.UpdateProduct(ctx, 1, usecase.NewUpdateProductReq("Pan integral", "3.00", nil))

		require.NoError(t, err)
		assert.Equal(t, "Pan integral", updated.Description)
		require.NotNil(t, updated.ImageURL)
		assert.Equal(t, existingURL, *updated.ImageURL)
		infra.AssertNotCalled(t, "RemoveImage")
		infra.AssertNotCalled(t, "StoreImage")
		repo.AssertExpectations(t)
	})

	t.Run("with file replaces old image", func(t *testing.T) {
		uc, repo, infra, transactor := newCatalogUC(t)

		oldURL := "/static/images/old_foo.png"
		stored := usecase.NewStoreImageRes("new_bar.png", "/static/images/new_bar.png")

		transactor.On("WithinTransaction", mock.Anything, mock.Anything).Return(nil).Once()
		repo.On("GetByID", mock.Anything, int64(1)).
			Return(&domain.Product{ID: 1, Description: "Pan", Price: "2.50", ImageURL: strPtr(oldURL)}, nil).Once()
		infra.On("RemoveImage", mock.Anything, oldURL).Return(nil).Once()
		infra.On("StoreImage", mock.Anything, mock.Anything).Return(stored, nil).Once()
		repo.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
			return p.ImageURL != nil && *p.ImageURL == stored.URL
		})).Return(&domain.Product{ID: 1, Description: "Pan", Price: "2.50", ImageURL: strPtr(stored.URL)}, nil).Once()

		updated, err := uc.UpdateProduct(ctx, 1, usecase.NewUpdateProductReq("Pan", "2.50", usecase.NewUpload([]byte("b"), "image/png", 1, "bar.png")))

		require.NoError(t, err)
		assert.Equal(t, stored.URL, *updated.ImageURL)
		infra.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("update failure cleans up new image", func(t *testing.T) {
		uc, repo, infra, transactor := newCatalogUC(t)

		stored := usecase.NewStoreImageRes("new_bar.png", "/static/images/new_bar.png")

		transactor.On("WithinTransaction", mock.Anything, mock.Anything).Return(nil).Once()
		repo.On("GetByID", mock.Anything, int64(1)).
			Return(&domain.Product{ID: 1, Description: "Pan", Price: "2.50"}, nil).Once()
		infra.On("StoreImage", mock.Anything, mock.Anything).Return(stored, nil).Once()
		repo.On("Update", mock.Anything, mock.Anything).Return(nil, errors.New("update failed")).Once()
		infra.On("CleanupImages", []string{"new_bar.png"}).Once()

		_, err := uc.UpdateProduct(ctx, 1, usecase.NewUpdateProductReq("Pan", "2.50", usecase.NewUpload([]byte("b"), "image/png", 1, "bar.png")))

		require.Error(t, err)
		infra.AssertExpectations(t)
	})
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.TODO()

	t.Run("removes row and image", func(t *testing.T) {
		uc, repo, infra, transactor := newCatalogUC(t)

		url := "/static/images/abc_foo.png"
		transactor.On("WithinTransaction", mock.Anything, mock.Anything).Return(nil).Once()
		repo.On("GetByID", mock.Anything, int64(1)).
			Return(&domain.Product{ID: 1, Description: "Pan", Price: "2.50", ImageURL: strPtr(url)}, nil).Once()
		infra.On("RemoveImage", mock.Anything, url).Return(nil).Once()
		repo.On("Delete", mock.Anything, int64(1)).Return(nil).Once()

		err := uc.DeleteProduct(ctx, 1)

		require.NoError(t, err)
		infra.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("without image skips file removal", func(t *testing.T) {
		uc, repo, infra, transactor := newCatalogUC(t)

		transactor.On("WithinTransaction", mock.Anything, mock.Anything).Return(nil).Once()
		repo.On("GetByID", mock.Anything, int64(1)).
			Return(&domain.Product{ID: 1, Description: "Pan", Price: "2.50"}, nil).Once()
		repo.On("Delete", mock.Anything, int64(1)).Return(nil).Once()

		err := uc.DeleteProduct(ctx, 1)

		require.NoError(t, err)
		infra.AssertNotCalled(t, "RemoveImage")
	})

	t.Run("not found", func(t *testing.T) {
		uc, repo, infra, transactor := newCatalogUC(t)

		transactor.On("WithinTransaction", mock.Anything, mock.Anything).Return(nil).Once()
		repo.On("GetByID", mock.Anything, int64(42)).Return(nil, e.ErrProductNotFound).Once()

		err := uc.DeleteProduct(ctx, 42)

		require.ErrorIs(t, err, e.ErrProductNotFound)
		repo.AssertNotCalled(t, "Delete")
		infra.AssertNotCalled(t, "RemoveImage")
	})
}

func TestGetAndList(t *testing.T) {
	ctx := context.TODO()

	t.Run("get returns product", func(t *testing.T) {
		uc, repo, _, _ := newCatalogUC(t)

		repo.On("GetByID", mock.Anything, int64(1)).
			Return(&domain.Product{ID: 1, Description: "Pan", Price: "2.50"}, nil).Once()

		product, err := uc.GetProduct(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, "Pan", product.Description)
	})

	t.Run("get not found", func(t *testing.T) {
		uc, repo, _, _ := newCatalogUC(t)

		repo.On("GetByID", mock.Anything, int64(42)).Return(nil, e.ErrProductNotFound).Once()

		_, err := uc.GetProduct(ctx, 42)

		require.ErrorIs(t, err, e.ErrProductNotFound)
	})

	t.Run("list returns all products in order", func(t *testing.T) {
		uc, repo, _, _ := newCatalogUC(t)

		repo.On("List", mock.Anything).Return([]domain.Product{
			{ID: 1, Description: "Pan", Price: "2.50"},
			{ID: 2, Description: "Leche", Price: "1.20"},
		}, nil).Once()

		products, err := uc.ListProducts(ctx)

		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, int64(1), products[0].ID)
		assert.Equal(t, int64(2), products[1].ID)
	})
}
