package converter

import (
	"github.com/DRSN-tech/catalog-service/internal/domain"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) *domain.Product
}

type ProductConverterImpl struct{}

func NewProductConverterImpl() *ProductConverterImpl {
	return &ProductConverterImpl{}
}

func (c *ProductConverterImpl) ToModel(entity *domain.Product) *ProductModel {
	if entity == nil {
		return nil
	}

	return &ProductModel{
		ID:          entity.ID,
		Description: entity.Description,
		Price:       entity.Price,
		ImageURL:    entity.ImageURL,
	}
}

func (c *ProductConverterImpl) ToEntity(model *ProductModel) *domain.Product {
	if model == nil {
		return nil
	}

	return &domain.Product{
		ID:          model.ID,
		Description: model.Description,
		Price:       model.Price,
		ImageURL:    model.ImageURL,
	}
}
