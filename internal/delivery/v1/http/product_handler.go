package http

import (
	"net/http"
	"strconv"

	"github.com/DRSN-tech/catalog-service/internal/cfg"
	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
	"github.com/go-chi/chi/v5"
)

const maxMemory = 32 << 20

// ProductResponse — JSON-представление товара во внешнем API.
// Имена полей зафиксированы контрактом: descripcion, precio, img.
type ProductResponse struct {
	ID          int64   `json:"id"`
	Description string  `json:"descripcion"`
	Price       string  `json:"precio"`
	ImageURL    *string `json:"img"`
}

// DetailResponse — ответ с человекочитаемым сообщением.
type DetailResponse struct {
	Detail string `json:"detail"`
}

type ProductHandler struct {
	catalogUC usecase.CatalogUC
	storage   *cfg.StorageCfg
	logger    logger.Logger
}

func NewProductHandler(catalogUC usecase.CatalogUC, storage *cfg.StorageCfg, logger logger.Logger) *ProductHandler {
	return &ProductHandler{catalogUC: catalogUC, storage: storage, logger: logger}
}

func toProductResponse(product *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:          product.ID,
		Description: product.Description,
		Price:       product.Price,
		ImageURL:    product.ImageURL,
	}
}

func toArrProductResponse(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i := range products {
		res[i] = *toProductResponse(&products[i])
	}

	return res
}

// holaMundo
//
//	@Summary	Проверка доступности сервиса
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/ [get]
func (p *ProductHandler) holaMundo(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, map[string]string{"HOLA": "mundo"})
}

// listProductos
//
//	@Summary	Список всех товаров каталога
//	@Tags		productos
//	@Produce	json
//	@Success	200	{array}	ProductResponse
//	@Router		/productos [get]
func (p *ProductHandler) listProductos(w http.ResponseWriter, r *http.Request) {
	products, err := p.catalogUC.ListProducts(r.Context())
	if err != nil {
		p.logger.Errorf(err, "list products failed")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toArrProductResponse(products))
}

// getProducto
//
//	@Summary	Товар по идентификатору
//	@Tags		productos
//	@Produce	json
//	@Param		id	path		int	true	"Идентификатор товара"
//	@Success	200	{object}	ProductResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/productos/{id} [get]
func (p *ProductHandler) getProducto(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	product, err := p.catalogUC.GetProduct(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// createProducto
//
//	@Summary	Создание товара
//	@Tags		productos
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		descripcion	formData	string	true	"Описание товара"
//	@Param		precio		formData	string	true	"Цена"
//	@Param		file		formData	file	false	"Изображение товара"
//	@Success	201	{object}	ProductResponse
//	@Failure	400	{object}	ErrorResponse
//	@Router		/productos [post]
func (p *ProductHandler) createProducto(w http.ResponseWriter, r *http.Request) {
	form, upload, ok := p.parseRequest(w, r)
	if !ok {
		return
	}

	product, err := p.catalogUC.CreateProduct(r.Context(), usecase.NewCreateProductReq(form.Description, form.Price, upload))
	if err != nil {
		p.logger.Errorf(err, "create product failed")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toProductResponse(product))
}

// updateProducto
//
//	@Summary	Полное обновление товара
//	@Tags		productos
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		id			path		int		true	"Идентификатор товара"
//	@Param		descripcion	formData	string	true	"Описание товара"
//	@Param		precio		formData	string	true	"Цена"
//	@Param		file		formData	file	false	"Новое изображение"
//	@Success	200	{object}	ProductResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/productos/{id} [put]
func (p *ProductHandler) updateProducto(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	form, upload, ok := p.parseRequest(w, r)
	if !ok {
		return
	}

	product, err := p.catalogUC.UpdateProduct(r.Context(), id, usecase.NewUpdateProductReq(form.Description, form.Price, upload))
	if err != nil {
		p.logger.Errorf(err, "update product failed, id: %d", id)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// deleteProducto
//
//	@Summary	Удаление товара вместе с его изображением
//	@Tags		productos
//	@Produce	json
//	@Param		id	path		int	true	"Идентификатор товара"
//	@Success	200	{object}	DetailResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/productos/{id} [delete]
func (p *ProductHandler) deleteProducto(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := p.catalogUC.DeleteProduct(r.Context(), id); err != nil {
		p.logger.Errorf(err, "delete product failed, id: %d", id)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, DetailResponse{Detail: "Producto y su imagen eliminados"})
}

// parseRequest разбирает multipart-форму товара и необязательный файл.
// При ошибке сам пишет ответ и возвращает ok=false.
func (p *ProductHandler) parseRequest(w http.ResponseWriter, r *http.Request) (*ProductForm, *usecase.Upload, bool) {
	// запас поверх лимита файла на текстовые поля и границы multipart
	r.Body = http.MaxBytesReader(w, r.Body, p.storage.MaxUploadSize+maxMemory)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), r.Header.Get("Content-Type"))
		WriteError(w, err)
		return nil, nil, false
	}

	form, err := parseProductForm(r, p.storage.StrictPrice)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return nil, nil, false
	}

	upload, err := parseUpload(r, p.storage.MaxUploadSize)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return nil, nil, false
	}

	return form, upload, true
}

func parseProductID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, e.ErrInvalidProductID
	}

	return id, nil
}
