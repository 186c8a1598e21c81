package usecase

// CATALOG USECASE

// Upload представляет файл, загруженный через multipart/form-data.
type Upload struct {
	Data        []byte // байты файла
	ContentType string // Content-Type, определённый по содержимому
	Size        int64  // фактический размер в байтах
	Filename    string // оригинальное имя файла
}

// CreateProductReq — запрос на создание товара.
type CreateProductReq struct {
	Description string
	Price       string
	Upload      *Upload // nil, если файл не передан
}

// UpdateProductReq — запрос на полное обновление товара.
// Description и Price перезаписываются всегда; Upload заменяет изображение,
// nil оставляет прежнее изображение без изменений.
type UpdateProductReq struct {
	Description string
	Price       string
	Upload      *Upload
}

// INFRASTRUCTURE

// StoreImageReq — запрос на сохранение изображения в хранилище.
type StoreImageReq struct {
	Upload Upload
}

// StoreImageRes — результат сохранения: ключ объекта и публичный URL.
type StoreImageRes struct {
	Key string
	URL string
}

// MAPPERS

func NewUpload(data []byte, contentType string, size int64, filename string) *Upload {
	return &Upload{
		Data:        data,
		ContentType: contentType,
		Size:        size,
		Filename:    filename,
	}
}

func NewCreateProductReq(description string, price string, upload *Upload) *CreateProductReq {
	return &CreateProductReq{
		Description: description,
		Price:       price,
		Upload:      upload,
	}
}

func NewUpdateProductReq(description string, price string, upload *Upload) *UpdateProductReq {
	return &UpdateProductReq{
		Description: description,
		Price:       price,
		Upload:      upload,
	}
}

func NewStoreImageReq(upload Upload) *StoreImageReq {
	return &StoreImageReq{Upload: upload}
}

func NewStoreImageRes(key string, url string) *StoreImageRes {
	return &StoreImageRes{
		Key: key,
		URL: url,
	}
}
