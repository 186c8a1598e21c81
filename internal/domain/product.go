package domain

// Product описывает товар каталога
type Product struct {
	ID          int64
	Description string
	Price       string // Цена хранится как текст, унаследовано от исходной схемы
	ImageURL    *string
}

func NewProduct(description string, price string, imageURL *string) *Product {
	return &Product{
		Description: description,
		Price:       price,
		ImageURL:    imageURL,
	}
}
