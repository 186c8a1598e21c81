package converter

// ProductModel представляет запись таблицы productos в PostgreSQL.
type ProductModel struct {
	ID          int64   `db:"id"`
	Description string  `db:"descripcion"`
	Price       string  `db:"precio"`
	ImageURL    *string `db:"img"`
}
