package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect env variable")

	// 404 Not Found
	ErrProductNotFound = fmt.Errorf("Producto no encontrado")

	// 400 Bad Request
	ErrStatusBadRequest    = fmt.Errorf("bad request")
	ErrExpectedMultipart   = fmt.Errorf("expected multipart/form-data")
	ErrMissingFields       = fmt.Errorf("missing required fields")
	ErrInvalidProductID    = fmt.Errorf("invalid product id")
	ErrDescriptionRequired = fmt.Errorf("descripcion is required")
	ErrPriceRequired       = fmt.Errorf("precio is required")
	ErrInvalidPrice        = fmt.Errorf("invalid price")
	ErrPricePrecision      = fmt.Errorf("price must have at most 2 decimal places")
	ErrFileTooLarge        = fmt.Errorf("file too large")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
