package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/DRSN-tech/catalog-service/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// querier объединяет pgx.Tx и pgxpool.Pool: запросы выполняются
// в транзакции из контекста, если она есть, иначе напрямую через пул.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

func (p *ProductRepo) q(ctx context.Context) querier {
	if tx, err := tr.TxFromCtx(ctx); err == nil {
		return tx
	}
	return p.pool
}

// Insert вставляет новую строку товара, идентификатор назначается базой.
func (p *ProductRepo) Insert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		INSERT INTO productos (descripcion, precio, img)
		VALUES ($1, $2, $3)
		RETURNING id, descripcion, precio, img;
	`

	var model converter.ProductModel
	err := p.q(ctx).QueryRow(ctx, query, product.Description, product.Price, product.ImageURL).
		Scan(&model.ID, &model.Description, &model.Price, &model.ImageURL)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// GetByID возвращает товар по идентификатору или e.ErrProductNotFound.
func (p *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, descripcion, precio, img
		FROM productos
		WHERE id = $1;
	`

	var model converter.ProductModel
	err := p.q(ctx).QueryRow(ctx, query, id).
		Scan(&model.ID, &model.Description, &model.Price, &model.ImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrProductNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// List возвращает все товары в порядке идентификаторов.
func (p *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, descripcion, precio, img
		FROM productos
		ORDER BY id;
	`

	rows, err := p.q(ctx).Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Product, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(&model.ID, &model.Description, &model.Price, &model.ImageURL); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *p.conv.ToEntity(&model))
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// Update перезаписывает все изменяемые поля строки товара.
func (p *ProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		UPDATE productos
		SET descripcion = $2, precio = $3, img = $4
		WHERE id = $1
		RETURNING id, descripcion, precio, img;
	`

	var model converter.ProductModel
	err := p.q(ctx).QueryRow(ctx, query, product.ID, product.Description, product.Price, product.ImageURL).
		Scan(&model.ID, &model.Description, &model.Price, &model.ImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrProductNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// Delete удаляет строку товара по идентификатору.
func (p *ProductRepo) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM productos
		WHERE id = $1;
	`

	tag, err := p.q(ctx).Exec(ctx, query, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if tag.RowsAffected() == 0 {
		return e.ErrProductNotFound
	}

	return nil
}
