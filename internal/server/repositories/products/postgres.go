package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkropacheva/storefront/internal/common"
	"github.com/mkropacheva/storefront/internal/dbx"
	"github.com/mkropacheva/storefront/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {

	query :=
		`INSERT INTO products (name, price, brand, description, image_key, quantity)
         VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		product.Name, product.Price, product.Brand, product.Description,
		product.ImageKey, product.Quantity).
		Scan(&product.ID, &product.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return product, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	query :=
		`SELECT id, name, price, brand, description, image_key, quantity, created_at FROM products
		 WHERE id = $1
		 `

	product := &models.Product{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&product.ID, &product.Name, &product.Price, &product.Brand,
			&product.Description, &product.ImageKey, &product.Quantity, &product.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return product, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Product, error) {
	query :=
		`SELECT id, name, price, brand, description, image_key, quantity, created_at FROM products
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Product
	for rows.Next() {
		product := &models.Product{}
		if err := rows.Scan(&product.ID, &product.Name, &product.Price, &product.Brand,
			&product.Description, &product.ImageKey, &product.Quantity, &product.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	query :=
		`UPDATE products
		 SET name = $2, price = $3, brand = $4, description = $5, image_key = $6, quantity = $7
		 WHERE id = $1
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		product.ID, product.Name, product.Price, product.Brand,
		product.Description, product.ImageKey, product.Quantity).
		Scan(&product.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return product, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM products WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
