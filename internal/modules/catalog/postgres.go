package catalog

import (
	"context"
	"database/sql"
	"errors"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL product repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateProduct(ctx context.Context, p *Product) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO productos (nombre, categoria, cantidad, precio)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		p.Name, p.Category, p.Quantity, p.Price).Scan(&p.ID)
}

func (r *postgresRepository) GetProductByID(ctx context.Context, id int64) (*Product, error) {
	p := &Product{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, nombre, categoria, cantidad, precio
		FROM productos WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Category, &p.Quantity, &p.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepository) ListProducts(ctx context.Context) ([]*Product, error) {
	return r.queryProducts(ctx, `
		SELECT id, nombre, categoria, cantidad, precio
		FROM productos ORDER BY id`)
}

func (r *postgresRepository) ListAvailableProducts(ctx context.Context) ([]*Product, error) {
	return r.queryProducts(ctx, `
		SELECT id, nombre, categoria, cantidad, precio
		FROM productos WHERE cantidad > 0 ORDER BY id`)
}

func (r *postgresRepository) UpdateProduct(ctx context.Context, p *Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE productos
		SET nombre = $1, categoria = $2, cantidad = $3, precio = $4
		WHERE id = $5`,
		p.Name, p.Category, p.Quantity, p.Price, p.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepository) DeleteProduct(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepository) queryProducts(ctx context.Context, query string) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p := &Product{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Quantity, &p.Price); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
