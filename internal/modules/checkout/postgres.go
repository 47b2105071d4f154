package checkout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL sales repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) CreateSale(ctx context.Context, sale *Sale, lines []SaleLine) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO ventas (id_usuario, fecha, total)
		VALUES ($1, $2, $3)
		RETURNING id`,
		sale.UserID, sale.Date, sale.Total).Scan(&sale.ID)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	for i := range lines {
		lines[i].SaleID = sale.ID
		_, err = tx.ExecContext(ctx, `
			INSERT INTO detalle_ventas (id_venta, id_producto, cantidad, subtotal)
			VALUES ($1, $2, $3, $4)`,
			lines[i].SaleID, lines[i].ProductID, lines[i].Quantity, lines[i].Subtotal)
		if err != nil {
			return fmt.Errorf("insert sale line: %w", err)
		}

		// Conditional decrement: the WHERE clause is the arbiter against a
		// stock race between add-to-cart and checkout.
		res, err := tx.ExecContext(ctx, `
			UPDATE productos
			SET cantidad = cantidad - $1
			WHERE id = $2 AND cantidad >= $1`,
			lines[i].Quantity, lines[i].ProductID)
		if err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("product %d: %w", lines[i].ProductID, ErrStockDepleted)
		}
	}

	return tx.Commit()
}

func (r *postgresRepo) GetSaleDetail(ctx context.Context, id int64) (*SaleDetail, error) {
	d := &SaleDetail{}
	err := r.db.QueryRowContext(ctx, `
		SELECT v.id, v.id_usuario, v.fecha, v.total, u.nombre
		FROM ventas v
		JOIN usuarios u ON v.id_usuario = u.id
		WHERE v.id = $1`, id).
		Scan(&d.Sale.ID, &d.Sale.UserID, &d.Sale.Date, &d.Sale.Total, &d.Customer)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSaleNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT dv.id_producto, p.nombre, dv.cantidad, dv.subtotal
		FROM detalle_ventas dv
		JOIN productos p ON dv.id_producto = p.id
		WHERE dv.id_venta = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line DetailLine
		if err := rows.Scan(&line.ProductID, &line.ProductName, &line.Quantity, &line.Subtotal); err != nil {
			return nil, err
		}
		d.Lines = append(d.Lines, line)
	}
	return d, rows.Err()
}

func (r *postgresRepo) DeleteSale(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ventas WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrSaleNotFound
	}
	return nil
}
