package dashboard

import (
	"context"
	"database/sql"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL reporting repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) Metrics(ctx context.Context) (Metrics, error) {
	var m Metrics
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM usuarios),
			(SELECT COUNT(*) FROM productos),
			(SELECT COUNT(*) FROM ventas),
			(SELECT COALESCE(SUM(total), 0) FROM ventas)`).
		Scan(&m.Users, &m.Products, &m.Sales, &m.Revenue)
	return m, err
}

func (r *postgresRepo) ListSales(ctx context.Context) ([]SaleSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT v.id, u.nombre, v.fecha, v.total
		FROM ventas v
		JOIN usuarios u ON v.id_usuario = u.id
		ORDER BY v.fecha DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []SaleSummary
	for rows.Next() {
		var s SaleSummary
		if err := rows.Scan(&s.ID, &s.Customer, &s.Date, &s.Total); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

func (r *postgresRepo) ListPurchasesByUser(ctx context.Context, userID int64) ([]Purchase, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT v.id, v.fecha, v.total,
		       COALESCE(string_agg(p.nombre, ', ' ORDER BY p.nombre), '')
		FROM ventas v
		LEFT JOIN detalle_ventas dv ON dv.id_venta = v.id
		LEFT JOIN productos p ON p.id = dv.id_producto
		WHERE v.id_usuario = $1
		GROUP BY v.id, v.fecha, v.total
		ORDER BY v.fecha DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []Purchase
	for rows.Next() {
		var p Purchase
		if err := rows.Scan(&p.ID, &p.Date, &p.Total, &p.Summary); err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}
