package checkout

import "time"

// Sale represents a row of the ventas table, one completed checkout.
type Sale struct {
	ID     int64     `json:"id"`
	UserID int64     `json:"user_id"`
	Date   time.Time `json:"date"`
	Total  float64   `json:"total"`
}

// SaleLine represents a row of the detalle_ventas table.
type SaleLine struct {
	SaleID    int64   `json:"sale_id"`
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// DetailLine is a sale line joined with its product name for display.
type DetailLine struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

// SaleDetail is the per-sale drill-down view: the sale, its customer and
// its lines.
type SaleDetail struct {
	Sale     Sale         `json:"sale"`
	Customer string       `json:"customer"`
	Lines    []DetailLine `json:"lines"`
}
