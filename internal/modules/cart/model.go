package cart

// Item is one line of a session's cart. Name and UnitPrice are snapshots
// taken when the product was added; they are deliberately not re-synced with
// the catalog until checkout.
type Item struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// Items is the ordered contents of a cart.
type Items []Item

// Total sums unit price times quantity over all items.
func (items Items) Total() float64 {
	var total float64
	for _, it := range items {
		total += it.UnitPrice * float64(it.Quantity)
	}
	return total
}
