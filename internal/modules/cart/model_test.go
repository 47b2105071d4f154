package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemsTotal(t *testing.T) {
	tests := []struct {
		name     string
		items    Items
		expected float64
	}{
		{"empty cart", Items{}, 0},
		{"single line", Items{{UnitPrice: 2.5, Quantity: 3}}, 7.5},
		{
			"multiple lines",
			Items{
				{UnitPrice: 2.5, Quantity: 3},
				{UnitPrice: 1.2, Quantity: 2},
			},
			9.9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.items.Total(), 1e-9)
		})
	}
}
