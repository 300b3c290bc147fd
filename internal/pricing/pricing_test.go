package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mebsy_store_front/internal/models"
)

func TestShippingCost(t *testing.T) {
	tests := []struct {
		name     string
		subtotal float64
		method   string
		want     float64
	}{
		{"standard 8%", 100, models.DeliveryStandard, 8},
		{"express 15%", 100, models.DeliveryExpress, 15},
		{"panier vide", 0, models.DeliveryExpress, 0},
		{"méthode inconnue → standard", 100, "pigeon voyageur", 8},
		{"scénario express 25", 25, models.DeliveryExpress, 3.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ShippingCost(tt.subtotal, tt.method), 0.0001)
		})
	}
}

func TestTotalScenario(t *testing.T) {
	// Panier [{A, qty:2, prix:10}, {B, qty:1, prix:5}] en express
	lines := []models.CartLine{
		{ProductID: "A", UnitPrice: 10, Quantity: 2},
		{ProductID: "B", UnitPrice: 5, Quantity: 1},
	}

	subtotal := Subtotal(lines)
	shipping := ShippingCost(subtotal, models.DeliveryExpress)

	assert.InDelta(t, 25.0, subtotal, 0.0001)
	assert.InDelta(t, 3.75, shipping, 0.0001)
	assert.InDelta(t, 28.75, Total(subtotal, shipping), 0.0001)
}

func TestEmptyCartYieldsZeroEverywhere(t *testing.T) {
	subtotal := Subtotal(nil)
	shipping := ShippingCost(subtotal, models.DeliveryStandard)

	assert.Zero(t, subtotal)
	assert.Zero(t, shipping)
	assert.Zero(t, Total(subtotal, shipping))
}
