package pricing

import "mebsy_store_front/internal/models"

// Taux de livraison : pourcentage du sous-total, pas de poids ni de
// distance. Constantes de politique commerciale.
const (
	StandardRate = 0.08 // 8% du sous-total
	ExpressRate  = 0.15 // 15% du sous-total
)

// ShippingCost calcule le coût de livraison pour un sous-total et une
// méthode. Une méthode inconnue retombe sur le tarif standard.
func ShippingCost(subtotal float64, method string) float64 {
	if subtotal <= 0 {
		return 0
	}
	if method == models.DeliveryExpress {
		return subtotal * ExpressRate
	}
	return subtotal * StandardRate
}

// Total retourne sous-total + livraison
func Total(subtotal, shipping float64) float64 {
	return subtotal + shipping
}

// Subtotal calcule le sous-total d'une liste de lignes
func Subtotal(lines []models.CartLine) float64 {
	total := 0.0
	for _, line := range lines {
		total += line.Subtotal()
	}
	return total
}
