package models

import "time"

// Statuts de commande côté backend. La commande est la source de vérité :
// le client ne modifie jamais un statut localement, il re-fetch.
const (
	OrderStatusPendingPayment = "PENDING_PAYMENT"
	OrderStatusPaid           = "PAID"
	OrderStatusCancelled      = "CANCELLED"
	OrderStatusShipped        = "SHIPPED"
)

type Order struct {
	ID              string      `json:"id"`
	Status          string      `json:"status"`
	Items           []OrderItem `json:"items"`
	Total           float64     `json:"total"`
	ShippingAddress *Address    `json:"shippingAddress,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

type OrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Subtotal    float64 `json:"subtotal"`
}

// OrderLineInput est la forme envoyée au backend lors de la création :
// uniquement (productId, quantity), le prix est recalculé côté serveur.
type OrderLineInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
