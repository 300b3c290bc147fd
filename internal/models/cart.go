package models

// CartLine représente une ligne du panier : un produit, sa quantité,
// et un instantané du nom/prix au moment de l'ajout (volontairement
// tolérant aux données périmées, on ne re-fetch pas le produit).
type CartLine struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	UnitPrice   float64 `json:"unitPrice"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Quantity    int     `json:"quantity"`
}

// Subtotal retourne le sous-total de la ligne
func (l CartLine) Subtotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// ProductSnapshot contient les données produit capturées lors d'un ajout au panier
type ProductSnapshot struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"imageUrl,omitempty"`
}
