package models

// Méthodes de livraison disponibles
const (
	DeliveryStandard = "standard"
	DeliveryExpress  = "express"
)

// CheckoutSession est l'état transitoire d'une tentative de paiement.
// Elle est construite explicitement par l'appelant (jamais déduite de
// l'URL dans la logique métier) et ne survit pas à un "Pay" réussi.
type CheckoutSession struct {
	UserID            string `json:"-"`
	SelectedAddressID string `json:"addressId"`
	DeliveryMethod    string `json:"deliveryMethod"`
	ResumeOrderID     string `json:"resumeOrderId,omitempty"`
}
