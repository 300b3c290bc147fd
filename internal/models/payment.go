package models

// Statuts renvoyés par la passerelle de paiement dans l'URL de retour.
// Ce sont des indices "best-effort" : le webhook peut avoir confirmé le
// paiement après la redirection, donc on ne leur fait jamais plus
// confiance qu'au statut de la commande.
const (
	PaymentStatusSuccess = "success"
	PaymentStatusPending = "pending"
	PaymentStatusFailure = "failure"
	PaymentStatusAbsent  = ""
)

// PaymentPreference est l'objet payable éphémère créé par la passerelle
// pour une commande. Re-demander une préférence pour la même commande
// est idempotent côté backend.
type PaymentPreference struct {
	ID        string  `json:"preferenceId,omitempty"`
	OrderID   string  `json:"orderId"`
	InitPoint string  `json:"initPoint"`
	Amount    float64 `json:"amount,omitempty"`
}

// PaymentReturn regroupe les paramètres du retour de la passerelle.
// Les identifiants spécifiques à la passerelle sont transportés tels
// quels, jamais interprétés.
type PaymentReturn struct {
	Status       string `form:"status"`
	OrderID      string `form:"orderId"`
	PaymentID    string `form:"payment_id"`
	PreferenceID string `form:"preference_id"`
}
