package checkout

// ValidationError est une erreur de précondition, détectée avant tout
// appel réseau. Jamais re-tentée automatiquement : c'est à l'utilisateur
// de corriger (panier, profil, adresse).
type ValidationError struct {
	Message string
	// RedirectTo indique où envoyer l'utilisateur pour corriger
	// ("profile" ou "address_selection")
	RedirectTo string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrEmptyCart = &ValidationError{
		Message: "Le panier est vide",
	}
	ErrProfileIncomplete = &ValidationError{
		Message:    "Profil incomplet : prénom, nom et téléphone sont requis avant de payer",
		RedirectTo: "profile",
	}
	ErrNoAddress = &ValidationError{
		Message:    "Aucune adresse de livraison enregistrée",
		RedirectTo: "profile",
	}
	ErrAddressChoiceRequired = &ValidationError{
		Message:    "Sélectionne une adresse de livraison",
		RedirectTo: "address_selection",
	}
)
