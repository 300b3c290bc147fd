package models

// Profile est le profil utilisateur tel que renvoyé par le backend.
type Profile struct {
	ID        string `json:"id,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// IsComplete vérifie que les champs obligatoires pour le checkout sont présents
func (p Profile) IsComplete() bool {
	return p.FirstName != "" && p.LastName != "" && p.Phone != ""
}
