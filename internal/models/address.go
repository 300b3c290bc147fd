package models

type Address struct {
	ID         string `json:"id"`
	Street     string `json:"street"`
	District   string `json:"district"`
	Province   string `json:"province"`
	Department string `json:"department"`
	IsDefault  bool   `json:"isDefault,omitempty"`
}
