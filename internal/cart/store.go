package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"mebsy_store_front/internal/models"
)

// ErrNotFound est renvoyé par la persistance quand aucun panier n'existe
var ErrNotFound = errors.New("panier introuvable")

// Persistence abstrait l'unique enregistrement sérialisé du panier.
// L'implémentation de production est Redis, les tests utilisent un mock.
type Persistence interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Publish(ctx context.Context, channel, event string) error
}

// Store est le registre persistant des lignes du panier, seule source de
// vérité pour les produits sélectionnés. Une instance par panier (scopé
// par utilisateur/appareil), injectée explicitement — pas de singleton.
//
// Les mutations sont appliquées en mémoire puis persistées de façon
// synchrone. Pas de verrou multi-onglets : deux onglets concurrents
// finissent en last-write-wins, limitation assumée.
type Store struct {
	p   Persistence
	key string
}

// NewStore crée un store pour un panier donné
func NewStore(p Persistence, cartID string) *Store {
	return &Store{p: p, key: "cart:" + cartID}
}

// Items retourne les lignes du panier dans l'ordre d'insertion.
// Un enregistrement corrompu est jeté et traité comme un panier vide,
// jamais remonté comme erreur à l'appelant.
func (s *Store) Items(ctx context.Context) []models.CartLine {
	data, err := s.p.Load(ctx, s.key)
	if err != nil || len(data) == 0 {
		return []models.CartLine{}
	}

	var lines []models.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		log.Printf("⚠️ Panier corrompu (%s), réinitialisation: %v", s.key, err)
		_ = s.p.Delete(ctx, s.key)
		return []models.CartLine{}
	}
	return lines
}

// Add ajoute un produit au panier : +1 si la ligne existe déjà, sinon
// nouvelle ligne de quantité 1 avec l'instantané nom/prix/image.
func (s *Store) Add(ctx context.Context, product models.ProductSnapshot) ([]models.CartLine, error) {
	lines := s.Items(ctx)

	found := false
	for i := range lines {
		if lines[i].ProductID == product.ID {
			lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, models.CartLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			ImageURL:    product.ImageURL,
			Quantity:    1,
		})
	}

	if err := s.save(ctx, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// SetQuantity remplace la quantité d'une ligne. Une quantité <= 0
// équivaut à une suppression. Pas de borne supérieure ici, c'est une
// préoccupation d'UI.
func (s *Store) SetQuantity(ctx context.Context, productID string, quantity int) ([]models.CartLine, error) {
	if quantity <= 0 {
		return s.Remove(ctx, productID)
	}

	lines := s.Items(ctx)
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = quantity
			break
		}
	}

	if err := s.save(ctx, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Remove supprime une ligne. No-op si le produit n'est pas dans le panier.
func (s *Store) Remove(ctx context.Context, productID string) ([]models.CartLine, error) {
	lines := s.Items(ctx)

	kept := make([]models.CartLine, 0, len(lines))
	for _, line := range lines {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}

	if err := s.save(ctx, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// Clear vide le panier et supprime l'enregistrement persistant
func (s *Store) Clear(ctx context.Context) error {
	if err := s.p.Delete(ctx, s.key); err != nil {
		return err
	}
	_ = s.p.Publish(ctx, s.key, "cleared")
	return nil
}

// TotalItems retourne la somme des quantités
func (s *Store) TotalItems(ctx context.Context) int {
	total := 0
	for _, line := range s.Items(ctx) {
		total += line.Quantity
	}
	return total
}

// TotalPrice retourne la somme des prix unitaires × quantités
func (s *Store) TotalPrice(ctx context.Context) float64 {
	total := 0.0
	for _, line := range s.Items(ctx) {
		total += line.Subtotal()
	}
	return total
}

func (s *Store) save(ctx context.Context, lines []models.CartLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	if err := s.p.Save(ctx, s.key, data); err != nil {
		return err
	}
	// Notification de changement pour la sync temps réel (websocket)
	_ = s.p.Publish(ctx, s.key, "updated")
	return nil
}
