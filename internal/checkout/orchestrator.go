package checkout

import (
	"context"
	"log"

	"mebsy_store_front/internal/cart"
	"mebsy_store_front/internal/gateway"
	"mebsy_store_front/internal/models"
	"mebsy_store_front/internal/pricing"
)

// États de la machine de checkout. REDIRECTING est terminal (succès),
// FAILED est terminal mais re-tentable : l'appelant peut relancer Pay.
const (
	StateIdle                 = "IDLE"
	StateValidating           = "VALIDATING"
	StateResolvingOrder       = "RESOLVING_ORDER"
	StateRequestingPreference = "REQUESTING_PREFERENCE"
	StateRedirecting          = "REDIRECTING"
	StateFailed               = "FAILED"
)

// Orchestrator pilote une tentative de checkout : transformer un panier
// en exactement une commande backend et une redirection de paiement,
// même à travers rechargements de page et clics répétés. Une instance
// par tentative, construite avec le gateway et le store de la requête.
//
// L'exclusion des tentatives concurrentes (single-flight) est assurée
// par l'appelant via le verrou Redis du middleware : deux Pay parallèles
// sans ResumeOrderID créeraient deux commandes depuis le même panier.
type Orchestrator struct {
	gw    gateway.OrderGateway
	store *cart.Store
	state string
}

// Result est l'issue d'un Pay réussi
type Result struct {
	Order        *models.Order `json:"order"`
	InitPoint    string        `json:"initPoint"`
	ShippingCost float64       `json:"shippingCost"`
	// Resumed indique qu'une commande en attente a été réutilisée
	// au lieu d'en créer une nouvelle
	Resumed bool `json:"resumed"`
}

func New(gw gateway.OrderGateway, store *cart.Store) *Orchestrator {
	return &Orchestrator{gw: gw, store: store, state: StateIdle}
}

// State retourne l'état courant de la tentative
func (o *Orchestrator) State() string {
	return o.state
}

// Pay exécute le protocole de checkout :
//  1. préconditions (panier, profil, adresse) — aucune n'atteint le réseau
//  2. résolution de commande : réutiliser la commande à reprendre si elle
//     est encore PENDING_PAYMENT, sinon en créer exactement une
//  3. préférence de paiement avec le coût de livraison (idempotent)
//  4. vidage du panier, seulement après le succès de la préférence
//  5. retour de l'initPoint pour la redirection
//
// Tout échec réseau laisse le panier intact et transmet le message du
// backend tel quel. Pas de retry silencieux, pas d'abort en vol : une
// fois la création émise, l'opération va au bout ou échoue.
func (o *Orchestrator) Pay(ctx context.Context, session models.CheckoutSession) (*Result, error) {
	o.state = StateValidating

	lines := o.store.Items(ctx)
	if len(lines) == 0 {
		o.state = StateFailed
		return nil, ErrEmptyCart
	}

	addressID, err := o.resolveAddress(ctx, session)
	if err != nil {
		o.state = StateFailed
		return nil, err
	}

	// --- Résolution de commande (garde d'idempotence) ---
	o.state = StateResolvingOrder

	order, resumed := o.resolveOrder(ctx, session.ResumeOrderID)
	if order == nil {
		// Exactement un appel de création par Pay. Seuls (productId,
		// quantity) partent : le prix est recalculé côté serveur.
		items := make([]models.OrderLineInput, 0, len(lines))
		for _, line := range lines {
			items = append(items, models.OrderLineInput{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
			})
		}

		order, err = o.gw.CreateOrder(ctx, items, addressID)
		if err != nil {
			o.state = StateFailed
			return nil, err
		}
		log.Printf("🧾 Nouvelle commande créée: %s", order.ID)
	} else {
		log.Printf("♻️ Réutilisation de la commande en attente: %s", order.ID)
	}

	// --- Préférence de paiement ---
	o.state = StateRequestingPreference

	shipping := pricing.ShippingCost(orderSubtotal(order), session.DeliveryMethod)
	pref, err := o.gw.CreatePaymentPreference(ctx, order.ID, shipping)
	if err != nil {
		// Le panier n'a pas été touché : un retry repartira du même contenu
		o.state = StateFailed
		return nil, err
	}

	// --- Vidage du panier ---
	// Vider avant ce point risquerait de perdre la sélection si la
	// préférence échoue ; vider après garantit qu'un retry ne rebâtira
	// pas une deuxième commande depuis le même panier.
	if err := o.store.Clear(ctx); err != nil {
		log.Printf("⚠️ Échec vidage panier après paiement (commande %s): %v", order.ID, err)
	}

	o.state = StateRedirecting
	return &Result{
		Order:        order,
		InitPoint:    pref.InitPoint,
		ShippingCost: shipping,
		Resumed:      resumed,
	}, nil
}

// resolveAddress applique la politique d'adresse : profil complet
// obligatoire, au moins une adresse, sélection automatique si une seule,
// choix explicite exigé s'il y en a plusieurs — on ne devine jamais.
func (o *Orchestrator) resolveAddress(ctx context.Context, session models.CheckoutSession) (string, error) {
	profile, err := o.gw.GetProfile(ctx)
	if err != nil {
		return "", err
	}
	if !profile.IsComplete() {
		return "", ErrProfileIncomplete
	}

	addresses, err := o.gw.ListAddresses(ctx)
	if err != nil {
		return "", err
	}
	if len(addresses) == 0 {
		return "", ErrNoAddress
	}

	if session.SelectedAddressID == "" {
		if len(addresses) == 1 {
			return addresses[0].ID, nil
		}
		return "", ErrAddressChoiceRequired
	}

	for _, addr := range addresses {
		if addr.ID == session.SelectedAddressID {
			return addr.ID, nil
		}
	}
	return "", ErrAddressChoiceRequired
}

// resolveOrder retourne la commande à réutiliser, ou nil s'il faut en
// créer une nouvelle. Une commande à reprendre qui n'est plus
// PENDING_PAYMENT (déjà payée, expédiée ou annulée) est écartée en
// silence : elle ne doit jamais être payée deux fois ni réutilisée une
// fois réglée. Idem si le fetch échoue.
func (o *Orchestrator) resolveOrder(ctx context.Context, resumeOrderID string) (*models.Order, bool) {
	if resumeOrderID == "" {
		return nil, false
	}

	order, err := o.gw.GetOrder(ctx, resumeOrderID)
	if err != nil {
		log.Printf("⚠️ Commande à reprendre %s illisible, création d'une nouvelle: %v", resumeOrderID, err)
		return nil, false
	}
	if order.Status != models.OrderStatusPendingPayment {
		log.Printf("♻️ Commande %s déjà traitée (%s), création d'une nouvelle", order.ID, order.Status)
		return nil, false
	}
	return order, true
}

// Reorder ré-insère les lignes d'une commande passée dans le panier
// courant, une unité à la fois pour réutiliser la sémantique
// d'incrément d'Add. Additif : le contenu existant du panier est gardé.
func (o *Orchestrator) Reorder(ctx context.Context, items []models.OrderItem) error {
	for _, item := range items {
		snapshot := models.ProductSnapshot{
			ID:    item.ProductID,
			Name:  item.ProductName,
			Price: item.UnitPrice,
		}
		for i := 0; i < item.Quantity; i++ {
			if _, err := o.store.Add(ctx, snapshot); err != nil {
				return err
			}
		}
	}
	return nil
}

// orderSubtotal dérive le sous-total d'une commande depuis ses lignes.
// Le champ Subtotal du backend est utilisé quand il est présent.
func orderSubtotal(order *models.Order) float64 {
	total := 0.0
	for _, item := range order.Items {
		if item.Subtotal > 0 {
			total += item.Subtotal
		} else {
			total += item.UnitPrice * float64(item.Quantity)
		}
	}
	return total
}
