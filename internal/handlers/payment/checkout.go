package pay

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"mebsy_store_front/internal/cache"
	"mebsy_store_front/internal/cart"
	"mebsy_store_front/internal/checkout"
	"mebsy_store_front/internal/config"
	"mebsy_store_front/internal/database"
	"mebsy_store_front/internal/gateway"
	"mebsy_store_front/internal/models"
	"mebsy_store_front/internal/pricing"
	"mebsy_store_front/internal/utils"
)

func orderGateway(c *gin.Context) *gateway.Client {
	return gateway.NewClient(
		config.Get("ORDERS_API_URL", "http://localhost:3000/api"),
		c.GetString("token"),
	)
}

func cartStore(userID string) *cart.Store {
	return cart.NewStore(cart.NewRedisPersistence(database.Redis), userID)
}

// Pay lance le protocole de checkout : une commande, une préférence de
// paiement, une redirection. Le middleware CheckoutSingleFlight garantit
// qu'une seule tentative est en vol par utilisateur.
//
// 💳 POST /api/checkout/pay
func Pay(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var session models.CheckoutSession
	if err := c.ShouldBindJSON(&session); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	session.UserID = userID

	if session.DeliveryMethod == "" {
		session.DeliveryMethod = models.DeliveryStandard
	}

	orch := checkout.New(orderGateway(c), cartStore(userID))
	result, err := orch.Pay(context.Background(), session)
	if err != nil {
		utils.LogFailedCheckout(c, session.ResumeOrderID, orch.State(), err.Error())
		respondCheckoutError(c, err)
		return
	}

	log.Printf("💳 Checkout OK: commande %s (reprise=%v) pour %s", result.Order.ID, result.Resumed, userID)
	utils.LogCheckoutAttempt(c, result.Order.ID, session.ResumeOrderID, orch.State())

	c.JSON(http.StatusOK, gin.H{
		"orderId":      result.Order.ID,
		"initPoint":    result.InitPoint,
		"shippingCost": result.ShippingCost,
		"resumed":      result.Resumed,
	})
}

// ShippingQuote expose les deux méthodes de livraison chiffrées pour le
// panier courant
//
// 🚚 GET /api/checkout/shipping
func ShippingQuote(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	lines := cartStore(userID).Items(context.Background())
	subtotal := pricing.Subtotal(lines)

	options := []gin.H{}
	for _, method := range []string{models.DeliveryStandard, models.DeliveryExpress} {
		shipping := pricing.ShippingCost(subtotal, method)
		options = append(options, gin.H{
			"method":   method,
			"shipping": shipping,
			"total":    pricing.Total(subtotal, shipping),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"subtotal": subtotal,
		"options":  options,
	})
}

// Reorder ré-insère les lignes d'une commande passée dans le panier
// courant ("racheter"), en plus du contenu existant
//
// 🔁 POST /api/checkout/reorder
func Reorder(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var input struct {
		Items []models.OrderItem `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	store := cartStore(userID)
	orch := checkout.New(orderGateway(c), store)
	if err := orch.Reorder(context.Background(), input.Items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	ctx := context.Background()
	c.JSON(http.StatusOK, gin.H{
		"message": "Produits ajoutés au panier",
		"items":   store.Items(ctx),
		"count":   store.TotalItems(ctx),
	})
}

// Preconditions vérifie en amont que le checkout est possible pour
// l'utilisateur (profil complet, adresses). Utilisé par l'UI pour
// rediriger vers la complétion de profil avant même d'afficher la page.
//
// 🔎 GET /api/checkout/preconditions
func Preconditions(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	ctx := context.Background()
	gw := orderGateway(c)

	profile, err := cache.GetProfile(ctx, gw, userID)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	addresses, err := cache.GetAddresses(ctx, gw, userID)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	// Une seule adresse : elle est présélectionnée. Plusieurs : l'UI doit
	// demander un choix explicite, on ne devine jamais.
	autoSelected := ""
	if len(addresses) == 1 {
		autoSelected = addresses[0].ID
	}

	c.JSON(http.StatusOK, gin.H{
		"profileComplete":   profile.IsComplete(),
		"addresses":         addresses,
		"autoSelectedId":    autoSelected,
		"requiresSelection": len(addresses) > 1,
	})
}

// respondCheckoutError mappe la taxonomie d'erreurs du checkout sur le
// HTTP : précondition → 400 avec indication de redirection, backend →
// message transmis tel quel
func respondCheckoutError(c *gin.Context, err error) {
	var vErr *checkout.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":       vErr.Message,
			"redirect_to": vErr.RedirectTo,
		})
		return
	}

	var gwErr *gateway.GatewayError
	if errors.As(err, &gwErr) {
		status := gwErr.StatusCode
		if status == 0 {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": gwErr.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
