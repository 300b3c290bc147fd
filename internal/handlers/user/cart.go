package user

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"mebsy_store_front/internal/cart"
	"mebsy_store_front/internal/database"
	"mebsy_store_front/internal/models"
	"mebsy_store_front/internal/pricing"
)

// cartStore construit le store du panier de l'utilisateur courant
func cartStore(userID string) *cart.Store {
	return cart.NewStore(cart.NewRedisPersistence(database.Redis), userID)
}

//
// 🛒 GET /api/cart
//
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	store := cartStore(userID)
	ctx := context.Background()
	lines := store.Items(ctx)

	c.JSON(http.StatusOK, gin.H{
		"items": lines,
		"count": store.TotalItems(ctx),
		"total": pricing.Subtotal(lines),
	})
}

//
// 🟢 POST /api/cart/add
//
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	// L'instantané produit (nom, prix, image) est capturé au moment de
	// l'ajout et n'est pas re-fetché ensuite
	var product models.ProductSnapshot
	if err := c.ShouldBindJSON(&product); err != nil || product.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données produit invalides"})
		return
	}

	lines, err := cartStore(userID).Add(context.Background(), product)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit ajouté au panier",
		"items":   lines,
	})
}

//
// 🔁 PUT /api/cart/quantity
//
func UpdateQuantity(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	var input struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	// Une quantité <= 0 supprime la ligne
	lines, err := cartStore(userID).SetQuantity(context.Background(), input.ProductID, input.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": lines})
}

//
// ❌ DELETE /api/cart/:productId
//
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	productID := c.Param("productId")

	lines, err := cartStore(userID).Remove(context.Background(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit supprimé du panier",
		"items":   lines,
	})
}

//
// 🧹 DELETE /api/cart/clear
//
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	if err := cartStore(userID).Clear(context.Background()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Panier vidé avec succès",
	})
}
