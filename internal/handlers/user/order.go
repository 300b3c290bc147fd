package user

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mebsy_store_front/internal/config"
	"mebsy_store_front/internal/gateway"
	"mebsy_store_front/internal/models"
	"mebsy_store_front/internal/reconcile"
)

// orderGateway construit le client backend avec le token de la requête
func orderGateway(c *gin.Context) *gateway.Client {
	return gateway.NewClient(
		config.Get("ORDERS_API_URL", "http://localhost:3000/api"),
		c.GetString("token"),
	)
}

// ✅ Récupère toutes les commandes de l'utilisateur connecté
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	orders, err := orderGateway(c).ListMyOrders(context.Background())
	if err != nil {
		respondGatewayError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
	})
}

// ✅ Récupère une commande avec son statut d'affichage réconcilié.
// Le paramètre ?status= vient du retour de la passerelle de paiement :
// c'est un indice possiblement périmé, le statut de la commande fraîchement
// re-fetché prime toujours.
func GetOrderByID(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	orderID := c.Param("id")
	if _, err := uuid.Parse(orderID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	order, err := orderGateway(c).GetOrder(context.Background(), orderID)
	if err != nil {
		respondGatewayError(c, err)
		return
	}

	paymentStatus := normalizePaymentStatus(c.Query("status"))
	resolution := reconcile.Resolve(order, paymentStatus)

	c.JSON(http.StatusOK, gin.H{
		"order":          order,
		"reconciliation": resolution,
	})
}

// normalizePaymentStatus garde uniquement les valeurs connues de la
// passerelle, tout le reste est traité comme absent
func normalizePaymentStatus(raw string) string {
	switch raw {
	case models.PaymentStatusSuccess, models.PaymentStatusPending, models.PaymentStatusFailure:
		return raw
	default:
		return models.PaymentStatusAbsent
	}
}

// respondGatewayError relaie le message du backend tel quel
func respondGatewayError(c *gin.Context, err error) {
	var gwErr *gateway.GatewayError
	if errors.As(err, &gwErr) && gwErr.StatusCode != 0 {
		c.JSON(gwErr.StatusCode, gin.H{"error": gwErr.Error()})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}
