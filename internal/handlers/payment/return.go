package pay

import (
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"mebsy_store_front/internal/config"
	"mebsy_store_front/internal/models"
)

// PaymentReturn décode le retour de la passerelle de paiement et renvoie
// l'utilisateur vers le détail de la commande avec le statut en indice.
// Les identifiants propres à la passerelle (payment_id, preference_id)
// sont transportés sans être interprétés.
//
// ↩️ GET /api/payment/return
func PaymentReturn(c *gin.Context) {
	var ret models.PaymentReturn
	if err := c.ShouldBindQuery(&ret); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètres de retour invalides"})
		return
	}

	frontend := config.Get("FRONTEND_URL", "http://localhost:5173")

	// Sans statut ni commande, retour à la liste des commandes
	if ret.Status == "" || ret.OrderID == "" {
		c.Redirect(http.StatusFound, frontend+"/ordenes")
		return
	}

	log.Printf("↩️ Retour passerelle: commande %s, statut %s (payment_id=%s)",
		ret.OrderID, ret.Status, ret.PaymentID)

	target := frontend + "/orden/" + url.PathEscape(ret.OrderID) +
		"?status=" + url.QueryEscape(ret.Status)
	c.Redirect(http.StatusFound, target)
}
