package utils

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"mebsy_store_front/internal/database"
	"mebsy_store_front/internal/models"
)

// LogCheckoutAttempt enregistre une tentative de checkout réussie dans
// le journal d'audit
func LogCheckoutAttempt(c *gin.Context, orderID, resumeOrderID, state string) {
	go func() {
		if err := logCheckoutAsync(c, orderID, resumeOrderID, state, true, ""); err != nil {
			log.Printf("❌ Erreur enregistrement audit checkout: %v", err)
		}
	}()
}

// LogFailedCheckout enregistre une tentative de checkout échouée
func LogFailedCheckout(c *gin.Context, resumeOrderID, state, errorMsg string) {
	go func() {
		if err := logCheckoutAsync(c, "", resumeOrderID, state, false, errorMsg); err != nil {
			log.Printf("❌ Erreur enregistrement audit checkout: %v", err)
		}
	}()
}

// logCheckoutAsync écrit l'entrée de façon asynchrone, hors du chemin
// de la requête
func logCheckoutAsync(c *gin.Context, orderID, resumeOrderID, state string, success bool, errorMsg string) error {
	session, err := database.GetAuditSession()
	if err != nil {
		return err
	}

	entry := models.CheckoutAudit{
		ID:            gocql.TimeUUID(),
		UserID:        c.GetString("user_id"),
		OrderID:       orderID,
		ResumeOrderID: resumeOrderID,
		State:         state,
		Success:       success,
		ErrorMsg:      errorMsg,
		IPAddress:     c.ClientIP(),
		Timestamp:     time.Now(),
	}

	query := `
		INSERT INTO checkout_audit (
			id, user_id, order_id, resume_order_id, state,
			success, error_msg, ip_address, timestamp
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	return session.Query(query,
		entry.ID, entry.UserID, entry.OrderID, entry.ResumeOrderID,
		entry.State, entry.Success, entry.ErrorMsg, entry.IPAddress,
		entry.Timestamp,
	).Exec()
}
