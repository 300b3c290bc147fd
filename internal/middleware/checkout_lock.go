package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mebsy_store_front/internal/database"
)

const (
	// CheckoutLockTTL borne la durée d'un verrou orphelin (crash du
	// serveur en plein checkout). Doit dépasser le pire cas d'un Pay :
	// jusqu'à cinq appels backend, chacun borné par le timeout du
	// client gateway — sinon le verrou expire pendant que la première
	// tentative est encore en vol.
	CheckoutLockTTL = 90 * time.Second

	// Limites anti-spam panier
	CartAddMaxPerMinute = 20
)

// CheckoutSingleFlight garantit qu'un utilisateur n'a qu'une tentative
// de Pay en vol à la fois. Deux clics concurrents sans commande à
// reprendre créeraient deux commandes depuis le même panier : le
// deuxième reçoit 409 tant que le premier n'a pas terminé.
func CheckoutSingleFlight() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.Next()
			return
		}

		ctx := context.Background()
		key := "checkout_lock:" + userID

		acquired, err := database.Redis.SetNX(ctx, key, "1", CheckoutLockTTL).Result()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur verrou checkout"})
			c.Abort()
			return
		}
		if !acquired {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Un paiement est déjà en cours, patiente un instant",
			})
			c.Abort()
			return
		}

		// Libérer le verrou quand la tentative se termine, succès ou échec
		defer database.Redis.Del(ctx, key)

		c.Next()
	}
}

// CartRateLimit limite les ajouts au panier (anti-spam)
func CartRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.Next()
			return
		}

		ctx := context.Background()
		key := "cart_add:" + userID

		requests, _ := database.Redis.Get(ctx, key).Int()
		if requests >= CartAddMaxPerMinute {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Trop d'ajouts au panier. Ralentissez un peu",
				"retry_after": 60,
			})
			c.Abort()
			return
		}

		pipe := database.Redis.Pipeline()
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, 1*time.Minute)
		pipe.Exec(ctx)

		c.Next()
	}
}
