package routes

import (
	"github.com/gin-gonic/gin"

	pay "mebsy_store_front/internal/handlers/payment"
	"mebsy_store_front/internal/handlers/user"
	"mebsy_store_front/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// Retour de la passerelle de paiement (pas de token : l'utilisateur
	// revient par redirection externe)
	api.GET("/payment/return", pay.PaymentReturn)

	auth := api.Group("")
	auth.Use(middleware.AuthRequired())

	// Panier
	auth.GET("/cart", user.GetCart)
	auth.POST("/cart/add", middleware.CartRateLimit(), user.AddToCart)
	auth.PUT("/cart/quantity", user.UpdateQuantity)
	auth.DELETE("/cart/clear", user.ClearCart)
	auth.DELETE("/cart/:productId", user.RemoveFromCart)
	auth.GET("/cart/ws", user.CartWebSocket)

	// Checkout
	auth.GET("/checkout/preconditions", pay.Preconditions)
	auth.GET("/checkout/shipping", pay.ShippingQuote)
	auth.POST("/checkout/pay", middleware.CheckoutSingleFlight(), pay.Pay)
	auth.POST("/checkout/reorder", pay.Reorder)

	// Commandes
	auth.GET("/orders/me", user.GetMyOrders)
	auth.GET("/orders/:id", user.GetOrderByID)
}
