package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mebsy_store_front/internal/models"
)

func TestCreateOrderSendsOnlyIDAndQuantity(t *testing.T) {
	var received map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders", r.URL.Path)
		require.Equal(t, "Bearer jeton-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		json.NewEncoder(w).Encode(models.Order{ID: "order-1", Status: models.OrderStatusPendingPayment})
	}))
	defer server.Close()

	client := NewClient(server.URL, "jeton-test")
	order, err := client.CreateOrder(context.Background(), []models.OrderLineInput{
		{ProductID: "p-1", Quantity: 2},
	}, "addr-1")

	require.NoError(t, err)
	assert.Equal(t, "order-1", order.ID)

	// Le prix n'est jamais envoyé, il est recalculé côté serveur
	items := received["items"].([]interface{})
	first := items[0].(map[string]interface{})
	assert.Equal(t, "p-1", first["productId"])
	assert.Equal(t, 2.0, first["quantity"])
	assert.NotContains(t, first, "unitPrice")
	assert.Equal(t, "addr-1", received["shippingAddressId"])
}

func TestNonTwoHundredBecomesGatewayErrorWithVerbatimMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "Stock insuficiente para el producto X"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.CreateOrder(context.Background(), nil, "addr-1")

	require.Error(t, err)
	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusConflict, gwErr.StatusCode)
	assert.Equal(t, "Stock insuficiente para el producto X", gwErr.Error())
}

func TestCreatePaymentPreferenceReturnsInitPoint(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.Equal(t, "/orders/order-7/payment/preference", r.URL.Path)

		var body map[string]float64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.InDelta(t, 3.75, body["shippingCost"], 0.0001)

		json.NewEncoder(w).Encode(map[string]string{"initPoint": "https://gateway.example/checkout/xyz"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")

	// Deux appels identiques : le backend garantit l'idempotence par commande
	for i := 0; i < 2; i++ {
		pref, err := client.CreatePaymentPreference(context.Background(), "order-7", 3.75)
		require.NoError(t, err)
		assert.Equal(t, "https://gateway.example/checkout/xyz", pref.InitPoint)
		assert.Equal(t, "order-7", pref.OrderID)
	}
	assert.Equal(t, 2, calls)
}

func TestUnreachableBackendIsAGatewayError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "")
	_, err := client.GetOrder(context.Background(), "order-1")

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
}
