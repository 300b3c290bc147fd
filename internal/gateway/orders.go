package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"mebsy_store_front/internal/models"
)

// OrderGateway est le backend distant, propriétaire des commandes.
// Le storefront le consomme en lecture seule à l'exception de la
// création : il ne modifie jamais un statut localement.
type OrderGateway interface {
	CreateOrder(ctx context.Context, items []models.OrderLineInput, shippingAddressID string) (*models.Order, error)
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
	ListMyOrders(ctx context.Context) ([]models.Order, error)
	// CreatePaymentPreference crée ou rafraîchit la préférence de paiement
	// d'une commande. Idempotent par orderID côté passerelle : jamais deux
	// objets payables distincts pour la même commande.
	CreatePaymentPreference(ctx context.Context, orderID string, shippingCost float64) (*models.PaymentPreference, error)
	GetProfile(ctx context.Context) (*models.Profile, error)
	ListAddresses(ctx context.Context) ([]models.Address, error)
}

// RequestTimeout borne chaque appel sortant vers le backend
const RequestTimeout = 15 * time.Second

// Client est l'implémentation HTTP d'OrderGateway. Une instance par
// requête entrante : le token de l'utilisateur est relayé tel quel,
// les timeouts sont la responsabilité du transport.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: RequestTimeout},
	}
}

func (c *Client) CreateOrder(ctx context.Context, items []models.OrderLineInput, shippingAddressID string) (*models.Order, error) {
	body := map[string]interface{}{
		"items":             items,
		"shippingAddressId": shippingAddressID,
	}

	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/orders", body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+orderID, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) ListMyOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/orders/me", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) CreatePaymentPreference(ctx context.Context, orderID string, shippingCost float64) (*models.PaymentPreference, error) {
	body := map[string]interface{}{
		"shippingCost": shippingCost,
	}

	var pref models.PaymentPreference
	if err := c.do(ctx, http.MethodPost, "/orders/"+orderID+"/payment/preference", body, &pref); err != nil {
		return nil, err
	}
	if pref.OrderID == "" {
		pref.OrderID = orderID
	}
	return &pref, nil
}

func (c *Client) GetProfile(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	if err := c.do(ctx, http.MethodGet, "/user/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) ListAddresses(ctx context.Context) ([]models.Address, error) {
	var addresses []models.Address
	if err := c.do(ctx, http.MethodGet, "/user/addresses", nil, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// do exécute une requête et décode la réponse. Une réponse non-2xx
// devient une GatewayError portant le message du backend.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &GatewayError{Message: fmt.Sprintf("backend injoignable: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)

	msg := payload.Error
	if msg == "" {
		msg = payload.Message
	}
	return &GatewayError{StatusCode: resp.StatusCode, Message: msg}
}
