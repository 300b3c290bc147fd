package gateway

import "fmt"

// GatewayError encapsule une réponse non-2xx du backend de commandes.
// Le message du backend est transporté tel quel, jamais reformulé :
// c'est lui qui sera affiché à l'utilisateur.
type GatewayError struct {
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("erreur backend (%d)", e.StatusCode)
}
