package reconcile

import "mebsy_store_front/internal/models"

// Statut d'affichage résolu à partir des deux signaux indépendants :
// le statut de la commande (source de vérité durable) et le paramètre
// de retour de la passerelle (indice possiblement périmé).
const (
	DisplayShipped = "shipped"
	DisplayPaid    = "paid"
	DisplayPending = "pending"
	DisplayFailed  = "failed"
	DisplayUnknown = "unknown"
)

// Actions proposées à l'utilisateur selon le statut résolu
const (
	ActionResumePayment = "resume_payment"
	ActionBuyAgain      = "buy_again"
	ActionNone          = ""
)

// Resolution est le résultat de la réconciliation tri-partite
type Resolution struct {
	DisplayStatus string `json:"displayStatus"`
	Action        string `json:"action,omitempty"`
	// ResumeOrderID est renseigné uniquement quand le paiement peut être
	// repris : il ré-entre dans le checkout sans recréer la commande.
	ResumeOrderID string `json:"resumeOrderId,omitempty"`
}

// Resolve réconcilie le statut de la commande avec l'indice de la
// passerelle. Ordre de précédence, du plus prioritaire au moins :
// SHIPPED → PAID/success → PENDING_PAYMENT/pending → CANCELLED/failure.
// Le paramètre d'URL ne rétrograde jamais un statut de commande plus
// avancé (le webhook a pu confirmer le paiement après la redirection).
func Resolve(order *models.Order, paymentStatus string) Resolution {
	orderStatus := ""
	orderID := ""
	if order != nil {
		orderStatus = order.Status
		orderID = order.ID
	}

	switch {
	case orderStatus == models.OrderStatusShipped:
		return Resolution{DisplayStatus: DisplayShipped, Action: ActionBuyAgain}

	case orderStatus == models.OrderStatusPaid || paymentStatus == models.PaymentStatusSuccess:
		// L'indice success peut précéder le webhook : tant que la
		// commande elle-même est encore PENDING_PAYMENT, le paiement
		// reste reprenable, jamais "racheter"
		if orderStatus == models.OrderStatusPendingPayment {
			return Resolution{
				DisplayStatus: DisplayPaid,
				Action:        ActionResumePayment,
				ResumeOrderID: orderID,
			}
		}
		return Resolution{DisplayStatus: DisplayPaid, Action: ActionBuyAgain}

	case orderStatus == models.OrderStatusPendingPayment || paymentStatus == models.PaymentStatusPending:
		res := Resolution{DisplayStatus: DisplayPending}
		// La reprise de paiement n'est proposée que si la commande
		// elle-même est encore en attente
		if orderStatus == models.OrderStatusPendingPayment {
			res.Action = ActionResumePayment
			res.ResumeOrderID = orderID
		}
		return res

	case orderStatus == models.OrderStatusCancelled || paymentStatus == models.PaymentStatusFailure:
		return Resolution{DisplayStatus: DisplayFailed, Action: ActionBuyAgain}

	default:
		return Resolution{DisplayStatus: DisplayUnknown}
	}
}
