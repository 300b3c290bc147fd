package models

import (
	"time"

	"github.com/gocql/gocql"
)

// CheckoutAudit est une entrée du journal d'audit des tentatives de checkout
type CheckoutAudit struct {
	ID            gocql.UUID `json:"id"`
	UserID        string     `json:"user_id"`
	OrderID       string     `json:"order_id"`
	ResumeOrderID string     `json:"resume_order_id"`
	State         string     `json:"state"`
	Success       bool       `json:"success"`
	ErrorMsg      string     `json:"error_msg"`
	IPAddress     string     `json:"ip_address"`
	Timestamp     time.Time  `json:"timestamp"`
}
