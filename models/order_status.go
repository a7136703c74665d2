package models

import (
	"time"
)

// Payment status constants
const (
	PaymentStatusPending = "PENDING"
	PaymentStatusSuccess = "SUCCESS"
	PaymentStatusFailed  = "FAILED"
)

// OrderStatus is the single mutable record tracking the settlement outcome of
// one order, keyed by the gateway's collect id. It is created as PENDING
// together with the order and only the webhook reconciliation path updates it.
type OrderStatus struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	CollectID         string     `gorm:"uniqueIndex;not null" json:"collect_id"`
	OrderAmount       float64    `json:"order_amount"`
	TransactionAmount *float64   `json:"transaction_amount"`
	PaymentMode       string     `json:"payment_mode"`
	PaymentDetails    string     `json:"payment_details"`
	BankReference     string     `json:"bank_reference"`
	PaymentMessage    string     `json:"payment_message"`
	Status            string     `gorm:"default:PENDING;index" json:"status"`
	ErrorMessage      string     `json:"error_message"`
	PaymentTime       *time.Time `json:"payment_time"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Terminal reports whether the status can no longer change.
func Terminal(status string) bool {
	return status == PaymentStatusSuccess || status == PaymentStatusFailed
}
