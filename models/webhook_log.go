package models

import (
	"time"
)

// Webhook processing status constants
const (
	WebhookStatusReceived  = "RECEIVED"
	WebhookStatusProcessed = "PROCESSED"
	WebhookStatusError     = "ERROR"
)

// WebhookLog is the append-only audit record of one inbound gateway
// notification. The row is written before any validation so every delivery is
// observable, then finalized in place with the processing outcome. It never
// drives business logic.
type WebhookLog struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ReceivedAt       time.Time `json:"received_at"`
	Payload          string    `gorm:"type:text" json:"payload"`
	ProcessingStatus string    `gorm:"default:RECEIVED" json:"processing_status"`
	ErrorMessage     string    `json:"error_message"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
