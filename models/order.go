package models

import (
	"time"
)

// Order is the local record of one payment collection request. It is created
// only after the gateway has accepted the request and is never mutated
// afterwards. CollectRequestID is the gateway-assigned identifier used to
// correlate webhook notifications back to this order.
type Order struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	SchoolID         string    `gorm:"index;not null" json:"school_id"`
	TrusteeID        *string   `json:"trustee_id,omitempty"`
	CustomOrderID    string    `gorm:"uniqueIndex;not null" json:"custom_order_id"`
	CollectRequestID string    `gorm:"uniqueIndex;not null" json:"collect_request_id"`
	GatewayName      string    `json:"gateway_name"`
	StudentName      string    `json:"-"`
	StudentEmail     string    `json:"-"`
	StudentID        string    `json:"-"`
	Amount           float64   `gorm:"not null" json:"amount"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// StudentInfo is the payee block as it appears on the wire.
type StudentInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	ID    string `json:"id,omitempty"`
}

// Student returns the order's payee info in wire form.
func (o *Order) Student() StudentInfo {
	return StudentInfo{Name: o.StudentName, Email: o.StudentEmail, ID: o.StudentID}
}
