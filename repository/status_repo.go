package repository

import (
	"time"

	"github.com/schoolpay/payments-api/models"
	"gorm.io/gorm"
)

// StatusUpdate carries the fields a webhook delivery may overwrite on an
// order's status row.
type StatusUpdate struct {
	Status            string
	TransactionAmount *float64
	PaymentMode       string
	PaymentDetails    string
	BankReference     string
	PaymentMessage    string
	PaymentTime       *time.Time
	ErrorMessage      string
}

// StatusRepository provides access to payment status records.
type StatusRepository struct {
	db *gorm.DB
}

func NewStatusRepository(db *gorm.DB) *StatusRepository {
	return &StatusRepository{db: db}
}

func (r *StatusRepository) FindByCollectID(collectID string) (*models.OrderStatus, error) {
	var status models.OrderStatus
	if err := r.db.Where("collect_id = ?", collectID).First(&status).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

// ApplyWebhookUpdate applies a delivery to the status row for collectID as a
// single conditional write: the row is only touched while it is still PENDING,
// so a terminal row is never rewritten. The returned count is the number of
// rows updated; zero means the row is missing, already settled the same way,
// or holds a conflicting terminal status, which the caller tells apart with
// FindByCollectID.
func (r *StatusRepository) ApplyWebhookUpdate(collectID string, update StatusUpdate) (int64, error) {
	result := r.db.Model(&models.OrderStatus{}).
		Where("collect_id = ? AND status = ?", collectID, models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":             update.Status,
			"transaction_amount": update.TransactionAmount,
			"payment_mode":       update.PaymentMode,
			"payment_details":    update.PaymentDetails,
			"bank_reference":     update.BankReference,
			"payment_message":    update.PaymentMessage,
			"payment_time":       update.PaymentTime,
			"error_message":      update.ErrorMessage,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
