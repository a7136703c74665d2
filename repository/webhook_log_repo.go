package repository

import (
	"github.com/schoolpay/payments-api/models"
	"gorm.io/gorm"
)

// WebhookLogRepository provides access to the webhook audit log.
type WebhookLogRepository struct {
	db *gorm.DB
}

func NewWebhookLogRepository(db *gorm.DB) *WebhookLogRepository {
	return &WebhookLogRepository{db: db}
}

func (r *WebhookLogRepository) Create(log *models.WebhookLog) error {
	return r.db.Create(log).Error
}

// Finalize records the processing outcome on an existing audit row.
func (r *WebhookLogRepository) Finalize(log *models.WebhookLog, status, errorMessage string) error {
	log.ProcessingStatus = status
	log.ErrorMessage = errorMessage
	return r.db.Model(log).Updates(map[string]interface{}{
		"processing_status": status,
		"error_message":     errorMessage,
	}).Error
}
