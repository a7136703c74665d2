package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/schoolpay/payments-api/metrics"
	"github.com/schoolpay/payments-api/models"
	"github.com/schoolpay/payments-api/repository"
	"github.com/schoolpay/payments-api/utils"
	"gorm.io/gorm"
)

// StatusStore is the per-key mutable status record the reconciliation
// engine updates.
type StatusStore interface {
	FindByCollectID(collectID string) (*models.OrderStatus, error)
	ApplyWebhookUpdate(collectID string, update repository.StatusUpdate) (int64, error)
}

// WebhookLogStore is the append-only audit log of inbound deliveries.
type WebhookLogStore interface {
	Create(log *models.WebhookLog) error
	Finalize(log *models.WebhookLog, status, errorMessage string) error
}

// OrderLookup resolves a collect id back to its order, used for the
// confirmation mail.
type OrderLookup interface {
	FindByCollectRequestID(collectRequestID string) (*models.Order, error)
}

// ConfirmationMailer sends the settlement confirmation. Sending is
// best-effort and never affects the delivery outcome.
type ConfirmationMailer interface {
	SendPaymentConfirmation(to, studentName, customOrderID string, amount float64, bankReference string) error
}

// WebhookPayload is the gateway notification envelope.
type WebhookPayload struct {
	OrderInfo *WebhookOrderInfo `json:"order_info"`
}

// WebhookOrderInfo carries the gateway's reported outcome. OrderID is the
// gateway's collect id. The gateway sends two misspelled optional field
// names ("payemnt_details", "Payment_message"); the parser reads those
// exact names until the upstream contract is confirmed. Case differences
// alone are absorbed by encoding/json's case-insensitive key match.
type WebhookOrderInfo struct {
	OrderID            string   `json:"order_id"`
	Status             string   `json:"status"`
	TransactionAmount  *float64 `json:"transaction_amount"`
	PaymentMode        string   `json:"payment_mode"`
	PaymentDetails     string   `json:"payment_details"`
	PaymentDetailsMiss string   `json:"payemnt_details"`
	BankReference      string   `json:"bank_reference"`
	PaymentMessage     string   `json:"payment_message"`
	PaymentTime        string   `json:"payment_time"`
	ErrorMessage       string   `json:"error_message"`
}

// Details returns the payment details, preferring the field name the
// gateway is known to send.
func (o *WebhookOrderInfo) Details() string {
	if o.PaymentDetailsMiss != "" {
		return o.PaymentDetailsMiss
	}
	return o.PaymentDetails
}

// IngestResult reports a successfully reconciled delivery.
type IngestResult struct {
	CollectID string
	Status    string
}

// WebhookService is the reconciliation engine: it audits, validates,
// correlates and idempotently applies inbound gateway notifications to the
// status store.
type WebhookService struct {
	statuses StatusStore
	logs     WebhookLogStore
	orders   OrderLookup
	mailer   ConfirmationMailer
	metrics  *metrics.PaymentMetrics
}

func NewWebhookService(statuses StatusStore, logs WebhookLogStore, orders OrderLookup, mailer ConfirmationMailer, m *metrics.PaymentMetrics) *WebhookService {
	return &WebhookService{
		statuses: statuses,
		logs:     logs,
		orders:   orders,
		mailer:   mailer,
		metrics:  m,
	}
}

// Ingest processes one raw delivery. The verbatim payload is persisted with a
// RECEIVED audit row before any validation, and the row is finalized with the
// outcome no matter how processing ends. Errors are *utils.AppError values
// carrying the HTTP class the gateway should see: 400 for malformed payloads,
// 404 for unknown collect ids, 409 for a conflicting terminal re-delivery and
// 500 for store failures. Re-delivery of an already-applied terminal outcome
// is a no-op success.
func (s *WebhookService) Ingest(raw []byte) (*IngestResult, error) {
	start := time.Now()

	log := &models.WebhookLog{
		ReceivedAt:       time.Now(),
		Payload:          string(raw),
		ProcessingStatus: models.WebhookStatusReceived,
	}
	if err := s.logs.Create(log); err != nil {
		utils.LogError("Failed to persist webhook audit record: %v", err)
		s.record(start, "error")
		return nil, utils.InternalError("Failed to record webhook delivery", err)
	}

	var payload WebhookPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		s.finalize(log, models.WebhookStatusError, "Invalid payload structure")
		s.record(start, "invalid")
		return nil, utils.BadRequestError("Invalid payload", err)
	}
	if payload.OrderInfo == nil || payload.OrderInfo.OrderID == "" {
		s.finalize(log, models.WebhookStatusError, "Invalid payload structure")
		s.record(start, "invalid")
		return nil, utils.BadRequestError("Invalid payload", nil)
	}

	info := payload.OrderInfo
	collectID := info.OrderID

	// Every delivery asserts a terminal result: exactly "success" maps to
	// SUCCESS, everything else to FAILED.
	newStatus := models.PaymentStatusFailed
	if info.Status == "success" {
		newStatus = models.PaymentStatusSuccess
	}

	update := repository.StatusUpdate{
		Status:            newStatus,
		TransactionAmount: info.TransactionAmount,
		PaymentMode:       info.PaymentMode,
		PaymentDetails:    info.Details(),
		BankReference:     info.BankReference,
		PaymentMessage:    info.PaymentMessage,
		PaymentTime:       parsePaymentTime(info.PaymentTime),
		ErrorMessage:      info.ErrorMessage,
	}

	rows, err := s.statuses.ApplyWebhookUpdate(collectID, update)
	if err != nil {
		s.finalize(log, models.WebhookStatusError, err.Error())
		s.record(start, "error")
		return nil, utils.InternalError("Failed to update order status", err)
	}

	if rows == 0 {
		existing, findErr := s.statuses.FindByCollectID(collectID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				msg := fmt.Sprintf("Order status not found for collect_id: %s", collectID)
				s.finalize(log, models.WebhookStatusError, msg)
				s.record(start, "not_found")
				return nil, utils.NotFoundError("Order status not found", nil)
			}
			s.finalize(log, models.WebhookStatusError, findErr.Error())
			s.record(start, "error")
			return nil, utils.InternalError("Failed to load order status", findErr)
		}

		// Re-delivery of an outcome already applied. Acknowledge without
		// touching the row or re-sending the confirmation mail.
		if existing.Status == newStatus {
			s.finalize(log, models.WebhookStatusProcessed, "")
			s.record(start, "duplicate")
			utils.LogInfo("Duplicate webhook for collect_id %s: status already %s", collectID, newStatus)
			return &IngestResult{CollectID: collectID, Status: newStatus}, nil
		}

		// The row exists but the conditional write refused it: a stale
		// re-delivery tried to flip one terminal status to the other.
		msg := fmt.Sprintf("Conflicting delivery for collect_id %s: status is already %s, refusing %s",
			collectID, existing.Status, newStatus)
		utils.LogError("%s", msg)
		s.finalize(log, models.WebhookStatusError, msg)
		s.record(start, "conflict")
		return nil, utils.ConflictError("Order status already finalized", nil)
	}

	if err := s.logs.Finalize(log, models.WebhookStatusProcessed, ""); err != nil {
		utils.LogError("Failed to finalize webhook audit record %d: %v", log.ID, err)
	}

	if newStatus == models.PaymentStatusSuccess {
		s.sendConfirmation(collectID, info)
	}

	s.record(start, "processed")
	utils.LogInfo("Webhook processed for collect_id %s: status %s", collectID, newStatus)
	return &IngestResult{CollectID: collectID, Status: newStatus}, nil
}

func (s *WebhookService) sendConfirmation(collectID string, info *WebhookOrderInfo) {
	if s.mailer == nil || s.orders == nil {
		return
	}
	order, err := s.orders.FindByCollectRequestID(collectID)
	if err != nil {
		utils.LogError("Cannot send confirmation for collect_id %s: order lookup failed: %v", collectID, err)
		return
	}
	if order.StudentEmail == "" {
		return
	}
	amount := order.Amount
	if info.TransactionAmount != nil {
		amount = *info.TransactionAmount
	}
	if err := s.mailer.SendPaymentConfirmation(order.StudentEmail, order.StudentName,
		order.CustomOrderID, amount, info.BankReference); err != nil {
		utils.LogError("Failed to send confirmation mail for order %s: %v", order.CustomOrderID, err)
	}
}

func (s *WebhookService) finalize(log *models.WebhookLog, status, msg string) {
	if err := s.logs.Finalize(log, status, msg); err != nil {
		utils.LogError("Failed to finalize webhook audit record %d: %v", log.ID, err)
	}
}

func (s *WebhookService) record(start time.Time, outcome string) {
	s.metrics.RecordWebhookDelivery(outcome, time.Since(start).Seconds())
}

func parsePaymentTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	utils.LogDebug("Unparsable payment_time in webhook payload: %q", value)
	return nil
}
