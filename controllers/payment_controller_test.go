package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/schoolpay/payments-api/models"
	"github.com/schoolpay/payments-api/repository"
	"github.com/schoolpay/payments-api/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memStatusStore struct {
	statuses map[string]*models.OrderStatus
}

func (m *memStatusStore) FindByCollectID(collectID string) (*models.OrderStatus, error) {
	status, ok := m.statuses[collectID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return status, nil
}

func (m *memStatusStore) ApplyWebhookUpdate(collectID string, update repository.StatusUpdate) (int64, error) {
	status, ok := m.statuses[collectID]
	if !ok {
		return 0, nil
	}
	if status.Status != models.PaymentStatusPending {
		return 0, nil
	}
	status.Status = update.Status
	status.TransactionAmount = update.TransactionAmount
	return 1, nil
}

type memWebhookLogStore struct {
	logs []*models.WebhookLog
}

func (m *memWebhookLogStore) Create(log *models.WebhookLog) error {
	log.ID = uint(len(m.logs) + 1)
	m.logs = append(m.logs, log)
	return nil
}

func (m *memWebhookLogStore) Finalize(log *models.WebhookLog, status, errorMessage string) error {
	log.ProcessingStatus = status
	log.ErrorMessage = errorMessage
	return nil
}

func newWebhookRouter(statuses *memStatusStore, logs *memWebhookLogStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	webhooks := services.NewWebhookService(statuses, logs, nil, nil, nil)
	ctrl := NewPaymentController(nil, webhooks)

	router := gin.New()
	router.GET("/api/payment/webhook", ctrl.WebhookHint)
	router.POST("/api/payment/webhook", ctrl.Webhook)
	return router
}

func postWebhook(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/payment/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestWebhookEndpointProcessed(t *testing.T) {
	statuses := &memStatusStore{statuses: map[string]*models.OrderStatus{
		"C1": {CollectID: "C1", Status: models.PaymentStatusPending},
	}}
	logs := &memWebhookLogStore{}
	router := newWebhookRouter(statuses, logs)

	rec := postWebhook(t, router, `{"order_info":{"order_id":"C1","status":"success","transaction_amount":500}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Webhook processed successfully", rec.Body.String())
	assert.Equal(t, models.PaymentStatusSuccess, statuses.statuses["C1"].Status)
	require.Len(t, logs.logs, 1)
	assert.Equal(t, models.WebhookStatusProcessed, logs.logs[0].ProcessingStatus)
}

func TestWebhookEndpointInvalidPayload(t *testing.T) {
	statuses := &memStatusStore{statuses: map[string]*models.OrderStatus{}}
	router := newWebhookRouter(statuses, &memWebhookLogStore{})

	rec := postWebhook(t, router, `{"no_order_info":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhookEndpointUnknownCollectID(t *testing.T) {
	statuses := &memStatusStore{statuses: map[string]*models.OrderStatus{}}
	router := newWebhookRouter(statuses, &memWebhookLogStore{})

	rec := postWebhook(t, router, `{"order_info":{"order_id":"MISSING","status":"success"}}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWebhookEndpointConflict(t *testing.T) {
	statuses := &memStatusStore{statuses: map[string]*models.OrderStatus{
		"C1": {CollectID: "C1", Status: models.PaymentStatusSuccess},
	}}
	router := newWebhookRouter(statuses, &memWebhookLogStore{})

	rec := postWebhook(t, router, `{"order_info":{"order_id":"C1","status":"failed"}}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, models.PaymentStatusSuccess, statuses.statuses["C1"].Status)
}

func TestWebhookHint(t *testing.T) {
	router := newWebhookRouter(&memStatusStore{statuses: map[string]*models.OrderStatus{}}, &memWebhookLogStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/payment/webhook", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "This endpoint is for POST webhook calls only.", rec.Body.String())
}
