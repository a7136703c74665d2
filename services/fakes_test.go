package services

import (
	"context"
	"errors"

	"github.com/schoolpay/payments-api/gateway"
	"github.com/schoolpay/payments-api/models"
	"github.com/schoolpay/payments-api/repository"
	"gorm.io/gorm"
)

// In-memory stand-ins for the repositories, mirroring the stores'
// conditional-update semantics so the engines can be tested in isolation.

type fakeStatusStore struct {
	statuses map[string]*models.OrderStatus
	failWith error
}

func newFakeStatusStore() *fakeStatusStore {
	return &fakeStatusStore{statuses: make(map[string]*models.OrderStatus)}
}

func (f *fakeStatusStore) FindByCollectID(collectID string) (*models.OrderStatus, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	status, ok := f.statuses[collectID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *status
	return &copied, nil
}

func (f *fakeStatusStore) ApplyWebhookUpdate(collectID string, update repository.StatusUpdate) (int64, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	status, ok := f.statuses[collectID]
	if !ok {
		return 0, nil
	}
	if status.Status != models.PaymentStatusPending {
		return 0, nil
	}
	status.Status = update.Status
	status.TransactionAmount = update.TransactionAmount
	status.PaymentMode = update.PaymentMode
	status.PaymentDetails = update.PaymentDetails
	status.BankReference = update.BankReference
	status.PaymentMessage = update.PaymentMessage
	status.PaymentTime = update.PaymentTime
	status.ErrorMessage = update.ErrorMessage
	return 1, nil
}

type fakeWebhookLogStore struct {
	logs     []*models.WebhookLog
	failWith error
}

func (f *fakeWebhookLogStore) Create(log *models.WebhookLog) error {
	if f.failWith != nil {
		return f.failWith
	}
	log.ID = uint(len(f.logs) + 1)
	f.logs = append(f.logs, log)
	return nil
}

func (f *fakeWebhookLogStore) Finalize(log *models.WebhookLog, status, errorMessage string) error {
	log.ProcessingStatus = status
	log.ErrorMessage = errorMessage
	return nil
}

func (f *fakeWebhookLogStore) last() *models.WebhookLog {
	if len(f.logs) == 0 {
		return nil
	}
	return f.logs[len(f.logs)-1]
}

type fakeOrderStore struct {
	orders   map[string]*models.Order // keyed by collect request id
	statuses *fakeStatusStore
	failWith error
}

func newFakeOrderStore(statuses *fakeStatusStore) *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[string]*models.Order), statuses: statuses}
}

func (f *fakeOrderStore) CreateWithStatus(order *models.Order, status *models.OrderStatus) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.orders[order.CollectRequestID] = order
	if f.statuses != nil {
		f.statuses.statuses[status.CollectID] = status
	}
	return nil
}

func (f *fakeOrderStore) FindByCollectRequestID(collectRequestID string) (*models.Order, error) {
	order, ok := f.orders[collectRequestID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (f *fakeOrderStore) FindByCustomOrderID(customOrderID string) (*models.Order, error) {
	for _, order := range f.orders {
		if order.CustomOrderID == customOrderID {
			return order, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOrderStore) FindBySchoolID(schoolID string) ([]models.Order, error) {
	var orders []models.Order
	for _, order := range f.orders {
		if order.SchoolID == schoolID {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

type fakeGateway struct {
	response *gateway.CollectRequest
	err      error
	calls    int
}

func (f *fakeGateway) CreateCollectRequest(ctx context.Context, amount float64, callbackURL string) (*gateway.CollectRequest, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

type fakeMailer struct {
	sent []string // recipient addresses
	err  error
}

func (f *fakeMailer) SendPaymentConfirmation(to, studentName, customOrderID string, amount float64, bankReference string) error {
	f.sent = append(f.sent, to)
	return f.err
}

var errStoreDown = errors.New("store unavailable")
