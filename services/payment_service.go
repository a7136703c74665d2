package services

import (
	"context"

	"github.com/jaevor/go-nanoid"
	"github.com/schoolpay/payments-api/gateway"
	"github.com/schoolpay/payments-api/metrics"
	"github.com/schoolpay/payments-api/models"
	"github.com/schoolpay/payments-api/utils"
)

// defaultGatewayName is used when the gateway omits its name from the
// collect-request response.
const defaultGatewayName = "Edviron"

// CollectRequestCreator is the outbound gateway call the initiation flow
// depends on.
type CollectRequestCreator interface {
	CreateCollectRequest(ctx context.Context, amount float64, callbackURL string) (*gateway.CollectRequest, error)
}

// OrderCreator persists a new order with its initial status.
type OrderCreator interface {
	CreateWithStatus(order *models.Order, status *models.OrderStatus) error
}

// CreatePaymentInput is a validated initiation request.
type CreatePaymentInput struct {
	Amount      float64
	StudentInfo models.StudentInfo
}

// PaymentService initiates payment collections: it mints an order id, asks
// the gateway to open a hosted collection and, only once the gateway has
// accepted, persists the order together with a PENDING status.
type PaymentService struct {
	gateway     CollectRequestCreator
	orders      OrderCreator
	metrics     *metrics.PaymentMetrics
	schoolID    string
	callbackURL string
}

func NewPaymentService(gw CollectRequestCreator, orders OrderCreator, m *metrics.PaymentMetrics, schoolID, callbackURL string) *PaymentService {
	return &PaymentService{
		gateway:     gw,
		orders:      orders,
		metrics:     m,
		schoolID:    schoolID,
		callbackURL: callbackURL,
	}
}

// CreatePayment runs one initiation. It returns the hosted payment URL the
// caller should redirect to. Nothing is persisted unless the gateway call
// succeeds.
func (s *PaymentService) CreatePayment(ctx context.Context, input CreatePaymentInput) (string, error) {
	if input.Amount <= 0 {
		return "", utils.BadRequestError("Amount must be greater than zero", nil)
	}
	if input.StudentInfo.Name == "" {
		return "", utils.BadRequestError("Student name is required", nil)
	}
	if !utils.IsValidEmail(input.StudentInfo.Email) {
		return "", utils.BadRequestError("A valid student email is required", nil)
	}

	customOrderID, err := newCustomOrderID()
	if err != nil {
		return "", utils.InternalError("Failed to generate order id", err)
	}

	collect, err := s.gateway.CreateCollectRequest(ctx, input.Amount, s.callbackURL)
	if err != nil {
		utils.LogError("Gateway collect request failed for order %s: %v", customOrderID, err)
		s.metrics.RecordGatewayError()
		return "", utils.InternalError("Server error while creating payment", err)
	}

	gatewayName := collect.GatewayName
	if gatewayName == "" {
		gatewayName = defaultGatewayName
	}

	order := &models.Order{
		SchoolID:         s.schoolID,
		CustomOrderID:    customOrderID,
		CollectRequestID: collect.CollectRequestID,
		GatewayName:      gatewayName,
		StudentName:      input.StudentInfo.Name,
		StudentEmail:     input.StudentInfo.Email,
		StudentID:        input.StudentInfo.ID,
		Amount:           input.Amount,
	}
	status := &models.OrderStatus{
		CollectID:   collect.CollectRequestID,
		OrderAmount: input.Amount,
		Status:      models.PaymentStatusPending,
	}

	if err := s.orders.CreateWithStatus(order, status); err != nil {
		utils.LogError("Failed to persist order %s after gateway accepted collect request %s: %v",
			customOrderID, collect.CollectRequestID, err)
		return "", utils.InternalError("Failed to save order", err)
	}

	s.metrics.RecordPaymentCreated(s.schoolID, gatewayName, input.Amount)
	utils.LogInfo("Created order %s with collect request %s for amount %.2f",
		customOrderID, collect.CollectRequestID, input.Amount)

	return collect.CollectRequestURL, nil
}

func newCustomOrderID() (string, error) {
	gen, err := nanoid.Standard(12)
	if err != nil {
		return "", err
	}
	return "ORD-" + gen(), nil
}
