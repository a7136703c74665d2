package services

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/schoolpay/payments-api/gateway"
	"github.com/schoolpay/payments-api/models"
	"github.com/schoolpay/payments-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPaymentFixture() (*PaymentService, *fakeGateway, *fakeOrderStore, *fakeStatusStore) {
	gw := &fakeGateway{response: &gateway.CollectRequest{
		CollectRequestID:  "COLLECT123",
		CollectRequestURL: "https://pay.example.com/COLLECT123",
		GatewayName:       "PhonePe",
	}}
	statuses := newFakeStatusStore()
	orders := newFakeOrderStore(statuses)
	svc := NewPaymentService(gw, orders, nil, "SCH001", "https://app.example.com/dashboard")
	return svc, gw, orders, statuses
}

func validInput() CreatePaymentInput {
	return CreatePaymentInput{
		Amount: 500,
		StudentInfo: models.StudentInfo{
			Name:  "Aman Gupta",
			Email: "aman@example.com",
			ID:    "STU42",
		},
	}
}

func TestCreatePaymentPersistsOrderWithPendingStatus(t *testing.T) {
	svc, _, orders, statuses := newPaymentFixture()

	url, err := svc.CreatePayment(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/COLLECT123", url)

	order, ok := orders.orders["COLLECT123"]
	require.True(t, ok, "order must be stored under the gateway collect id")
	assert.Equal(t, "SCH001", order.SchoolID)
	assert.Equal(t, "PhonePe", order.GatewayName)
	assert.Equal(t, 500.0, order.Amount)
	assert.Equal(t, "Aman Gupta", order.StudentName)
	assert.True(t, strings.HasPrefix(order.CustomOrderID, "ORD-"))

	status, ok := statuses.statuses["COLLECT123"]
	require.True(t, ok, "initial status must share the collect id")
	assert.Equal(t, models.PaymentStatusPending, status.Status)
	assert.Equal(t, 500.0, status.OrderAmount)
}

func TestCreatePaymentGatewayFailure(t *testing.T) {
	svc, gw, orders, statuses := newPaymentFixture()
	gw.err = errStoreDown

	_, err := svc.CreatePayment(context.Background(), validInput())
	require.Error(t, err)
	appErr := utils.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Equal(t, "Server error while creating payment", appErr.Message)

	assert.Empty(t, orders.orders, "nothing may be persisted when the gateway refuses")
	assert.Empty(t, statuses.statuses)
}

func TestCreatePaymentValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreatePaymentInput)
	}{
		{"zero amount", func(in *CreatePaymentInput) { in.Amount = 0 }},
		{"negative amount", func(in *CreatePaymentInput) { in.Amount = -10 }},
		{"missing name", func(in *CreatePaymentInput) { in.StudentInfo.Name = "" }},
		{"invalid email", func(in *CreatePaymentInput) { in.StudentInfo.Email = "not-an-email" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, gw, _, _ := newPaymentFixture()
			input := validInput()
			tt.mutate(&input)

			_, err := svc.CreatePayment(context.Background(), input)
			require.Error(t, err)
			appErr := utils.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, http.StatusBadRequest, appErr.Code)
			assert.Equal(t, 0, gw.calls, "validation failures must not reach the gateway")
		})
	}
}

func TestCreatePaymentDefaultsGatewayName(t *testing.T) {
	svc, gw, orders, _ := newPaymentFixture()
	gw.response.GatewayName = ""

	_, err := svc.CreatePayment(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, defaultGatewayName, orders.orders["COLLECT123"].GatewayName)
}

func TestCreatePaymentStoreFailure(t *testing.T) {
	svc, _, orders, _ := newPaymentFixture()
	orders.failWith = errStoreDown

	_, err := svc.CreatePayment(context.Background(), validInput())
	require.Error(t, err)
	appErr := utils.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Equal(t, "Failed to save order", appErr.Message)
}
