package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/schoolpay/payments-api/models"
	"github.com/schoolpay/payments-api/services"
	"github.com/schoolpay/payments-api/utils"
)

// PaymentController handles payment initiation and the gateway webhook.
type PaymentController struct {
	payments *services.PaymentService
	webhooks *services.WebhookService
}

func NewPaymentController(payments *services.PaymentService, webhooks *services.WebhookService) *PaymentController {
	return &PaymentController{payments: payments, webhooks: webhooks}
}

// CreatePayment handles POST /api/payment/create-payment
func (ctrl *PaymentController) CreatePayment(c *gin.Context) {
	utils.LogInfo("CreatePayment called")

	var req struct {
		Amount      float64            `json:"amount" binding:"required"`
		StudentInfo models.StudentInfo `json:"student_info" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid create-payment request: %v", err)
		utils.BadRequest(c, "Invalid request. amount and student_info are required", err.Error())
		return
	}

	paymentURL, err := ctrl.payments.CreatePayment(c.Request.Context(), services.CreatePaymentInput{
		Amount:      req.Amount,
		StudentInfo: req.StudentInfo,
	})
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"paymentUrl": paymentURL})
}

// WebhookHint handles GET /api/payment/webhook
func (ctrl *PaymentController) WebhookHint(c *gin.Context) {
	c.String(http.StatusOK, "This endpoint is for POST webhook calls only.")
}

// Webhook handles POST /api/payment/webhook. The gateway retries on non-2xx
// acknowledgments, so failures are surfaced with their HTTP class rather
// than swallowed.
func (ctrl *PaymentController) Webhook(c *gin.Context) {
	utils.LogInfo("Webhook received from %s", c.ClientIP())

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.LogError("Failed to read webhook body: %v", err)
		c.String(http.StatusBadRequest, "Invalid payload")
		return
	}

	result, err := ctrl.webhooks.Ingest(raw)
	if err != nil {
		if appErr := utils.GetAppError(err); appErr != nil {
			c.String(appErr.Code, appErr.Message)
			return
		}
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.LogInfo("Webhook for collect_id %s applied status %s", result.CollectID, result.Status)
	c.String(http.StatusOK, "Webhook processed successfully")
}
