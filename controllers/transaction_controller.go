package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/schoolpay/payments-api/repository"
	"github.com/schoolpay/payments-api/services"
	"github.com/schoolpay/payments-api/utils"
)

// TransactionController serves the dashboard's read-only transaction views.
type TransactionController struct {
	transactions *services.TransactionService
}

func NewTransactionController(transactions *services.TransactionService) *TransactionController {
	return &TransactionController{transactions: transactions}
}

func queryParams(c *gin.Context) repository.TransactionQueryParams {
	pagination := utils.NewPagination(c)
	return repository.TransactionQueryParams{
		Page:     pagination.Page,
		Limit:    pagination.Limit,
		Sort:     c.DefaultQuery("sort", "created_at"),
		Order:    c.DefaultQuery("order", "desc"),
		Status:   c.Query("status"),
		SchoolID: c.Query("schoolId"),
		Search:   c.Query("search"),
	}
}

// List handles GET /api/transactions
func (ctrl *TransactionController) List(c *gin.Context) {
	utils.LogInfo("ListTransactions called")

	params := queryParams(c)
	page, err := ctrl.transactions.List(params)
	if err != nil {
		utils.LogError("Failed to list transactions: %v", err)
		utils.RespondWithError(c, err)
		return
	}

	utils.LogDebug("Returned %d of %d transactions", len(page.Transactions), page.TotalCount)
	c.JSON(http.StatusOK, page)
}

// BySchool handles GET /api/transactions/school/:schoolId
func (ctrl *TransactionController) BySchool(c *gin.Context) {
	schoolID := c.Param("schoolId")
	utils.LogInfo("ListTransactionsBySchool called for school %s", schoolID)

	orders, err := ctrl.transactions.BySchool(schoolID)
	if err != nil {
		utils.LogError("Failed to list transactions for school %s: %v", schoolID, err)
		utils.RespondWithError(c, err)
		return
	}

	response := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		response = append(response, gin.H{
			"id":                 order.ID,
			"school_id":          order.SchoolID,
			"trustee_id":         order.TrusteeID,
			"custom_order_id":    order.CustomOrderID,
			"collect_request_id": order.CollectRequestID,
			"gateway_name":       order.GatewayName,
			"student_info":       order.Student(),
			"amount":             order.Amount,
			"created_at":         order.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, response)
}

// StatusByCustomOrderID handles GET /api/transaction-status/:custom_order_id
func (ctrl *TransactionController) StatusByCustomOrderID(c *gin.Context) {
	customOrderID := c.Param("custom_order_id")
	utils.LogInfo("TransactionStatus called for order %s", customOrderID)

	status, err := ctrl.transactions.StatusByCustomOrderID(customOrderID)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}
