package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/schoolpay/payments-api/controllers"
	"github.com/schoolpay/payments-api/middleware"
	"github.com/schoolpay/payments-api/repository"
	"github.com/schoolpay/payments-api/utils"
)

// SetupRouter initializes and returns the Gin router with all routes. The
// webhook endpoint is deliberately unauthenticated; everything else under
// /api (except auth) requires a bearer token.
func SetupRouter(
	auth *controllers.AuthController,
	payments *controllers.PaymentController,
	transactions *controllers.TransactionController,
	users *repository.UserRepository,
) *gin.Engine {
	router := gin.New()

	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "School Payment API is running...")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := middleware.AuthMiddleware(users)

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", auth.Register)
			authGroup.POST("/login", auth.Login)
		}

		payment := api.Group("/payment")
		{
			payment.POST("/create-payment", requireAuth, payments.CreatePayment)
			payment.GET("/webhook", payments.WebhookHint)
			payment.POST("/webhook", payments.Webhook)
		}

		api.GET("/transactions", requireAuth, transactions.List)
		api.GET("/transactions/export", requireAuth, transactions.Export)
		api.GET("/transactions/school/:schoolId", requireAuth, transactions.BySchool)
		api.GET("/transaction-status/:custom_order_id", requireAuth, transactions.StatusByCustomOrderID)
	}

	return router
}
