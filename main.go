package main

import (
	"log"

	"github.com/schoolpay/payments-api/config"
	"github.com/schoolpay/payments-api/controllers"
	"github.com/schoolpay/payments-api/gateway"
	"github.com/schoolpay/payments-api/metrics"
	"github.com/schoolpay/payments-api/repository"
	"github.com/schoolpay/payments-api/routes"
	"github.com/schoolpay/payments-api/services"
	"github.com/schoolpay/payments-api/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	db, err := config.Connect(cfg)
	if err != nil {
		utils.LogError("Error connecting to database: %v", err)
		log.Fatal("Error connecting to database:", err)
	}
	defer func() {
		if err := config.Close(db); err != nil {
			utils.LogError("Error closing database: %v", err)
		}
	}()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	statusRepo := repository.NewStatusRepository(db)
	webhookLogRepo := repository.NewWebhookLogRepository(db)
	transactionQuery := repository.NewTransactionQuery(db)

	// Collaborators
	paymentMetrics := metrics.NewPaymentMetrics()
	gatewayClient := gateway.NewClient(cfg.GatewayBaseURL, cfg.GatewayAPIKey, cfg.GatewaySecret, cfg.SchoolID)
	mailer := utils.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)

	// Services
	paymentService := services.NewPaymentService(gatewayClient, orderRepo, paymentMetrics, cfg.SchoolID, cfg.CallbackURL)
	webhookService := services.NewWebhookService(statusRepo, webhookLogRepo, orderRepo, mailer, paymentMetrics)
	transactionService := services.NewTransactionService(transactionQuery, orderRepo, statusRepo)

	// Controllers
	authController := controllers.NewAuthController(userRepo)
	paymentController := controllers.NewPaymentController(paymentService, webhookService)
	transactionController := controllers.NewTransactionController(transactionService)

	router := routes.SetupRouter(authController, paymentController, transactionController, userRepo)

	utils.LogInfo("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
