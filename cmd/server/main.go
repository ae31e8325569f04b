package main

import (
	"context"
	"log"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/redis"
	"storefront/internal/repository"
	"storefront/internal/services"
	"storefront/pkg/mailer"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// Initialize mail client
	mailClient := mailer.NewClient(cfg.ResendBaseURL, cfg.ResendAPIKey)
	if cfg.ResendAPIKey == "" {
		log.Println("RESEND_API_KEY not set; email notifications are disabled")
	}

	// Initialize repositories
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)

	// Initialize services
	orderService := services.NewOrderService(orderRepo, redisClient)
	notificationService := services.NewNotificationService(mailClient, services.NotificationConfig{
		APIKeyConfigured:      cfg.ResendAPIKey != "",
		From:                  cfg.MailFrom,
		AdminEmail:            cfg.AdminEmail,
		ReplyTo:               cfg.ReplyToEmail,
		CustomerEmailsEnabled: cfg.CustomerEmailsEnabled,
	})
	consoleService := services.NewConsoleService(
		orderRepo,
		orderItemRepo,
		redisClient,
		time.Duration(cfg.ConsoleRefreshDelayMs)*time.Millisecond,
		time.Duration(cfg.ConsoleDebounceMs)*time.Millisecond,
	)
	authService := services.NewAuthService(redisClient, cfg.AdminPasswordHash, time.Duration(cfg.SessionTTL)*time.Second)

	// Wire the console's change subscription
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := redisClient.SubscribeOrdersChanged(ctx)
	if err != nil {
		log.Printf("Warning: order change subscription unavailable: %v", err)
	}
	consoleService.Start(ctx, changes)

	// Initialize handlers
	orderHandler := handlers.NewOrderHandler(orderService, notificationService)
	adminHandler := handlers.NewAdminHandler(consoleService, authService, orderService, notificationService)

	// Setup routes
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/orders", orderHandler.CreateOrder)
		api.GET("/orders/:order_id", orderHandler.GetOrder)

		api.POST("/admin/login", adminHandler.Login)

		admin := api.Group("/admin", adminHandler.AuthRequired())
		{
			admin.POST("/logout", adminHandler.Logout)
			admin.GET("/orders", adminHandler.ListOrders)
			admin.GET("/orders/:order_id", adminHandler.GetOrder)
			admin.PATCH("/orders/:order_id/status", adminHandler.UpdateOrderStatus)
			admin.DELETE("/orders/:order_id", adminHandler.DeleteOrder)
			admin.POST("/orders/:order_id/resend-notification", adminHandler.ResendNotification)
		}
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
