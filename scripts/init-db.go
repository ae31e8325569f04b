package main

import (
	"fmt"
	"log"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/internal/services"
)

func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Force recreate tables
	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.OrderItem{},
		&models.Order{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	fmt.Println("Creating tables...")
	err = db.AutoMigrate(
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed a demo order so the console has something to show
	orderRepo := repository.NewOrderRepository(db)
	demo := &models.Order{
		OrderID:         services.NewOrderID(),
		CustomerName:    "Asha Rai",
		CustomerEmail:   "asha@example.com",
		CustomerPhone:   "9800000001",
		CustomerAddress: "12 Lakeside Road",
		CustomerCity:    "Pokhara",
		CustomerState:   "Gandaki",
		CustomerZip:     "33700",
		TotalAmount:     1500,
		PaymentOption:   string(models.PaymentDeposit),
		PaymentStatus:   string(models.PaymentPending),
		OrderStatus:     string(models.OrderPending),
		Items: []models.OrderItem{
			{
				ProductID:        1,
				ProductName:      "Marble Tile 60x60",
				Price:            500,
				Quantity:         3,
				SelectedColor:    "Ivory",
				SelectedFeatures: models.FeatureList{"Glossy", "Frost resistant"},
			},
		},
	}
	if err := orderRepo.CreateWithItems(demo); err != nil {
		log.Fatal("Failed to seed demo order:", err)
	}

	fmt.Printf("Database initialized. Seeded order %s\n", demo.OrderID)
}
