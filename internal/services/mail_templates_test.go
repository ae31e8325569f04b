package services

import (
	"strings"
	"testing"
	"time"

	"storefront/internal/models"
)

func sampleOrder() *models.Order {
	return &models.Order{
		ID:              7,
		OrderID:         "DT-001",
		CustomerName:    "Asha Rai",
		CustomerEmail:   "asha@example.com",
		CustomerPhone:   "9800000001",
		CustomerAddress: "12 Lakeside Road",
		CustomerCity:    "Pokhara",
		CustomerState:   "Gandaki",
		CustomerZip:     "33700",
		TotalAmount:     1000,
		PaymentOption:   string(models.PaymentFull),
		PaymentStatus:   string(models.PaymentPending),
		OrderStatus:     string(models.OrderPending),
		CreatedAt:       time.Date(2025, time.March, 14, 10, 30, 0, 0, time.UTC),
		Items: []models.OrderItem{
			{ProductName: "Marble Tile 60x60", Price: 500, Quantity: 2},
		},
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	order := sampleOrder()

	first, err := RenderAdminAlert(order)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	second, err := RenderAdminAlert(order)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if first != second {
		t.Fatal("admin alert render is not byte-identical for identical input")
	}
}

func TestRenderFullPaymentHasNoDepositFields(t *testing.T) {
	order := sampleOrder()

	for name, render := range map[string]func(*models.Order) (string, error){
		"customer": RenderCustomerConfirmation,
		"admin":    RenderAdminAlert,
		"copy":     RenderCustomerCopy,
	} {
		html, err := render(order)
		if err != nil {
			t.Fatalf("%s render failed: %v", name, err)
		}
		if strings.Contains(html, "Deposit") || strings.Contains(html, "Remaining balance") {
			t.Errorf("%s variant references deposit fields for a full-payment order", name)
		}
		if !strings.Contains(html, "Full Payment") {
			t.Errorf("%s variant missing full-payment messaging", name)
		}
	}
}

func TestRenderDepositArithmetic(t *testing.T) {
	order := sampleOrder()
	order.PaymentOption = string(models.PaymentDeposit)

	html, err := RenderCustomerConfirmation(order)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(html, "Deposit due now: 100.00") {
		t.Error("deposit amount missing or wrong")
	}
	if !strings.Contains(html, "Remaining balance on delivery: 900.00") {
		t.Error("remaining balance missing or wrong")
	}
}

func TestRenderOptionalSectionsOmitted(t *testing.T) {
	order := sampleOrder()

	html, err := RenderAdminAlert(order)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(html, "Deliver To") {
		t.Error("receiver block rendered without receiver info")
	}
	if strings.Contains(html, "receipt") {
		t.Error("receipt block rendered without a receipt URL")
	}
	if strings.Contains(html, "Color:") || strings.Contains(html, "Features:") {
		t.Error("customization lines rendered without selections")
	}
}

func TestRenderOptionalSectionsPresent(t *testing.T) {
	order := sampleOrder()
	order.ReceiverName = "Bina Shah"
	order.ReceiverPhone = "9800000002"
	order.ReceiverAddress = "5 Hill Street"
	order.ReceiverCity = "Kathmandu"
	order.ReceiverState = "Bagmati"
	order.ReceiverZip = "44600"
	order.ReceiptURL = "https://cdn.example.com/receipts/r1.jpg"
	order.ReceiptFileName = "r1.jpg"
	order.Items[0].SelectedColor = "Ivory"
	order.Items[0].SelectedFeatures = models.FeatureList{"Glossy", "Frost resistant"}

	html, err := RenderAdminAlert(order)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	for _, want := range []string{
		"Deliver To",
		"Bina Shah",
		"https://cdn.example.com/receipts/r1.jpg",
		"Color: Ivory",
		"Glossy, Frost resistant",
		"DT-001",
		"March 14, 2025",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered alert missing %q", want)
		}
	}
}
