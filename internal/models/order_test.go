package models

import "testing"

func TestPaymentOptionLabel(t *testing.T) {
	cases := []struct {
		option string
		want   string
	}{
		{"full", "Full Payment"},
		{"deposit", "Cash on Delivery"},
		{"bank_transfer", "bank_transfer"}, // unknown values pass through verbatim
	}
	for _, tc := range cases {
		o := &Order{PaymentOption: tc.option}
		if got := o.PaymentOptionLabel(); got != tc.want {
			t.Errorf("PaymentOptionLabel(%q) = %q, want %q", tc.option, got, tc.want)
		}
	}
}

func TestStatusLabelsFallBackToRaw(t *testing.T) {
	o := &Order{PaymentStatus: "refunded", OrderStatus: "archived"}
	if got := o.PaymentStatusLabel(); got != "refunded" {
		t.Errorf("PaymentStatusLabel = %q, want raw value", got)
	}
	if got := o.OrderStatusLabel(); got != "archived" {
		t.Errorf("OrderStatusLabel = %q, want raw value", got)
	}
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{"pending", "processing", "completed", "cancelled"} {
		if !ValidOrderStatus(s) {
			t.Errorf("ValidOrderStatus(%q) = false", s)
		}
	}
	if ValidOrderStatus("archived") {
		t.Error("ValidOrderStatus accepted an unknown state")
	}
}

func TestLineTotalIsDerived(t *testing.T) {
	item := &OrderItem{Price: 500, Quantity: 2}
	if got := item.LineTotal(); got != 1000 {
		t.Fatalf("LineTotal = %v, want 1000", got)
	}
}

func TestFeatureListScan(t *testing.T) {
	var f FeatureList
	if err := f.Scan([]byte(`["Glossy","Frost resistant"]`)); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(f) != 2 || f[0] != "Glossy" {
		t.Fatalf("scanned features = %v", f)
	}

	if err := f.Scan(nil); err != nil || f != nil {
		t.Fatalf("nil scan = (%v, %v), want empty list", f, err)
	}
}
