package services

import (
	"errors"
	"testing"

	"storefront/pkg/mailer"
)

type fakeSender struct {
	calls   []mailer.SendEmailRequest
	err     error
	panicOn bool
}

func (f *fakeSender) Send(email mailer.SendEmailRequest) (*mailer.SendEmailResponse, error) {
	if f.panicOn {
		panic("provider client blew up")
	}
	f.calls = append(f.calls, email)
	if f.err != nil {
		return nil, f.err
	}
	return &mailer.SendEmailResponse{ID: "email_1"}, nil
}

func notifyConfig() NotificationConfig {
	return NotificationConfig{
		APIKeyConfigured: true,
		From:             "Dream Tiles <orders@dreamtiles.store>",
		AdminEmail:       "admin@dreamtiles.store",
		ReplyTo:          "support@dreamtiles.store",
	}
}

func TestSendAdminNotification(t *testing.T) {
	sender := &fakeSender{}
	svc := NewNotificationService(sender, notifyConfig())

	result := svc.SendAdminNotification(sampleOrder(), "")
	if !result.Success {
		t.Fatalf("send failed: %+v", result)
	}
	if len(sender.calls) != 1 {
		t.Fatalf("expected 1 provider call, got %d", len(sender.calls))
	}
	call := sender.calls[0]
	if len(call.To) != 1 || call.To[0] != "admin@dreamtiles.store" {
		t.Errorf("recipient = %v, want configured admin address", call.To)
	}
	if call.ReplyTo != "asha@example.com" {
		t.Errorf("admin alert reply-to = %q, want customer address", call.ReplyTo)
	}
}

func TestAdminRecipientResolution(t *testing.T) {
	// Explicit override wins
	sender := &fakeSender{}
	svc := NewNotificationService(sender, notifyConfig())
	svc.SendAdminNotification(sampleOrder(), "boss@dreamtiles.store")
	if sender.calls[0].To[0] != "boss@dreamtiles.store" {
		t.Errorf("override ignored: %v", sender.calls[0].To)
	}

	// Without a configured admin address, fall back to the customer
	sender = &fakeSender{}
	cfg := notifyConfig()
	cfg.AdminEmail = ""
	svc = NewNotificationService(sender, cfg)
	svc.SendAdminNotification(sampleOrder(), "")
	if sender.calls[0].To[0] != "asha@example.com" {
		t.Errorf("customer fallback not applied: %v", sender.calls[0].To)
	}
}

func TestMissingCredentialIsNonFatal(t *testing.T) {
	sender := &fakeSender{}
	cfg := notifyConfig()
	cfg.APIKeyConfigured = false
	svc := NewNotificationService(sender, cfg)

	result := svc.SendAdminNotification(sampleOrder(), "")
	if result.Success {
		t.Fatal("expected failure result when credential is missing")
	}
	if len(sender.calls) != 0 {
		t.Fatal("provider must not be contacted without a credential")
	}
}

func TestCustomerSendDisabledByPolicy(t *testing.T) {
	sender := &fakeSender{}
	svc := NewNotificationService(sender, notifyConfig()) // CustomerEmailsEnabled false

	result := svc.SendCustomerConfirmation(sampleOrder())
	if !result.Success {
		t.Fatalf("disabled send should report success-shaped skip, got %+v", result)
	}
	if result.Message == "" {
		t.Error("skip result should say why")
	}
	if len(sender.calls) != 0 {
		t.Fatal("disabled customer send must not contact the provider")
	}
}

func TestCustomerSendEnabled(t *testing.T) {
	sender := &fakeSender{}
	cfg := notifyConfig()
	cfg.CustomerEmailsEnabled = true
	svc := NewNotificationService(sender, cfg)

	result := svc.SendCustomerConfirmation(sampleOrder())
	if !result.Success {
		t.Fatalf("send failed: %+v", result)
	}
	if len(sender.calls) != 1 || sender.calls[0].To[0] != "asha@example.com" {
		t.Fatalf("expected one send to the customer, got %v", sender.calls)
	}
}

func TestSendOrderEmailsAllSettled(t *testing.T) {
	// Admin path panics; the customer stub outcome must still be reported
	sender := &fakeSender{panicOn: true}
	svc := NewNotificationService(sender, notifyConfig())

	outcome := svc.SendOrderEmails(sampleOrder(), "")
	if !outcome.CustomerEmail.Success {
		t.Errorf("customer stub result lost: %+v", outcome.CustomerEmail)
	}
	if outcome.AdminEmail.Success {
		t.Error("admin result should be a failure")
	}
	if outcome.AdminEmail.Error == "" {
		t.Error("admin failure should carry a non-empty error")
	}
}

func TestProviderErrorCaptured(t *testing.T) {
	sender := &fakeSender{err: errors.New("rate limited")}
	svc := NewNotificationService(sender, notifyConfig())

	result := svc.SendAdminNotification(sampleOrder(), "")
	if result.Success {
		t.Fatal("expected failure result")
	}
	if result.Error != "rate limited" {
		t.Errorf("error = %q, want provider message", result.Error)
	}
}

func TestSendCustomerCopy(t *testing.T) {
	sender := &fakeSender{}
	svc := NewNotificationService(sender, notifyConfig())

	result := svc.SendCustomerCopy(sampleOrder(), "forward@example.com")
	if !result.Success {
		t.Fatalf("send failed: %+v", result)
	}
	if sender.calls[0].To[0] != "forward@example.com" {
		t.Errorf("copy recipient = %v", sender.calls[0].To)
	}
}
