package services

import (
	"fmt"
	"log"

	"storefront/internal/models"
	"storefront/pkg/mailer"
)

// Result is the structured outcome of one send attempt. Dispatch never
// returns an error: a failed notification must not fail the order that
// triggered it.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type EmailOutcome struct {
	CustomerEmail Result `json:"customer_email"`
	AdminEmail    Result `json:"admin_email"`
}

type MailSender interface {
	Send(email mailer.SendEmailRequest) (*mailer.SendEmailResponse, error)
}

type NotificationConfig struct {
	APIKeyConfigured      bool
	From                  string
	AdminEmail            string
	ReplyTo               string
	CustomerEmailsEnabled bool
}

type NotificationService interface {
	SendAdminNotification(order *models.Order, adminOverride string) Result
	SendCustomerConfirmation(order *models.Order) Result
	SendCustomerCopy(order *models.Order, to string) Result
	SendOrderEmails(order *models.Order, adminOverride string) EmailOutcome
}

type notificationService struct {
	sender MailSender
	cfg    NotificationConfig
}

func NewNotificationService(sender MailSender, cfg NotificationConfig) NotificationService {
	return &notificationService{sender: sender, cfg: cfg}
}

func (s *notificationService) SendAdminNotification(order *models.Order, adminOverride string) Result {
	if !s.cfg.APIKeyConfigured {
		return Result{Success: false, Message: "email provider credential not configured"}
	}

	to := adminOverride
	if to == "" {
		to = s.cfg.AdminEmail
	}
	if to == "" {
		// Degraded/test-only path: without a configured admin address the
		// alert goes to the customer so the send is at least observable.
		to = order.CustomerEmail
	}

	html, err := RenderAdminAlert(order)
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}

	return s.deliver(to, fmt.Sprintf("New order %s from %s", order.OrderID, order.CustomerName), html, order.CustomerEmail)
}

// SendCustomerConfirmation is policy-gated: when customer emails are
// disabled it reports a success-shaped skipped result without touching the
// provider. The interface stays in place so the policy is a config flip,
// not a code change.
func (s *notificationService) SendCustomerConfirmation(order *models.Order) Result {
	if !s.cfg.CustomerEmailsEnabled {
		return Result{Success: true, Message: "customer email sending is disabled; skipped"}
	}
	if !s.cfg.APIKeyConfigured {
		return Result{Success: false, Message: "email provider credential not configured"}
	}

	html, err := RenderCustomerConfirmation(order)
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}

	return s.deliver(order.CustomerEmail, fmt.Sprintf("Your order %s is confirmed", order.OrderID), html, "")
}

// SendCustomerCopy sends the customer-copy document to an explicit address,
// used by operators forwarding a confirmation manually.
func (s *notificationService) SendCustomerCopy(order *models.Order, to string) Result {
	if !s.cfg.APIKeyConfigured {
		return Result{Success: false, Message: "email provider credential not configured"}
	}
	if to == "" {
		to = order.CustomerEmail
	}

	html, err := RenderCustomerCopy(order)
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}

	return s.deliver(to, fmt.Sprintf("Copy of order %s", order.OrderID), html, "")
}

// SendOrderEmails runs both sends with all-settled semantics: a panic or
// failure in either path never prevents the other's outcome from being
// reported.
func (s *notificationService) SendOrderEmails(order *models.Order, adminOverride string) EmailOutcome {
	var outcome EmailOutcome
	outcome.CustomerEmail = settled(func() Result { return s.SendCustomerConfirmation(order) })
	outcome.AdminEmail = settled(func() Result { return s.SendAdminNotification(order, adminOverride) })
	return outcome
}

func (s *notificationService) deliver(to, subject, html, replyTo string) Result {
	if replyTo == "" {
		replyTo = s.cfg.ReplyTo
	}
	resp, err := s.sender.Send(mailer.SendEmailRequest{
		From:    s.cfg.From,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
		ReplyTo: replyTo,
	})
	if err != nil {
		log.Printf("Warning: email send to %s failed: %v", to, err)
		return Result{Success: false, Error: err.Error()}
	}
	return Result{Success: true, Message: fmt.Sprintf("sent to %s (id %s)", to, resp.ID)}
}

func settled(fn func() Result) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = Result{Success: false, Error: fmt.Sprintf("send panicked: %v", r)}
		}
	}()
	return fn()
}
