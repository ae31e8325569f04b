package services

import (
	"bytes"
	"fmt"
	"html/template"

	"storefront/internal/models"
)

// The three email documents share one layout and data shape: the customer
// confirmation, the admin alert, and a customer copy kept for manual
// forwarding from the console. Rendering is pure: identical order input
// yields byte-identical HTML.

type mailData struct {
	Order     *models.Order
	Date      string
	Subtotal  float64
	IsDeposit bool
	Deposit   float64
	Remaining float64
}

func newMailData(order *models.Order) *mailData {
	subtotal := 0.0
	for i := range order.Items {
		subtotal += order.Items[i].LineTotal()
	}
	data := &mailData{
		Order:    order,
		Date:     order.CreatedAt.Format("January 2, 2006"),
		Subtotal: subtotal,
	}
	if models.PaymentOption(order.PaymentOption) == models.PaymentDeposit {
		data.IsDeposit = true
		data.Deposit = DepositAmount(order.TotalAmount)
		data.Remaining = order.TotalAmount - data.Deposit
	}
	return data
}

var mailFuncs = template.FuncMap{
	"money": func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	},
}

const orderDetailsHTML = `
<h2 style="margin-bottom:4px;">Order {{.Order.OrderID}}</h2>
<p style="color:#666;">Placed on {{.Date}}</p>
<table width="100%" cellpadding="8" cellspacing="0" style="border-collapse:collapse;">
  <tr style="background:#f4f4f4;">
    <th align="left">Item</th><th align="right">Qty</th><th align="right">Price</th><th align="right">Total</th>
  </tr>
  {{range .Order.Items}}
  <tr style="border-bottom:1px solid #eee;">
    <td>
      {{.ProductName}}
      {{if .SelectedColor}}<br><small>Color: {{.SelectedColor}}</small>{{end}}
      {{if .SelectedFeatures}}<br><small>Features: {{range $i, $f := .SelectedFeatures}}{{if $i}}, {{end}}{{$f}}{{end}}</small>{{end}}
    </td>
    <td align="right">{{.Quantity}}</td>
    <td align="right">{{money .Price}}</td>
    <td align="right">{{money .LineTotal}}</td>
  </tr>
  {{end}}
  <tr><td colspan="3" align="right">Subtotal</td><td align="right">{{money .Subtotal}}</td></tr>
  <tr><td colspan="3" align="right"><strong>Total</strong></td><td align="right"><strong>{{money .Order.TotalAmount}}</strong></td></tr>
</table>
{{if .IsDeposit}}
<p><strong>Payment: Deposit (Cash on Delivery)</strong><br>
Deposit due now: {{money .Deposit}}<br>
Remaining balance on delivery: {{money .Remaining}}</p>
{{else}}
<p><strong>Payment: Full Payment</strong></p>
{{end}}
<h3>Customer</h3>
<p>{{.Order.CustomerName}}<br>
{{.Order.CustomerEmail}} | {{.Order.CustomerPhone}}<br>
{{.Order.CustomerAddress}}, {{.Order.CustomerCity}}, {{.Order.CustomerState}} {{.Order.CustomerZip}}</p>
{{if .Order.HasReceiver}}
<h3>Deliver To</h3>
<p>{{.Order.ReceiverName}}<br>
{{.Order.ReceiverPhone}}<br>
{{.Order.ReceiverAddress}}, {{.Order.ReceiverCity}}, {{.Order.ReceiverState}} {{.Order.ReceiverZip}}</p>
{{end}}
{{if .Order.ReceiptURL}}
<p><a href="{{.Order.ReceiptURL}}">View payment receipt{{if .Order.ReceiptFileName}} ({{.Order.ReceiptFileName}}){{end}}</a></p>
{{end}}
`

var customerConfirmationTmpl = template.Must(template.New("customer").Funcs(mailFuncs).Parse(`<!DOCTYPE html>
<html><body style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;">
<h1 style="color:#1a1a2e;">Thank you for your order!</h1>
<p>Hi {{.Order.CustomerName}}, we have received your order and will begin processing it shortly.</p>
` + orderDetailsHTML + `
<p>We will contact you at {{.Order.CustomerPhone}} to confirm delivery details.</p>
</body></html>`))

var adminAlertTmpl = template.Must(template.New("admin").Funcs(mailFuncs).Parse(`<!DOCTYPE html>
<html><body style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;">
<h1 style="color:#b91c1c;">New order received</h1>
` + orderDetailsHTML + `
<p>Open the order console to process this order.</p>
</body></html>`))

var customerCopyTmpl = template.Must(template.New("copy").Funcs(mailFuncs).Parse(`<!DOCTYPE html>
<html><body style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;">
<h1 style="color:#1a1a2e;">Your order confirmation</h1>
<p>Hi {{.Order.CustomerName}}, here is a copy of your order for your records.</p>
` + orderDetailsHTML + `
</body></html>`))

func RenderCustomerConfirmation(order *models.Order) (string, error) {
	return renderMail(customerConfirmationTmpl, order)
}

func RenderAdminAlert(order *models.Order) (string, error) {
	return renderMail(adminAlertTmpl, order)
}

func RenderCustomerCopy(order *models.Order) (string, error) {
	return renderMail(customerCopyTmpl, order)
}

func renderMail(tmpl *template.Template, order *models.Order) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newMailData(order)); err != nil {
		return "", fmt.Errorf("failed to render email: %w", err)
	}
	return buf.String(), nil
}
