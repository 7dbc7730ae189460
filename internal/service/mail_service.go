package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"reflect"

	"github.com/ccfreem/sickfits/internal/infra/mail"
	"github.com/ccfreem/sickfits/internal/model"
	"github.com/shopspring/decimal"
)

type IMailService interface {
	SendResetEmail(ctx context.Context, data ResetEmailData) error
	SendReceipt(ctx context.Context, data ReceiptData) error
}

type MailService struct {
	mail.EmailSender
}

type ResetEmailData struct {
	Name          string
	Email         string
	ResetURL      string
	ExpiryMinutes int
}

type ReceiptData struct {
	Name  string
	Email string
	Order model.OrderModel
}

type receiptLine struct {
	Title    string
	Quantity int32
	Price    string
	Subtotal string
}

func NewMailService(sender mail.EmailSender) IMailService {
	if reflect.ValueOf(sender).IsNil() {
		panic("mail service initialization failed: sender cannot be nil")
	}
	return &MailService{
		sender,
	}
}

func (m *MailService) SendResetEmail(ctx context.Context, data ResetEmailData) error {
	html, err := renderTemplate(resetTemplate, data)
	if err != nil {
		return err
	}

	return m.SendEmail("Your Password Reset Token", html, []string{data.Email}, nil, nil, nil)
}

func (m *MailService) SendReceipt(ctx context.Context, data ReceiptData) error {
	lines := make([]receiptLine, 0, len(data.Order.Items))
	for _, it := range data.Order.Items {
		lines = append(lines, receiptLine{
			Title:    it.Title,
			Quantity: it.Quantity,
			Price:    FormatMoney(int64(it.Price)),
			Subtotal: FormatMoney(int64(it.Price) * int64(it.Quantity)),
		})
	}

	html, err := renderTemplate(receiptTemplate, map[string]any{
		"Name":    data.Name,
		"OrderID": data.Order.ID.String(),
		"Charge":  data.Order.Charge,
		"Lines":   lines,
		"Total":   FormatMoney(int64(data.Order.Total)),
	})
	if err != nil {
		return err
	}

	return m.SendEmail("Your Sick Fits order", html, []string{data.Email}, nil, nil, nil)
}

// FormatMoney renders cents as dollars, e.g. 12345 -> "$123.45".
func FormatMoney(cents int64) string {
	return "$" + decimal.New(cents, -2).StringFixed(2)
}

func renderTemplate(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

var resetTemplate = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Password reset</title>
    <style>
        body { font-family: sans-serif; line-height: 2; font-size: 20px; color: #393939; }
        .container { border: 1px solid black; padding: 20px; }
    </style>
</head>
<body>
    <div class="container">
        <h2>Hello {{.Name}},</h2>
        <p>Your password reset token is here!</p>
        <p><a href="{{.ResetURL}}">Click here to reset</a></p>
        <p>This link expires in {{.ExpiryMinutes}} minutes.</p>
        <p>😘, Sick Fits</p>
    </div>
</body>
</html>
`))

var receiptTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Order receipt</title>
</head>
<body>
    <h2>Thanks for your order{{if .Name}}, {{.Name}}{{end}}!</h2>
    <p>Order {{.OrderID}} (charge {{.Charge}})</p>
    <table>
        <tr><th>Item</th><th>Qty</th><th>Price</th><th>Subtotal</th></tr>
        {{range .Lines}}<tr><td>{{.Title}}</td><td>{{.Quantity}}</td><td>{{.Price}}</td><td>{{.Subtotal}}</td></tr>
        {{end}}
    </table>
    <p><strong>Total: {{.Total}}</strong></p>
</body>
</html>
`))
