// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/shaivyah/storefront-backend/internal/config"
	"github.com/shaivyah/storefront-backend/internal/models"
	"github.com/shaivyah/storefront-backend/internal/pricing"
)

// NotificationService sends customer emails for order events.
type NotificationService struct {
	config *config.Config
	send   func(to, subject, body string) error
}

type EmailTemplate struct {
	Subject string
	Body    string
}

type orderEmailLine struct {
	Name  string
	Qty   int
	Price float64
}

func NewNotificationService(cfg *config.Config) *NotificationService {
	s := &NotificationService{config: cfg}
	s.send = s.sendEmail
	return s
}

func (s *NotificationService) OrderPlaced(order *models.Order, user *models.User) error {
	return s.sendOrderEmail("order_placed", order, user)
}

func (s *NotificationService) OrderStatusChanged(order *models.Order, user *models.User) error {
	return s.sendOrderEmail("order_status", order, user)
}

func (s *NotificationService) sendOrderEmail(kind string, order *models.Order, user *models.User) error {
	tmpl := s.getEmailTemplate(kind)

	lines := make([]orderEmailLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, orderEmailLine{
			Name:  item.Name,
			Qty:   item.Qty,
			Price: pricing.DisplayPrice(item.Price, item.Discount),
		})
	}

	data := map[string]interface{}{
		"CustomerName":  user.Name,
		"OrderID":       order.ID.String(),
		"Status":        order.Status,
		"PaymentMethod": order.PaymentMethod,
		"Items":         lines,
		"Subtotal":      order.Subtotal,
		"CouponCode":    order.CouponCode,
		"Total":         order.Total,
		"Address":       order.ShippingAddress,
		"OrdersURL":     fmt.Sprintf("%s/my-orders", s.config.Frontend.BaseURL),
		"StoreName":     s.config.Email.FromName,
	}

	subject, err := s.renderTemplate(tmpl.Subject, data)
	if err != nil {
		return fmt.Errorf("failed to render email subject: %w", err)
	}
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.send(user.Email, subject, body)
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPHost == "" {
		logrus.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("SMTP not configured, email skipped")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	from := s.config.Email.FromEmail
	if s.config.Email.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.Email.FromName, s.config.Email.FromEmail)
	}
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s", from, to, subject, body))

	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *NotificationService) getEmailTemplate(templateType string) EmailTemplate {
	templates := map[string]EmailTemplate{
		"order_placed": {
			Subject: "Your {{.StoreName}} order {{.OrderID}}",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Thank you, {{.CustomerName}}!</h2>
	<p>We have received your order <strong>{{.OrderID}}</strong>.</p>
	<table>
		{{range .Items}}<tr><td>{{.Name}}</td><td>x{{.Qty}}</td><td>&#8377;{{.Price}}</td></tr>{{end}}
	</table>
	<p>Subtotal: &#8377;{{.Subtotal}}</p>
	{{if .CouponCode}}<p>Coupon: {{.CouponCode}}</p>{{end}}
	<p><strong>Total: &#8377;{{.Total}}</strong> ({{.PaymentMethod}})</p>
	<p>Shipping to {{.Address.Name}}, {{.Address.Address}}, {{.Address.City}}, {{.Address.State}} {{.Address.Pincode}}</p>
	<a href="{{.OrdersURL}}">View your orders</a>
	<p>{{.StoreName}}</p>
</body>
</html>`,
		},
		"order_status": {
			Subject: "Order {{.OrderID}} is now {{.Status}}",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<p>Hello {{.CustomerName}},</p>
	<p>Your order <strong>{{.OrderID}}</strong> is now <strong>{{.Status}}</strong>.</p>
	<a href="{{.OrdersURL}}">Track your orders</a>
	<p>{{.StoreName}}</p>
</body>
</html>`,
		},
	}

	if tmpl, exists := templates[templateType]; exists {
		return tmpl
	}

	return EmailTemplate{
		Subject: "Notification",
		Body:    "<p>Order {{.OrderID}}: {{.Status}}</p>",
	}
}
