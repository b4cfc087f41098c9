package notify

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"glowstore/backend/config"
	"glowstore/backend/lowstock"
)

// SendEmail delivers one plain-text message over the configured SMTP relay.
func SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", config.MailFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPass)

	return d.DialAndSend(m)
}

// SendLowStockDigest mails the stock report to every configured admin
// address. Nothing is sent when the report is clean.
func SendLowStockDigest(report lowstock.Report) error {
	if len(report.LowStock) == 0 && len(report.OutOfStock) == 0 {
		return nil
	}

	body := FormatLowStockDigest(report)
	subject := fmt.Sprintf("Stock alert: %d low, %d out of stock", len(report.LowStock), len(report.OutOfStock))

	var lastErr error
	for _, to := range config.AdminEmails {
		if err := SendEmail(to, subject, body); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// FormatLowStockDigest renders the report as a plain-text email body.
func FormatLowStockDigest(report lowstock.Report) string {
	var b strings.Builder

	if len(report.OutOfStock) > 0 {
		b.WriteString("Out of stock:\n")
		for _, a := range report.OutOfStock {
			fmt.Fprintf(&b, "  - %s / %s\n", a.ProductName, a.VariantName)
		}
		b.WriteString("\n")
	}
	if len(report.LowStock) > 0 {
		fmt.Fprintf(&b, "Low stock (below %d):\n", report.Threshold)
		for _, a := range report.LowStock {
			fmt.Fprintf(&b, "  - %s / %s: %d left\n", a.ProductName, a.VariantName, a.StockQty)
		}
	}
	return b.String()
}
