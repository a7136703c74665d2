package utils

import (
	"fmt"
	"strconv"

	"gopkg.in/gomail.v2"
)

// Mailer sends payment confirmation mails over SMTP.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewMailer builds a mailer from SMTP settings. Port defaults to 587 when the
// value is empty or unparsable.
func NewMailer(host, port, username, password, from string) *Mailer {
	p, err := strconv.Atoi(port)
	if err != nil || p <= 0 {
		p = 587
	}
	return &Mailer{
		host:     host,
		port:     p,
		username: username,
		password: password,
		from:     from,
	}
}

// SendPaymentConfirmation mails a settlement confirmation to the student.
func (m *Mailer) SendPaymentConfirmation(to, studentName, customOrderID string, amount float64, bankReference string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Payment received for order %s", customOrderID))

	body := fmt.Sprintf(`
		<h2>Payment Confirmation</h2>
		<p>Dear %s,</p>
		<p>We have received your payment of <b>%.2f</b> for order <b>%s</b>.</p>
		<p>Bank reference: %s</p>
		<p>Thank you.</p>
	`, studentName, amount, customOrderID, bankReference)
	msg.SetBody("text/html", body)

	d := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}
