// booking-payment-gateway/internal/mail/sender.go
package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"

	apperr "github.com/example/booking-payment-gateway/pkg/errors"
)

const confirmationSubject = "Booking Confirmation"

const confirmationBody = `Dear customer,

Your booking for a %s has been confirmed for the time slot: %s.

Thank you for choosing us!

Best regards,
Your Hotel Name`

// Sender delivers the pre-payment confirmation email over SMTP.
type Sender struct {
	from   string
	dialer *gomail.Dialer
}

func NewSender(host string, port int, user, pass string) (*Sender, error) {
	if user == "" || pass == "" {
		return nil, apperr.Wrap(apperr.CodeConfig, "EMAIL_USER and EMAIL_PASS must be set", nil)
	}
	return &Sender{from: user, dialer: gomail.NewDialer(host, port, user, pass)}, nil
}

// Send builds and transmits the confirmation message. Failures surface
// to the caller so the client flow can stop before payment, but a
// payment already initiated is never rolled back on their account.
func (s *Sender) Send(email, roomType, timeSlot string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", confirmationSubject)
	m.SetBody("text/plain", fmt.Sprintf(confirmationBody, roomType, timeSlot))

	return s.dialer.DialAndSend(m)
}
