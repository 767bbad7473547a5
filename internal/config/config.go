// booking-payment-gateway/internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	apperr "github.com/example/booking-payment-gateway/pkg/errors"
)

const defaultMpesaBaseURL = "https://sandbox.safaricom.co.ke"

// Config holds everything read from the environment. It is built once
// in main and handed to each component's constructor; business logic
// never touches os.Getenv.
type Config struct {
	HTTPAddr  string
	StaticDir string

	// Gmail SMTP creds, as the original deployment used
	EmailUser string
	EmailPass string
	SMTPHost  string
	SMTPPort  int

	MpesaShortcode   string
	MpesaPasskey     string
	MpesaKey         string
	MpesaSecret      string
	MpesaBaseURL     string
	MpesaCallbackURL string

	// Django rentals backend
	BookingAPIURL string

	// Optional audit trail; empty brokers disables it
	KafkaBrokers    []string
	KafkaAuditTopic string
}

// FromEnv loads the configuration, failing with a CONFIG error when a
// gateway secret is missing. Email creds are validated by the mail
// sender constructor, which owns that concern.
func FromEnv() (*Config, error) {
	c := &Config{
		HTTPAddr:  getenv("HTTP_ADDR", ":3000"),
		StaticDir: getenv("STATIC_DIR", "./public"),

		EmailUser: os.Getenv("EMAIL_USER"),
		EmailPass: os.Getenv("EMAIL_PASS"),
		SMTPHost:  getenv("SMTP_HOST", "smtp.gmail.com"),

		MpesaShortcode:   os.Getenv("MPESA_LIPA_SHORTCODE"),
		MpesaPasskey:     os.Getenv("MPESA_PASSKEY"),
		MpesaKey:         os.Getenv("MPESA_LIPA_KEY"),
		MpesaSecret:      os.Getenv("MPESA_LIPA_SECRET"),
		MpesaBaseURL:     getenv("MPESA_BASE_URL", defaultMpesaBaseURL),
		MpesaCallbackURL: os.Getenv("MPESA_CALLBACK_URL"),

		BookingAPIURL: strings.TrimSuffix(os.Getenv("BOOKING_API_URL"), "/"),

		KafkaAuditTopic: getenv("KAFKA_AUDIT_TOPIC", "payments.results"),
	}

	port := getenv("SMTP_PORT", "587")
	p, err := strconv.Atoi(port)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeConfig, "SMTP_PORT must be numeric", err)
	}
	c.SMTPPort = p

	if brokers := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); brokers != "" {
		c.KafkaBrokers = strings.Split(brokers, ",")
	}

	required := map[string]string{
		"MPESA_LIPA_SHORTCODE": c.MpesaShortcode,
		"MPESA_PASSKEY":        c.MpesaPasskey,
		"MPESA_LIPA_KEY":       c.MpesaKey,
		"MPESA_LIPA_SECRET":    c.MpesaSecret,
		"MPESA_CALLBACK_URL":   c.MpesaCallbackURL,
	}
	for name, v := range required {
		if strings.TrimSpace(v) == "" {
			return nil, apperr.Wrap(apperr.CodeConfig, fmt.Sprintf("%s is not set", name), nil)
		}
	}

	return c, nil
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
