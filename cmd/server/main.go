// booking-payment-gateway/cmd/server/main.go
package main

import (
	"log"

	"github.com/example/booking-payment-gateway/internal/booking"
	"github.com/example/booking-payment-gateway/internal/config"
	"github.com/example/booking-payment-gateway/internal/daraja"
	"github.com/example/booking-payment-gateway/internal/identity"
	"github.com/example/booking-payment-gateway/internal/mail"
	"github.com/example/booking-payment-gateway/internal/queue"
	"github.com/example/booking-payment-gateway/internal/server"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	sender, err := mail.NewSender(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass)
	if err != nil {
		log.Fatalf("mail sender: %v", err)
	}

	creds := daraja.NewCredentialEncoder(cfg.MpesaShortcode, cfg.MpesaPasskey)
	gateway := daraja.NewClient(cfg.MpesaBaseURL, cfg.MpesaKey, cfg.MpesaSecret,
		cfg.MpesaShortcode, cfg.MpesaCallbackURL, creds, nil)

	verifier := identity.NewVerifier(cfg.BookingAPIURL, nil)

	var forwarder server.ResultForwarder
	if cfg.BookingAPIURL != "" {
		f, err := booking.NewForwarder(cfg.BookingAPIURL, nil)
		if err != nil {
			log.Fatalf("forwarder: %v", err)
		}
		forwarder = f
	} else {
		log.Printf("WARN BOOKING_API_URL not set; payment results will only be logged")
	}

	var audit server.AuditPublisher
	if len(cfg.KafkaBrokers) > 0 {
		audit = queue.New(cfg.KafkaBrokers, cfg.KafkaAuditTopic)
	}

	srv := server.New(server.Deps{
		Mail:      sender,
		Verifier:  verifier,
		Gateway:   gateway,
		Forwarder: forwarder,
		Audit:     audit,
	}, cfg.StaticDir)

	log.Fatal(srv.Start(cfg.HTTPAddr))
}
