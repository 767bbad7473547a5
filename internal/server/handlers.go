// booking-payment-gateway/internal/server/handlers.go
package server

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/example/booking-payment-gateway/internal/booking"
	"github.com/example/booking-payment-gateway/internal/identity"
	m "github.com/example/booking-payment-gateway/pkg/metrics"
)

// PaymentInitiator submits an STK push. Satisfied by *daraja.Client.
type PaymentInitiator interface {
	InitiateSTKPush(ctx context.Context, phoneNumber string, amount float64, accountRef string) (map[string]any, error)
}

// IdentityVerifier elevates a caller credential to a verified email.
type IdentityVerifier interface {
	Verify(ctx context.Context, callerEmail, credential string) identity.Verification
}

// MailSender delivers the pre-payment confirmation email.
type MailSender interface {
	Send(email, roomType, timeSlot string) error
}

// ResultForwarder hands reconciled records to the rentals backend.
type ResultForwarder interface {
	Forward(ctx context.Context, rec booking.PaymentResultRecord) error
}

// AuditPublisher mirrors records onto the audit topic.
type AuditPublisher interface {
	Publish(ctx context.Context, key, payload []byte) error
}

// Deps carries the handlers' collaborators. Forwarder and Audit may be
// nil; both legs are best-effort.
type Deps struct {
	Mail      MailSender
	Verifier  IdentityVerifier
	Gateway   PaymentInitiator
	Forwarder ResultForwarder
	Audit     AuditPublisher
}

type emailRequest struct {
	Email    string `json:"email"`
	RoomType string `json:"roomType"`
	TimeSlot string `json:"timeSlot"`
}

type emailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type initiatePaymentRequest struct {
	PhoneNumber string  `json:"phoneNumber"`
	Amount      float64 `json:"amount"`
	BookingID   string  `json:"bookingId"`
	Email       string  `json:"email"`
	Token       string  `json:"token,omitempty"`
}

// SendConfirmationEmailHandler posts the booking confirmation. A
// failure here stops the client flow before any payment is attempted.
func SendConfirmationEmailHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in emailRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, emailResponse{Success: false, Message: "bad_json"})
			return
		}
		if in.Email == "" || in.RoomType == "" || in.TimeSlot == "" {
			writeJSON(w, http.StatusBadRequest, emailResponse{Success: false, Message: "invalid_input"})
			return
		}

		if err := d.Mail.Send(in.Email, in.RoomType, in.TimeSlot); err != nil {
			log.Printf("email sending error: %v", err)
			m.IncRequest(serviceName, "FAILED", "EMAIL")
			writeJSON(w, http.StatusInternalServerError, emailResponse{Success: false, Message: "Error sending email"})
			return
		}
		m.IncRequest(serviceName, "SUCCESS", "EMAIL")
		writeJSON(w, http.StatusOK, emailResponse{Success: true, Message: "Confirmation email sent"})
	}
}

// InitiatePaymentHandler verifies the payer (best-effort), encodes the
// booking reference and submits the push. The gateway response is
// returned verbatim, merged with the booking identity so the client can
// correlate without waiting for the callback.
func InitiatePaymentHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in initiatePaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "message": "bad_json"})
			return
		}
		if in.PhoneNumber == "" || in.Amount <= 0 || in.BookingID == "" || in.Email == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "message": "invalid_input"})
			return
		}

		reqID := uuid.NewString()
		v := d.Verifier.Verify(r.Context(), in.Email, in.Token)
		if v.Verified {
			m.IncRequest(serviceName, "SUCCESS", "VERIFY")
		} else if in.Token != "" {
			m.IncRequest(serviceName, "FAILED", "VERIFY")
		}

		ref := booking.EncodeReference(in.BookingID, v.Email)
		log.Printf("req=%s initiating stk push booking=%s phone=%s verified=%t", reqID, in.BookingID, in.PhoneNumber, v.Verified)

		resp, err := d.Gateway.InitiateSTKPush(r.Context(), in.PhoneNumber, in.Amount, ref)
		if err != nil {
			// full error stays in the log; the client gets a generic failure
			log.Printf("req=%s stk push error: %v", reqID, err)
			m.IncRequest(serviceName, "FAILED", "STK_PUSH")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "error", "message": "Failed to initiate payment"})
			return
		}
		m.IncRequest(serviceName, "SUCCESS", "STK_PUSH")

		out := make(map[string]any, len(resp)+2)
		for k, val := range resp {
			out[k] = val
		}
		out["bookingId"] = in.BookingID
		out["email"] = v.Email
		writeJSON(w, http.StatusOK, out)
	}
}

// CallbackHandler reconciles the gateway's asynchronous result. It
// always acknowledges with 200: the gateway redelivers on anything
// else, and de-duplication belongs to the rentals backend.
func CallbackHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
		if err != nil {
			writeJSON(w, http.StatusOK, map[string]string{"message": "Payment processed"})
			return
		}

		rec := booking.Reconcile(raw)
		switch {
		case rec.Malformed:
			log.Printf("malformed callback payload: %s", string(raw))
			m.IncRequest(serviceName, "FAILED", "CALLBACK_PARSE")
		case rec.Succeeded():
			m.IncRequest(serviceName, "SUCCESS", "CALLBACK")
		default:
			m.IncRequest(serviceName, "FAILED", "CALLBACK")
		}

		if d.Forwarder != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			if err := d.Forwarder.Forward(ctx, rec); err != nil {
				log.Printf("WARN downstream forward: %v", err)
				m.IncRequest(serviceName, "FAILED", "FORWARD")
			} else {
				m.IncRequest(serviceName, "SUCCESS", "FORWARD")
			}
			cancel()
		}

		if d.Audit != nil {
			payload, _ := json.Marshal(rec)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := d.Audit.Publish(ctx, []byte(uuid.NewString()), payload); err != nil {
				log.Printf("WARN audit publish: %v", err)
				m.IncRequest(serviceName, "FAILED", "AUDIT_PUBLISH")
			}
			cancel()
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": "Payment processed"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
