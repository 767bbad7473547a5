// booking-payment-gateway/internal/booking/record.go
package booking

import "encoding/json"

// PaymentResultRecord is the normalized outcome of one gateway
// callback, created per delivery and handed to the rentals backend.
// BookingID/Email are nil when the correlating reference could not be
// decoded: payment outcome known, booking unidentified. Downstream must
// handle that case explicitly.
type PaymentResultRecord struct {
	BookingID         *string         `json:"bookingId"`
	Email             *string         `json:"email"`
	ResultCode        int             `json:"resultCode"`
	ResultDescription string          `json:"resultDescription"`
	Amount            *float64        `json:"amount,omitempty"`
	ReceiptNumber     string          `json:"receiptNumber,omitempty"`
	PhoneNumber       string          `json:"phoneNumber,omitempty"`
	TransactionDate   string          `json:"transactionDate,omitempty"`
	MerchantRequestID string          `json:"merchantRequestId,omitempty"`
	CheckoutRequestID string          `json:"checkoutRequestId,omitempty"`
	Malformed         bool            `json:"malformed,omitempty"`
	RawPayload        json.RawMessage `json:"rawPayload"`
}

// Succeeded reports whether the gateway confirmed the payment.
// Any nonzero code, or a malformed delivery, counts as failed.
func (r PaymentResultRecord) Succeeded() bool {
	return !r.Malformed && r.ResultCode == 0
}
