// booking-payment-gateway/internal/booking/reconcile.go
package booking

import (
	"encoding/json"
	"strings"

	"github.com/example/booking-payment-gateway/internal/daraja"
)

// Metadata item names the gateway uses on successful payments.
const (
	itemAmount           = "Amount"
	itemReceiptNumber    = "MpesaReceiptNumber"
	itemPhoneNumber      = "PhoneNumber"
	itemTransactionDate  = "TransactionDate"
	itemAccountReference = "AccountReference"
)

// Reconcile normalizes a raw callback delivery into a
// PaymentResultRecord. It never fails: deliveries without the expected
// stkCallback envelope yield a record flagged Malformed, because the
// gateway redelivers on non-200 responses and the endpoint must always
// acknowledge.
func Reconcile(raw []byte) PaymentResultRecord {
	rec := PaymentResultRecord{RawPayload: json.RawMessage(raw)}

	var env daraja.CallbackEnvelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Body == nil || env.Body.STKCallback == nil {
		rec.Malformed = true
		rec.ResultCode = -1
		rec.ResultDescription = "malformed callback payload"
		return rec
	}

	cb := env.Body.STKCallback
	rec.ResultCode = cb.ResultCode
	rec.ResultDescription = cb.ResultDesc
	rec.MerchantRequestID = cb.MerchantRequestID
	rec.CheckoutRequestID = cb.CheckoutRequestID

	var accountRef string
	if cb.CallbackMetadata != nil {
		for _, item := range cb.CallbackMetadata.Item {
			switch item.Name {
			case itemAmount:
				if v, ok := itemFloat(item.Value); ok {
					rec.Amount = &v
				}
			case itemReceiptNumber:
				rec.ReceiptNumber = itemString(item.Value)
			case itemPhoneNumber:
				rec.PhoneNumber = itemString(item.Value)
			case itemTransactionDate:
				rec.TransactionDate = itemString(item.Value)
			case itemAccountReference:
				accountRef = itemString(item.Value)
			}
		}
	}

	// Correlating value of last resort: the merchant request id cannot
	// be decoded into booking identity, so the record stays anonymous.
	if accountRef == "" {
		accountRef = cb.MerchantRequestID
	}
	if ref, ok := DecodeReference(accountRef); ok {
		rec.BookingID = &ref.BookingID
		rec.Email = &ref.Email
	}

	return rec
}

// itemString renders a metadata value whether the gateway sent it as a
// JSON string or a bare number (phone numbers and dates arrive numeric).
func itemString(v json.RawMessage) string {
	var s string
	if json.Unmarshal(v, &s) == nil {
		return s
	}
	var n json.Number
	if json.Unmarshal(v, &n) == nil {
		return n.String()
	}
	return strings.TrimSpace(string(v))
}

func itemFloat(v json.RawMessage) (float64, bool) {
	var f float64
	if json.Unmarshal(v, &f) == nil {
		return f, true
	}
	var s string
	if json.Unmarshal(v, &s) == nil {
		var n json.Number
		if json.Unmarshal([]byte(s), &n) == nil {
			if f, err := n.Float64(); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}
