// booking-payment-gateway/internal/booking/reconcile_test.go
package booking

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

const successPayload = `{
  "Body": {
    "stkCallback": {
      "MerchantRequestID": "29115-34620561-1",
      "CheckoutRequestID": "ws_CO_191220191020363925",
      "ResultCode": 0,
      "ResultDesc": "The service request is processed successfully.",
      "CallbackMetadata": {
        "Item": [
          {"Name": "Amount", "Value": 1500},
          {"Name": "MpesaReceiptNumber", "Value": "ABC123"},
          {"Name": "TransactionDate", "Value": 20250830123456},
          {"Name": "PhoneNumber", "Value": 254708374149},
          {"Name": "AccountReference", "Value": "BOOKING_7_x@y.com"},
          {"Name": "Balance", "Value": ""}
        ]
      }
    }
  }
}`

func TestReconcileSuccess(t *testing.T) {
	rec := Reconcile([]byte(successPayload))

	require.False(t, rec.Malformed)
	require.True(t, rec.Succeeded())
	require.Equal(t, 0, rec.ResultCode)
	require.Equal(t, "The service request is processed successfully.", rec.ResultDescription)

	require.NotNil(t, rec.BookingID)
	require.Equal(t, "7", *rec.BookingID)
	require.NotNil(t, rec.Email)
	require.Equal(t, "x@y.com", *rec.Email)

	require.NotNil(t, rec.Amount)
	require.Equal(t, float64(1500), *rec.Amount)
	require.Equal(t, "ABC123", rec.ReceiptNumber)
	require.Equal(t, "254708374149", rec.PhoneNumber)
	require.Equal(t, "20250830123456", rec.TransactionDate)
	require.Equal(t, "29115-34620561-1", rec.MerchantRequestID)
	require.JSONEq(t, successPayload, string(rec.RawPayload))
}

func TestReconcileFailureNoMetadata(t *testing.T) {
	payload := `{"Body":{"stkCallback":{
		"MerchantRequestID":"29115-34620561-1",
		"CheckoutRequestID":"ws_CO_191220191020363925",
		"ResultCode":1032,
		"ResultDesc":"Request cancelled by user"}}}`

	rec := Reconcile([]byte(payload))

	require.False(t, rec.Malformed)
	require.False(t, rec.Succeeded())
	require.Equal(t, 1032, rec.ResultCode)
	// fallback correlation via merchant request id is not decodable
	require.Nil(t, rec.BookingID)
	require.Nil(t, rec.Email)
	require.Nil(t, rec.Amount)
	require.Equal(t, "29115-34620561-1", rec.MerchantRequestID)
}

func TestReconcileMalformed(t *testing.T) {
	for _, payload := range []string{
		`{"unexpected":"shape"}`,
		`{"Body":{}}`,
		`not json at all`,
		``,
	} {
		rec := Reconcile([]byte(payload))
		require.True(t, rec.Malformed, "payload %q", payload)
		require.False(t, rec.Succeeded())
		require.Equal(t, -1, rec.ResultCode)
	}
}

func TestReconcileUnknownItemsIgnored(t *testing.T) {
	payload := `{"Body":{"stkCallback":{
		"MerchantRequestID":"m-1",
		"CheckoutRequestID":"c-1",
		"ResultCode":0,
		"ResultDesc":"ok",
		"CallbackMetadata":{"Item":[
			{"Name":"SomethingNew","Value":"zzz"},
			{"Name":"Amount","Value":"250.5"},
			{"Name":"AccountReference","Value":"BOOKING_42_a_b@example.com"}
		]}}}}`

	rec := Reconcile([]byte(payload))
	require.False(t, rec.Malformed)
	require.NotNil(t, rec.Amount)
	require.Equal(t, 250.5, *rec.Amount)
	require.Equal(t, "42", *rec.BookingID)
	require.Equal(t, "a_b@example.com", *rec.Email)
}

func TestRecordNullIdentityJSON(t *testing.T) {
	rec := Reconcile([]byte(`{"Body":{"stkCallback":{"MerchantRequestID":"m-1","ResultCode":1,"ResultDesc":"failed"}}}`))

	out, err := json.Marshal(rec)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Contains(t, decoded, "bookingId")
	require.Nil(t, decoded["bookingId"])
	require.Nil(t, decoded["email"])
}
