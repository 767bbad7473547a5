// booking-payment-gateway/internal/booking/reference_test.go
package booking

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReferenceRoundTrip(t *testing.T) {
	cases := []struct {
		bookingID string
		email     string
	}{
		{"42", "user@example.com"},
		{"7", "x@y.com"},
		{"1001", "first.last@mail.co.ke"},
		{"9", "a_b@example.com"},
		{"3", "a_b_c_d@example.com"},
	}

	for _, c := range cases {
		ref, ok := DecodeReference(EncodeReference(c.bookingID, c.email))
		require.True(t, ok, "decode %s/%s", c.bookingID, c.email)
		require.Equal(t, c.bookingID, ref.BookingID)
		require.Equal(t, c.email, ref.Email)
	}
}

func TestDecodeReferenceUnderscoreEmail(t *testing.T) {
	ref, ok := DecodeReference("BOOKING_42_a_b@example.com")
	require.True(t, ok)
	require.Equal(t, "42", ref.BookingID)
	require.Equal(t, "a_b@example.com", ref.Email)
}

func TestDecodeReferenceForeign(t *testing.T) {
	for _, in := range []string{
		"not-a-booking-ref",
		"",
		"ws_CO_191220191020363925", // merchant request id shape
		"BOOKING_", // prefix but no id/email segments
	} {
		_, ok := DecodeReference(in)
		require.False(t, ok, "input %q", in)
	}
}
