// booking-payment-gateway/internal/booking/reference.go
package booking

import "strings"

const referencePrefix = "BOOKING_"

// Reference is the (booking id, payer email) pair carried through the
// gateway's single free-text account-reference field. It is the only
// correlating state that survives the push/callback round trip.
type Reference struct {
	BookingID string
	Email     string
}

// EncodeReference produces "BOOKING_<id>_<email>".
func EncodeReference(bookingID, email string) string {
	return referencePrefix + bookingID + "_" + email
}

// DecodeReference reverses EncodeReference. Emails may themselves
// contain underscores, so everything after the booking id is rejoined
// rather than taken from a naive split. A reference without the prefix
// is not ours; the second return is false, not an error.
func DecodeReference(ref string) (Reference, bool) {
	if !strings.HasPrefix(ref, referencePrefix) {
		return Reference{}, false
	}
	parts := strings.Split(ref, "_")
	if len(parts) < 3 {
		return Reference{}, false
	}
	return Reference{
		BookingID: parts[1],
		Email:     strings.Join(parts[2:], "_"),
	}, true
}
