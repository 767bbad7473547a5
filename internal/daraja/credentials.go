// booking-payment-gateway/internal/daraja/credentials.go
package daraja

import (
	"encoding/base64"
	"time"
)

// Credentials is the time-boxed password pair the STK push endpoint
// expects alongside the bearer token.
type Credentials struct {
	Password  string
	Timestamp string
}

// CredentialEncoder derives the push password from the shortcode and
// passkey secrets. The clock is a field so tests can pin it.
type CredentialEncoder struct {
	shortcode string
	passkey   string
	now       func() time.Time
}

func NewCredentialEncoder(shortcode, passkey string) *CredentialEncoder {
	return &CredentialEncoder{shortcode: shortcode, passkey: passkey, now: time.Now}
}

// Encode returns base64(shortcode || passkey || timestamp) with the
// timestamp as a fixed-width 14-digit YYYYMMDDHHMMSS in UTC, the exact
// format the gateway validates against.
func (e *CredentialEncoder) Encode() Credentials {
	ts := e.now().UTC().Format("20060102150405")
	password := base64.StdEncoding.EncodeToString([]byte(e.shortcode + e.passkey + ts))
	return Credentials{Password: password, Timestamp: ts}
}
