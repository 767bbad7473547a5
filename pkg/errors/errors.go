// booking-payment-gateway/pkg/errors/errors.go
package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes used across the service. Handlers map these to HTTP
// responses without leaking upstream bodies or secrets.
const (
	CodeConfig            = "CONFIG"
	CodeUpstreamAuth      = "UPSTREAM_AUTH"
	CodePaymentInit       = "PAYMENT_INIT"
	CodeVerify            = "VERIFY"
	CodeMalformedCallback = "MALFORMED_CALLBACK"
	CodeDownstreamForward = "DOWNSTREAM_FORWARD"
)

type E struct {
	Code    string
	Message string
	Err     error
}

func (e E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e E) Unwrap() error { return e.Err }

func Wrap(code, msg string, err error) error {
	return E{Code: code, Message: msg, Err: err}
}

// CodeOf extracts the error code, or "" for foreign errors.
func CodeOf(err error) string {
	var e E
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}
