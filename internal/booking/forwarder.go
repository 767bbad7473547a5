// booking-payment-gateway/internal/booking/forwarder.go
package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperr "github.com/example/booking-payment-gateway/pkg/errors"
)

const (
	forwardPath           = "/payments/callback/"
	defaultForwardTimeout = 15 * time.Second
)

// Forwarder posts normalized payment results to the rentals backend,
// which owns the booking state machine and de-duplicates redeliveries.
type Forwarder struct {
	url        string
	httpClient *http.Client
}

func NewForwarder(baseURL string, client *http.Client) (*Forwarder, error) {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("booking API URL is required")
	}
	if client == nil {
		client = &http.Client{Timeout: defaultForwardTimeout}
	}
	return &Forwarder{url: baseURL + forwardPath, httpClient: client}, nil
}

// Forward transmits the record as JSON. Callers log failures; the
// callback acknowledgement to the gateway never depends on this.
func (f *Forwarder) Forward(ctx context.Context, rec PaymentResultRecord) error {
	body := &bytes.Buffer{}
	if err := json.NewEncoder(body).Encode(rec); err != nil {
		return apperr.Wrap(apperr.CodeDownstreamForward, "encode result record", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, body)
	if err != nil {
		return apperr.Wrap(apperr.CodeDownstreamForward, "build forward request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return apperr.Wrap(apperr.CodeDownstreamForward, "send result record", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return apperr.Wrap(apperr.CodeDownstreamForward,
			fmt.Sprintf("booking service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data))), nil)
	}
	return nil
}
