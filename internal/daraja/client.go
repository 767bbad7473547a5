// booking-payment-gateway/internal/daraja/client.go
package daraja

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperr "github.com/example/booking-payment-gateway/pkg/errors"
)

const (
	oauthPath   = "/oauth/v1/generate?grant_type=client_credentials"
	stkPushPath = "/mpesa/stkpush/v1/processrequest"

	transactionType = "CustomerPayBillOnline"
	transactionDesc = "Payment for room booking"

	defaultTimeout = 30 * time.Second
)

// GatewayError surfaces a non-2xx gateway response with its body kept
// for diagnostics. The body never reaches client-facing responses.
type GatewayError struct {
	StatusCode int
	Body       string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway status=%d body=%s", e.StatusCode, e.Body)
}

// Client talks to the M-Pesa Daraja API: one token per initiation, no
// caching, no retries. A duplicate push means a duplicate prompt on the
// payer's phone, so retrying is the caller's decision alone.
type Client struct {
	httpClient *http.Client
	baseURL    string
	key        string
	secret     string
	shortcode  string
	callback   string
	creds      *CredentialEncoder
}

func NewClient(baseURL, key, secret, shortcode, callbackURL string, creds *CredentialEncoder, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		key:        key,
		secret:     secret,
		shortcode:  shortcode,
		callback:   callbackURL,
		creds:      creds,
	}
}

// AcquireToken exchanges key:secret for a short-lived bearer token via
// HTTP Basic auth.
func (c *Client) AcquireToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+oauthPath, nil)
	if err != nil {
		return "", apperr.Wrap(apperr.CodeUpstreamAuth, "build token request", err)
	}
	basic := base64.StdEncoding.EncodeToString([]byte(c.key + ":" + c.secret))
	req.Header.Set("Authorization", "Basic "+basic)

	body, err := c.do(req)
	if err != nil {
		return "", apperr.Wrap(apperr.CodeUpstreamAuth, "token request failed", err)
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", apperr.Wrap(apperr.CodeUpstreamAuth, "decode token response", err)
	}
	if tok.AccessToken == "" {
		return "", apperr.Wrap(apperr.CodeUpstreamAuth, "token response missing access_token", nil)
	}
	return tok.AccessToken, nil
}

// InitiateSTKPush acquires a token, computes a fresh password/timestamp
// pair and submits the push. The decoded gateway response is returned
// verbatim so the handler can merge booking identity into it.
func (c *Client) InitiateSTKPush(ctx context.Context, phoneNumber string, amount float64, accountRef string) (map[string]any, error) {
	token, err := c.AcquireToken(ctx)
	if err != nil {
		return nil, err
	}

	creds := c.creds.Encode()
	payload := stkPushRequest{
		BusinessShortCode: c.shortcode,
		Password:          creds.Password,
		Timestamp:         creds.Timestamp,
		TransactionType:   transactionType,
		Amount:            amount,
		PartyA:            phoneNumber,
		PartyB:            c.shortcode,
		PhoneNumber:       phoneNumber,
		CallBackURL:       c.callback,
		AccountReference:  accountRef,
		TransactionDesc:   transactionDesc,
	}

	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		return nil, apperr.Wrap(apperr.CodePaymentInit, "encode push payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+stkPushPath, buf)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodePaymentInit, "build push request", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodePaymentInit, "stk push failed", err)
	}

	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, apperr.Wrap(apperr.CodePaymentInit, "decode push response", err)
	}
	return out, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &GatewayError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	return data, nil
}
