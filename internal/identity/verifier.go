// booking-payment-gateway/internal/identity/verifier.go
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultVerifyTimeout = 10 * time.Second

// Verification is the typed outcome of a trust-elevation attempt. A
// failed lookup falls back to the caller-supplied email with
// Verified=false instead of raising, so callers cannot mistake a
// fallback for a verified identity.
type Verification struct {
	Email    string
	Verified bool
}

// tenantRecord mirrors the rentals backend's tenant serializer; the
// authoritative email sits either on the record or its nested user.
type tenantRecord struct {
	Email string `json:"email"`
	User  *struct {
		Email string `json:"email"`
	} `json:"user"`
}

// Verifier resolves a caller credential against the tenant service.
type Verifier struct {
	baseURL    string
	httpClient *http.Client
}

func NewVerifier(baseURL string, client *http.Client) *Verifier {
	if client == nil {
		client = &http.Client{Timeout: defaultVerifyTimeout}
	}
	return &Verifier{baseURL: strings.TrimSuffix(baseURL, "/"), httpClient: client}
}

// Verify exchanges the credential for an authoritative email. Every
// failure path logs a warning and falls back to callerEmail; a failed
// verification never blocks payment initiation.
func (v *Verifier) Verify(ctx context.Context, callerEmail, credential string) Verification {
	fallback := Verification{Email: callerEmail, Verified: false}
	if credential == "" || v.baseURL == "" {
		return fallback
	}

	endpoint := fmt.Sprintf("%s/tenants/?search=%s", v.baseURL, url.QueryEscape(callerEmail))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Printf("WARN tenant verification: build request: %v", err)
		return fallback
	}
	req.Header.Set("Authorization", "Bearer "+credential)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		log.Printf("WARN tenant verification: %v", err)
		return fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("WARN tenant verification: status %d", resp.StatusCode)
		return fallback
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		log.Printf("WARN tenant verification: read body: %v", err)
		return fallback
	}

	var records []tenantRecord
	if err := json.Unmarshal(data, &records); err != nil || len(records) == 0 {
		log.Printf("WARN tenant verification: no matching tenant")
		return fallback
	}

	email := records[0].Email
	if email == "" && records[0].User != nil {
		email = records[0].User.Email
	}
	if email == "" {
		log.Printf("WARN tenant verification: record missing email")
		return fallback
	}
	return Verification{Email: email, Verified: true}
}
