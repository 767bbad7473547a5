// booking-payment-gateway/internal/booking/forwarder_test.go
package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	apperr "github.com/example/booking-payment-gateway/pkg/errors"
)

func TestForwarderPostsRecord(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	f, err := NewForwarder(srv.URL, srv.Client())
	require.NoError(t, err)

	rec := Reconcile([]byte(successPayload))
	require.NoError(t, f.Forward(context.Background(), rec))

	require.Equal(t, "/payments/callback/", gotPath)
	require.Equal(t, "7", gotBody["bookingId"])
	require.Equal(t, "x@y.com", gotBody["email"])
	require.Equal(t, float64(0), gotBody["resultCode"])
	require.Contains(t, gotBody, "rawPayload")
}

func TestForwarderSurfacesRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "duplicate callback", http.StatusConflict)
	}))
	defer srv.Close()

	f, err := NewForwarder(srv.URL, srv.Client())
	require.NoError(t, err)

	err = f.Forward(context.Background(), PaymentResultRecord{RawPayload: json.RawMessage(`{}`)})
	require.Error(t, err)
	require.Equal(t, apperr.CodeDownstreamForward, apperr.CodeOf(err))
	require.Contains(t, err.Error(), "409")
}

func TestNewForwarderRequiresURL(t *testing.T) {
	_, err := NewForwarder("  ", nil)
	require.Error(t, err)
}
