// booking-payment-gateway/internal/server/server_test.go
package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRouterCallbackAlwaysAcknowledges(t *testing.T) {
	s := New(Deps{}, t.TempDir())

	req := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(`definitely not json`))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "message")
}

func TestRouterHealthz(t *testing.T) {
	s := New(Deps{}, t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"ok":true`)
}

func TestRouterMethodNotAllowed(t *testing.T) {
	s := New(Deps{}, t.TempDir())

	// GET on a POST-only route falls through to the static file server
	// and 404s rather than invoking the handler
	req := httptest.NewRequest(http.MethodGet, "/initiate-payment", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.NotEqual(t, http.StatusOK, w.Code)
}
