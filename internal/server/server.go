// booking-payment-gateway/internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	m "github.com/example/booking-payment-gateway/pkg/metrics"
)

const serviceName = "booking-gateway"

// Server wires the relay's routes onto a mux router. All state lives in
// Deps; nothing is shared mutably between requests.
type Server struct {
	router *mux.Router
}

func New(d Deps, staticDir string) *Server {
	r := mux.NewRouter()
	r.Use(metricsMiddleware)

	// metrics & health
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":      true,
			"service": serviceName,
			"ts":      time.Now().UTC(),
		})
	}).Methods(http.MethodGet)

	// API
	r.HandleFunc("/sendConfirmationEmail", SendConfirmationEmailHandler(d)).Methods(http.MethodPost)
	r.HandleFunc("/initiate-payment", InitiatePaymentHandler(d)).Methods(http.MethodPost)
	r.HandleFunc("/callback", CallbackHandler(d)).Methods(http.MethodPost)

	// static booking UI
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir)))

	return &Server{router: r}
}

// Handler returns the CORS-wrapped root handler.
func (s *Server) Handler() http.Handler {
	return cors.AllowAll().Handler(s.router)
}

// Start serves until SIGINT/SIGTERM, then drains in-flight requests.
// Callback deliveries race the initiation response, so the drain window
// matters more here than in a typical CRUD service.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("HTTP server Shutdown: %v", err)
		}
	}()

	log.Printf("%s listening at %s", serviceName, addr)
	return srv.ListenAndServe()
}

/*************** Metrics middleware ***************/
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		statusLabel := "FAILED"
		if rec.status >= 200 && rec.status < 400 {
			statusLabel = "SUCCESS"
		}
		m.IncRequest(serviceName, statusLabel, r.Method)
		m.ObserveDuration(serviceName, statusLabel, time.Since(start).Seconds())
	})
}
