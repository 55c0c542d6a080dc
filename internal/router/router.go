package router

import (
	"net/http"
	"strings"

	"orderdesk/internal/handler"
	"orderdesk/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
// Order intake, login and the health check are public; everything else needs a session.
func New(
	orderHandler *handler.OrderHandler,
	authHandler *handler.AuthHandler,
	sessions middleware.SessionValidator,
	intakeLimiter *middleware.RateLimiter,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	admin := middleware.SessionAuth(sessions, logger)
	limited := middleware.RateLimit(intakeLimiter, logger)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.Handle("/api/auth/login", limited(http.HandlerFunc(authHandler.Login)))
	mux.Handle("/api/auth/logout", http.HandlerFunc(authHandler.Logout))

	intake := limited(http.HandlerFunc(orderHandler.Create))
	list := admin(http.HandlerFunc(orderHandler.List))
	update := admin(http.HandlerFunc(orderHandler.UpdateStatus))
	invoice := admin(http.HandlerFunc(orderHandler.Invoice))

	// Collection routes: POST creates (public), anything else lists (admin)
	collection := func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			intake.ServeHTTP(w, r)
			return
		}
		list.ServeHTTP(w, r)
	}

	// Item routes: /api/orders/{id} and /api/orders/{id}/invoice
	item := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/orders/" {
			collection(w, r)
			return
		}
		if strings.HasSuffix(r.URL.Path, "/invoice") {
			invoice.ServeHTTP(w, r)
			return
		}
		update.ServeHTTP(w, r)
	}

	// Register order routes (both with and without trailing slash)
	mux.HandleFunc("/api/orders", collection)
	mux.HandleFunc("/api/orders/", item)

	// Apply middleware in order: Recovery -> Logging -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
