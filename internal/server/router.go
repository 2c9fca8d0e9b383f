package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/dgnsrekt/gammaflip/internal/stream"
)

// NewRouter wires the HTTP surface: snapshot endpoints, health, tickers and
// (optionally) the WebSocket stream.
func NewRouter(srv *Server, hub *stream.Hub, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(corsMiddleware)
	r.Use(zapLoggerMiddleware(logger))

	r.Get("/healthz", srv.handleHealth)

	r.Route("/v1", func(v1 chi.Router) {
		v1.Get("/tickers", srv.handleTickers)
		v1.Get("/gex/{ticker}", srv.handleGex)
		v1.Get("/gex/{ticker}/profile", srv.handleProfile)

		if hub != nil {
			v1.Get("/stream/{ticker}", func(w http.ResponseWriter, r *http.Request) {
				ticker := strings.ToUpper(chi.URLParam(r, "ticker"))
				hub.HandleSubscribe(w, r, ticker)
			})
		}
	})

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func zapLoggerMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			)
			next.ServeHTTP(w, r)
		})
	}
}
