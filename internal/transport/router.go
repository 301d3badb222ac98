package transport

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SetupRouter wires the API routes.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/shipments", func(r chi.Router) {
			r.Post("/", h.CreateShipment)
			r.Get("/number/{number}", h.GetShipmentByNumber)

			r.Route("/{tokenID}", func(r chi.Router) {
				r.Get("/", h.GetShipment)
				r.Put("/status", h.UpdateStatus)
				r.Post("/tracking", h.AddTrackingEvent)
				r.Get("/tracking", h.GetTrackingEvents)
				r.Post("/custody", h.AddCustodyRecord)
				r.Get("/custody", h.GetCustodyChain)
				r.Post("/complete", h.CompleteShipment)
			})
		})

		r.Route("/carriers/{address}", func(r chi.Router) {
			r.Get("/", h.GetCarrier)
			r.Post("/verify", h.VerifyCarrier)
			r.Delete("/verify", h.RevokeCarrier)
		})

		r.Get("/contract", h.GetContract)
		r.Put("/contract/owner", h.TransferOwnership)

		r.Post("/accounts/{address}/deposit", h.Deposit)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, http.StatusNotFound, "not found")
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()

		next.ServeHTTP(ww, r)

		h.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(started)))
	})
}
