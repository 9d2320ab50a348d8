package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"service-dispatch/internal/http/handlers"
	appmw "service-dispatch/internal/http/middleware"
	"service-dispatch/internal/http/middleware/ratelimit"
	"service-dispatch/internal/logx"
)

// New constructs a chi-based http.Handler with base middleware and routes.
// A nil rate limit middleware leaves the API unthrottled.
func New(
	h *handlers.Handlers,
	bh *handlers.BroadcastHandler,
	rl *ratelimit.Middleware,
	logger logx.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appmw.Observability(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Second))

	r.Get("/ping", h.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if rl != nil {
			r.Use(rl.Handler())
		}

		r.Post("/broadcasts", bh.Create)
		r.Get("/broadcasts/{id}", bh.Get)
		r.Post("/broadcasts/{id}/accept", bh.Accept)
		r.Post("/broadcasts/{id}/reject", bh.Reject)
		r.Post("/broadcasts/{id}/cancel", bh.Cancel)
		r.Post("/broadcasts/{id}/status", bh.Advance)
		r.Post("/broadcasts/{id}/assign", bh.Assign)
		r.Get("/retailers/me/broadcasts/pending", bh.ListPending)
		r.Get("/customers/me/broadcasts", bh.ListForCustomer)
	})

	r.NotFound(http.HandlerFunc(h.NotFound))

	return r
}
