package api

import (
	_ "fxconvert/docs"
	"fxconvert/internal/rate/handler"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"
)

// NewRouter mounts the converter API. metrics may be nil.
func NewRouter(rateHandler *handler.Handler, metrics http.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)
	if metrics != nil {
		router.Method(http.MethodGet, "/metrics", metrics)
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/state", rateHandler.GetState)
		r.Get("/rows", rateHandler.GetRows)
		r.Post("/rates/reload", rateHandler.ReloadRates)

		r.Put("/base", rateHandler.SetBase)
		r.Delete("/base", rateHandler.DropBase)

		r.Get("/currencies", rateHandler.ListCurrencies)
		r.Get("/currencies/supported", rateHandler.GetSupportedCodes)
		r.Post("/currencies/{code:[A-Za-z0-9]+}/toggle", rateHandler.ToggleCurrency)
		r.Put("/currencies/{code:[A-Za-z0-9]+}", rateHandler.AddCurrency)
		r.Delete("/currencies/{code:[A-Za-z0-9]+}", rateHandler.RemoveCurrency)
	})
	return router
}
