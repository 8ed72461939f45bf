package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured. An empty
// allowedOrigins list permits all origins (development default).
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (all routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/shopping", func(r chi.Router) {
			r.Get("/list", h.GetList)
			r.Post("/add", h.AddItem)
			r.Post("/remove", h.RemoveItem)
			r.Post("/clear", h.ClearList)
			r.Get("/category/{category}", h.ItemsByCategory)
		})

		r.Route("/voice", func(r chi.Router) {
			r.Post("/process-command", h.ProcessCommand)
			r.Post("/extract-items", h.ExtractItems)
			r.Get("/get-alternatives", h.GetAlternatives)
			r.Get("/supported-languages", h.SupportedLanguages)
		})

		r.Route("/recommendations", func(r chi.Router) {
			r.Get("/personalized", h.Personalized)
			r.Post("/alternatives", h.Substitutes)
			r.Get("/price-range", h.PriceRange)
			r.Post("/record-purchase", h.RecordPurchase)
			r.Get("/seasonal", h.Seasonal)
		})
	})

	return r
}
