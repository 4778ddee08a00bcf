package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/centavo-app/centavo/internal/http/category"
	"github.com/centavo-app/centavo/internal/http/importcsv"
	"github.com/centavo-app/centavo/internal/http/transaction"
)

func New(
	transactionsV1 *transaction.Handler,
	importV1 *importcsv.Handler,
	categoriesV1 *category.Handler,
	allowedOrigins []string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		r.Route("/import", importV1.Routes)

		r.Route("/categories", func(r chi.Router) {
			categoriesV1.Routes(r)
		})
	})

	return router
}
