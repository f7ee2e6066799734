package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/diewo77/cosmestock/auth"
	"github.com/diewo77/cosmestock/httpx"
	"github.com/diewo77/cosmestock/internal/catalog"
	"github.com/diewo77/cosmestock/internal/handlers"
	"github.com/diewo77/cosmestock/internal/models"
	"github.com/diewo77/cosmestock/internal/repository"
	"github.com/diewo77/cosmestock/internal/sales"
	"gorm.io/gorm"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB) http.Handler {
	store := repository.NewGormStore(db)
	catalogSvc := catalog.NewService(store.Products())
	salesSvc := sales.NewService(store, store.Sales())

	mux := http.NewServeMux()

	// Configure a user verifier so RequireAuth can ensure the user still exists.
	auth.SetUserVerifier(func(_ context.Context, uid uint) bool {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	// --- Health endpoints ---
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth endpoints
	authHandler := handlers.NewAuthHandler(db)
	authHandler.Register(mux)

	// Product endpoints
	ph := handlers.NewProductHandler(catalogSvc)
	mux.Handle("GET /api/products", guard(ph.List))
	mux.Handle("POST /api/products", guard(ph.Create))
	mux.Handle("GET /api/products/{id}", guard(ph.Get))
	mux.Handle("PUT /api/products/{id}", guard(ph.Update))
	mux.Handle("DELETE /api/products/{id}", guard(ph.Delete))
	mux.Handle("GET /api/categories", guard(ph.Categories))

	// Sale endpoints
	sh := handlers.NewSaleHandler(salesSvc)
	mux.Handle("POST /api/products/{id}/sales", guard(sh.Record))
	mux.Handle("GET /api/sales", guard(sh.List))

	// Dashboard
	dh := handlers.NewDashboardHandler(catalogSvc, salesSvc)
	mux.Handle("GET /api/dashboard", guard(dh.Stats))

	return withRecover(withLogging(auth.Middleware(mux)))
}

// guard wraps a handler with the session requirement.
func guard(h http.HandlerFunc) http.Handler {
	return auth.RequireAuth(h)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
