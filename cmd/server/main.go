package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	appcatalog "github.com/grocoop/gasorders/app/catalog"
	"github.com/grocoop/gasorders/app/categories"
	"github.com/grocoop/gasorders/catalog"
	"github.com/grocoop/gasorders/config"
	"github.com/grocoop/gasorders/db"
	"github.com/grocoop/gasorders/models"
)

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	conn, err := db.ConnectAndMigrate(cfg.DatabaseDSN, cfg.Migrations, cfg.Seed)
	if err != nil {
		log.Fatalf("database setup failed: %v", err)
	}
	log.Printf("Starting server env=%s port=%s locale=%s", cfg.Env, cfg.Port, cfg.Locale)

	products := models.NewProductsRepository(conn)
	orders := models.NewOrdersRepository(conn)
	bookings := models.NewBookingsRepository(conn)
	categoriesRepo := models.NewCategoriesRepository(conn)

	availability := catalog.NewAvailability(bookings)
	creator := catalog.NewSlugGenerator(products)
	formatter := catalog.NewFormatter(language.Make(cfg.Locale))

	catalogHandler := appcatalog.NewCatalogHandler(products, orders, availability, creator, formatter)
	categoryHandler := categories.NewCategoryHandler(categoriesRepo)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /catalog", catalogHandler.HandleGet)
	mux.HandleFunc("POST /catalog", catalogHandler.HandleCreate)
	mux.HandleFunc("GET /catalog/{id}", catalogHandler.HandleGetProduct)
	mux.HandleFunc("GET /orders/{order}/catalog/{id}", catalogHandler.HandleGetOrderProduct)
	mux.HandleFunc("GET /categories", categoryHandler.HandleGetAll)
	mux.HandleFunc("POST /categories", categoryHandler.HandleCreate)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: withLogging(mux)}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
