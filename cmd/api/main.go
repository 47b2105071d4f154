package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/davidrojas/tienda-backend/internal/config"
	"github.com/davidrojas/tienda-backend/internal/modules/auth"
	"github.com/davidrojas/tienda-backend/internal/modules/cart"
	"github.com/davidrojas/tienda-backend/internal/modules/catalog"
	"github.com/davidrojas/tienda-backend/internal/modules/checkout"
	"github.com/davidrojas/tienda-backend/internal/modules/dashboard"
	"github.com/davidrojas/tienda-backend/internal/modules/mirror"
	"github.com/davidrojas/tienda-backend/internal/modules/user"
	"github.com/davidrojas/tienda-backend/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, reading environment directly")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}
	if err := runMigrations(db, cfg.MigrationsURL); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Successfully connected to the database!")

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Fatal(err)
	}

	sessions := session.NewManager(rdb, cfg.SessionSecret, cfg.SessionTTL)

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(sessions.Ensure)

	// ── Catalog & file mirrors ──────────────────────────────
	productRepo := catalog.NewPostgresRepository(db)
	fileMirror, err := mirror.New(cfg.DataDir, productRepo)
	if err != nil {
		log.Fatal(err)
	}
	if err := fileMirror.Sync(context.Background()); err != nil {
		log.Printf("initial mirror sync: %v", err)
	}
	mirror.NewHandler(fileMirror).RegisterRoutes(router)

	catalogService := catalog.NewService(productRepo, fileMirror)
	catalog.NewHandler(catalogService, sessions).RegisterRoutes(router)

	// ── Identity ────────────────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	user.NewHandler(userService, sessions).RegisterRoutes(router)

	// ── Cart & checkout ─────────────────────────────────────
	cartStore := cart.NewRedisStore(rdb, cfg.SessionTTL)
	cartService := cart.NewService(cartStore, productRepo)
	cart.NewHandler(cartService, sessions).RegisterRoutes(router)

	authService := auth.NewService(userRepo)
	auth.NewHandler(authService, sessions, cartStore).RegisterRoutes(router)

	saleRepo := checkout.NewPostgresRepository(db)
	checkoutService := checkout.NewService(saleRepo, fileMirror)
	checkout.NewHandler(checkoutService, cartService, sessions).RegisterRoutes(router)

	// ── Dashboards ──────────────────────────────────────────
	dashboardRepo := dashboard.NewPostgresRepository(db)
	dashboardService := dashboard.NewService(dashboardRepo, userRepo, productRepo)
	dashboard.NewHandler(dashboardService, sessions).RegisterRoutes(router)

	router.Get("/test_db", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("database connection ok"))
	})

	// ── Start server ────────────────────────────────────────
	fmt.Printf("Tienda API server starting on :%s\n", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, router))
}

func runMigrations(db *sql.DB, sourceURL string) error {
	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
