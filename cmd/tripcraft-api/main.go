// README: Entry point; loads config, wires storage, LLM provider and services, then serves HTTP until signalled.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"tripcraft/internal/ai"
	"tripcraft/internal/config"
	httptransport "tripcraft/internal/http"
	"tripcraft/internal/http/middleware"
	"tripcraft/internal/infra"
	"tripcraft/internal/maps"
	"tripcraft/internal/modules/aiusage"
	"tripcraft/internal/modules/docstore"
	"tripcraft/internal/modules/hotels"
	"tripcraft/internal/modules/planning"
	"tripcraft/internal/modules/trips"
	"tripcraft/internal/modules/vision"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.Log.Level)}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	provider, closeProvider, err := ai.NewProvider(ctx, cfg.AI)
	if err != nil {
		return err
	}
	defer closeProvider()

	var fbApp *firebase.App
	if cfg.Storage.Backend == config.StorageFirestore || cfg.Auth.Mode == config.AuthFirebase {
		fbApp, err = infra.NewFirebaseApp(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			return err
		}
	}

	var (
		docs       docstore.Store
		usageStore aiusage.Store
	)
	switch cfg.Storage.Backend {
	case config.StoragePostgres:
		applied, err := infra.Migrate(ctx, cfg.DB.DSN)
		if err != nil {
			return err
		}
		logger.Info("migrations applied", "count", len(applied))
		db, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return err
		}
		defer db.Close()
		docs = docstore.NewPGStore(db)
		usageStore = aiusage.NewPGStore(db)
	case config.StorageFirestore:
		client, err := infra.NewFirestore(ctx, fbApp)
		if err != nil {
			return err
		}
		defer client.Close()
		docs = docstore.NewFirestoreStore(client)
		usageStore = aiusage.NewMemoryStore()
	default:
		docs = docstore.NewMemoryStore()
		usageStore = aiusage.NewMemoryStore()
	}

	usageSvc := aiusage.NewService(usageStore)
	planSvc := planning.NewService(provider, usageSvc)
	tripSvc := trips.NewService(docs)

	catalog := hotels.NewCatalog(hotels.DefaultHotels())
	var inventory hotels.Inventory = hotels.NewMemoryInventory(catalog)
	if cfg.Redis.Addr != "" {
		rdb, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			return err
		}
		defer rdb.Close()
		redisInventory := hotels.NewRedisInventory(rdb, catalog)
		if err := redisInventory.Seed(ctx); err != nil {
			return err
		}
		inventory = redisInventory
	}
	hotelSvc := hotels.NewService(catalog, inventory, docs)

	var auth gin.HandlerFunc
	switch cfg.Auth.Mode {
	case config.AuthFirebase:
		verifier, err := infra.NewFirebaseVerifier(ctx, fbApp)
		if err != nil {
			return err
		}
		auth = middleware.Auth(verifier)
	default:
		logger.Warn("dev auth enabled: callers are identified by the X-Debug-Email header")
		auth = middleware.DevAuth()
	}

	deps := httptransport.ServerDeps{
		Logger:         logger,
		Plans:          planSvc,
		Trips:          tripSvc,
		Hotels:         hotelSvc,
		Usage:          usageSvc,
		Auth:           auth,
		MaxUploadBytes: int64(cfg.HTTP.MaxUploadMB) << 20,
	}
	if cfg.Vision.URL != "" {
		deps.Images = vision.NewForwarder(cfg.Vision.URL)
	}
	if cfg.Maps.APIKey != "" {
		places, err := maps.NewPlacesService(cfg.Maps.APIKey)
		if err != nil {
			return err
		}
		routes, err := maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			return err
		}
		deps.Places = places
		deps.Routes = routes
	} else {
		logger.Info("GOOGLE_MAPS_API_KEY not set; maps routes disabled")
	}

	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.HTTP.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID", "X-Debug-Email"},
		ExposedHeaders:   []string{"X-Request-ID", "X-Plan-Outcome"},
		AllowCredentials: true,
	}).Handler(httptransport.NewServer(deps).Routes())

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.HTTP.Addr, "llm", cfg.AI.Provider, "storage", cfg.Storage.Backend)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
