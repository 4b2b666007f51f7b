package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"dashboard-go/internal/api"
	"dashboard-go/internal/config"
	"dashboard-go/internal/logging"
	"dashboard-go/internal/service"
	"dashboard-go/internal/source"
	"dashboard-go/internal/state"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logging.New(zerolog.InfoLevel, true)
		fallback.Fatal().Err(err).Msg("invalid configuration")
	}
	logger := logging.New(cfg.LogLevel, cfg.LogPretty)

	// Initialize State and Services
	appState := state.New()
	defer appState.Close()
	connectFromEnv(cfg, appState, logger)

	charts := service.NewChartService(appState, cfg.RowLimit)
	handler := api.NewHandler(charts, appState, logger)

	// Router Setup
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	// CORS - Allow frontend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Dashboard backend is running"))
	})

	// Register all API Routes
	handler.RegisterRoutes(r)

	logger.Info().Str("addr", "http://localhost:"+cfg.Port).Msg("starting server")
	logger.Info().Strs("origins", cfg.AllowedOrigins).Msg("CORS enabled")

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Error().Err(err).Msg("server failed")
		appState.Close()
		os.Exit(1)
	}
}

// connectFromEnv opens the row source named by DASH_DB_DRIVER/DASH_DB_DSN.
// Failure is logged; the server still starts and /api/db/connect can retry.
func connectFromEnv(cfg config.Config, st *state.AppState, logger zerolog.Logger) {
	if cfg.DBDriver == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn := source.Config{Driver: cfg.DBDriver, DSN: cfg.DBDSN}
	ds, err := source.Open(ctx, conn)
	if err != nil {
		logger.Warn().Err(err).Str("driver", cfg.DBDriver).Msg("auto-connect failed")
		return
	}
	if err := st.SetSource(ds, conn); err != nil {
		logger.Warn().Err(err).Msg("closing previous source")
	}
	logger.Info().Str("driver", cfg.DBDriver).Msg("row source connected")
}
