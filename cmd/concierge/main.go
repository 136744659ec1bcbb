package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/wayfare-ai/concierge/internal/config"
	"github.com/wayfare-ai/concierge/internal/connector/amadeus"
	"github.com/wayfare-ai/concierge/internal/connector/hotelx"
	"github.com/wayfare-ai/concierge/internal/db"
	dbMemory "github.com/wayfare-ai/concierge/internal/db/memory"
	dbRedis "github.com/wayfare-ai/concierge/internal/db/redis"
	"github.com/wayfare-ai/concierge/internal/domain"
	logpkg "github.com/wayfare-ai/concierge/internal/logger"
	"github.com/wayfare-ai/concierge/internal/metrics"
	bookingrepo "github.com/wayfare-ai/concierge/internal/repository/booking"
	"github.com/wayfare-ai/concierge/internal/repository/corpus"
	"github.com/wayfare-ai/concierge/internal/repository/veccache"
	chiTransport "github.com/wayfare-ai/concierge/internal/transport/chi"
	"github.com/wayfare-ai/concierge/internal/transport/mockai"
	openaiTransport "github.com/wayfare-ai/concierge/internal/transport/openai"
	bookinguc "github.com/wayfare-ai/concierge/internal/usecase/booking"
	composeuc "github.com/wayfare-ai/concierge/internal/usecase/compose"
	expenseuc "github.com/wayfare-ai/concierge/internal/usecase/expense"
	healthuc "github.com/wayfare-ai/concierge/internal/usecase/health"
	queryuc "github.com/wayfare-ai/concierge/internal/usecase/query"
	retrievaluc "github.com/wayfare-ai/concierge/internal/usecase/retrieval"
	"github.com/wayfare-ai/concierge/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting concierge API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("ai_mode", cfg.AI.Mode),
	)

	// Create booking store based on driver
	var store db.Store
	switch cfg.Database.Driver {
	case "memory":
		store = dbMemory.NewStore()
	case "redis":
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
	default:
		logger.Fatal("Unknown database driver", zap.String("driver", cfg.Database.Driver))
	}
	if err != nil {
		logger.Fatal("Failed to create store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Store not ready", zap.Error(err))
	}
	logger.Info("Connected to store")

	// Register AI metrics explicitly (no init())
	metrics.RegisterAIMetrics()

	// Build AI providers — composition root
	embedder, completer := buildProviders(cfg, store, logger)
	logger.Info("AI providers created",
		zap.String("mode", cfg.AI.Mode),
		zap.String("completion_model", cfg.AI.Completion.Model),
		zap.String("vectorizer_model", cfg.AI.Vectorizer.Model),
	)

	// Retrieval corpus, seeded before the server accepts traffic
	retrievalSvc := retrievaluc.New(corpus.NewStore(), embedder)
	if len(cfg.Retrieval.SeedDocuments) > 0 {
		if err := retrievalSvc.Index(ctx, cfg.Retrieval.SeedDocuments); err != nil {
			logger.Fatal("Failed to index seed documents", zap.Error(err))
		}
		logger.Info("Seed corpus indexed", zap.Int("documents", len(cfg.Retrieval.SeedDocuments)))
	}

	// Use case services
	composeSvc := composeuc.New(completer, logger)
	querySvc := queryuc.New(
		retrievalSvc,
		composeSvc,
		amadeus.NewConnector(logger),
		hotelx.NewConnector(logger),
	).WithTopK(cfg.Retrieval.TopK)
	bookingSvc := bookinguc.New(bookingrepo.New(store), logger)
	expenseSvc := expenseuc.New(logger)
	healthSvc := healthuc.New(store, completionHealthChecker(completer))

	server := chiTransport.NewServer(querySvc, bookingSvc, expenseSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildProviders assembles the embedder chain and the completer for the
// configured AI mode. The embedder is always wrapped with the vector cache.
func buildProviders(cfg config.Config, store db.Store, logger *zap.Logger) (domain.Embedder, domain.Completer) {
	var embedder domain.Embedder
	var completer domain.Completer

	switch cfg.AI.Mode {
	case "openai":
		vecProv := cfg.AI.Providers[cfg.AI.Vectorizer.Provider]
		embedder = openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
			APIKey:     vecProv.APIKey,
			BaseURL:    vecProv.BaseURL,
			Model:      cfg.AI.Vectorizer.Model,
			Dimensions: cfg.AI.Vectorizer.Dimensions,
			Provider:   cfg.AI.Vectorizer.Provider,
			Logger:     logger,
		})

		compProv := cfg.AI.Providers[cfg.AI.Completion.Provider]
		completer = openaiTransport.NewCompleter(&openaiTransport.CompleterConfig{
			APIKey:      compProv.APIKey,
			BaseURL:     compProv.BaseURL,
			Model:       cfg.AI.Completion.Model,
			Temperature: cfg.AI.Completion.Temperature,
			MaxTokens:   cfg.AI.Completion.MaxTokens,
			Provider:    cfg.AI.Completion.Provider,
			Logger:      logger,
		})
	default: // "mock", enforced by config validation
		embedder = mockai.NewEmbedder(cfg.AI.Vectorizer.Dimensions)
		completer = mockai.NewCompleter()
	}

	embedder = veccache.New(embedder, store, metrics.EmbeddingCacheTotal, logger)
	return embedder, completer
}

// completionHealthChecker exposes the completer's health check when it has one.
func completionHealthChecker(completer domain.Completer) healthuc.CompletionChecker {
	if hc, ok := completer.(domain.HealthChecker); ok {
		return hc
	}
	return nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote_addr", r.RemoteAddr),
			)
		})
	}
}
