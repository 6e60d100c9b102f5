package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bookstore/storefront/internal/auth"
	"github.com/bookstore/storefront/internal/config"
	"github.com/bookstore/storefront/internal/db"
	"github.com/bookstore/storefront/internal/events"
	grpcserver "github.com/bookstore/storefront/internal/grpc"
	"github.com/bookstore/storefront/internal/httpapi"
	"github.com/bookstore/storefront/internal/metrics"
	"github.com/bookstore/storefront/internal/orders"
	"github.com/bookstore/storefront/internal/repo"
	"github.com/bookstore/storefront/internal/seed"
	"github.com/bookstore/storefront/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"google.golang.org/grpc/health/grpc_health_v1"
)

func main() {
	seedOnly := flag.Bool("seed", false, "populate an empty catalog with demo data and exit")
	flag.Parse()

	cfg := config.Load()

	log := logger.NewLogger(cfg.ServiceName, cfg.LogLevel)
	defer log.Sync()

	log.Info("Storefront service starting", zap.String("db_driver", cfg.DBDriver))

	database, err := db.Connect(cfg.DBDriver, cfg.DSN(), db.GormLogLevel(cfg.LogLevel))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	log.Info("Running database migrations...")
	if err := db.RunMigrations(database); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	if *seedOnly || cfg.SeedOnStart {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		if _, err := seed.Run(context.Background(), database, hasher, rng, log); err != nil {
			log.Fatal("Failed to seed catalog", zap.Error(err))
		}
		if *seedOnly {
			return
		}
	}

	// Events are optional; the storefront keeps taking orders without them.
	var (
		orderEvents     orders.EventPublisher
		publisherHealth grpcserver.HealthChecker
	)
	if cfg.EventsEnabled {
		publisher, err := events.NewPublisher(cfg.RabbitMQURL, log)
		if err != nil {
			log.Warn("RabbitMQ unavailable, order events disabled", zap.Error(err))
		} else {
			defer publisher.Close()
			orderEvents = publisher
			publisherHealth = publisher
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	catalogRepo := repo.NewCatalogRepository(database, log)
	categoryRepo := repo.NewCategoryRepository(database, log)
	accountRepo := repo.NewAccountRepository(database, log)
	orderRepo := repo.NewOrderRepository(database, log)

	sessions := auth.NewSessionManager(cfg.SecretKey, cfg.SessionTTL)
	gate := auth.NewGate(sessions, accountRepo, cfg.CookieSecure)
	accounts := auth.NewService(accountRepo, hasher, sessions, log)
	manager := orders.NewManager(database, catalogRepo, orderRepo, orderEvents, m, log)

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := httpapi.NewHandler(catalogRepo, categoryRepo, accounts, gate, manager, log)

	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      httpapi.NewRouter(handler, m, cfg.ImagesDir),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("Starting API server", zap.String("address", apiServer.Addr))
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to serve API", zap.Error(err))
		}
	}()

	health := grpcserver.NewHealthServer(database, publisherHealth, log)
	grpcServer := grpcserver.NewServer(health, log)

	grpcListener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.GRPCPort))
	if err != nil {
		log.Fatal("Failed to listen on gRPC port", zap.Error(err))
	}

	go func() {
		log.Info("Starting gRPC server", zap.String("address", grpcListener.Addr().String()))
		if err := grpcServer.Serve(grpcListener); err != nil {
			log.Fatal("Failed to serve gRPC", zap.Error(err))
		}
	}()

	healthMux := http.NewServeMux()
	healthMux.HandleFunc("/healthz", healthHandler(health))
	healthMux.Handle("/metrics", metrics.Handler(registry))

	healthServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPHealthPort),
		Handler:      healthMux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("Starting health server", zap.String("address", healthServer.Addr))
		if err := healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to serve health endpoints", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		log.Error("API server shutdown error", zap.Error(err))
	}
	if err := healthServer.Shutdown(ctx); err != nil {
		log.Error("Health server shutdown error", zap.Error(err))
	}
	grpcServer.GracefulStop()
	manager.Wait()

	log.Info("Server stopped")
}

func healthHandler(health *grpcserver.HealthServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if health.Status() != grpc_health_v1.HealthCheckResponse_SERVING {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("unhealthy"))
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("healthy"))
	}
}
