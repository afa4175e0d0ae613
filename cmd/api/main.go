package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	redisclient "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Besher-Hamze/airport-management-system-backend/internal/adapters/mongodb"
	"github.com/Besher-Hamze/airport-management-system-backend/internal/adapters/postgres"
	"github.com/Besher-Hamze/airport-management-system-backend/internal/adapters/rabbit"
	"github.com/Besher-Hamze/airport-management-system-backend/internal/adapters/redisstore"
	"github.com/Besher-Hamze/airport-management-system-backend/internal/aggregator"
	"github.com/Besher-Hamze/airport-management-system-backend/internal/airport"
	"github.com/Besher-Hamze/airport-management-system-backend/internal/config"
	httphandler "github.com/Besher-Hamze/airport-management-system-backend/internal/http"
	"github.com/Besher-Hamze/airport-management-system-backend/internal/observability"
	"github.com/Besher-Hamze/airport-management-system-backend/internal/rateLimit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	shutdown, err := observability.SetupOTel(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to setup otel: %v", err)
	}
	defer shutdown()

	logger := observability.NewLogger()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("failed to connect to mongo: %v", err)
	}
	defer mongoClient.Disconnect(ctx)
	mongoDB := mongoClient.Database(cfg.MongoDB)
	shamStore := mongodb.NewStore(mongoDB, logger)
	audit := mongodb.NewAuditTrail(mongoDB, logger)

	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	emiratesStore := postgres.NewStore(pool)
	if err := emiratesStore.EnsureSchema(ctx); err != nil {
		log.Fatalf("failed to ensure postgres schema: %v", err)
	}

	redisClient := redisclient.NewClient(&redisclient.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	qatarStore := redisstore.NewStore(redisClient)
	rl := rateLimit.NewRateLimiter(redisClient)

	var events airport.Recorder
	if cfg.RabbitURL != "" {
		rabbitConn, err := amqp.Dial(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to rabbitmq: %v", err)
		}
		defer rabbitConn.Close()
		pub, err := rabbit.NewPublisher(rabbitConn, logger)
		if err != nil {
			log.Fatalf("failed to create publisher: %v", err)
		}
		events = pub
	}
	recorder := airport.MultiRecorder(events, audit)

	sham := airport.NewService("sham", "SHA", shamStore, shamStore, logger, airport.WithRecorder(recorder))
	emirates := airport.NewService("emirates", "EMA", emiratesStore, emiratesStore, logger, airport.WithRecorder(recorder))
	qatar := airport.NewService("qatar", "QTA", qatarStore, qatarStore, logger, airport.WithRecorder(recorder))

	for _, svc := range []*airport.Service{sham, emirates, qatar} {
		if err := svc.SeedInitialFlights(ctx); err != nil {
			log.Fatalf("failed to seed %s: %v", svc.ID(), err)
		}
	}

	agg := aggregator.NewService(logger, sham, emirates, qatar)
	handlers := httphandler.NewHandlers(agg, logger, sham, emirates, qatar)
	r := httphandler.SetupRouter(handlers, logger, rl)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown Server ...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}
	logger.Info("Server exiting")
}
