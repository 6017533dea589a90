package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"specanalyzer/internal/analyzer"
	"specanalyzer/internal/cache"
	"specanalyzer/internal/config"
	"specanalyzer/internal/repository"
	"specanalyzer/internal/service"
	"specanalyzer/internal/transport/rest"
)

// @title Spec Analyzer API
// @version 1.0
// @description Rule-based technical document analysis and component compatibility engine
// @host localhost:8080
// @BasePath /v1
func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()
	log.Printf("Analysis settings:")
	log.Printf("  Max document size:    %d bytes", cfg.MaxDocumentSize)
	log.Printf("  Confidence threshold: %.2f", cfg.ConfidenceThreshold)
	log.Printf("  Voltage tolerance:    %.2fV", cfg.VoltageTolerance)
	log.Printf("  Analysis timeout:     %s", cfg.AnalysisTimeout)

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDatabase)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize repositories
	sessionRepo := repository.NewSessionRepo(db)
	templateRepo := repository.NewTemplateRepo(db)

	// Initialize caches
	statsCache := cache.NewStatsCache(rdb)

	// Initialize the analysis engine and services
	engine := analyzer.New(analyzer.Settings{
		VoltageTolerance:    cfg.VoltageTolerance,
		ConfidenceThreshold: cfg.ConfidenceThreshold,
		CurrentSafetyMargin: cfg.CurrentSafetyMargin,
	})
	analysisSvc := service.NewAnalysisService(engine, sessionRepo, statsCache, cfg.MaxDocumentSize, cfg.AnalysisTimeout)
	templateSvc := service.NewTemplateService(templateRepo)

	if err := templateSvc.SeedDefaults(ctx); err != nil {
		log.Fatal("Failed to seed analysis templates:", err)
	}
	log.Println("Analysis templates seeded")

	// Create router with container
	container := &rest.Container{
		AnalysisService: analysisSvc,
		TemplateService: templateSvc,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST   /v1/analyze")
		log.Println("  GET    /v1/sessions")
		log.Println("  GET    /v1/sessions/{sessionId}")
		log.Println("  DELETE /v1/sessions/{sessionId}")
		log.Println("  GET    /v1/stats")
		log.Println("  GET    /v1/templates")
		log.Println("  GET    /v1/templates/{templateName}")
		log.Println("  GET    /health")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
