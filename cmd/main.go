package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inventory-catalog/internal/assets"
	"inventory-catalog/internal/config"
	"inventory-catalog/internal/forms"
	"inventory-catalog/internal/service"
	"inventory-catalog/internal/store"
	"inventory-catalog/internal/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultAppName = "InventoryCatalog"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("INFO: No .env file found or failed to load, relying on system environment")
	}
	logger := log.New(os.Stdout, fmt.Sprintf("[%s] ", defaultAppName), log.LstdFlags|log.Lshortfile|log.Lmicroseconds)
	logger.Println("INFO: Starting service...")

	// --- Configuration Loading ---
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("FATAL: Error loading configuration: %v", err)
	}
	logger.Printf("INFO: Configuration loaded for APP_ENV: %s", cfg.AppEnv)

	// --- Document Store Connection ---
	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelConnect()
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Fatalf("FATAL: Failed to initialize document store connection: %v", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		logger.Fatalf("FATAL: Failed to ping document store: %v", err)
	}
	logger.Println("INFO: Document store connection established successfully.")
	dbStore := store.NewMongoStore(client, cfg.Mongo.Database)

	// --- Wire Services & Handlers ---
	validator := forms.New()
	imageStore := assets.NewImageStore(cfg.Images.Dir, cfg.Images.Placeholder)
	categoryService := service.NewCategoryService(dbStore, dbStore, validator)
	itemService := service.NewItemService(dbStore, dbStore, imageStore, validator, logger)
	dashboard := service.NewDashboard(dbStore, dbStore)

	renderer, err := web.NewHTMLRenderer(logger)
	if err != nil {
		logger.Fatalf("FATAL: Failed to parse templates: %v", err)
	}
	handler := web.NewHandler(categoryService, itemService, dashboard, renderer, logger)

	// --- Setup & Start HTTP Server ---
	httpRouter := chi.NewRouter()
	setupBaseMiddleware(httpRouter, logger)
	registerImageRoute(httpRouter, logger, imageStore)
	handler.RegisterRoutes(httpRouter)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HttpServer.Port,
		Handler:      httpRouter,
		ReadTimeout:  cfg.HttpServer.TimeoutRead,
		WriteTimeout: cfg.HttpServer.TimeoutWrite,
		IdleTimeout:  cfg.HttpServer.TimeoutIdle,
	}

	go func() {
		logger.Printf("INFO: HTTP server listening on port %s", cfg.HttpServer.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("FATAL: HTTP server ListenAndServe error: %v", err)
		}
		logger.Println("INFO: HTTP server has stopped.")
	}()

	// --- Graceful Shutdown ---
	shutdownComplete := make(chan struct{})
	go waitForShutdown(logger, httpServer, dbStore, shutdownComplete)

	<-shutdownComplete
	logger.Println("INFO: Service shutdown sequence finished.")
}

func setupBaseMiddleware(router *chi.Mux, logger *log.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))
	logger.Println("INFO: Base HTTP middleware registered.")
}

// registerImageRoute serves the uploaded (and placeholder) images from the
// configured public directory.
func registerImageRoute(router *chi.Mux, logger *log.Logger, images *assets.ImageStore) {
	fileServer := http.StripPrefix("/images/", http.FileServer(http.Dir(images.Dir())))
	router.Get("/images/*", fileServer.ServeHTTP)
	logger.Printf("INFO: Serving images from %s at /images/", images.Dir())
}

func waitForShutdown(
	logger *log.Logger,
	httpServer *http.Server,
	dbStore *store.MongoStore,
	shutdownComplete chan struct{},
) {
	defer close(shutdownComplete)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-sigChan
	logger.Printf("INFO: Received signal: %s. Starting graceful shutdown...", receivedSignal)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	logger.Println("INFO: Attempting to gracefully shut down HTTP server...")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Printf("WARN: HTTP server graceful shutdown failed: %v", err)
	} else {
		logger.Println("INFO: HTTP server gracefully shut down.")
	}

	if dbStore != nil {
		if err := dbStore.Close(shutdownCtx); err != nil {
			logger.Printf("WARN: Error closing document store connection: %v", err)
		}
	}

	logger.Println("INFO: Graceful shutdown sequence completed.")
}
