// File: pilgrimpath/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"pilgrimpath/config"
	"pilgrimpath/database"
	historyRepo "pilgrimpath/database/repository/history"
	"pilgrimpath/handlers"
	"pilgrimpath/middleware"
	"pilgrimpath/routes"
	"pilgrimpath/services/booking"
	ai "pilgrimpath/services/intelligence"
	"pilgrimpath/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	utils.InitSessionCache()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()
	utils.StartHealthMonitor(rootCtx, 30*time.Second, utils.GetSessionClient(), database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	if err := router.SetTrustedProxies(config.AppConfig.TrustedProxies); err != nil {
		logger.Sugar().Fatalf("main: invalid TRUSTED_PROXIES: %v", err)
	}
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// repositories.
	history, err := historyRepo.NewMongoHistoryRepo(database.Database())
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize booking history: %v", err)
	}
	sessions := ai.NewRedisSessionStore(utils.GetSessionClient(), config.AppConfig.SessionTTL)

	// services.
	gemini, err := ai.NewGeminiClient(rootCtx, config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize Gemini client: %v", err)
	}
	defer gemini.Close()

	flow := booking.NewConversationFlow(nil, booking.ClockIn(config.Location()))
	aiSvc := ai.NewDefaultAIService(gemini, flow, logger.Named("assistant"), config.AppConfig.GeminiTimeout)

	aiHandler := handlers.NewDefaultAIHandler(aiSvc, sessions, history)
	handlerBundle := handlers.NewHandlerBundle(aiHandler)

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if err := database.CloseDB(ctx); err != nil {
		logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
	}
	if err := utils.GetSessionClient().Close(); err != nil {
		logger.Warn("main: failed to close Redis", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
