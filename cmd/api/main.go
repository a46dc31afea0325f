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
	"github.com/lotopos/animalitos-pos-backend/api/routes"
	"github.com/lotopos/animalitos-pos-backend/internal/cart"
	"github.com/lotopos/animalitos-pos-backend/internal/config"
	"github.com/lotopos/animalitos-pos-backend/internal/handlers"
	"github.com/lotopos/animalitos-pos-backend/internal/repositories"
	mongorepo "github.com/lotopos/animalitos-pos-backend/internal/repositories/mongodb"
	"github.com/lotopos/animalitos-pos-backend/internal/services"
	"github.com/lotopos/animalitos-pos-backend/pkg/mongodb"
	"golang.org/x/exp/slog"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogger(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	mongoClient, err := mongodb.NewClient(ctx, cfg.MongoDB.URI)
	cancel()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Repositories
	var ticketRepo repositories.TicketRepository = mongorepo.NewTicketRepository(db)
	var lotteryRepo repositories.LotteryRepository = mongorepo.NewLotteryRepository(db)
	var operatorRepo repositories.OperatorRepository = mongorepo.NewOperatorRepository(db)

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 30*time.Second)
	if err := mongorepo.EnsureIndexes(indexCtx, db); err != nil {
		cancelIndex()
		log.Fatalf("Failed to ensure indexes: %v", err)
	}
	cancelIndex()

	// Session-local state and validation
	carts := cart.NewStore()
	validator := cart.NewValidator(cfg.POS.PrizeMultiplier)

	// Services
	authService := services.NewAuthService(operatorRepo, cfg)
	catalogService := services.NewCatalogService(lotteryRepo)
	ticketService := services.NewTicketService(ticketRepo, carts, cfg.POS.PrizeMultiplier, cfg.POS.BoundaryTimeout)
	salesService := services.NewSalesService(ticketRepo, cfg.POS.CommissionRate)

	// Handlers
	router := routes.SetupRouter(cfg, &routes.Handlers{
		Auth:    handlers.NewAuthHandler(authService),
		Catalog: handlers.NewCatalogHandler(catalogService),
		Cart:    handlers.NewCartHandler(carts, validator),
		Ticket:  handlers.NewTicketHandler(ticketService),
		Sales:   handlers.NewSalesHandler(salesService),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	slog.Info("Server starting", "port", cfg.Server.Port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	slog.Info("Server exiting")
}

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}
