package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/soundstage/soundstage/internal/gateway"
	"github.com/soundstage/soundstage/internal/gateway/middleware"
	"github.com/soundstage/soundstage/internal/modules/account"
	"github.com/soundstage/soundstage/internal/modules/catalog"
	"github.com/soundstage/soundstage/internal/modules/event"
	"github.com/soundstage/soundstage/internal/modules/filestorage"
	"github.com/soundstage/soundstage/internal/modules/merch"
	"github.com/soundstage/soundstage/internal/modules/notification"
	"github.com/soundstage/soundstage/internal/modules/playlist"
	"github.com/soundstage/soundstage/internal/modules/search"
	"github.com/soundstage/soundstage/internal/modules/stats"
	"github.com/soundstage/soundstage/internal/modules/subscription"
	"github.com/soundstage/soundstage/internal/shared/infrastructure/config"
	"github.com/soundstage/soundstage/internal/shared/infrastructure/database"
	"github.com/soundstage/soundstage/pkg/migration"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	ctx := context.Background()

	log.Println("Connecting to DB...")
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.Close()
	log.Println("Database connected successfully")

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	if err := migration.AutoMigrate(cfg.Database.URL(), "migrations", logger); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := database.NewRedis(cfg.Redis)
	if err != nil {
		log.Printf("Redis unavailable, caching disabled: %v", err)
		redisClient = nil
	}

	fileModule, err := filestorage.NewModule(ctx, cfg.FileStorage)
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	notificationModule := notification.NewModule(db)
	defer notificationModule.Stop()

	accountModule := account.NewModule(db, cfg.JWT.Secret, cfg.JWT.Expiry, fileModule.Service(), cfg.Google.ClientID)
	eventModule := event.NewModule(db, notificationModule.Service())
	catalogModule := catalog.NewModule(db, eventModule.Service(), redisClient)
	playlistModule := playlist.NewModule(db, catalogModule.SongFinder())
	merchModule := merch.NewModule(db)
	searchModule := search.NewModule(db)
	statsModule := stats.NewModule(db, playlistModule.Service(), eventModule.Service(), redisClient)
	subscriptionModule := subscription.NewModule(db, accountModule.UserRepository(), notificationModule.Service(), cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	mux := gateway.SetupRoutes(gateway.RouterConfig{
		AuthMiddleware:      authMiddleware,
		AccountHandler:      accountModule.HTTPHandler(),
		SongHandler:         catalogModule.HTTPHandler(),
		PlaylistHandler:     playlistModule.HTTPHandler(),
		EventHandler:        eventModule.HTTPHandler(),
		MerchHandler:        merchModule.HTTPHandler(),
		SearchHandler:       searchModule.HTTPHandler(),
		StatsHandler:        statsModule.HTTPHandler(),
		NotificationHandler: notificationModule.HTTPHandler(),
		SubscriptionHandler: subscriptionModule.HTTPHandler(),
	})

	handler := middleware.CORSMiddleware(middleware.PrometheusMiddleware(mux), cfg.Server.AllowedOrigins)

	server := gateway.NewServer(cfg.Server.Port, handler)
	if err := server.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
