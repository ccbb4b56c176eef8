package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/SimpleYM/SimpleYM-Backend/src/config"
	"github.com/SimpleYM/SimpleYM-Backend/src/controllers"
	"github.com/SimpleYM/SimpleYM-Backend/src/db"
	"github.com/SimpleYM/SimpleYM-Backend/src/middleware"
	"github.com/SimpleYM/SimpleYM-Backend/src/routes"
	"github.com/SimpleYM/SimpleYM-Backend/src/seed"
	"github.com/SimpleYM/SimpleYM-Backend/src/services"
	"github.com/SimpleYM/SimpleYM-Backend/src/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v\n", err)
	}
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	middleware.SetSecretKey(cfg.Auth.JWTSecret)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database connection
	database, err := db.Connect(cfg.DB.DSN)
	if err != nil {
		log.Fatalf("Error connecting to database: %v\n", err)
	}
	if err := db.Migrate(database, services.Models()...); err != nil {
		log.Fatalf("Error during auto-migration: %v\n", err)
	}
	seed.Seed(database, seed.Admin{
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
		Name:     cfg.Seed.AdminName,
	}, cfg.App.Locations)

	loc := cfg.App.TimeZone

	// Services setup
	moveStore := services.NewGormMoveStore(database)
	tempStore := services.NewGormTemperatureCheckStore(database)

	collectionService := services.NewCollectionService(services.NewGormRecordStore(database), loc)
	userService := services.NewUserService(services.NewGormUserStore(database), cfg.Auth.TokenTTL)
	moveService := services.NewMoveService(moveStore, collectionService, loc, cfg.App.TrailerIDMinLength)
	tempService := services.NewTemperatureCheckService(tempStore, loc)
	locationService := services.NewLocationService(services.NewGormLocationStore(database), cfg.App.Locations)
	feed := services.NewMoveFeed(moveStore)

	var archive services.ExportArchive
	if cfg.Export.S3Bucket != "" {
		s3Archive, err := services.NewS3ExportArchive(ctx, services.S3ExportArchiveConfig{
			Bucket:   cfg.Export.S3Bucket,
			Region:   cfg.Export.S3Region,
			Endpoint: cfg.Export.S3Endpoint,
		})
		if err != nil {
			log.Printf("[EXPORT] S3 archive disabled: %v", err)
		} else {
			archive = s3Archive
		}
	}
	dashboardService := services.NewDashboardService(feed, tempStore, userService, archive, loc)

	var drive services.DriveDownloader
	if gd := utils.NewGoogleDrive(cfg.Drive.CredentialsPath, cfg.Drive.CredentialsJSON); gd.Configured() {
		drive = gd
	}
	importService := services.NewImportService(collectionService, drive)

	// Move feed
	moveService.OnChange(feed.Notify)
	collectionService.OnChange(func(collection string) {
		if collection == "moves" {
			feed.Notify()
		}
	})
	if err := feed.Refresh(ctx); err != nil {
		log.Printf("[MOVE_FEED] Initial load failed: %v", err)
	}
	go feed.Run(ctx, cfg.MoveFeed.PollInterval)
	if cfg.MoveFeed.Listen {
		go db.ListenMoves(ctx, cfg.DB.DSN, feed.Notify)
	}

	// Gin router setup
	router := gin.Default()
	router.Use(middleware.SetupCORS(cfg.HTTP.CORSOrigins))

	// Routes setup
	system := controllers.NewSystemController(cfg.App.CompanyName, loc, locationService, collectionService, feed)
	routes.SetupSystemRoutes(router, system, cfg.Metrics.Enabled)
	routes.SetupUserRoutes(router, userService)
	routes.SetupCollectionRoutes(router, collectionService, importService)
	routes.SetupMoveRoutes(router, moveService, feed, dashboardService)
	routes.SetupTemperatureCheckRoutes(router, tempService)
	routes.SetupDashboardRoutes(router, dashboardService)

	// Server run
	srv := &http.Server{Addr: cfg.HTTP.Host, Handler: router}
	go func() {
		log.Printf("Server is running on %s\n", cfg.HTTP.Host)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting server on %s: %v\n", cfg.HTTP.Host, err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v\n", err)
	}
}
