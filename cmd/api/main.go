package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go-pos-backend/internal/config"
	"go-pos-backend/internal/handler"
	"go-pos-backend/internal/logger"
	"go-pos-backend/internal/middleware"
	"go-pos-backend/internal/repository"
	"go-pos-backend/internal/service"
	"go-pos-backend/internal/session"
	"go-pos-backend/internal/ws"
	"go-pos-backend/pkg/database"
	"go-pos-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// 1. Config and logging
	cfg := config.Load()
	if err := logger.Init(cfg.Server.Env); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()
	zlog := logger.Get()

	// 2. Store, migrated on every (re)open
	store, err := database.NewStore(database.Config{
		Driver:   cfg.Database.Driver,
		Path:     cfg.Database.Path,
		DSN:      cfg.Database.URL,
		LogLevel: gormLogLevel(cfg.Database.LogLevel),
	}, repository.Migrate)
	if err != nil {
		zlog.Fatal("failed to open store", zap.Error(err))
	}
	defer store.Close()
	zlog.Info("store ready", zap.String("driver", store.Driver()), zap.String("path", store.Path()))

	// 3. WebSocket hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Wiring
	sessions := session.NewManager()
	tokens := jwt.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.JWTTTLHours)*time.Hour)

	productRepo := repository.NewProductRepo(store)
	saleRepo := repository.NewSaleRepo(store)
	journalRepo := repository.NewStockJournalRepo(store)
	userRepo := repository.NewUserRepo(store)
	configRepo := repository.NewConfigRepo(store)

	configService := service.NewConfigService(configRepo, wsHub)
	converter := service.NewCurrencyConverter(configService)
	catalogService := service.NewCatalogService(productRepo, wsHub)
	stockService := service.NewStockService(store, productRepo, journalRepo, wsHub)
	salesService := service.NewSalesService(store, productRepo, saleRepo, converter, wsHub)
	reportService := service.NewReportService(salesService, stockService, converter)
	dashService := service.NewDashboardService(saleRepo)
	authService := service.NewAuthService(userRepo, sessions, tokens)
	userService := service.NewUserService(userRepo, sessions)
	snapshotService := service.NewSnapshotService(store, cfg.Database.BackupDir, validateBackup, sessions, wsHub)

	// 5. Seed defaults, only where missing
	if err := userService.SeedDefaults(cfg.Seed.ManagerPassword, cfg.Seed.SellerPassword); err != nil {
		zlog.Warn("failed to seed users", zap.Error(err))
	}
	if err := configService.SeedDefaults(); err != nil {
		zlog.Warn("failed to seed configuration", zap.Error(err))
	}

	// 6. Fiber
	app := fiber.New(fiber.Config{
		AppName: "POS Backend v1.0",
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(middleware.Metrics())

	handler.RegisterRoutes(app, authService, handler.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Product:   handler.NewProductHandler(catalogService),
		Stock:     handler.NewStockHandler(stockService),
		Sales:     handler.NewSalesHandler(salesService),
		Config:    handler.NewConfigHandler(configService),
		Report:    handler.NewReportHandler(reportService),
		Dashboard: handler.NewDashboardHandler(dashService),
		User:      handler.NewUserHandler(userService),
		Backup:    handler.NewBackupHandler(snapshotService),
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := store.Ping(); err != nil {
			return c.Status(503).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok", "sessions": sessions.Count(), "ws_clients": wsHub.ClientCount()})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Use("/ws", handler.UpgradeWS)
	app.Get("/ws", handler.ServeWS(wsHub))

	// 7. Graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			zlog.Panic("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
	}
	zlog.Info("server exited")
}

func validateBackup(path string) error {
	return database.ValidateBackup(path, "products", "sales", "stock_journal", "users", "configuration")
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
