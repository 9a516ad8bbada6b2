package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/api"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/api/handler"
	custommiddleware "github.com/SantiNG23/api-gestion-hotelera-sub000/internal/api/middleware"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/application"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/config"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/infrastructure/postgres"
	redisinfra "github.com/SantiNG23/api-gestion-hotelera-sub000/internal/infrastructure/redis"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/pkg/logger"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/pkg/metrics"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/worker"
)

func main() {
	// ロガー初期化
	logger.Set(logger.NewLogger(os.Getenv("APP_ENV")))
	defer logger.Sync()

	// 設定読み込み
	cfg := config.Load()

	// メトリクス初期化
	m := metrics.Init()

	// PostgreSQL接続
	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		logger.Fatal("データベース接続に失敗しました", zap.Error(err))
	}
	defer db.Close()

	// マイグレーション実行
	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "migrations"
	}
	if err := postgres.RunMigrations(db.DB, migrationsPath); err != nil {
		logger.Fatal("マイグレーションに失敗しました", zap.Error(err))
	}

	// Redis接続
	redisClient := redisinfra.NewClient(&cfg.Redis)
	defer redisClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisinfra.Ping(ctx, redisClient); err != nil {
		logger.Fatal("Redis接続に失敗しました", zap.Error(err))
	}
	cancel()

	// リポジトリ
	cabinRepo := postgres.NewCabinRepository(db)
	pricingRepo := postgres.NewPricingRepository(db)
	reservationRepo := postgres.NewReservationRepository(db)
	txManager := postgres.NewTxManager(db)

	// Redisインフラ
	lockManager := redisinfra.NewLockManager(redisClient)
	availabilityCache := redisinfra.NewAvailabilityCache(redisClient)

	// アプリケーションサービス
	availabilityService := application.NewAvailabilityService(cabinRepo, reservationRepo, availabilityCache)
	cabinService := application.NewCabinService(cabinRepo)
	pricingService := application.NewPricingService(pricingRepo)
	reservationService := application.NewReservationService(
		txManager,
		reservationRepo,
		cabinRepo,
		pricingRepo,
		availabilityService,
		lockManager,
		availabilityCache,
		cfg.Booking.PendingTTL,
	)

	// 期限切れ予約クリーナー
	cleaner := worker.NewPendingReservationCleaner(reservationService, cfg.Booking.CleanerInterval)
	cleanerCtx, cleanerCancel := context.WithCancel(context.Background())
	go cleaner.Start(cleanerCtx)

	// Echo設定
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	custommiddleware.SetupMiddleware(e)
	e.Use(custommiddleware.PrometheusMiddleware(m))

	// ハンドラー
	healthHandler := handler.NewHealthHandler()
	cabinHandler := handler.NewCabinHandler(cabinService)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityService)
	pricingHandler := handler.NewPricingHandler(pricingService)
	reservationHandler := handler.NewReservationHandler(reservationService)

	// ルーティング
	e.GET("/health", healthHandler.Check)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), custommiddleware.MetricsBasicAuth())

	v1 := e.Group("/api/v1")

	v1.POST("/cabins", cabinHandler.Create)
	v1.GET("/cabins", cabinHandler.List)
	v1.GET("/cabins/available", availabilityHandler.ListAvailable)
	v1.GET("/cabins/:id", cabinHandler.GetByID)
	v1.PUT("/cabins/:id/active", cabinHandler.SetActive)
	v1.GET("/cabins/:id/blocked", availabilityHandler.BlockedRanges)
	v1.GET("/cabins/:id/calendar", availabilityHandler.Calendar)

	v1.POST("/price-groups", pricingHandler.CreateGroup)
	v1.GET("/price-groups", pricingHandler.ListGroups)
	v1.POST("/price-ranges", pricingHandler.CreateRange)
	v1.GET("/price-ranges", pricingHandler.ListRanges)
	v1.GET("/pricing/quote", pricingHandler.Quote)
	v1.GET("/pricing/daily-rates", pricingHandler.DailyRates)

	v1.POST("/reservations", reservationHandler.Create)
	v1.GET("/reservations", reservationHandler.ListByClient)
	v1.GET("/reservations/:id", reservationHandler.GetByID)
	v1.GET("/reservations/:id/payments", reservationHandler.GetPayments)
	v1.POST("/reservations/:id/confirm", reservationHandler.Confirm)
	v1.POST("/reservations/:id/pay-balance", reservationHandler.PayBalance)
	v1.POST("/reservations/:id/check-in", reservationHandler.CheckIn)
	v1.POST("/reservations/:id/check-out", reservationHandler.CheckOut)
	v1.POST("/reservations/:id/cancel", reservationHandler.Cancel)
	v1.PUT("/reservations/:id/schedule", reservationHandler.Reschedule)

	// サーバー起動
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("サーバー起動", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています...")

	// クリーナー停止
	cleanerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("サーバーシャットダウンエラー", zap.Error(err))
	}

	logger.Info("サーバーが正常にシャットダウンしました")
}
