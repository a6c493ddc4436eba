package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/fxbooking/internal/booking/application"
	"github.com/wyfcoding/fxbooking/internal/booking/domain"
	"github.com/wyfcoding/fxbooking/internal/booking/infrastructure/messaging"
	"github.com/wyfcoding/fxbooking/internal/booking/infrastructure/persistence/mysql"
	httphandler "github.com/wyfcoding/fxbooking/internal/booking/interfaces/http"
	"github.com/wyfcoding/fxbooking/pkg/config"
	"github.com/wyfcoding/fxbooking/pkg/db"
	"github.com/wyfcoding/fxbooking/pkg/logger"
	"github.com/wyfcoding/fxbooking/pkg/metrics"
	"github.com/wyfcoding/fxbooking/pkg/middleware"
	"github.com/wyfcoding/fxbooking/pkg/mq"
)

func main() {
	// 1. 加载配置
	configPath := flag.String("config", "configs/booking/config.toml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		stdlog.Fatalf("Failed to load config: %v", err)
	}

	// 2. 初始化日志
	if err := logger.Init(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	logger.Info(ctx, "Starting booking service", "version", cfg.Version, "environment", cfg.Environment)

	// 3. 初始化指标
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.ServiceName)
		go func() {
			if err := metrics.StartHTTPServer(cfg.Metrics.Port, cfg.Metrics.Path); err != nil {
				logger.Error(ctx, "Metrics server stopped", "error", err)
			}
		}()
	}

	// 4. 初始化数据库
	database, err := db.Init(db.Config{
		Driver:             cfg.Database.Driver,
		DSN:                cfg.Database.DSN,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		LogEnabled:         cfg.Database.LogEnabled,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	})
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to database", "error", err)
	}
	defer database.Close()

	// 5. 自动迁移
	if err := database.AutoMigrate(&domain.Trade{}, &domain.Counterparty{}); err != nil {
		logger.Fatal(ctx, "Failed to migrate database", "error", err)
	}

	// 6. 初始化 Kafka 生产者
	var producer *mq.KafkaProducer
	if cfg.Kafka.Enabled {
		producer, err = mq.NewProducer(mq.KafkaConfig{
			Brokers:      cfg.Kafka.Brokers,
			MaxRetries:   cfg.Kafka.MaxRetries,
			RetryBackoff: cfg.Kafka.RetryBackoff,
		})
		if err != nil {
			logger.Fatal(ctx, "Failed to create kafka producer", "error", err)
		}
		defer producer.Close()
	}

	// 7. 组装依赖
	tradeRepo := mysql.NewTradeRepository(database.DB)
	counterpartyRepo := mysql.NewCounterpartyRepository(database.DB)
	publisher := messaging.NewKafkaEventPublisher(producer)

	commands := application.NewBookingCommandService(tradeRepo, counterpartyRepo, publisher, nil, m)
	queries := application.NewBookingQueryService(tradeRepo)
	handler := httphandler.NewBookingHandler(commands, queries)

	// 8. 开发环境种子数据
	if cfg.Environment == "dev" {
		seedCounterparties(ctx, counterpartyRepo)
	}

	// 9. HTTP 服务
	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.GinRecovery(), middleware.GinLogging(), middleware.GinCORS())
	if m != nil {
		router.Use(middleware.GinMetrics(m))
	}
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": cfg.ServiceName})
	})
	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info(ctx, "HTTP server started", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(ctx, "HTTP server failed", "error", err)
		}
	}()

	// 10. 到期扫描
	sweepCtx, stopSweep := context.WithCancel(ctx)
	if cfg.Booking.ExpirySweepInterval > 0 {
		go runExpirySweep(sweepCtx, commands, time.Duration(cfg.Booking.ExpirySweepInterval)*time.Second)
	}

	// 11. 优雅退出
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "Shutting down booking service")
	stopSweep()

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Forced shutdown", "error", err)
	}
	logger.Info(ctx, "Booking service stopped")
}

// runExpirySweep 周期性将到期的活跃交易置为 EXPIRED
func runExpirySweep(ctx context.Context, commands *application.BookingCommandService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := commands.ExpireMaturedTrades(ctx); err != nil {
				logger.Error(ctx, "Expiry sweep failed", "error", err)
			}
		}
	}
}

// seedCounterparties 开发环境写入示例对手方，已有数据时跳过
func seedCounterparties(ctx context.Context, repo domain.CounterpartyRepository) {
	existing, err := repo.List(ctx)
	if err != nil || len(existing) > 0 {
		return
	}

	seeds := []*domain.Counterparty{
		{Code: "CP-GS", Name: "Goldman Sachs International", LEI: "W22LROWP2IHZNBB6K528", SwiftCode: "GSILGB2L", CreditRating: "A+", Active: true},
		{Code: "CP-JPM", Name: "J.P. Morgan Securities", LEI: "ZBUT11V806EZRVTWT807", SwiftCode: "JPMSGB2L", CreditRating: "AA-", Active: true},
		{Code: "CP-DB", Name: "Deutsche Bank AG", LEI: "7LTWFZYICNSX8D621K86", SwiftCode: "DEUTDEFF", CreditRating: "BBB+", Active: true},
		{Code: "CP-DORM", Name: "Dormant Trading Ltd", LEI: "529900T8BM49AURSDO55", SwiftCode: "DORMGB2L", CreditRating: "B", Active: false},
	}
	for _, cp := range seeds {
		if err := repo.Save(ctx, cp); err != nil {
			logger.Warn(ctx, "Failed to seed counterparty", "code", cp.Code, "error", err)
		}
	}
	logger.Info(ctx, "Seeded counterparties", "count", len(seeds))
}
