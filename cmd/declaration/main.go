package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc"

	"github.com/wyfcoding/pkg/app"
	"github.com/wyfcoding/pkg/config"
	"github.com/wyfcoding/pkg/database"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/messagequeue/kafka"
	"github.com/wyfcoding/pkg/messagequeue/outbox"
	"github.com/wyfcoding/pkg/metrics"
	"github.com/wyfcoding/pkg/middleware"
	"github.com/wyfcoding/taxreconciliation/internal/declaration/application"
	"github.com/wyfcoding/taxreconciliation/internal/declaration/domain"
	"github.com/wyfcoding/taxreconciliation/internal/declaration/infrastructure/messaging"
	"github.com/wyfcoding/taxreconciliation/internal/declaration/infrastructure/persistence/mysql"
	"github.com/wyfcoding/taxreconciliation/internal/declaration/interfaces"
)

// BootstrapName 服务唯一标识
const BootstrapName = "declaration"

// Config 服务扩展配置
type Config struct {
	config.Config `mapstructure:",squash"`
}

// AppContext 应用上下文
type AppContext struct {
	Config       *Config
	CmdService   *application.CommandService
	QueryService *application.QueryService
	HTTPHandler  *interfaces.HTTPHandler
	Metrics      *metrics.Metrics
}

func main() {
	if err := app.NewBuilder[*Config, *AppContext](BootstrapName).
		WithConfig(&Config{}).
		WithService(initService).
		WithGRPC(registerGRPC).
		WithGin(registerGin).
		WithGinMiddleware(
			middleware.CORS(),
			middleware.TimeoutMiddleware(30*time.Second),
		).
		Build().
		Run(); err != nil {
		slog.Error("service bootstrap failed", "error", err)
	}
}

func registerGRPC(s *grpc.Server, ctx *AppContext) {
	// 申报核对目前只对外暴露 HTTP；gRPC 面向内部网关，后续按需注册
}

func registerGin(e *gin.Engine, ctx *AppContext) {
	if ctx.Config.Server.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	api := e.Group("/api/v1")
	{
		ctx.HTTPHandler.RegisterRoutes(api)
	}
}

func initService(cfg *Config, m *metrics.Metrics) (*AppContext, func(), error) {
	bootLog := slog.With("module", "bootstrap")
	logger := logging.Default()

	// 1. 数据库
	dbWrapper, err := database.NewDB(cfg.Data.Database, cfg.CircuitBreaker, logger, m)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init db: %w", err)
	}
	db := dbWrapper.RawDB()

	// 自动迁移
	if err := db.AutoMigrate(&domain.Declaration{}, &domain.Invoice{}, &outbox.Message{}); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	// 2. 消息队列 & Outbox
	producer := kafka.NewProducer(&cfg.MessageQueue.Kafka, logger, m)
	outboxMgr := outbox.NewManager(db, logger.Logger)
	outboxProc := outbox.NewProcessor(outboxMgr, func(ctx context.Context, topic, key string, payload []byte) error {
		return producer.PublishToTopic(ctx, topic, []byte(key), payload)
	}, 100, 5*time.Second)
	outboxProc.Start()

	// 3. 仓储
	declarationRepo := mysql.NewDeclarationRepository(db)
	invoiceRepo := mysql.NewInvoiceRepository(db)

	// 4. 服务
	publisher := messaging.NewOutboxPublisher(outboxMgr)
	cmdService := application.NewCommandService(declarationRepo, invoiceRepo, publisher, logger.Logger)
	queryService := application.NewQueryService(declarationRepo, invoiceRepo, logger.Logger)

	// 5. Handler
	httpHandler := interfaces.NewHTTPHandler(cmdService, queryService)

	cleanup := func() {
		bootLog.Info("shutting down...")
		outboxProc.Stop()
		if producer != nil {
			producer.Close()
		}
		if sqlDB, err := db.DB(); err == nil && sqlDB != nil {
			sqlDB.Close()
		}
	}

	return &AppContext{
		Config:       cfg,
		CmdService:   cmdService,
		QueryService: queryService,
		HTTPHandler:  httpHandler,
		Metrics:      m,
	}, cleanup, nil
}
