package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"maintenance-system/internal/controllers"
	"maintenance-system/internal/lifecycle"
	"maintenance-system/internal/listeners"
	"maintenance-system/internal/repositories"
	"maintenance-system/internal/routes"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/config"
	"maintenance-system/pkg/database/postgresql"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/eventbus"
	applogger "maintenance-system/pkg/logger"
	appmw "maintenance-system/pkg/middleware"
	"maintenance-system/pkg/service"
	"maintenance-system/pkg/utils"
	"maintenance-system/pkg/validation"
	appwebsocket "maintenance-system/pkg/websocket"
)

func main() {
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()

	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Внутренняя ошибка сервера", err, nil)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(appmw.RequestLogger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{echo.HeaderContentDisposition},
	}))

	// Postgres
	dbConn, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		logger.Fatal("не удалось подключиться к Postgres", zap.Error(err))
	}
	defer dbConn.Close()

	if cfg.Postgres.AutoMigrate {
		if err := postgresql.Migrate(ctx, dbConn); err != nil {
			logger.Fatal("не удалось применить миграции", zap.Error(err))
		}
	}

	// Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		logger.Fatal("не удалось подключиться к Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.Issuer, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL, logger)

	// Репозитории
	txManager := repositories.NewTxManager(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	userRepo := repositories.NewUserRepository(dbConn)
	teamRepo := repositories.NewTeamRepository(dbConn)
	technicianRepo := repositories.NewTechnicianRepository(dbConn)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn)
	requestRepo := repositories.NewRequestRepository(dbConn)
	reportRepo := repositories.NewReportRepository(dbConn)

	engine := lifecycle.NewEngine(lifecycle.WithClearCompletedOnReopen(cfg.Lifecycle.ClearCompletedOnReopen))

	// События доски
	bus := eventbus.New(logger.Named("eventbus"))
	hub := appwebsocket.NewHub(logger.Named("websocket"))
	go hub.Run(ctx)
	listeners.NewBoardListener(hub, logger.Named("board")).Register(bus)

	// Сервисы
	reportService := services.NewReportService(reportRepo, requestRepo, cacheRepo, cfg.Cache.ReportsTTL, engine, logger.Named("report"))
	deps := &routes.Dependencies{
		JWT: jwtSvc,
		Hub: hub,
		HealthChecks: map[string]controllers.HealthCheck{
			"postgres": dbConn.Ping,
			"redis": func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
		},
		AuthService:       services.NewAuthService(userRepo, cacheRepo, jwtSvc, cfg.Auth, logger.Named("auth")),
		TeamService:       services.NewTeamService(teamRepo, technicianRepo, logger),
		TechnicianService: services.NewTechnicianService(technicianRepo, teamRepo, logger),
		EquipmentService:  services.NewEquipmentService(equipmentRepo, requestRepo, teamRepo, technicianRepo, engine, logger),
		RequestService: services.NewRequestService(
			requestRepo, equipmentRepo, technicianRepo, txManager, reportService, bus, engine, logger.Named("request"),
		),
		ReportService: reportService,
	}

	routes.InitRouter(e, deps, &routes.Loggers{
		Main:      logger,
		Auth:      logger.Named("auth"),
		Request:   logger.Named("request"),
		Report:    logger.Named("report"),
		WebSocket: logger.Named("websocket"),
	})

	go func() {
		logger.Info("🚀 Сервер запущен", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Получен сигнал остановки, завершаем работу")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка при остановке сервера", zap.Error(err))
	}
	// Слушатели доски дорабатывают уже опубликованные события.
	bus.Wait()
}
