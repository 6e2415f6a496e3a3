package main

import (
	"context"
	"errors"
	"log"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"restaurant-service/internal/config"
	"restaurant-service/internal/controllers/http"
	mmysql "restaurant-service/internal/infra/mysql"
	"restaurant-service/internal/infra/rabbitmq"
	"restaurant-service/internal/infra/storage"
	"restaurant-service/internal/logging"
	"restaurant-service/internal/notify"
	mysqlrepo "restaurant-service/internal/repository/mysql"
	"restaurant-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	flush, err := logging.Init(cfg.Logger)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer flush()

	loc := cfg.Location()
	time.Local = loc

	db, err := mmysql.NewMySQL(cfg.MySQL)
	if err != nil {
		zap.L().Fatal("db: connect", zap.Error(err))
	}

	orderRepo := mysqlrepo.NewOrderRepository(db)
	menuRepo := mysqlrepo.NewMenuRepository(db)
	categoryRepo := mysqlrepo.NewCategoryRepository(db)

	bus := notify.NewBus()
	notifiers := notify.Multi{bus}

	if cfg.RabbitMQ.URL != "" {
		publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			zap.L().Fatal("failed to init publisher", zap.Error(err))
		}
		defer publisher.Close()
		notifiers = append(notifiers, notify.NewBrokerNotifier(publisher))
	}

	hub, err := notify.NewHub(bus, cfg.CORSOrigins, notify.TableOrders, notify.TableOrderItems, notify.TableMenuItems)
	if err != nil {
		zap.L().Fatal("websocket hub", zap.Error(err))
	}
	defer hub.Close()

	orderSvc := services.NewOrderService(orderRepo, notifiers)
	menuSvc := services.NewMenuService(menuRepo, categoryRepo, notifiers)
	dashSvc := services.NewDashboardService(orderRepo, menuRepo, loc)
	reconcileSvc := services.NewReconcileService(orderRepo, notifiers, cfg.Reconcile.Grace)

	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: 2,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		})
		defer redisClient.Close()
		menuSvc.SetRedisClient(redisClient)
	}

	if cfg.S3.Bucket != "" {
		store, err := storage.NewImageStore(context.Background(), cfg.S3.Bucket, cfg.S3.PublicURL)
		if err != nil {
			zap.L().Fatal("image storage", zap.Error(err))
		}
		menuSvc.SetImageUploader(store, cfg.S3.Prefix)
	} else {
		zap.L().Warn("S3_BUCKET not set, image upload disabled")
	}

	sched := cron.New()
	if _, err := reconcileSvc.Schedule(sched, cfg.Reconcile.Spec); err != nil {
		zap.L().Fatal("invalid reconcile schedule", zap.String("spec", cfg.Reconcile.Spec), zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	handler := http.NewHandler(orderSvc, menuSvc, dashSvc, hub)
	handler.SetRecentLimit(cfg.RecentLimit)

	if cfg.Logger.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(http.CORS(cfg.CORSOrigins))

	if cfg.JWTSecret == "" {
		zap.L().Warn("JWT_SECRET not set, admin routes are open")
	}
	handler.RegisterRoutes(r, http.RequireAdmin(cfg.JWTSecret))

	srv := &nethttp.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		zap.L().Info("starting restaurant service", zap.String("port", cfg.Port), zap.String("tz", loc.String()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			zap.L().Fatal("server run", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Error("server shutdown", zap.Error(err))
	}
	zap.L().Info("server stopped")
}
