package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roomops-data/internal/config"
	"roomops-data/internal/database"
	httpapi "roomops-data/internal/http"
	"roomops-data/internal/logger"
	"roomops-data/internal/repository"
	"roomops-data/internal/service"
	"roomops-data/internal/store"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "roomops-data")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// 分配引擎依赖 rooms/staff 等表，DB 不可用时服务无法工作
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	drafts := store.NewRedisKV(redisClient)

	roomsRepo := repository.NewPostgresRoomsRepository(db)
	staffRepo := repository.NewPostgresStaffRepository(db)
	layoutRepo := repository.NewPostgresLayoutRepository(db)
	patternsRepo := repository.NewPostgresPatternsRepository(db)
	assignmentsRepo := repository.NewPostgresAssignmentsRepository(db)

	assignmentService := service.NewAssignmentService(
		roomsRepo, staffRepo, layoutRepo, patternsRepo, assignmentsRepo, drafts, log)

	// PMS 同步可选：未配置时房态由人工维护
	var pmsSync *service.PMSSyncService
	if cfg.PMS.Enabled && cfg.PMS.BaseURL != "" {
		pmsClient := service.NewPMSClient(cfg.PMS, log)
		pmsSync = service.NewPMSSyncService(pmsClient, roomsRepo, log)
		log.Info("PMS sync enabled", zap.String("base_url", cfg.PMS.BaseURL))
	}

	router := httpapi.NewRouter(log)
	router.RegisterHealthRoutes()
	router.RegisterAssignmentRoutes(httpapi.NewAssignmentHandler(assignmentService, assignmentsRepo, pmsSync, log))
	router.RegisterAdminRoutes(httpapi.NewAdminHandler(roomsRepo, staffRepo, log))

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()
	log.Info("roomops-data started", zap.String("addr", cfg.HTTP.Addr))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
	case err := <-errCh:
		if err != nil {
			log.Error("http server stopped", zap.Error(err))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	log.Info("roomops-data stopped")
}
