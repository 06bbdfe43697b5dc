package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Avinash-006/UniChat/internal/config"
	"github.com/Avinash-006/UniChat/internal/database"
	"github.com/Avinash-006/UniChat/internal/handlers"
	"github.com/Avinash-006/UniChat/internal/middleware"
	"github.com/Avinash-006/UniChat/internal/services"
	"github.com/Avinash-006/UniChat/internal/storage"
	"github.com/Avinash-006/UniChat/internal/store"
	"github.com/Avinash-006/UniChat/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	storageClient, err := storage.NewMinIOClient(cfg.MinIO)
	if err != nil {
		log.Fatalf("minio initialization failed: %v", err)
	}
	if err := storageClient.EnsureBucket(context.Background()); err != nil {
		log.Fatalf("failed ensuring minio bucket: %v", err)
	}

	userStore := store.NewUserStore(db)
	fileStore := store.NewFileStore(db)
	groupStore := store.NewGroupStore(db)
	messageStore := store.NewMessageStore(db)

	auditService := services.NewAuditService(db, storageClient, cfg.Audit.QueueSize)
	fileService := services.NewFileService(fileStore, userStore, storageClient, auditService)
	userService := services.NewUserService(userStore, fileStore, auditService)
	groupService := services.NewGroupService(groupStore, messageStore, fileService, auditService)

	exportCtx, stopExport := context.WithCancel(context.Background())
	auditService.StartExport(exportCtx, cfg.Audit.ExportInterval)

	app := fiber.New(fiber.Config{BodyLimit: cfg.Server.BodyLimitMB * 1024 * 1024})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	app.Use(middleware.RequestContext())
	app.Use(middleware.RequestLogger())
	app.Use(middleware.SecurityLogger())

	handlers.Mount(app, handlers.Set{
		Users:  handlers.NewUsersHandler(userService),
		Groups: handlers.NewGroupsHandler(groupService),
		Files:  handlers.NewFilesHandler(fileService, cfg.Server.DownloadURLTTL),
	})

	listenAddr := fmt.Sprintf(":%s", cfg.Server.Port)

	logger.Info("server_starting", map[string]interface{}{
		"port":       cfg.Server.Port,
		"address":    listenAddr,
		"db_driver":  cfg.DB.Driver,
		"body_limit": fmt.Sprintf("%dMB", cfg.Server.BodyLimitMB),
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(listenAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("shutting down server due to signal: %s", sig)
		shutdownDone := make(chan struct{})
		go func() {
			_ = app.Shutdown()
			close(shutdownDone)
		}()
		select {
		case <-shutdownDone:
		case <-time.After(10 * time.Second):
			log.Print("forced shutdown timeout reached")
		}
	case err := <-errCh:
		if err != nil {
			log.Printf("server error: %v", err)
		}
	}

	stopExport()
	auditService.Close()
	if err := database.Close(db); err != nil {
		log.Printf("failed closing database: %v", err)
	}
}
