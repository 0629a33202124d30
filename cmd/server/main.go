package main

import (
	"context"
	"errors"
	"log"
	netHttp "net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"vigilanceos.dev/telemetry-service/pkg/common"
	"vigilanceos.dev/telemetry-service/pkg/db"
	"vigilanceos.dev/telemetry-service/pkg/hub"
	vigilanceHttp "vigilanceos.dev/telemetry-service/pkg/http"
	"vigilanceos.dev/telemetry-service/pkg/telemetry"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	var dbInstance *db.DB
	dbType := os.Getenv(common.EnvKeyVigilanceDBType)
	switch dbType {
	case "file":
		dbInstance = db.GetInstance(db.UseSqliteDialector())
	case "memory":
		dbInstance = db.GetInstance(db.UseMemorySqliteDialector())
	default:
		log.Fatal("Unknown VIGILANCE_DB_TYPE: " + dbType)
	}

	httpHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyVigilanceHttpHostPort))
	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":1080"
	}

	stalenessWindow := durationEnv(common.EnvKeyVigilanceStalenessWindow, telemetry.DefaultStalenessWindow)
	pingInterval := durationEnv(common.EnvKeyVigilancePingInterval, vigilanceHttp.DefaultPingInterval)
	queueSize := intEnv(common.EnvKeyVigilanceHubQueueSize, hub.DefaultQueueSize)

	logger := common.GetLogger()

	broadcastHub := hub.New(queueSize)
	go broadcastHub.Run()

	core := telemetry.Core{
		Db:              *dbInstance,
		Hub:             broadcastHub,
		Severity:        telemetry.DefaultSeverityPolicy(),
		StalenessWindow: stalenessWindow,
	}
	core.WithServices(telemetry.ServiceOpts{
		Ingest:    core.GetIIngest(),
		Anomaly:   core.GetIAnomaly(),
		Device:    core.GetIDevice(),
		Threshold: core.GetIThreshold(),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	core.StartStalenessSweeper(ctx, stalenessWindow/2)

	rs := &vigilanceHttp.RestfulServer{
		Server:       gin.Default(),
		Core:         &core,
		Hub:          broadcastHub,
		PingInterval: pingInterval,
	}
	rs.Setup()

	logger.Info("http server created with:",
		zap.Duration("staleness_window", stalenessWindow),
		zap.Duration("ping_interval", pingInterval),
		zap.Int("hub_queue_size", queueSize))

	server := &netHttp.Server{
		Addr:    httpHostPort,
		Handler: rs.Server,
	}

	go func() {
		logger.Info("Starting HTTP server on: " + httpHostPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, netHttp.ErrServerClosed) {
			log.Fatalf("http server failed to serve: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	// Drain and close all live subscriptions last, so in-flight ingests
	// can still publish.
	broadcastHub.Close()
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid %s, should be a duration like 5m: %v", key, err)
	}
	return d
}

func intEnv(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid %s, should be an int value: %v", key, err)
	}
	return v
}
