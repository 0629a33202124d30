package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"vigilanceos.dev/telemetry-service/pkg/hub"
	"vigilanceos.dev/telemetry-service/pkg/telemetry"
)

// DefaultPingInterval is the expected liveness interval for WebSocket
// subscribers. A connection silent for about twice this is considered dead.
const DefaultPingInterval = 30 * time.Second

type RestfulServer struct {
	Server *gin.Engine
	Core   *telemetry.Core
	Hub    *hub.Hub

	PingInterval time.Duration
}

func (rs *RestfulServer) pingInterval() time.Duration {
	if rs.PingInterval <= 0 {
		return DefaultPingInterval
	}
	return rs.PingInterval
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)

	rs.Server.POST("/devices", rs.RegisterDevice)
	rs.Server.GET("/devices", rs.ListDevices)

	devices := rs.Server.Group("/devices/:device_id")
	{
		devices.GET("", rs.GetDevice)
		devices.POST("/telemetry", rs.PostTelemetry)
		devices.GET("/telemetry", rs.GetDeviceTelemetry)
		devices.POST("/thresholds", rs.PostThresholds)
		devices.GET("/anomalies", rs.GetDeviceAnomalies)
		devices.GET("/status", rs.GetDeviceStatus)
	}

	rs.Server.PUT("/anomalies/:anomaly_id/resolve", rs.ResolveAnomaly)

	if rs.Hub != nil {
		rs.Server.GET("/ws", rs.ServeWS)
	}
}
