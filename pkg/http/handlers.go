package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"vigilanceos.dev/telemetry-service/pkg/models"
	"vigilanceos.dev/telemetry-service/pkg/telemetry"

	"github.com/gin-gonic/gin"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

type TelemetryRequest struct {
	Timestamp      *time.Time `json:"timestamp"`
	Temperature    *float64   `json:"temperature"`
	Battery        *float64   `json:"battery"`
	SignalStrength *float64   `json:"signal_strength"`
	CpuUsage       *float64   `json:"cpu_usage"`
	MemoryUsage    *float64   `json:"memory_usage"`
	DiskUsage      *float64   `json:"disk_usage"`
}

var telemetryRequestSchema = z.Struct(z.Shape{
	"Timestamp":      z.Ptr(z.Time()),
	"Temperature":    z.Ptr(z.Float64()),
	"Battery":        z.Ptr(z.Float64()),
	"SignalStrength": z.Ptr(z.Float64()),
	"CpuUsage":       z.Ptr(z.Float64()),
	"MemoryUsage":    z.Ptr(z.Float64()),
	"DiskUsage":      z.Ptr(z.Float64()),
})

// statusForError maps the core error taxonomy onto HTTP codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, telemetry.ErrDeviceNotFound),
		errors.Is(err, telemetry.ErrAnomalyNotFound):
		return http.StatusNotFound
	case errors.Is(err, telemetry.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, telemetry.ErrDeviceExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusForError(err), gin.H{"error": err.Error()})
}

func (rs *RestfulServer) PostTelemetry(c *gin.Context) {
	deviceID := c.Param("device_id")

	var req TelemetryRequest
	if err := telemetryRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	result, err := rs.Core.Ingest.IngestReading(deviceID, &models.ReadingSubmission{
		Timestamp:      req.Timestamp,
		Temperature:    req.Temperature,
		Battery:        req.Battery,
		SignalStrength: req.SignalStrength,
		CpuUsage:       req.CpuUsage,
		MemoryUsage:    req.MemoryUsage,
		DiskUsage:      req.DiskUsage,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type RegisterDeviceRequest struct {
	DeviceID   string                 `json:"device_id"`
	Name       string                 `json:"name"`
	Lat        *float64               `json:"lat"`
	Lng        *float64               `json:"lng"`
	Thresholds models.ThresholdConfig `json:"thresholds"`
}

// Thresholds is a free-form metric map, bound by gin and checked by the
// core's threshold validation; the scalar fields go through the schema.
var registerDeviceSchema = z.Struct(z.Shape{
	"DeviceID": z.String().Required(),
	"Name":     z.String().Required(),
	"Lat":      z.Ptr(z.Float64().GTE(-90).LTE(90)),
	"Lng":      z.Ptr(z.Float64().GTE(-180).LTE(180)),
})

func (rs *RestfulServer) RegisterDevice(c *gin.Context) {
	var req RegisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := registerDeviceSchema.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	device, err := rs.Core.Device.RegisterDevice(&models.DeviceRegistration{
		DeviceID:   req.DeviceID,
		Name:       req.Name,
		Lat:        req.Lat,
		Lng:        req.Lng,
		Thresholds: req.Thresholds,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, device)
}

func (rs *RestfulServer) ListDevices(c *gin.Context) {
	devices, err := rs.Core.Device.ListDevices()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, devices)
}

func (rs *RestfulServer) GetDevice(c *gin.Context) {
	device, err := rs.Core.Device.GetDevice(c.Param("device_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, device)
}

func (rs *RestfulServer) PostThresholds(c *gin.Context) {
	deviceID := c.Param("device_id")

	var cfg models.ThresholdConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := rs.Core.Threshold.UpsertThresholds(deviceID, cfg); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) GetDeviceAnomalies(c *gin.Context) {
	deviceID := c.Param("device_id")

	q := models.AnomalyQuery{
		Hours: intQuery(c, "hours", 24),
		Limit: intQuery(c, "limit", 100),
	}
	if raw, ok := c.GetQuery("resolved"); ok {
		resolved, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "resolved must be a boolean"})
			return
		}
		q.Resolved = &resolved
	}

	anomalies, err := rs.Core.Anomaly.GetDeviceAnomalies(deviceID, q)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, anomalies)
}

func (rs *RestfulServer) GetDeviceTelemetry(c *gin.Context) {
	deviceID := c.Param("device_id")

	readings, err := rs.Core.Device.GetDeviceReadings(deviceID, models.ReadingQuery{
		Hours: intQuery(c, "hours", 24),
		Limit: intQuery(c, "limit", 100),
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, readings)
}

func (rs *RestfulServer) GetDeviceStatus(c *gin.Context) {
	view, err := rs.Core.Device.GetDeviceStatus(c.Param("device_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (rs *RestfulServer) ResolveAnomaly(c *gin.Context) {
	anomalyID, err := strconv.ParseUint(c.Param("anomaly_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "anomaly_id must be a positive integer"})
		return
	}

	resolved, err := rs.Core.Anomaly.ResolveAnomaly(uint(anomalyID))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resolved": resolved})
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw, ok := c.GetQuery(name)
	if !ok {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
