package models

import "time"

type DeviceStatus string

const (
	DeviceStatusOnline  DeviceStatus = "online"
	DeviceStatusOffline DeviceStatus = "offline"
	DeviceStatusWarning DeviceStatus = "warning"
	DeviceStatusError   DeviceStatus = "error"
)

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

type AnomalyType string

const (
	AnomalyTypeHighTemperature AnomalyType = "HIGH_TEMPERATURE"
	AnomalyTypeLowTemperature  AnomalyType = "LOW_TEMPERATURE"
	AnomalyTypeLowBattery      AnomalyType = "LOW_BATTERY"
	AnomalyTypeWeakSignal      AnomalyType = "WEAK_SIGNAL"
)

// ThresholdBound is the acceptable range for one metric. A nil side is
// unconstrained. Soft bounds downgrade any violation to low severity.
type ThresholdBound struct {
	Min  *float64 `json:"min,omitempty"`
	Max  *float64 `json:"max,omitempty"`
	Soft bool     `json:"soft,omitempty"`
}

// ThresholdConfig maps metric name -> bound. A metric absent from the
// config is never evaluated.
type ThresholdConfig map[string]ThresholdBound

type Device struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	DeviceID   string          `gorm:"uniqueIndex;size:50" json:"device_id"`
	Name       string          `gorm:"size:100" json:"name"`
	Lat        *float64        `json:"lat,omitempty"`
	Lng        *float64        `json:"lng,omitempty"`
	Status     DeviceStatus    `gorm:"type:varchar(10);default:'offline';check:status IN ('online','offline','warning','error')" json:"status"`
	LastSeen   *time.Time      `json:"last_seen,omitempty"`
	Thresholds ThresholdConfig `gorm:"serializer:json" json:"thresholds,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	Readings  []Reading `gorm:"foreignKey:DeviceID;references:DeviceID" json:"-"`
	Anomalies []Anomaly `gorm:"foreignKey:DeviceID;references:DeviceID" json:"-"`
}

// Reading is one telemetry submission. Rows are append-only.
type Reading struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	DeviceID       string    `gorm:"index;size:50" json:"device_id"`
	Timestamp      time.Time `json:"timestamp"`
	Temperature    *float64  `json:"temperature,omitempty"`
	Battery        *float64  `json:"battery,omitempty"`
	SignalStrength *float64  `json:"signal_strength,omitempty"`
	CpuUsage       *float64  `json:"cpu_usage,omitempty"`
	MemoryUsage    *float64  `json:"memory_usage,omitempty"`
	DiskUsage      *float64  `json:"disk_usage,omitempty"`
}

// MetricNames in a fixed order so evaluation output is deterministic.
var MetricNames = []string{
	"temperature",
	"battery",
	"signal_strength",
	"cpu_usage",
	"memory_usage",
	"disk_usage",
}

// Metric returns the named metric value and whether it is present.
func (r *Reading) Metric(name string) (float64, bool) {
	var p *float64
	switch name {
	case "temperature":
		p = r.Temperature
	case "battery":
		p = r.Battery
	case "signal_strength":
		p = r.SignalStrength
	case "cpu_usage":
		p = r.CpuUsage
	case "memory_usage":
		p = r.MemoryUsage
	case "disk_usage":
		p = r.DiskUsage
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Metrics returns the present metric values keyed by name.
func (r *Reading) Metrics() map[string]float64 {
	m := map[string]float64{}
	for _, name := range MetricNames {
		if v, ok := r.Metric(name); ok {
			m[name] = v
		}
	}
	return m
}

type Anomaly struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	DeviceID  string      `gorm:"index;size:50" json:"device_id"`
	Timestamp time.Time   `json:"timestamp"`
	Type      AnomalyType `gorm:"type:varchar(50)" json:"type"`
	Reason    string      `gorm:"size:500" json:"reason"`
	Severity  Severity    `gorm:"type:varchar(20);check:severity IN ('high','medium','low')" json:"severity"`
	Resolved  bool        `gorm:"default:false;index" json:"resolved"`
}

// ReadingSubmission is one inbound telemetry report. Timestamp is optional,
// ingestion time is used when absent. All metrics are optional.
type ReadingSubmission struct {
	Timestamp      *time.Time
	Temperature    *float64
	Battery        *float64
	SignalStrength *float64
	CpuUsage       *float64
	MemoryUsage    *float64
	DiskUsage      *float64
}

// IngestResult reports what one accepted submission produced, so devices
// can see their own anomalies in the response.
type IngestResult struct {
	Reading   Reading      `json:"reading"`
	Anomalies []Anomaly    `json:"anomalies"`
	Status    DeviceStatus `json:"status"`
}

type DeviceRegistration struct {
	DeviceID   string
	Name       string
	Lat        *float64
	Lng        *float64
	Thresholds ThresholdConfig
}

type AnomalyQuery struct {
	Resolved *bool
	Hours    int
	Limit    int
}

type ReadingQuery struct {
	Hours int
	Limit int
}

// DeviceStatusView is the derived status exposed to external collaborators.
type DeviceStatusView struct {
	DeviceID string       `json:"device_id"`
	Status   DeviceStatus `json:"status"`
	LastSeen *time.Time   `json:"last_seen,omitempty"`
}
