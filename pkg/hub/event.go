package hub

import (
	"time"

	"vigilanceos.dev/telemetry-service/pkg/models"
)

const (
	EventReadingIngested = "reading_ingested"
	EventAnomalyDetected = "anomaly_detected"
	EventAnomalyResolved = "anomaly_resolved"
	EventDeviceStatus    = "device_status"
	EventSnapshot        = "snapshot"
)

// Event is one fan-out message. Data must be JSON-marshalable; it is
// serialized once at publish time, not per subscriber.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

func NewReadingIngested(r *models.Reading) Event {
	return Event{
		Type: EventReadingIngested,
		Data: map[string]any{
			"device_id": r.DeviceID,
			"metrics":   r.Metrics(),
			"timestamp": r.Timestamp,
		},
	}
}

func NewAnomalyDetected(a *models.Anomaly) Event {
	return Event{
		Type: EventAnomalyDetected,
		Data: map[string]any{
			"device_id": a.DeviceID,
			"anomaly":   a,
		},
	}
}

func NewAnomalyResolved(a *models.Anomaly) Event {
	return Event{
		Type: EventAnomalyResolved,
		Data: map[string]any{
			"anomaly_id": a.ID,
			"device_id":  a.DeviceID,
		},
	}
}

func NewDeviceStatus(deviceID string, status models.DeviceStatus, lastSeen *time.Time) Event {
	return Event{
		Type: EventDeviceStatus,
		Data: map[string]any{
			"device_id": deviceID,
			"status":    status,
			"last_seen": lastSeen,
		},
	}
}

// DeviceSnapshot is the initial state pushed to a new subscriber.
type DeviceSnapshot struct {
	DeviceID string              `json:"device_id"`
	Status   models.DeviceStatus `json:"status"`
	LastSeen *time.Time          `json:"last_seen,omitempty"`
}

func NewSnapshot(devices []DeviceSnapshot) Event {
	return Event{
		Type: EventSnapshot,
		Data: map[string]any{"devices": devices},
	}
}
