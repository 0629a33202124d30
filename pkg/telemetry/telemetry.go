package telemetry

import (
	"time"

	"vigilanceos.dev/telemetry-service/pkg/db"
	"vigilanceos.dev/telemetry-service/pkg/hub"
	"vigilanceos.dev/telemetry-service/pkg/models"
)

// Publisher is the fan-out side of the pipeline. Publish must never block
// the caller; the broadcast hub satisfies this.
type Publisher interface {
	Publish(event hub.Event)
}

type IIngest interface {
	IngestReading(deviceID string, input *models.ReadingSubmission) (*models.IngestResult, error)
}

type IAnomaly interface {
	ResolveAnomaly(anomalyID uint) (bool, error)
	GetDeviceAnomalies(deviceID string, q models.AnomalyQuery) ([]models.Anomaly, error)
}

type IDevice interface {
	RegisterDevice(input *models.DeviceRegistration) (*models.Device, error)
	GetDevice(deviceID string) (*models.Device, error)
	ListDevices() ([]models.Device, error)
	GetDeviceStatus(deviceID string) (*models.DeviceStatusView, error)
	GetDeviceReadings(deviceID string, q models.ReadingQuery) ([]models.Reading, error)
}

type IThreshold interface {
	UpsertThresholds(deviceID string, cfg models.ThresholdConfig) error
}

// Core owns the ingestion pipeline: persistence, evaluation, status
// derivation and hand-off to the broadcast hub.
type Core struct {
	Db              db.DB
	Hub             Publisher
	Severity        SeverityPolicy
	StalenessWindow time.Duration

	Ingest    IIngest
	Anomaly   IAnomaly
	Device    IDevice
	Threshold IThreshold

	locks deviceLockStore
}

type ServiceOpts struct {
	Ingest    IIngest
	Anomaly   IAnomaly
	Device    IDevice
	Threshold IThreshold
}

func (c *Core) WithServices(opts ServiceOpts) *Core {
	if opts.Ingest != nil {
		c.Ingest = opts.Ingest
	}
	if opts.Anomaly != nil {
		c.Anomaly = opts.Anomaly
	}
	if opts.Device != nil {
		c.Device = opts.Device
	}
	if opts.Threshold != nil {
		c.Threshold = opts.Threshold
	}
	return c
}
