package telemetry

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"vigilanceos.dev/telemetry-service/pkg/common"
	"vigilanceos.dev/telemetry-service/pkg/hub"
	"vigilanceos.dev/telemetry-service/pkg/models"
)

// ingestReading is the sole path through which telemetry history and device
// status/last-seen advance. All-or-nothing per submission: the reading, its
// anomalies and the device update commit in one transaction, and nothing is
// broadcast on failure.
func (c *Core) ingestReading(deviceID string, input *models.ReadingSubmission) (*models.IngestResult, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameTelemetryCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryIngest),
	)

	if deviceID == "" {
		return nil, fmt.Errorf("%w: empty device id", ErrInvalidInput)
	}
	if err := ValidateSubmission(input); err != nil {
		return nil, err
	}

	lock := c.locks.Get(deviceID)
	lock.Lock()
	defer lock.Unlock()

	var device models.Device
	if err := c.Db.Conn.First(&device, "device_id = ?", deviceID).Error; err != nil {
		return nil, wrapNotFound(err, ErrDeviceNotFound)
	}

	now := time.Now()
	timestamp := now
	if input.Timestamp != nil {
		timestamp = *input.Timestamp
	}

	reading := models.Reading{
		DeviceID:       deviceID,
		Timestamp:      timestamp,
		Temperature:    input.Temperature,
		Battery:        input.Battery,
		SignalStrength: input.SignalStrength,
		CpuUsage:       input.CpuUsage,
		MemoryUsage:    input.MemoryUsage,
		DiskUsage:      input.DiskUsage,
	}

	logger.Info("Received reading for device", zap.Reflect("reading", reading))

	drafts := Evaluate(&reading, device.Thresholds, c.Severity)
	anomalies := common.Mapper(drafts, func(draft AnomalyDraft) models.Anomaly {
		return models.Anomaly{
			DeviceID:  deviceID,
			Timestamp: timestamp,
			Type:      draft.Type,
			Reason:    draft.Reason,
			Severity:  draft.Severity,
			Resolved:  false,
		}
	})

	var status models.DeviceStatus
	err := c.Db.Conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&reading).Error; err != nil {
			return fmt.Errorf("persist reading: %w", err)
		}
		if len(anomalies) > 0 {
			if err := tx.Create(&anomalies).Error; err != nil {
				return fmt.Errorf("persist anomalies: %w", err)
			}
		}

		high, other, err := unresolvedCounts(tx, deviceID)
		if err != nil {
			return err
		}
		status = DeriveStatus(&now, now, c.stalenessWindow(), high, other)

		// Last-writer-wins on wall-clock ingestion time, not the
		// device-reported timestamp.
		return tx.Model(&models.Device{}).
			Where("device_id = ?", deviceID).
			Updates(map[string]any{"status": status, "last_seen": now}).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Persisted reading for device",
		zap.Reflect("reading", reading),
		zap.Int("anomalies", len(anomalies)),
		zap.String("status", string(status)))

	if c.Hub != nil {
		c.Hub.Publish(hub.NewReadingIngested(&reading))
		for i := range anomalies {
			c.Hub.Publish(hub.NewAnomalyDetected(&anomalies[i]))
		}
		if status != device.Status {
			c.Hub.Publish(hub.NewDeviceStatus(deviceID, status, &now))
		}
	}

	return &models.IngestResult{Reading: reading, Anomalies: anomalies, Status: status}, nil
}

type IIngestImpl struct {
	core *Core
}

func (ii *IIngestImpl) IngestReading(deviceID string, input *models.ReadingSubmission) (*models.IngestResult, error) {
	return ii.core.ingestReading(deviceID, input)
}

func (c *Core) GetIIngest() IIngest {
	return &IIngestImpl{core: c}
}
