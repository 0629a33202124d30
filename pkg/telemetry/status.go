package telemetry

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"vigilanceos.dev/telemetry-service/pkg/common"
	"vigilanceos.dev/telemetry-service/pkg/hub"
	"vigilanceos.dev/telemetry-service/pkg/models"
)

// DefaultStalenessWindow is how long a device may stay silent before it is
// considered offline.
const DefaultStalenessWindow = 5 * time.Minute

// DeriveStatus is the device state machine. Status is always re-derivable
// from last-seen recency and unresolved anomaly counts:
//
//	no reading within the window  -> offline
//	any unresolved high severity  -> error
//	any other unresolved anomaly  -> warning
//	otherwise                     -> online
func DeriveStatus(lastSeen *time.Time, now time.Time, window time.Duration, unresolvedHigh, unresolvedOther int64) models.DeviceStatus {
	if lastSeen == nil || now.Sub(*lastSeen) > window {
		return models.DeviceStatusOffline
	}
	if unresolvedHigh > 0 {
		return models.DeviceStatusError
	}
	if unresolvedOther > 0 {
		return models.DeviceStatusWarning
	}
	return models.DeviceStatusOnline
}

func (c *Core) stalenessWindow() time.Duration {
	if c.StalenessWindow <= 0 {
		return DefaultStalenessWindow
	}
	return c.StalenessWindow
}

// unresolvedCounts splits a device's unresolved anomalies into high severity
// and the rest.
func unresolvedCounts(conn *gorm.DB, deviceID string) (high int64, other int64, err error) {
	err = conn.Model(&models.Anomaly{}).
		Where("device_id = ? AND resolved = ? AND severity = ?", deviceID, false, models.SeverityHigh).
		Count(&high).Error
	if err != nil {
		return 0, 0, err
	}
	err = conn.Model(&models.Anomaly{}).
		Where("device_id = ? AND resolved = ? AND severity <> ?", deviceID, false, models.SeverityHigh).
		Count(&other).Error
	return high, other, err
}

// deriveStatusNow recomputes the device's status from the database.
func (c *Core) deriveStatusNow(conn *gorm.DB, device *models.Device, now time.Time) (models.DeviceStatus, error) {
	high, other, err := unresolvedCounts(conn, device.DeviceID)
	if err != nil {
		return device.Status, err
	}
	return DeriveStatus(device.LastSeen, now, c.stalenessWindow(), high, other), nil
}

// refreshDeviceStatus re-derives and stores the device's status, publishing
// a device_status event when it changed. Callers must hold the device lock.
func (c *Core) refreshDeviceStatus(deviceID string) (models.DeviceStatus, error) {
	var device models.Device
	if err := c.Db.Conn.First(&device, "device_id = ?", deviceID).Error; err != nil {
		return "", wrapNotFound(err, ErrDeviceNotFound)
	}

	now := time.Now()
	status, err := c.deriveStatusNow(c.Db.Conn, &device, now)
	if err != nil {
		return device.Status, err
	}
	if status == device.Status {
		return status, nil
	}

	if err := c.Db.Conn.Model(&models.Device{}).
		Where("device_id = ?", deviceID).
		Update("status", status).Error; err != nil {
		return device.Status, err
	}

	if c.Hub != nil {
		c.Hub.Publish(hub.NewDeviceStatus(deviceID, status, device.LastSeen))
	}
	return status, nil
}

// SweepStaleDevices marks devices that exceeded the staleness window as
// offline and publishes the transitions. Returns how many devices changed.
func (c *Core) SweepStaleDevices() (int, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameTelemetryCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryStatus),
	)

	cutoff := time.Now().Add(-c.stalenessWindow())

	var stale []models.Device
	err := c.Db.Conn.
		Where("status <> ?", models.DeviceStatusOffline).
		Where("last_seen IS NULL OR last_seen < ?", cutoff).
		Find(&stale).Error
	if err != nil {
		return 0, err
	}

	changed := 0
	for i := range stale {
		device := &stale[i]
		marked, err := c.markDeviceOffline(device.DeviceID, cutoff)
		if err != nil {
			return changed, err
		}
		if !marked {
			continue
		}
		changed++

		logger.Info("Device went offline", zap.String("device_id", device.DeviceID))
		if c.Hub != nil {
			c.Hub.Publish(hub.NewDeviceStatus(device.DeviceID, models.DeviceStatusOffline, device.LastSeen))
		}
	}

	return changed, nil
}

// markDeviceOffline forces a device offline only if it is still stale at
// update time: a reading that lands between the sweep's stale scan and this
// update refreshes last_seen and wins.
func (c *Core) markDeviceOffline(deviceID string, cutoff time.Time) (bool, error) {
	lock := c.locks.Get(deviceID)
	lock.Lock()
	defer lock.Unlock()

	res := c.Db.Conn.Model(&models.Device{}).
		Where("device_id = ? AND status <> ?", deviceID, models.DeviceStatusOffline).
		Where("last_seen IS NULL OR last_seen < ?", cutoff).
		Update("status", models.DeviceStatusOffline)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// StartStalenessSweeper runs SweepStaleDevices on a fixed interval until the
// context is cancelled. Status is also derived lazily on read, so the
// sweeper only exists to push timely offline transitions to subscribers.
func (c *Core) StartStalenessSweeper(ctx context.Context, interval time.Duration) {
	logger := common.GetLoggerWith(
		common.LoggerNameTelemetryCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryStatus),
	)

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := c.SweepStaleDevices(); err != nil {
					logger.Error("Staleness sweep failed", zap.Error(err))
				}
			}
		}
	}()
}
