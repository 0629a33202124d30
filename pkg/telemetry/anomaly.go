package telemetry

import (
	"time"

	"go.uber.org/zap"
	"vigilanceos.dev/telemetry-service/pkg/common"
	"vigilanceos.dev/telemetry-service/pkg/hub"
	"vigilanceos.dev/telemetry-service/pkg/models"
)

// resolveAnomaly flips an anomaly from unresolved to resolved exactly once.
// Returns true only on a real transition; resolving an already-resolved
// anomaly is a no-op returning false. The transition is monotonic: resolved
// never reverts through this path.
func (c *Core) resolveAnomaly(anomalyID uint) (bool, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameTelemetryCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryAnomaly),
	)

	var anomaly models.Anomaly
	if err := c.Db.Conn.First(&anomaly, anomalyID).Error; err != nil {
		return false, wrapNotFound(err, ErrAnomalyNotFound)
	}
	if anomaly.Resolved {
		return false, nil
	}

	// Guard on resolved=false so concurrent resolvers race safely: only
	// one caller observes the transition.
	res := c.Db.Conn.Model(&models.Anomaly{}).
		Where("id = ? AND resolved = ?", anomalyID, false).
		Update("resolved", true)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	anomaly.Resolved = true

	logger.Info("Anomaly resolved", zap.Reflect("anomaly", anomaly))

	if c.Hub != nil {
		c.Hub.Publish(hub.NewAnomalyResolved(&anomaly))
	}

	lock := c.locks.Get(anomaly.DeviceID)
	lock.Lock()
	defer lock.Unlock()
	if _, err := c.refreshDeviceStatus(anomaly.DeviceID); err != nil {
		logger.Error("Failed to refresh device status after resolve",
			zap.String("device_id", anomaly.DeviceID), zap.Error(err))
	}

	return true, nil
}

func (c *Core) getDeviceAnomalies(deviceID string, q models.AnomalyQuery) ([]models.Anomaly, error) {
	if err := c.requireDevice(deviceID); err != nil {
		return nil, err
	}

	query := c.Db.Conn.Where("device_id = ?", deviceID)
	if q.Resolved != nil {
		query = query.Where("resolved = ?", *q.Resolved)
	}
	if q.Hours > 0 {
		since := time.Now().Add(-time.Duration(q.Hours) * time.Hour)
		query = query.Where("timestamp >= ?", since)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	var anomalies []models.Anomaly
	err := query.Order("timestamp desc").Find(&anomalies).Error
	return anomalies, err
}

type IAnomalyImpl struct {
	core *Core
}

func (ia *IAnomalyImpl) ResolveAnomaly(anomalyID uint) (bool, error) {
	return ia.core.resolveAnomaly(anomalyID)
}

func (ia *IAnomalyImpl) GetDeviceAnomalies(deviceID string, q models.AnomalyQuery) ([]models.Anomaly, error) {
	return ia.core.getDeviceAnomalies(deviceID, q)
}

func (c *Core) GetIAnomaly() IAnomaly {
	return &IAnomalyImpl{core: c}
}
