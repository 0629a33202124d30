package telemetry

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"vigilanceos.dev/telemetry-service/pkg/common"
	"vigilanceos.dev/telemetry-service/pkg/models"
)

// ValidateThresholds rejects bounds that could never be satisfied or are
// not representable.
func ValidateThresholds(cfg models.ThresholdConfig) error {
	finite := func(metric string, v *float64) error {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return fmt.Errorf("%w: threshold for %q is not a finite number", ErrInvalidInput, metric)
		}
		return nil
	}

	for metric, bound := range cfg {
		if metric == "" {
			return fmt.Errorf("%w: empty metric name in threshold config", ErrInvalidInput)
		}
		if err := finite(metric, bound.Min); err != nil {
			return err
		}
		if err := finite(metric, bound.Max); err != nil {
			return err
		}
		if bound.Min != nil && bound.Max != nil && *bound.Min > *bound.Max {
			return fmt.Errorf("%w: threshold for %q has min above max", ErrInvalidInput, metric)
		}
	}
	return nil
}

// upsertThresholds replaces the device's threshold config. The new bounds
// take effect on the next evaluation; past readings are never re-evaluated.
func (c *Core) upsertThresholds(deviceID string, cfg models.ThresholdConfig) error {
	logger := common.GetLoggerWith(
		common.LoggerNameTelemetryCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryThreshold),
	)

	if err := ValidateThresholds(cfg); err != nil {
		return err
	}
	if err := c.requireDevice(deviceID); err != nil {
		return err
	}

	err := c.Db.Conn.Model(&models.Device{}).
		Where("device_id = ?", deviceID).
		Update("thresholds", cfg).Error
	if err == nil {
		logger.Info("Upserted thresholds for device",
			zap.String("device_id", deviceID), zap.Reflect("thresholds", cfg))
	}
	return err
}

type IThresholdImpl struct {
	core *Core
}

func (it *IThresholdImpl) UpsertThresholds(deviceID string, cfg models.ThresholdConfig) error {
	return it.core.upsertThresholds(deviceID, cfg)
}

func (c *Core) GetIThreshold() IThreshold {
	return &IThresholdImpl{core: c}
}
