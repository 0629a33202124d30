package telemetry

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"vigilanceos.dev/telemetry-service/pkg/common"
	"vigilanceos.dev/telemetry-service/pkg/models"
)

// registerDevice creates a device in its initial offline state. Device
// registration is the prerequisite for ingestion; readings for unknown
// device ids are rejected.
func (c *Core) registerDevice(input *models.DeviceRegistration) (*models.Device, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameTelemetryCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryDevice),
	)

	if input.DeviceID == "" {
		return nil, fmt.Errorf("%w: empty device id", ErrInvalidInput)
	}
	if err := ValidateThresholds(input.Thresholds); err != nil {
		return nil, err
	}

	device := models.Device{
		DeviceID:   input.DeviceID,
		Name:       input.Name,
		Lat:        input.Lat,
		Lng:        input.Lng,
		Status:     models.DeviceStatusOffline,
		Thresholds: input.Thresholds,
	}

	err := c.Db.Conn.Transaction(func(tx *gorm.DB) error {
		var existing models.Device
		err := tx.First(&existing, "device_id = ?", input.DeviceID).Error
		if err == nil {
			return fmt.Errorf("%w: %s", ErrDeviceExists, input.DeviceID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&device).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Registered device", zap.Reflect("device", device))
	return &device, nil
}

func (c *Core) requireDevice(deviceID string) error {
	var device models.Device
	err := c.Db.Conn.Select("id").First(&device, "device_id = ?", deviceID).Error
	return wrapNotFound(err, ErrDeviceNotFound)
}

func (c *Core) getDevice(deviceID string) (*models.Device, error) {
	lock := c.locks.Get(deviceID)
	lock.Lock()
	defer lock.Unlock()

	// Staleness is evaluated lazily on read.
	if _, err := c.refreshDeviceStatus(deviceID); err != nil {
		return nil, err
	}

	var device models.Device
	if err := c.Db.Conn.First(&device, "device_id = ?", deviceID).Error; err != nil {
		return nil, wrapNotFound(err, ErrDeviceNotFound)
	}
	return &device, nil
}

func (c *Core) listDevices() ([]models.Device, error) {
	var devices []models.Device
	if err := c.Db.Conn.Order("device_id").Find(&devices).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range devices {
		device := &devices[i]
		status, err := c.deriveStatusNow(c.Db.Conn, device, now)
		if err != nil {
			return nil, err
		}
		device.Status = status
	}
	return devices, nil
}

func (c *Core) getDeviceStatus(deviceID string) (*models.DeviceStatusView, error) {
	device, err := c.getDevice(deviceID)
	if err != nil {
		return nil, err
	}
	return &models.DeviceStatusView{
		DeviceID: device.DeviceID,
		Status:   device.Status,
		LastSeen: device.LastSeen,
	}, nil
}

func (c *Core) getDeviceReadings(deviceID string, q models.ReadingQuery) ([]models.Reading, error) {
	if err := c.requireDevice(deviceID); err != nil {
		return nil, err
	}

	query := c.Db.Conn.Where("device_id = ?", deviceID)
	if q.Hours > 0 {
		since := time.Now().Add(-time.Duration(q.Hours) * time.Hour)
		query = query.Where("timestamp >= ?", since)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	var readings []models.Reading
	err := query.Order("timestamp desc").Find(&readings).Error
	return readings, err
}

type IDeviceImpl struct {
	core *Core
}

func (id *IDeviceImpl) RegisterDevice(input *models.DeviceRegistration) (*models.Device, error) {
	return id.core.registerDevice(input)
}

func (id *IDeviceImpl) GetDevice(deviceID string) (*models.Device, error) {
	return id.core.getDevice(deviceID)
}

func (id *IDeviceImpl) ListDevices() ([]models.Device, error) {
	return id.core.listDevices()
}

func (id *IDeviceImpl) GetDeviceStatus(deviceID string) (*models.DeviceStatusView, error) {
	return id.core.getDeviceStatus(deviceID)
}

func (id *IDeviceImpl) GetDeviceReadings(deviceID string, q models.ReadingQuery) ([]models.Reading, error) {
	return id.core.getDeviceReadings(deviceID, q)
}

func (c *Core) GetIDevice() IDevice {
	return &IDeviceImpl{core: c}
}
