package telemetry

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vigilanceos.dev/telemetry-service/pkg/common"
	"vigilanceos.dev/telemetry-service/pkg/models"
	_ "vigilanceos.dev/telemetry-service/pkg/testing"
)

func TestRegisterDevice(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, core, _, _, _, _, _ := GetMockCoreWithMemorySqliteDialector(t, false, false, false, false)
	defer ctrl.Finish()

	deviceID := uuid.NewString()
	device, err := core.Device.RegisterDevice(&models.DeviceRegistration{
		DeviceID: deviceID,
		Name:     "warehouse sensor",
		Lat:      fptr(37.4),
		Lng:      fptr(-122.1),
		Thresholds: models.ThresholdConfig{
			"temperature": {Max: fptr(80.0)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.DeviceStatusOffline, device.Status)
	assert.Nil(t, device.LastSeen)

	// re-registration of the same id is rejected
	_, err = core.Device.RegisterDevice(&models.DeviceRegistration{DeviceID: deviceID, Name: "dup"})
	require.ErrorIs(t, err, ErrDeviceExists)

	_, err = core.Device.RegisterDevice(&models.DeviceRegistration{DeviceID: "", Name: "nameless"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpsertThresholds(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, core, _, _, _, _, _ := GetMockCoreWithMemorySqliteDialector(t, false, false, false, false)
	defer ctrl.Finish()

	deviceID := uuid.NewString()
	_, err := core.Device.RegisterDevice(&models.DeviceRegistration{DeviceID: deviceID, Name: "s"})
	require.NoError(t, err)

	err = core.Threshold.UpsertThresholds(deviceID, models.ThresholdConfig{
		"battery": {Min: fptr(30.0)},
	})
	require.NoError(t, err)

	var device models.Device
	err = core.Db.Conn.First(&device, "device_id = ?", deviceID).Error
	require.NoError(t, err)
	require.Contains(t, device.Thresholds, "battery")
	assert.Equal(t, 30.0, *device.Thresholds["battery"].Min)

	// new bounds apply to the next reading
	result, err := core.Ingest.IngestReading(deviceID, &models.ReadingSubmission{Battery: fptr(12.5)})
	require.NoError(t, err)
	require.Len(t, result.Anomalies, 1)
	assert.Equal(t, models.AnomalyTypeLowBattery, result.Anomalies[0].Type)
}

func TestUpsertThresholds_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, core, _, _, _, _, _ := GetMockCoreWithMemorySqliteDialector(t, false, false, false, false)
	defer ctrl.Finish()

	err := core.Threshold.UpsertThresholds(uuid.NewString(), models.ThresholdConfig{})
	require.ErrorIs(t, err, ErrDeviceNotFound)

	deviceID := uuid.NewString()
	_, err = core.Device.RegisterDevice(&models.DeviceRegistration{DeviceID: deviceID, Name: "s"})
	require.NoError(t, err)

	err = core.Threshold.UpsertThresholds(deviceID, models.ThresholdConfig{
		"temperature": {Min: fptr(50.0), Max: fptr(10.0)},
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetDeviceReadings(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, core, _, _, _, _, _ := GetMockCoreWithMemorySqliteDialector(t, false, false, false, false)
	defer ctrl.Finish()

	deviceID := uuid.NewString()
	_, err := core.Device.RegisterDevice(&models.DeviceRegistration{DeviceID: deviceID, Name: "s"})
	require.NoError(t, err)

	for n := 0; n < 3; n++ {
		_, err := core.Ingest.IngestReading(deviceID, &models.ReadingSubmission{Temperature: fptr(25.0)})
		require.NoError(t, err)
	}

	readings, err := core.Device.GetDeviceReadings(deviceID, models.ReadingQuery{})
	require.NoError(t, err)
	assert.Len(t, readings, 3)

	limited, err := core.Device.GetDeviceReadings(deviceID, models.ReadingQuery{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	_, err = core.Device.GetDeviceReadings(uuid.NewString(), models.ReadingQuery{})
	require.ErrorIs(t, err, ErrDeviceNotFound)
}
