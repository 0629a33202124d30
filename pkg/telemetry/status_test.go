package telemetry

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vigilanceos.dev/telemetry-service/pkg/common"
	"vigilanceos.dev/telemetry-service/pkg/hub"
	"vigilanceos.dev/telemetry-service/pkg/models"
	_ "vigilanceos.dev/telemetry-service/pkg/testing"
)

func TestDeriveStatus(t *testing.T) {
	window := 5 * time.Minute
	now := time.Now()
	recent := now.Add(-time.Minute)
	stale := now.Add(-time.Hour)

	tests := []struct {
		name     string
		lastSeen *time.Time
		high     int64
		other    int64
		want     models.DeviceStatus
	}{
		{"never reported", nil, 0, 0, models.DeviceStatusOffline},
		{"stale", &stale, 0, 0, models.DeviceStatusOffline},
		{"stale with anomalies", &stale, 2, 1, models.DeviceStatusOffline},
		{"healthy", &recent, 0, 0, models.DeviceStatusOnline},
		{"unresolved medium", &recent, 0, 1, models.DeviceStatusWarning},
		{"unresolved high", &recent, 1, 0, models.DeviceStatusError},
		{"high outranks medium", &recent, 1, 3, models.DeviceStatusError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(tt.lastSeen, now, window, tt.high, tt.other)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetDeviceStatusLazyOffline(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, core, _, _, _, _, _ := GetMockCoreWithMemorySqliteDialector(t, false, false, false, false)
	defer ctrl.Finish()

	deviceID := uuid.NewString()
	_, err := core.Device.RegisterDevice(&models.DeviceRegistration{DeviceID: deviceID, Name: "s"})
	require.NoError(t, err)

	_, err = core.Ingest.IngestReading(deviceID, &models.ReadingSubmission{Temperature: fptr(25.0)})
	require.NoError(t, err)

	// age the device past the staleness window behind the tracker's back
	old := time.Now().Add(-time.Hour)
	err = core.Db.Conn.Model(&models.Device{}).
		Where("device_id = ?", deviceID).
		Update("last_seen", old).Error
	require.NoError(t, err)

	view, err := core.Device.GetDeviceStatus(deviceID)
	require.NoError(t, err)
	assert.Equal(t, models.DeviceStatusOffline, view.Status)
}

func TestMarkDeviceOfflineSkipsFreshDevice(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, core, publisher, _, _, _, _ := GetMockCoreWithMemorySqliteDialector(t, false, false, false, false)
	defer ctrl.Finish()

	deviceID := uuid.NewString()
	_, err := core.Device.RegisterDevice(&models.DeviceRegistration{DeviceID: deviceID, Name: "s"})
	require.NoError(t, err)
	_, err = core.Ingest.IngestReading(deviceID, &models.ReadingSubmission{Temperature: fptr(25.0)})
	require.NoError(t, err)

	// a reading landed after the sweep selected its stale set: the guarded
	// update must leave the device alone
	staleCutoff := time.Now().Add(-time.Minute)
	marked, err := core.markDeviceOffline(deviceID, staleCutoff)
	require.NoError(t, err)
	assert.False(t, marked)

	var device models.Device
	err = core.Db.Conn.First(&device, "device_id = ?", deviceID).Error
	require.NoError(t, err)
	assert.Equal(t, models.DeviceStatusOnline, device.Status)

	for _, event := range publisher.Events() {
		if event.Type == hub.EventDeviceStatus {
			data := event.Data.(map[string]any)
			assert.NotEqual(t, models.DeviceStatusOffline, data["status"])
		}
	}

	// genuinely stale devices still go offline
	old := time.Now().Add(-time.Hour)
	err = core.Db.Conn.Model(&models.Device{}).
		Where("device_id = ?", deviceID).
		Update("last_seen", old).Error
	require.NoError(t, err)

	marked, err = core.markDeviceOffline(deviceID, time.Now().Add(-DefaultStalenessWindow))
	require.NoError(t, err)
	assert.True(t, marked)
}

func TestSweepStaleDevices(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, core, publisher, _, _, _, _ := GetMockCoreWithMemorySqliteDialector(t, false, false, false, false)
	defer ctrl.Finish()

	staleID := uuid.NewString()
	freshID := uuid.NewString()
	for _, id := range []string{staleID, freshID} {
		_, err := core.Device.RegisterDevice(&models.DeviceRegistration{DeviceID: id, Name: "s"})
		require.NoError(t, err)
		_, err = core.Ingest.IngestReading(id, &models.ReadingSubmission{Temperature: fptr(25.0)})
		require.NoError(t, err)
	}

	old := time.Now().Add(-time.Hour)
	err := core.Db.Conn.Model(&models.Device{}).
		Where("device_id = ?", staleID).
		Update("last_seen", old).Error
	require.NoError(t, err)

	changed, err := core.SweepStaleDevices()
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	var device models.Device
	err = core.Db.Conn.First(&device, "device_id = ?", staleID).Error
	assert.NoError(t, err)
	assert.Equal(t, models.DeviceStatusOffline, device.Status)

	err = core.Db.Conn.First(&device, "device_id = ?", freshID).Error
	assert.NoError(t, err)
	assert.Equal(t, models.DeviceStatusOnline, device.Status)

	offlineEvents := 0
	for _, event := range publisher.Events() {
		if event.Type != hub.EventDeviceStatus {
			continue
		}
		data := event.Data.(map[string]any)
		if data["device_id"] == staleID && data["status"] == models.DeviceStatusOffline {
			offlineEvents++
		}
	}
	assert.Equal(t, 1, offlineEvents)
}
