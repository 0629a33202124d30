package telemetry

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"
	"testing"

	"go.uber.org/mock/gomock"
	"vigilanceos.dev/telemetry-service/pkg/db"
	"vigilanceos.dev/telemetry-service/pkg/hub"
	"vigilanceos.dev/telemetry-service/pkg/telemetry/mocks"
)

// capturePublisher records published events so tests can assert on the
// fan-out side without a running hub.
type capturePublisher struct {
	mu     sync.Mutex
	events []hub.Event
}

func (p *capturePublisher) Publish(event hub.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *capturePublisher) Events() []hub.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]hub.Event(nil), p.events...)
}

func (p *capturePublisher) EventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, event := range p.events {
		types[i] = event.Type
	}
	return types
}

func GetMockCoreWithMemorySqliteDialector(t *testing.T, useMockIngest, useMockAnomaly, useMockDevice, useMockThreshold bool) (
	*gomock.Controller,
	*Core,
	*capturePublisher,
	*mocks.MockIIngest,
	*mocks.MockIAnomaly,
	*mocks.MockIDevice,
	*mocks.MockIThreshold,
) {
	ctrl := gomock.NewController(t)

	mockIIngest := mocks.NewMockIIngest(ctrl)
	mockIAnomaly := mocks.NewMockIAnomaly(ctrl)
	mockIDevice := mocks.NewMockIDevice(ctrl)
	mockIThreshold := mocks.NewMockIThreshold(ctrl)

	dialector := db.UseMemorySqliteDialector()
	dbInstance := db.GetInstance(dialector) // ensure migrations

	publisher := &capturePublisher{}
	core := &Core{
		Db:       *dbInstance,
		Hub:      publisher,
		Severity: DefaultSeverityPolicy(),
	}

	ingestService := core.GetIIngest()
	if useMockIngest {
		ingestService = mockIIngest
	}

	anomalyService := core.GetIAnomaly()
	if useMockAnomaly {
		anomalyService = mockIAnomaly
	}

	deviceService := core.GetIDevice()
	if useMockDevice {
		deviceService = mockIDevice
	}

	thresholdService := core.GetIThreshold()
	if useMockThreshold {
		thresholdService = mockIThreshold
	}

	core.WithServices(ServiceOpts{
		Ingest:    ingestService,
		Anomaly:   anomalyService,
		Device:    deviceService,
		Threshold: thresholdService,
	})

	return ctrl, core, publisher, mockIIngest, mockIAnomaly, mockIDevice, mockIThreshold
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}

func fptr(v float64) *float64 {
	return &v
}
