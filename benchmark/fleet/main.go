package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"vigilanceos.dev/telemetry-service/pkg/common"
)

var maxDevices int = 500
var readingsPerDevice int = 20
var httpHostPort string = "127.0.0.1:1080"

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

func main() {
	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	deviceIDs := make([]string, maxDevices)
	for i := 0; i < maxDevices; i++ {
		deviceIDs[i] = uuid.NewString()
	}

	startTime := time.Now()
	for i, deviceID := range deviceIDs {
		registerDevice(deviceID, fmt.Sprintf("sim-device-%04d", i))
	}
	fmt.Printf("registered %v devices in %v\n", maxDevices, time.Since(startTime))

	startTime = time.Now()
	anomalyCounts := make([]int, maxDevices)
	wg := sync.WaitGroup{}
	for i, deviceID := range deviceIDs {
		wg.Add(1)
		go func(slot int, id string) {
			defer wg.Done()
			for n := 0; n < readingsPerDevice; n++ {
				anomalyCounts[slot] += postReading(id)
			}
		}(i, deviceID)
	}
	wg.Wait()

	total := maxDevices * readingsPerDevice
	used := time.Since(startTime)
	totalAnomalies := common.Reducer(anomalyCounts, func(acc int, c int) int {
		return acc + c
	}, 0)
	fmt.Printf("posted %v readings in %v (%.0f readings/sec), %v anomalies detected\n",
		total, used, float64(total)/used.Seconds(), totalAnomalies)
}

func registerDevice(deviceID, name string) {
	payload := map[string]any{
		"device_id": deviceID,
		"name":      name,
		"lat":       37.3 + rnd.Float64(),
		"lng":       -122.1 + rnd.Float64(),
		"thresholds": map[string]any{
			"temperature":     map[string]any{"max": 80.0},
			"battery":         map[string]any{"min": 20.0},
			"signal_strength": map[string]any{"min": -90.0},
		},
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(fmt.Sprintf("http://%s/devices", httpHostPort),
		"application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatal("Failed to register device:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		log.Fatalf("Unexpected register status: %v", resp.StatusCode)
	}
}

// postReading sends mostly-normal values; roughly one in ten readings
// violates a threshold so anomalies keep flowing. Returns how many anomalies
// the reading produced.
func postReading(deviceID string) int {
	temperature := 25.0 + rnd.Float64()*10
	battery := 50.0 + rnd.Float64()*50
	signal := -65.0 - rnd.Float64()*10

	if rnd.Intn(10) == 0 {
		temperature = 85.0 + rnd.Float64()*20
	}

	payload := map[string]any{
		"temperature":     temperature,
		"battery":         battery,
		"signal_strength": signal,
		"cpu_usage":       rnd.Float64() * 100,
		"memory_usage":    rnd.Float64() * 100,
		"disk_usage":      rnd.Float64() * 100,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(fmt.Sprintf("http://%s/devices/%s/telemetry", httpHostPort, deviceID),
		"application/json", bytes.NewReader(body))
	if err != nil {
		log.Print("Failed to post reading:", err)
		return 0
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("Unexpected telemetry status: %v", resp.StatusCode)
		return 0
	}

	var result struct {
		Anomalies []json.RawMessage `json:"anomalies"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0
	}
	return len(result.Anomalies)
}
