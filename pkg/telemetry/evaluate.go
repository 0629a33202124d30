package telemetry

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"vigilanceos.dev/telemetry-service/pkg/models"
)

// AnomalyDraft is one threshold violation found by Evaluate, not yet
// persisted.
type AnomalyDraft struct {
	Metric   string
	Type     models.AnomalyType
	Reason   string
	Severity models.Severity
}

// SeverityPolicy assigns a severity to each violation. Overrides pin a
// severity per anomaly type (the safety-margin classes); everything else is
// high when the violation magnitude exceeds HighMarginRatio of the bound's
// scale, medium otherwise. Exactly at the margin stays medium. Soft bounds
// are always low regardless of policy.
type SeverityPolicy struct {
	HighMarginRatio float64
	Overrides       map[models.AnomalyType]models.Severity
}

func DefaultSeverityPolicy() SeverityPolicy {
	return SeverityPolicy{
		HighMarginRatio: 0.20,
		Overrides: map[models.AnomalyType]models.Severity{
			models.AnomalyTypeHighTemperature: models.SeverityHigh,
			models.AnomalyTypeLowBattery:      models.SeverityHigh,
		},
	}
}

func (p SeverityPolicy) severityFor(anomalyType models.AnomalyType, value, bound float64, soft bool) models.Severity {
	if soft {
		return models.SeverityLow
	}
	if severity, ok := p.Overrides[anomalyType]; ok {
		return severity
	}
	scale := math.Abs(bound)
	if scale < 1 {
		scale = 1
	}
	if math.Abs(value-bound) > p.HighMarginRatio*scale {
		return models.SeverityHigh
	}
	return models.SeverityMedium
}

// Evaluate compares each metric present in both the reading and the
// threshold config against its bounds. Pure and deterministic: identical
// input always produces identical drafts, including reason text.
func Evaluate(reading *models.Reading, thresholds models.ThresholdConfig, policy SeverityPolicy) []AnomalyDraft {
	var drafts []AnomalyDraft

	for _, metric := range models.MetricNames {
		value, present := reading.Metric(metric)
		if !present {
			continue
		}
		bound, configured := thresholds[metric]
		if !configured {
			continue
		}

		if bound.Min != nil && value < *bound.Min {
			anomalyType := anomalyTypeFor(metric, false)
			reason := fmt.Sprintf("%s %s below threshold %s",
				metricDisplayName(metric), formatValue(value), formatValue(*bound.Min))
			drafts = append(drafts, AnomalyDraft{
				Metric:   metric,
				Type:     anomalyType,
				Reason:   reason,
				Severity: policy.severityFor(anomalyType, value, *bound.Min, bound.Soft),
			})
		}

		if bound.Max != nil && value > *bound.Max {
			anomalyType := anomalyTypeFor(metric, true)
			reason := fmt.Sprintf("%s %s exceeds threshold %s",
				metricDisplayName(metric), formatValue(value), formatValue(*bound.Max))
			drafts = append(drafts, AnomalyDraft{
				Metric:   metric,
				Type:     anomalyType,
				Reason:   reason,
				Severity: policy.severityFor(anomalyType, value, *bound.Max, bound.Soft),
			})
		}
	}

	return drafts
}

// anomalyTypeFor names the violation from metric and direction. The well
// known metric/direction pairs keep their historical names; anything else
// gets the generic range naming.
func anomalyTypeFor(metric string, above bool) models.AnomalyType {
	switch {
	case metric == "temperature" && above:
		return models.AnomalyTypeHighTemperature
	case metric == "temperature":
		return models.AnomalyTypeLowTemperature
	case metric == "battery" && !above:
		return models.AnomalyTypeLowBattery
	case metric == "signal_strength" && !above:
		return models.AnomalyTypeWeakSignal
	}
	if above {
		return models.AnomalyType(strings.ToUpper(metric) + "_ABOVE_RANGE")
	}
	return models.AnomalyType(strings.ToUpper(metric) + "_BELOW_RANGE")
}

func metricDisplayName(metric string) string {
	switch metric {
	case "signal_strength":
		return "Signal strength"
	case "cpu_usage":
		return "CPU usage"
	case "memory_usage":
		return "Memory usage"
	case "disk_usage":
		return "Disk usage"
	}
	name := strings.ReplaceAll(metric, "_", " ")
	return strings.ToUpper(name[:1]) + name[1:]
}

// formatValue renders floats without trailing zeros, so "80" not "80.00".
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ValidateSubmission rejects values outside the representable numeric
// range before any side effect.
func ValidateSubmission(input *models.ReadingSubmission) error {
	check := func(name string, v *float64) error {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return fmt.Errorf("%w: metric %q is not a finite number", ErrInvalidInput, name)
		}
		return nil
	}
	for name, v := range map[string]*float64{
		"temperature":     input.Temperature,
		"battery":         input.Battery,
		"signal_strength": input.SignalStrength,
		"cpu_usage":       input.CpuUsage,
		"memory_usage":    input.MemoryUsage,
		"disk_usage":      input.DiskUsage,
	} {
		if err := check(name, v); err != nil {
			return err
		}
	}
	return nil
}
