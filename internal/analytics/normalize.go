package analytics

import (
	"math"
	"strconv"
	"strings"

	"github.com/HaPhanBaoMinh/supmet/internal/domain"
)

// Thresholds of the status ladder, in SLA percent.
const (
	ThresholdExcellent = 99.0
	ThresholdGood      = 95.0
)

// ParsePercent parses "99.21%" -> 99.21. Anything unparseable is 0.
func ParsePercent(s string) float64 {
	return parseNumber(strings.TrimSuffix(strings.TrimSpace(s), "%"))
}

// ParseTime parses "146.08 minutes" -> 146.08. Anything unparseable is 0.
func ParseTime(s string) float64 {
	s = strings.TrimSuffix(strings.TrimSpace(s), "minutes")
	return math.Max(0, parseNumber(s))
}

func parseNumber(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Classify maps an SLA percentage to a status. First match wins.
func Classify(sla float64) domain.Status {
	switch {
	case sla >= ThresholdExcellent:
		return domain.StatusExcellent
	case sla >= ThresholdGood:
		return domain.StatusGood
	case sla > 0:
		return domain.StatusNeedsWork
	default:
		return domain.StatusNotAvailable
	}
}

func Normalize(raw domain.RawModule) domain.NormalizedMetric {
	var out domain.NormalizedMetric
	switch r := raw.(type) {
	case domain.StandardModule:
		out = domain.NormalizedMetric{
			Name:           r.Name,
			Kind:           domain.KindStandard,
			Tickets:        r.TotalTickets,
			ResolutionTime: ParseTime(r.AverageResolutionTime),
			SLA:            ParsePercent(r.SLAComplianceRate),
		}
	case domain.SLASummaryModule:
		out = domain.NormalizedMetric{
			Name:           r.Name,
			Kind:           domain.KindSLASummary,
			Tickets:        r.TotalTickets,
			ResolutionTime: ParseTime(r.AverageBreachTime),
			SLA:            ParsePercent(r.OverallSLACompliance),
		}
	default:
		return domain.NormalizedMetric{Status: domain.StatusNotAvailable}
	}
	if out.Tickets < 0 {
		out.Tickets = 0
	}
	out.Status = Classify(out.SLA)
	return out
}

// NormalizeAll normalizes every record, keeping input order.
func NormalizeAll(raws []domain.RawModule) []domain.NormalizedMetric {
	out := make([]domain.NormalizedMetric, 0, len(raws))
	for _, r := range raws {
		out = append(out, Normalize(r))
	}
	return out
}
