package analytics

import "github.com/HaPhanBaoMinh/supmet/internal/domain"

// DefaultOverallSLA is shown on the gauge when the dataset has no SLA
// summary module.
const DefaultOverallSLA = 99.0

// Summary backs the four headline cards.
type Summary struct {
	TotalTickets  int
	AvgResolution float64 // minutes, over ResolutionSeries
	HasSLASummary bool
	OverallSLA    float64
	AvgBreach     float64 // minutes
}

// ResolutionSeries is what the resolution time chart plots.
func ResolutionSeries(ms []domain.NormalizedMetric) []domain.NormalizedMetric {
	return filter(ms, func(m domain.NormalizedMetric) bool {
		return m.ResolutionTime > 0 && m.Kind != domain.KindSLASummary
	})
}

func SLASeries(ms []domain.NormalizedMetric) []domain.NormalizedMetric {
	return filter(ms, func(m domain.NormalizedMetric) bool {
		return m.SLA > 0 && m.Kind != domain.KindSLASummary
	})
}

func TicketSeries(ms []domain.NormalizedMetric) []domain.NormalizedMetric {
	return filter(ms, func(m domain.NormalizedMetric) bool { return m.Tickets > 0 })
}

func filter(ms []domain.NormalizedMetric, keep func(domain.NormalizedMetric) bool) []domain.NormalizedMetric {
	var out []domain.NormalizedMetric
	for _, m := range ms {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

// BestPerformer returns the module with the highest SLA. Ties go to the
// later module.
func BestPerformer(ms []domain.NormalizedMetric) (domain.NormalizedMetric, bool) {
	return pick(SLASeries(ms), func(cur, best domain.NormalizedMetric) bool { return cur.SLA >= best.SLA })
}

// WorstPerformer returns the module with the lowest SLA. Ties go to the
// later module.
func WorstPerformer(ms []domain.NormalizedMetric) (domain.NormalizedMetric, bool) {
	return pick(SLASeries(ms), func(cur, worst domain.NormalizedMetric) bool { return cur.SLA <= worst.SLA })
}

// Fastest returns the module with the lowest resolution time.
func Fastest(ms []domain.NormalizedMetric) (domain.NormalizedMetric, bool) {
	return pick(ResolutionSeries(ms), func(cur, best domain.NormalizedMetric) bool {
		return cur.ResolutionTime <= best.ResolutionTime
	})
}

func pick(ms []domain.NormalizedMetric, replaces func(cur, held domain.NormalizedMetric) bool) (domain.NormalizedMetric, bool) {
	if len(ms) == 0 {
		return domain.NormalizedMetric{}, false
	}
	held := ms[0]
	for _, m := range ms[1:] {
		if replaces(m, held) {
			held = m
		}
	}
	return held, true
}

// Summarize computes the headline card values. Every module analyses the
// same ticket pool, so the total is the largest module count.
func Summarize(ms []domain.NormalizedMetric) Summary {
	s := Summary{OverallSLA: DefaultOverallSLA}
	for _, m := range ms {
		if m.Tickets > s.TotalTickets {
			s.TotalTickets = m.Tickets
		}
		if m.Kind == domain.KindSLASummary && !s.HasSLASummary {
			s.HasSLASummary = true
			s.OverallSLA = m.SLA
			s.AvgBreach = m.ResolutionTime
		}
	}
	if rs := ResolutionSeries(ms); len(rs) > 0 {
		var sum float64
		for _, m := range rs {
			sum += m.ResolutionTime
		}
		s.AvgResolution = sum / float64(len(rs))
	}
	return s
}
