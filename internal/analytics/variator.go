package analytics

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf16"

	"github.com/HaPhanBaoMinh/supmet/internal/domain"
)

var ErrUnknownMonth = errors.New("unknown month")

// Bounds of the synthetic month variation.
const (
	ticketSwing     = 0.2
	resolutionSwing = 0.15
	slaSwing        = 2.0
	minTickets      = 10
	minSLA          = 85.0
	maxSLA          = 100.0
)

// Calendar is the ordered list of known months and the month whose data is
// the real baseline.
type Calendar struct {
	Months  []string
	Current string
}

// DefaultCalendar covers 2025 with December as the current month.
func DefaultCalendar() Calendar {
	return Calendar{
		Months: []string{
			"January 2025", "February 2025", "March 2025", "April 2025",
			"May 2025", "June 2025", "July 2025", "August 2025",
			"September 2025", "October 2025", "November 2025", "December 2025",
		},
		Current: "December 2025",
	}
}

func (c Calendar) Index(month string) int {
	for i, m := range c.Months {
		if m == month {
			return i
		}
	}
	return -1
}

func (c Calendar) Validate() error {
	if len(c.Months) == 0 {
		return errors.New("calendar: no months")
	}
	seen := make(map[string]struct{}, len(c.Months))
	for i, m := range c.Months {
		if m == "" {
			return fmt.Errorf("calendar: months[%d] is empty", i)
		}
		if _, dup := seen[m]; dup {
			return fmt.Errorf("calendar: duplicate month %q", m)
		}
		seen[m] = struct{}{}
	}
	if c.Index(c.Current) < 0 {
		return fmt.Errorf("calendar: current month %q: %w", c.Current, ErrUnknownMonth)
	}
	return nil
}

// ForMonth returns the dataset for month. The current month gets a copy of
// baseline; any other known month gets a deterministic variation of it.
func ForMonth(baseline []domain.NormalizedMetric, month string, cal Calendar) ([]domain.NormalizedMetric, error) {
	idx := cal.Index(month)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMonth, month)
	}

	out := make([]domain.NormalizedMetric, len(baseline))
	if month == cal.Current {
		copy(out, baseline)
		return out, nil
	}
	for i, m := range baseline {
		out[i] = vary(m, seed(idx, m.Name))
	}
	return out, nil
}

// seed = month index + name length + code of the first character, with
// length and code counted in UTF-16 units.
func seed(monthIdx int, name string) int {
	units := utf16.Encode([]rune(name))
	s := monthIdx + len(units)
	if len(units) > 0 {
		s += int(units[0])
	}
	return s
}

func vary(m domain.NormalizedMetric, seed int) domain.NormalizedMetric {
	x := float64(seed)
	factor := math.Sin(x)

	tickets := int(math.Round(float64(m.Tickets) * (1 + factor*ticketSwing)))
	if tickets < minTickets {
		tickets = minTickets
	}
	resolution := math.Max(0, m.ResolutionTime*(1+math.Cos(x)*resolutionSwing))
	sla := math.Round(clamp(m.SLA+factor*slaSwing, minSLA, maxSLA)*100) / 100

	return domain.NormalizedMetric{
		Name:           m.Name,
		Kind:           m.Kind,
		Tickets:        tickets,
		ResolutionTime: resolution,
		SLA:            sla,
		Status:         Classify(sla),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
