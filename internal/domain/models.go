package domain

// RawModule is one row of the raw support dataset. It is either a
// StandardModule or an SLASummaryModule.
type RawModule interface {
	ModuleName() string
	isRawModule()
}

// StandardModule is a per-category analysis row.
type StandardModule struct {
	Name                  string
	TotalTickets          int
	AverageResolutionTime string // "<float> minutes"
	SLAComplianceRate     string // "<float>%"
}

// SLASummaryModule is the aggregate "SLA Analysis" row. Its time field is a
// breach time, not a resolution time.
type SLASummaryModule struct {
	Name                 string
	TotalTickets         int
	OverallSLACompliance string // "<float>%"
	AverageBreachTime    string // "<float> minutes"
}

func (m StandardModule) ModuleName() string   { return m.Name }
func (m SLASummaryModule) ModuleName() string { return m.Name }

func (StandardModule) isRawModule()   {}
func (SLASummaryModule) isRawModule() {}

type ModuleKind string

const (
	KindStandard   ModuleKind = "standard"
	KindSLASummary ModuleKind = "sla-summary"
)

type Status string

const (
	StatusExcellent    Status = "Excellent"
	StatusGood         Status = "Good"
	StatusNeedsWork    Status = "Needs Work"
	StatusNotAvailable Status = "N/A"
)

// Color is the presentation tag for s: green, yellow, red or gray.
func (s Status) Color() string {
	switch s {
	case StatusExcellent:
		return "green"
	case StatusGood:
		return "yellow"
	case StatusNeedsWork:
		return "red"
	default:
		return "gray"
	}
}

// NormalizedMetric is the uniform per-module record shown on the dashboard.
type NormalizedMetric struct {
	Name    string
	Kind    ModuleKind
	Tickets int
	// ResolutionTime is in minutes. For KindSLASummary it holds the average
	// breach time.
	ResolutionTime float64
	SLA            float64 // percent, 0 when unknown
	Status         Status
}

func (m NormalizedMetric) StatusColor() string { return m.Status.Color() }
