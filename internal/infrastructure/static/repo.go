package static

import (
	"context"
	_ "embed"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/HaPhanBaoMinh/supmet/internal/analytics"
	"github.com/HaPhanBaoMinh/supmet/internal/domain"
)

//go:embed modules.yaml
var datasetYAML []byte

// Repo serves the compiled-in dataset. Historical months are synthesized
// from it on every call.
type Repo struct {
	raw []domain.RawModule
	cal analytics.Calendar
	log *zap.Logger
}

func New(cal analytics.Calendar, log *zap.Logger) (*Repo, error) {
	raw, err := Decode(datasetYAML)
	if err != nil {
		return nil, err
	}
	return NewWithModules(raw, cal, log)
}

// NewWithModules serves raw instead of the embedded dataset.
func NewWithModules(raw []domain.RawModule, cal analytics.Calendar, log *zap.Logger) (*Repo, error) {
	if err := cal.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	months := make([]string, len(cal.Months))
	copy(months, cal.Months)
	return &Repo{
		raw: raw,
		cal: analytics.Calendar{Months: months, Current: cal.Current},
		log: log,
	}, nil
}

// wire form of one dataset row
type record struct {
	Module                string `yaml:"module"`
	TotalTickets          int    `yaml:"Total Tickets"`
	AverageResolutionTime string `yaml:"Average Resolution Time"`
	SLAComplianceRate     string `yaml:"SLA Compliance Rate"`
	OverallSLACompliance  string `yaml:"Overall SLA Compliance"`
	AverageBreachTime     string `yaml:"Average Breach Time"`
}

type dataset struct {
	Modules []record `yaml:"modules"`
}

// Decode parses a YAML dataset. A row with no standard SLA or resolution
// field but with an overall SLA or breach time is an SLA summary; any
// other row is standard and falls back to the summary fields.
func Decode(data []byte) ([]domain.RawModule, error) {
	var ds dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("static: parse dataset: %w", err)
	}
	out := make([]domain.RawModule, 0, len(ds.Modules))
	for i, r := range ds.Modules {
		if r.Module == "" {
			return nil, fmt.Errorf("static: modules[%d]: module name is required", i)
		}
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (r record) toDomain() domain.RawModule {
	standard := r.SLAComplianceRate != "" || r.AverageResolutionTime != ""
	summary := r.OverallSLACompliance != "" || r.AverageBreachTime != ""
	if summary && !standard {
		return domain.SLASummaryModule{
			Name:                 r.Module,
			TotalTickets:         r.TotalTickets,
			OverallSLACompliance: r.OverallSLACompliance,
			AverageBreachTime:    r.AverageBreachTime,
		}
	}
	return domain.StandardModule{
		Name:                  r.Module,
		TotalTickets:          r.TotalTickets,
		AverageResolutionTime: coalesce(r.AverageResolutionTime, r.AverageBreachTime),
		SLAComplianceRate:     coalesce(r.SLAComplianceRate, r.OverallSLACompliance),
	}
}

func (r *Repo) Months(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]string, len(r.cal.Months))
	copy(out, r.cal.Months)
	return out, nil
}

func (r *Repo) CurrentMonth() string { return r.cal.Current }

func (r *Repo) ListModules(ctx context.Context, month string) ([]domain.NormalizedMetric, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := analytics.ForMonth(analytics.NormalizeAll(r.raw), month, r.cal)
	if err != nil {
		return nil, err
	}
	r.log.Debug("modules computed",
		zap.String("month", month),
		zap.Bool("current", month == r.cal.Current),
		zap.Int("modules", len(out)),
	)
	return out, nil
}

func (r *Repo) Trend(ctx context.Context, module string) ([]float64, error) {
	baseline := analytics.NormalizeAll(r.raw)
	pos := -1
	for i, m := range baseline {
		if m.Name == module {
			pos = i
			break
		}
	}
	if pos < 0 {
		return nil, fmt.Errorf("static: unknown module %q", module)
	}

	out := make([]float64, 0, len(r.cal.Months))
	for _, month := range r.cal.Months {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ms, err := analytics.ForMonth(baseline, month, r.cal)
		if err != nil {
			return nil, err
		}
		out = append(out, ms[pos].SLA)
	}
	return out, nil
}

func coalesce(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
