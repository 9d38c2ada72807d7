// Package promexport renders one month of module metrics in the Prometheus
// text exposition format, suitable for a node_exporter textfile collector.
package promexport

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/HaPhanBaoMinh/supmet/internal/domain"
)

type gauges struct {
	Tickets    *prometheus.GaugeVec
	Resolution *prometheus.GaugeVec
	SLA        *prometheus.GaugeVec
	Status     *prometheus.GaugeVec
}

func newGauges(reg prometheus.Registerer) *gauges {
	return &gauges{
		Tickets: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Name: "supmet_module_tickets",
			Help: "Tickets handled by the module in the month.",
		}, []string{"module", "month"}),

		Resolution: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Name: "supmet_module_resolution_minutes",
			Help: "Average resolution time in minutes (breach time for the SLA summary).",
		}, []string{"module", "month"}),

		SLA: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Name: "supmet_module_sla_percent",
			Help: "SLA compliance percentage, 0 when not tracked.",
		}, []string{"module", "month"}),

		Status: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Name: "supmet_module_status",
			Help: "Status classification of the module (always 1).",
		}, []string{"module", "month", "status"}),
	}
}

// Gather registers metrics for month on a private registry and returns the
// resulting families, sorted by name.
func Gather(month string, metrics []domain.NormalizedMetric) ([]*dto.MetricFamily, error) {
	reg := prometheus.NewRegistry()
	g := newGauges(reg)
	for _, m := range metrics {
		g.Tickets.WithLabelValues(m.Name, month).Set(float64(m.Tickets))
		g.Resolution.WithLabelValues(m.Name, month).Set(m.ResolutionTime)
		g.SLA.WithLabelValues(m.Name, month).Set(m.SLA)
		g.Status.WithLabelValues(m.Name, month, string(m.Status)).Set(1)
	}

	families, err := reg.Gather()
	if err != nil {
		return nil, fmt.Errorf("promexport: gather: %w", err)
	}
	return families, nil
}

// Write encodes metrics for month to w.
func Write(w io.Writer, month string, metrics []domain.NormalizedMetric) error {
	families, err := Gather(month, metrics)
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("promexport: encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
