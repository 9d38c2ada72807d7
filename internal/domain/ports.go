package domain

import "context"

type MetricsRepo interface {
	Months(ctx context.Context) ([]string, error)
	CurrentMonth() string
	ListModules(ctx context.Context, month string) ([]NormalizedMetric, error)
	// Trend returns the SLA of one module for every known month, oldest first.
	Trend(ctx context.Context, module string) ([]float64, error)
}
