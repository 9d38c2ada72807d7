package widgets

import (
	"math"
	"strings"
)

var blocks = []rune("▁▂▃▄▅▆▇█")

func Spark8(vals []float64, width int) string {
	if len(vals) == 0 || width <= 0 {
		return ""
	}
	// sample evenly over vals
	step := float64(len(vals)) / float64(width)
	var b strings.Builder
	for i := 0; i < width; i++ {
		idx := int(math.Min(float64(len(vals)-1), math.Floor(float64(i)*step)))
		v := clamp01(vals[idx])
		level := int(math.Round(v * float64(len(blocks)-1)))
		if level < 0 {
			level = 0
		}
		if level > len(blocks)-1 {
			level = len(blocks) - 1
		}
		b.WriteRune(blocks[level])
	}
	return b.String()
}

func Bar(v float64, width int) string {
	if width <= 0 {
		return ""
	}
	fill := fillCount(v, width)
	return strings.Repeat("█", fill) + strings.Repeat(" ", width-fill)
}

// Gauge is a bar with a visible empty track, for 0..1 ratios like SLA.
func Gauge(v float64, width int) string {
	if width <= 0 {
		return ""
	}
	fill := fillCount(v, width)
	return strings.Repeat("━", fill) + strings.Repeat("─", width-fill)
}

// Rescale maps vals from [lo, hi] into 0..1 for Spark8 and Bar.
func Rescale(vals []float64, lo, hi float64) []float64 {
	out := make([]float64, len(vals))
	if hi <= lo {
		return out
	}
	for i, v := range vals {
		out[i] = clamp01((v - lo) / (hi - lo))
	}
	return out
}

// Shares returns each value's fraction of the total.
func Shares(vals []float64) []float64 {
	out := make([]float64, len(vals))
	var total float64
	for _, v := range vals {
		if v > 0 {
			total += v
		}
	}
	if total == 0 {
		return out
	}
	for i, v := range vals {
		if v > 0 {
			out[i] = v / total
		}
	}
	return out
}

func fillCount(v float64, width int) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	v = clamp01(v)

	fill := int(math.Round(v * float64(width)))
	if v > 0 && fill == 0 {
		fill = 1
	}
	if fill > width {
		fill = width
	}
	return fill
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
