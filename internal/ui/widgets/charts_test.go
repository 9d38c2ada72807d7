package widgets

import (
	"math"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestBar(t *testing.T) {
	assert.Equal(t, "█████     ", Bar(0.5, 10))
	assert.Equal(t, "          ", Bar(0, 10))
	assert.Equal(t, "██████████", Bar(7, 10))
	assert.Equal(t, "█         ", Bar(0.01, 10), "non-zero values show at least one cell")
	assert.Equal(t, "          ", Bar(math.NaN(), 10))
	assert.Empty(t, Bar(0.5, 0))
}

func TestGauge(t *testing.T) {
	assert.Equal(t, "━━━━━━━━──", Gauge(0.8, 10))
	assert.Equal(t, 10, utf8.RuneCountInString(Gauge(-1, 10)))
}

func TestSpark8(t *testing.T) {
	assert.Equal(t, "▁█", Spark8([]float64{0, 1}, 2))
	assert.Equal(t, 6, utf8.RuneCountInString(Spark8([]float64{0.1, 0.5, 0.9}, 6)))
	assert.Empty(t, Spark8(nil, 4))
}

func TestRescale(t *testing.T) {
	assert.Equal(t, []float64{0, 0.5, 1, 1}, Rescale([]float64{85, 92.5, 100, 120}, 85, 100))
	assert.Equal(t, []float64{0, 0}, Rescale([]float64{1, 2}, 5, 5))
}

func TestShares(t *testing.T) {
	assert.Equal(t, []float64{0.25, 0.75, 0}, Shares([]float64{1, 3, -2}))
	assert.Equal(t, []float64{0, 0}, Shares([]float64{0, 0}))
}
