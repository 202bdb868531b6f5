package axis

import (
	"math"

	"github.com/xtding233/kessan-board/internal/unit"
)

const (
	// FloorMax keeps the axis open for all-zero or tiny data.
	FloorMax = 100
	// FallbackPadding is used when every input value is the same.
	FallbackPadding = 1000
	// Limit is the largest magnitude Compute looks at; inputs beyond it are
	// clamped so the padded view still fits in an int.
	Limit = 1 << 53
	step  = 100
)

// Bounds is the value-axis range handed to the renderer.
type Bounds struct {
	Min int `json:"min"`
	Mid int `json:"mid"`
	Max int `json:"max"`

	// DataMin and DataMax are the extremes the view was derived from, after
	// the floor, the ceiling and the ±Limit clamp.
	DataMin int `json:"-"`
	DataMax int `json:"-"`
}

// Compute derives the view bounds. values must already include the 0 of the
// leading baseline point; the order of values does not matter.
func Compute(values []int) Bounds {
	lo, hi, flat := extremes(values)

	dataMax := max(hi, FloorMax)
	dataMin := min(lo, 0)

	padding := float64(dataMax-dataMin) * 0.1
	if flat || padding == 0 {
		padding = FallbackPadding
	}

	viewMax := int(math.Ceil((float64(dataMax)+padding)/step)) * step
	viewMin := 0
	if dataMin < 0 {
		viewMin = int(math.Floor((float64(dataMin)-padding)/step)) * step
	}
	return Bounds{
		Min:     viewMin,
		Mid:     roundHalfUp(float64(viewMax+viewMin) / 2),
		Max:     viewMax,
		DataMin: dataMin,
		DataMax: dataMax,
	}
}

// extremes returns min and max of values; flat is true when there is no spread.
func extremes(values []int) (lo, hi int, flat bool) {
	if len(values) == 0 {
		return 0, 0, true
	}
	lo, hi = clamp(values[0]), clamp(values[0])
	for _, v := range values[1:] {
		lo = min(lo, clamp(v))
		hi = max(hi, clamp(v))
	}
	return lo, hi, lo == hi
}

func clamp(v int) int { return min(max(v, -Limit), Limit) }

// roundHalfUp rounds .5 toward +Inf.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// Labels are the three scale texts next to the chart.
type Labels struct {
	Max         string `json:"max"`
	Mid         string `json:"mid"`
	Min         string `json:"min"`
	MinNegative bool   `json:"minNegative"`
}

// Labels writes the bounds in u. Mid and Min use the zero form for 0.
func (b Bounds) Labels(u unit.Unit) Labels {
	return Labels{
		Max:         u.Label(b.Max),
		Mid:         u.ZeroAware(b.Mid),
		Min:         u.ZeroAware(b.Min),
		MinNegative: b.Min < 0,
	}
}
