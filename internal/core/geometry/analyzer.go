// Package geometry derives diagnostic measurements from a snapshot of tracked
// planes.
package geometry

import (
	"fmt"
	"math"
	"strings"

	"github.com/zeusync/arscene/internal/core/spatial"
	"github.com/zeusync/arscene/pkg/sequence"
)

// Distance is the estimated gap between two adjacent vertical planes.
type Distance struct {
	From   spatial.PlaneID
	To     spatial.PlaneID
	Meters float64
}

// MeasureVerticalGaps estimates the gap between each pair of adjacent
// vertical planes, in the order the planes were received.
//
// For the pair (i, i+1) the vector between the two centers is projected onto
// plane i's local up axis and the absolute value taken. Plane i's normal is
// used for every pair it starts; nothing is averaged or recomputed, so the
// result is a heuristic rather than the minimal separation.
//
// Fewer than two vertical planes yield an empty slice.
func MeasureVerticalGaps(planes []spatial.Plane) []Distance {
	vertical := sequence.From(planes).Filter(isVertical)

	out := make([]Distance, 0)
	for a, b := range sequence.Pairwise(vertical) {
		out = append(out, Distance{
			From:   a.ID,
			To:     b.ID,
			Meters: gap(a, b),
		})
	}
	return out
}

func gap(a, b spatial.Plane) float64 {
	n := a.Center.Axis(spatial.AxisY)
	return math.Abs(b.Center.Position.Sub(a.Center.Position).Dot(n))
}

func isVertical(p spatial.Plane) bool {
	return p.Type == spatial.Vertical
}

// FrameSummary is the per-update plane diagnostic.
type FrameSummary struct {
	Total    int
	Vertical int
	Gaps     []Distance
}

// Summarize counts the planes of an update and measures the vertical gaps.
func Summarize(planes []spatial.Plane) FrameSummary {
	return FrameSummary{
		Total:    len(planes),
		Vertical: sequence.From(planes).Filter(isVertical).Count(),
		Gaps:     MeasureVerticalGaps(planes),
	}
}

// Widths returns the gap values alone.
func (s FrameSummary) Widths() []float64 {
	return sequence.ToArray(sequence.From(s.Gaps), func(d Distance) float64 { return d.Meters })
}

func (s FrameSummary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total plane = %d with vertical = %d", s.Total, s.Vertical)
	if s.Vertical > 1 {
		b.WriteString(" => Measure width =")
		for _, d := range s.Gaps {
			fmt.Fprintf(&b, " %g", d.Meters)
		}
	}
	return b.String()
}
