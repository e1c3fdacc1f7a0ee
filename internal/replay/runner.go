package replay

import (
	"context"
	"fmt"
	"io"

	"github.com/zeusync/arscene/internal/core/geometry"
	"github.com/zeusync/arscene/internal/core/placement"
	"github.com/zeusync/arscene/internal/core/session"
	"github.com/zeusync/arscene/internal/core/spatial"
)

// Report collects what a replay produced.
type Report struct {
	Frames    int
	Summaries []geometry.FrameSummary
	Outcomes  []placement.Outcome
}

// Placed counts successful placements.
func (r Report) Placed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o == placement.OutcomePlaced {
			n++
		}
	}
	return n
}

// Run feeds every frame of the trace through the session, resolving taps
// against the planes tracked so far. Progress lines go to out when it is
// not nil.
func Run(ctx context.Context, s *session.Session, t *Trace, out io.Writer) (Report, error) {
	if out == nil {
		out = io.Discard
	}
	if t.WaitForAsset {
		if done := s.AssetLoaded(); done != nil {
			select {
			case <-done:
			case <-ctx.Done():
				return Report{}, ctx.Err()
			}
		}
	}

	tracked := newTrackedPlanes()
	var report Report
	for i, tf := range t.Frames {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		frame, err := tf.Frame()
		if err != nil {
			return report, fmt.Errorf("frame %d: %w", i, err)
		}
		tracked.update(frame.Planes)

		summary := s.OnFrame(frame)
		report.Frames++
		if summary.Total > 0 {
			report.Summaries = append(report.Summaries, summary)
			fmt.Fprintf(out, "frame %d: %s\n", i, summary)
		}

		if tf.Reset {
			s.Reset()
			fmt.Fprintf(out, "frame %d: reset\n", i)
		}

		for j, tap := range tf.Taps {
			ev := placement.TapEvent{
				X:              tap.X,
				Y:              tap.Y,
				ViewportWidth:  t.Viewport.Width,
				ViewportHeight: t.Viewport.Height,
			}
			outcome := s.OnTap(ev, tracked.resolver(tap.Hit))
			report.Outcomes = append(report.Outcomes, outcome)
			fmt.Fprintf(out, "frame %d tap %d: %s\n", i, j, outcome)
		}
	}
	return report, nil
}

// trackedPlanes is the latest known state of every plane seen so far.
type trackedPlanes struct {
	byID map[spatial.PlaneID]spatial.Plane
}

func newTrackedPlanes() *trackedPlanes {
	return &trackedPlanes{byID: make(map[spatial.PlaneID]spatial.Plane)}
}

func (t *trackedPlanes) update(planes []spatial.Plane) {
	for _, p := range planes {
		t.byID[p.ID] = p
	}
}

// resolver answers a tap with its recorded hit, accepted only when the hit
// plane is tracked and the hit lies inside its boundary.
func (t *trackedPlanes) resolver(hit *TraceHit) placement.TapResolver {
	return placement.TapResolverFunc(func(placement.TapEvent) (placement.Hit, bool) {
		if hit == nil {
			return placement.Hit{}, false
		}
		plane, ok := t.byID[spatial.PlaneID(hit.Plane)]
		if !ok {
			return placement.Hit{}, false
		}
		pos, err := vec3(hit.Position)
		if err != nil {
			return placement.Hit{}, false
		}
		pose := spatial.Pose{Position: pos, Rotation: plane.Center.Rotation}
		if !plane.Contains(pose) {
			return placement.Hit{}, false
		}
		return placement.Hit{Pose: pose, Plane: plane}, true
	})
}
