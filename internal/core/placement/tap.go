package placement

import "github.com/zeusync/arscene/internal/core/spatial"

// TapEvent is a screen touch together with the viewport it happened in.
type TapEvent struct {
	X, Y           float64
	ViewportWidth  int
	ViewportHeight int
}

// Hit is a tap resolved against the tracked surfaces.
type Hit struct {
	Pose  spatial.Pose
	Plane spatial.Plane
}

// TapResolver hit-tests a tap against the current frame.
type TapResolver interface {
	Resolve(tap TapEvent) (Hit, bool)
}

// TapResolverFunc adapts a function to TapResolver.
type TapResolverFunc func(tap TapEvent) (Hit, bool)

func (f TapResolverFunc) Resolve(tap TapEvent) (Hit, bool) { return f(tap) }
