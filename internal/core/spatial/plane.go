package spatial

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// PlaneType classifies a tracked plane by the direction of its normal.
type PlaneType uint8

const (
	HorizontalUp PlaneType = iota
	HorizontalDown
	Vertical
)

func (t PlaneType) String() string {
	switch t {
	case HorizontalUp:
		return "HORIZONTAL_UPWARD_FACING"
	case HorizontalDown:
		return "HORIZONTAL_DOWNWARD_FACING"
	case Vertical:
		return "VERTICAL"
	default:
		return fmt.Sprintf("PlaneType(%d)", uint8(t))
	}
}

// ParsePlaneType accepts the names produced by String and the short forms
// used in trace files.
func ParsePlaneType(s string) (PlaneType, error) {
	switch s {
	case "HORIZONTAL_UPWARD_FACING", "HORIZONTAL_UP", "horizontal_up":
		return HorizontalUp, nil
	case "HORIZONTAL_DOWNWARD_FACING", "HORIZONTAL_DOWN", "horizontal_down":
		return HorizontalDown, nil
	case "VERTICAL", "vertical":
		return Vertical, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPlaneType, s)
}

// PlaneID identifies a plane across tracking updates.
type PlaneID string

// Plane is a detected flat surface as reported by the tracking feed for one
// update. Values are never mutated; the next update replaces them.
type Plane struct {
	ID     PlaneID
	Type   PlaneType
	Center Pose
	// Polygon is the boundary in plane-local X/Z coordinates, ordered.
	Polygon []mgl64.Vec2
}

// Normal returns the plane's local up axis in world space.
func (p Plane) Normal() mgl64.Vec3 {
	return p.Center.Up()
}

// Contains reports whether the pose's position, projected onto the plane,
// falls inside the boundary polygon. A plane without a polygon contains
// nothing.
func (p Plane) Contains(pose Pose) bool {
	if len(p.Polygon) < 3 {
		return false
	}
	local := p.Center.ToLocal(pose.Position)
	return pointInPolygon(mgl64.Vec2{local.X(), local.Z()}, p.Polygon)
}

// even-odd rule
func pointInPolygon(pt mgl64.Vec2, poly []mgl64.Vec2) bool {
	inside := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y() > pt.Y()) != (b.Y() > pt.Y()) {
			x := (b.X()-a.X())*(pt.Y()-a.Y())/(b.Y()-a.Y()) + a.X()
			if pt.X() < x {
				inside = !inside
			}
		}
	}
	return inside
}
