package spatial

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Local axis indices of a pose's rotation basis.
const (
	AxisX = iota
	AxisY
	AxisZ
)

var unitAxes = [3]mgl64.Vec3{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
}

// Pose is a rigid transform in tracked world space: a position and a unit
// rotation quaternion mapping local coordinates into world coordinates.
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// Identity returns the pose at the world origin with no rotation.
func Identity() Pose {
	return Pose{Rotation: mgl64.QuatIdent()}
}

// NewPose builds a pose from a position and a rotation. The rotation is
// normalized; a zero quaternion is treated as identity.
func NewPose(position mgl64.Vec3, rotation mgl64.Quat) Pose {
	if rotation.Len() == 0 {
		rotation = mgl64.QuatIdent()
	}
	return Pose{Position: position, Rotation: rotation.Normalize()}
}

// Translation returns a pose at (x, y, z) with identity rotation.
func Translation(x, y, z float64) Pose {
	return Pose{Position: mgl64.Vec3{x, y, z}, Rotation: mgl64.QuatIdent()}
}

// Axis returns the i-th column of the pose's rotation basis, that is the
// local unit axis expressed in world space. Axis(AxisY) is the local "up"
// axis, which for a plane's center pose is its normal.
func (p Pose) Axis(i int) mgl64.Vec3 {
	if i < AxisX || i > AxisZ {
		panic(fmt.Sprintf("spatial: axis index %d out of range", i))
	}
	return p.rotation().Rotate(unitAxes[i])
}

// Up is shorthand for Axis(AxisY).
func (p Pose) Up() mgl64.Vec3 {
	return p.Axis(AxisY)
}

// ToLocal expresses a world-space point in this pose's local frame.
func (p Pose) ToLocal(world mgl64.Vec3) mgl64.Vec3 {
	return p.rotation().Inverse().Rotate(world.Sub(p.Position))
}

// ToWorld expresses a local point in world space.
func (p Pose) ToWorld(local mgl64.Vec3) mgl64.Vec3 {
	return p.rotation().Rotate(local).Add(p.Position)
}

func (p Pose) rotation() mgl64.Quat {
	// zero value Pose behaves as identity
	if p.Rotation.W == 0 && p.Rotation.V.Len() == 0 {
		return mgl64.QuatIdent()
	}
	return p.Rotation
}

func (p Pose) String() string {
	return fmt.Sprintf("t:[%.3f, %.3f, %.3f] q:[%.3f, %.3f, %.3f, %.3f]",
		p.Position.X(), p.Position.Y(), p.Position.Z(),
		p.Rotation.V.X(), p.Rotation.V.Y(), p.Rotation.V.Z(), p.Rotation.W)
}
