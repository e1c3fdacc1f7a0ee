// Package replay drives a session from a recorded tracking trace, standing
// in for the AR runtime's frame callback and hit testing.
package replay

import (
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/arscene/internal/core/session"
	"github.com/zeusync/arscene/internal/core/spatial"
)

// Trace is a recorded sequence of tracking updates and user taps.
type Trace struct {
	Viewport     Viewport     `yaml:"viewport"`
	WaitForAsset bool         `yaml:"wait_for_asset"`
	Frames       []TraceFrame `yaml:"frames"`
}

type Viewport struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type TraceFrame struct {
	Planes []TracePlane `yaml:"planes"`
	Images []TraceImage `yaml:"images"`
	Taps   []TraceTap   `yaml:"taps"`
	// Reset clears the placed object before the frame's taps.
	Reset bool `yaml:"reset"`
}

type TracePlane struct {
	ID       string      `yaml:"id"`
	Type     string      `yaml:"type"`
	Position []float64   `yaml:"position"`
	Rotation []float64   `yaml:"rotation"` // x, y, z, w
	Polygon  [][]float64 `yaml:"polygon"`
}

type TraceImage struct {
	Index    int       `yaml:"index"`
	Name     string    `yaml:"name"`
	Position []float64 `yaml:"position"`
	ExtentX  float64   `yaml:"extent_x"`
	ExtentZ  float64   `yaml:"extent_z"`
}

type TraceTap struct {
	X   float64   `yaml:"x"`
	Y   float64   `yaml:"y"`
	Hit *TraceHit `yaml:"hit"`
}

// TraceHit is the runtime's hit-test answer recorded with the tap.
type TraceHit struct {
	Plane    string    `yaml:"plane"`
	Position []float64 `yaml:"position"`
}

// Decode reads a YAML trace.
func Decode(r io.Reader) (*Trace, error) {
	var t Trace
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		if err == io.EOF {
			return &t, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &t, nil
}

func LoadFile(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Frame converts a recorded frame into a session update.
func (f TraceFrame) Frame() (session.Frame, error) {
	out := session.Frame{
		Planes: make([]spatial.Plane, 0, len(f.Planes)),
		Images: make([]session.AugmentedImage, 0, len(f.Images)),
	}
	for i, p := range f.Planes {
		plane, err := p.Plane()
		if err != nil {
			return session.Frame{}, fmt.Errorf("plane %d: %w", i, err)
		}
		out.Planes = append(out.Planes, plane)
	}
	for i, img := range f.Images {
		pos, err := vec3(img.Position)
		if err != nil {
			return session.Frame{}, fmt.Errorf("image %d: %w", i, err)
		}
		out.Images = append(out.Images, session.AugmentedImage{
			Index:   img.Index,
			Name:    img.Name,
			Center:  spatial.Pose{Position: pos, Rotation: mgl64.QuatIdent()},
			ExtentX: img.ExtentX,
			ExtentZ: img.ExtentZ,
		})
	}
	return out, nil
}

func (p TracePlane) Plane() (spatial.Plane, error) {
	if p.ID == "" {
		return spatial.Plane{}, fmt.Errorf("%w: plane id is required", ErrInvalidTrace)
	}
	typ, err := spatial.ParsePlaneType(p.Type)
	if err != nil {
		return spatial.Plane{}, err
	}
	pos, err := vec3(p.Position)
	if err != nil {
		return spatial.Plane{}, err
	}
	rot, err := quat(p.Rotation)
	if err != nil {
		return spatial.Plane{}, err
	}
	polygon := make([]mgl64.Vec2, len(p.Polygon))
	for i, pt := range p.Polygon {
		if len(pt) != 2 {
			return spatial.Plane{}, fmt.Errorf("%w: polygon point %d needs 2 values", ErrInvalidTrace, i)
		}
		polygon[i] = mgl64.Vec2{pt[0], pt[1]}
	}
	return spatial.Plane{
		ID:      spatial.PlaneID(p.ID),
		Type:    typ,
		Center:  spatial.NewPose(pos, rot),
		Polygon: polygon,
	}, nil
}

func vec3(v []float64) (mgl64.Vec3, error) {
	switch len(v) {
	case 0:
		return mgl64.Vec3{}, nil
	case 3:
		return mgl64.Vec3{v[0], v[1], v[2]}, nil
	}
	return mgl64.Vec3{}, fmt.Errorf("%w: position needs 3 values, got %d", ErrInvalidTrace, len(v))
}

func quat(v []float64) (mgl64.Quat, error) {
	switch len(v) {
	case 0:
		return mgl64.QuatIdent(), nil
	case 4:
		return mgl64.Quat{W: v[3], V: mgl64.Vec3{v[0], v[1], v[2]}}, nil
	}
	return mgl64.Quat{}, fmt.Errorf("%w: rotation needs 4 values (x, y, z, w), got %d", ErrInvalidTrace, len(v))
}
