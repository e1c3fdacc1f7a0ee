package session

import "github.com/zeusync/arscene/internal/core/spatial"

// Frame is one update from the surface-tracking feed: the planes and
// augmented images that changed since the previous frame.
type Frame struct {
	Planes []spatial.Plane
	Images []AugmentedImage
}

// AugmentedImage is a reference image the runtime found in the camera feed.
type AugmentedImage struct {
	Index   int
	Name    string
	Center  spatial.Pose
	ExtentX float64
	ExtentZ float64
}
