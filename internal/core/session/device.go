package session

import (
	"fmt"
	"strconv"
	"strings"
)

// MinGLESVersion is the lowest OpenGL ES version the renderer runs on.
const MinGLESVersion = 3.0

// RequireGLES checks a device's reported OpenGL ES version string, such as
// "3.2" or "OpenGL ES 3.1".
func RequireGLES(version string) error {
	v := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(version), "OpenGL ES"))
	if i := strings.IndexByte(v, ' '); i >= 0 {
		v = v[:i]
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%w: unreadable version %q", ErrUnsupportedDevice, version)
	}
	if parsed < MinGLESVersion {
		return fmt.Errorf("%w: have %s", ErrUnsupportedDevice, v)
	}
	return nil
}
