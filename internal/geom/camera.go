package geom

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrNoCamera is returned when a camera-relative computation runs before a
// camera has been registered.
var ErrNoCamera = errors.New("camera is not set")

// Camera is the external viewpoint oracle. Implementations are queried at
// call time; nothing in this module caches the returned values.
type Camera interface {
	Position() mgl64.Vec3
	Orientation() mgl64.Quat
	// WorldDirection is the camera's forward axis in world space.
	WorldDirection() mgl64.Vec3
	// FOV is the vertical field of view in degrees.
	FOV() float64
	Aspect() float64
}

// PerspectiveCamera is a plain Camera value. Forward is -Z in camera space.
type PerspectiveCamera struct {
	Pos         mgl64.Vec3
	Rot         Euler
	Fov         float64
	AspectRatio float64
}

// NewPerspectiveCamera returns a camera at the origin looking down -Z.
func NewPerspectiveCamera(fov, aspect float64) *PerspectiveCamera {
	return &PerspectiveCamera{Fov: fov, AspectRatio: aspect}
}

func (c *PerspectiveCamera) Position() mgl64.Vec3    { return c.Pos }
func (c *PerspectiveCamera) Orientation() mgl64.Quat { return c.Rot.Quat() }
func (c *PerspectiveCamera) FOV() float64            { return c.Fov }
func (c *PerspectiveCamera) Aspect() float64         { return c.AspectRatio }

func (c *PerspectiveCamera) WorldDirection() mgl64.Vec3 {
	return c.Orientation().Rotate(mgl64.Vec3{0, 0, -1})
}

// RotatePosition transforms a camera-relative offset into world space using
// the camera's current orientation and position.
func RotatePosition(offset mgl64.Vec3, cam Camera) mgl64.Vec3 {
	return cam.Orientation().Rotate(offset).Add(cam.Position())
}

// PointInFrontOfCamera returns the point `distance` units along the camera's
// forward axis. Without a camera it returns the origin and ErrNoCamera.
func PointInFrontOfCamera(cam Camera, distance float64) (mgl64.Vec3, error) {
	if isNil(cam) {
		return Origin, ErrNoCamera
	}
	dir := Normalize(cam.WorldDirection())
	return cam.Position().Add(dir.Mul(distance)), nil
}

// isNil catches typed nil pointers stored in the interface.
func isNil(cam Camera) bool {
	if cam == nil {
		return true
	}
	if pc, ok := cam.(*PerspectiveCamera); ok && pc == nil {
		return true
	}
	return false
}

// IsNil reports whether cam is unset.
func IsNil(cam Camera) bool { return isNil(cam) }
