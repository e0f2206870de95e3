package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// CameraConfig describes a positionable pinhole camera
type CameraConfig struct {
	Center      core.Point3 // Eye position
	LookAt      core.Point3 // Point the camera faces
	Up          core.Vec3   // World up direction
	VFov        float64     // Vertical field of view in degrees
	AspectRatio float64     // Image width / height
}

// DefaultCameraConfig returns a camera at the origin looking down -Z with a 90° field of view
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: 16.0 / 9.0,
	}
}

// MergeCameraConfig returns base with every non-zero field of override applied.
// A zero field means "unset": an override cannot move Center or LookAt to the
// world origin, and a zero Up or VFov is never copied. Build a full
// CameraConfig and pass it to NewCamera for those cases.
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	zero := core.Vec3{}
	if !override.Center.Equals(zero) {
		result.Center = override.Center
	}
	if !override.LookAt.Equals(zero) {
		result.LookAt = override.LookAt
	}
	if !override.Up.Equals(zero) {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	return result
}

// Camera generates rays for rendering.
// All fields are derived once at construction.
type Camera struct {
	origin          core.Point3
	lowerLeftCorner core.Point3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewDefaultCamera creates the fixed camera: origin at zero, viewport height 2, focal length 1
func NewDefaultCamera(aspectRatio float64) *Camera {
	viewportHeight := 2.0
	viewportWidth := aspectRatio * viewportHeight
	focalLength := 1.0

	origin := core.NewVec3(0, 0, 0)
	horizontal := core.NewVec3(viewportWidth, 0, 0)
	vertical := core.NewVec3(0, viewportHeight, 0)
	lowerLeftCorner := origin.Subtract(horizontal.Divide(2)).
		Subtract(vertical.Divide(2)).
		Subtract(core.NewVec3(0, 0, focalLength))

	return &Camera{
		origin:          origin,
		horizontal:      horizontal,
		vertical:        vertical,
		lowerLeftCorner: lowerLeftCorner,
	}
}

// NewCamera creates a camera from a look-from/look-at configuration
func NewCamera(config CameraConfig) *Camera {
	lookFrom := toMgl(config.Center)

	// Orthonormal basis: w points backwards, u right, v up
	w := lookFrom.Sub(toMgl(config.LookAt)).Normalize()
	u := toMgl(config.Up).Cross(w).Normalize()
	v := w.Cross(u)

	halfHeight := math.Tan(mgl64.DegToRad(config.VFov) / 2)
	viewportHeight := 2.0 * halfHeight
	viewportWidth := config.AspectRatio * viewportHeight

	horizontal := u.Mul(viewportWidth)
	vertical := v.Mul(viewportHeight)
	lowerLeftCorner := lookFrom.
		Sub(horizontal.Mul(0.5)).
		Sub(vertical.Mul(0.5)).
		Sub(w)

	return &Camera{
		origin:          config.Center,
		horizontal:      fromMgl(horizontal),
		vertical:        fromMgl(vertical),
		lowerLeftCorner: fromMgl(lowerLeftCorner),
	}
}

// GetRay generates a ray for image plane coordinates (s, t) where 0 <= s,t <= 1
func (c *Camera) GetRay(s, t float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}

// Origin returns the eye position
func (c *Camera) Origin() core.Point3 {
	return c.origin
}

func toMgl(v core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
