// Package scene builds the worlds the renderer draws: the built-in scenes and
// scenes described in YAML files.
package scene

import (
	"errors"

	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

// ErrUnknownScene is returned when a scene name matches no built-in scene or file
var ErrUnknownScene = errors.New("unknown scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	World        *geometry.HittableList // Objects in the scene
	Camera       *geometry.Camera
	CameraConfig geometry.CameraConfig
}

// newScene creates an empty scene viewed through cameraConfig
func newScene(name string, cameraConfig geometry.CameraConfig) *Scene {
	return &Scene{
		Name:         name,
		World:        geometry.NewHittableList(),
		Camera:       geometry.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
	}
}

// Add appends objects to the scene's world
func (s *Scene) Add(objects ...geometry.Hittable) {
	for _, object := range objects {
		s.World.Add(object)
	}
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *geometry.Camera {
	return s.Camera
}

// GetWorld returns everything a ray can hit
func (s *Scene) GetWorld() geometry.Hittable {
	return s.World
}

// GetObjectCount returns the number of top-level objects in the scene
func (s *Scene) GetObjectCount() int {
	return s.World.Len()
}

// applyOverrides merges the first override, if any, into base
func applyOverrides(base geometry.CameraConfig, cameraOverrides []geometry.CameraConfig) geometry.CameraConfig {
	if len(cameraOverrides) > 0 {
		return geometry.MergeCameraConfig(base, cameraOverrides[0])
	}
	return base
}
