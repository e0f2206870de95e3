package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// NewDefaultScene creates the three-sphere scene: a diffuse center sphere
// between a hollow glass sphere and a rough gold sphere, on a huge ground sphere.
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	s := newFixedCameraScene("default", cameraOverrides)

	materialGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	materialCenter := material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))
	materialLeft := material.NewDielectric(1.5)
	materialRight := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0)

	s.Add(
		geometry.NewSphere(core.NewVec3(0.0, -100.5, -1.0), 100.0, materialGround),
		geometry.NewSphere(core.NewVec3(0.0, 0.0, -1.0), 0.5, materialCenter),
		geometry.NewSphere(core.NewVec3(-1.0, 0.0, -1.0), 0.5, materialLeft),
		// Negative radius turns the outer glass into a thin shell
		geometry.NewSphere(core.NewVec3(-1.0, 0.0, -1.0), -0.4, materialLeft),
		geometry.NewSphere(core.NewVec3(1.0, 0.0, -1.0), 0.5, materialRight),
	)

	return s
}

// NewMetalScene creates the variant with a fuzzy silver sphere on the left
func NewMetalScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	s := newFixedCameraScene("metal", cameraOverrides)

	materialGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	materialCenter := material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))
	materialLeft := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.3)
	materialRight := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0)

	s.Add(
		geometry.NewSphere(core.NewVec3(0.0, -100.5, -1.0), 100.0, materialGround),
		geometry.NewSphere(core.NewVec3(0.0, 0.0, -1.0), 0.5, materialCenter),
		geometry.NewSphere(core.NewVec3(-1.0, 0.0, -1.0), 0.5, materialLeft),
		geometry.NewSphere(core.NewVec3(1.0, 0.0, -1.0), 0.5, materialRight),
	)

	return s
}

// newFixedCameraScene uses the fixed origin camera unless an override moves it
func newFixedCameraScene(name string, cameraOverrides []geometry.CameraConfig) *Scene {
	cameraConfig := applyOverrides(geometry.DefaultCameraConfig(), cameraOverrides)
	s := newScene(name, cameraConfig)

	if isFixedCamera(cameraConfig) {
		s.Camera = geometry.NewDefaultCamera(cameraConfig.AspectRatio)
	}
	return s
}

// isFixedCamera reports whether config only differs from the default in aspect ratio
func isFixedCamera(config geometry.CameraConfig) bool {
	def := geometry.DefaultCameraConfig()
	return config.Center.Equals(def.Center) &&
		config.LookAt.Equals(def.LookAt) &&
		config.Up.Equals(def.Up) &&
		config.VFov == def.VFov
}
