package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// ErrUnknownMaterial is returned for an unsupported material type or an
// object that references a material name the file never defines.
var ErrUnknownMaterial = errors.New("unknown material")

// SceneFile is the YAML representation of a scene
type SceneFile struct {
	Name        string                  `yaml:"name"`
	Description string                  `yaml:"description"`
	Camera      *CameraSpec             `yaml:"camera"`
	Materials   map[string]MaterialSpec `yaml:"materials"`
	Spheres     []SphereSpec            `yaml:"spheres"`
	Quads       []QuadSpec              `yaml:"quads"`
}

// CameraSpec describes a look-at camera; omitted fields keep their defaults
type CameraSpec struct {
	Center      []float64 `yaml:"center"`
	LookAt      []float64 `yaml:"look_at"`
	Up          []float64 `yaml:"up"`
	VFov        float64   `yaml:"vfov"`
	AspectRatio float64   `yaml:"aspect_ratio"`
}

// MaterialSpec describes one named material
type MaterialSpec struct {
	Type   string    `yaml:"type"`   // lambertian, metal or dielectric
	Albedo []float64 `yaml:"albedo"` // lambertian, metal
	Fuzz   float64   `yaml:"fuzz"`   // metal
	IOR    float64   `yaml:"ior"`    // dielectric
}

// SphereSpec places a sphere; a negative radius makes a hollow shell
type SphereSpec struct {
	Center   []float64 `yaml:"center"`
	Radius   float64   `yaml:"radius"`
	Material string    `yaml:"material"`
}

// QuadSpec places a parallelogram spanned by U and V from Corner
type QuadSpec struct {
	Corner   []float64 `yaml:"corner"`
	U        []float64 `yaml:"u"`
	V        []float64 `yaml:"v"`
	Material string    `yaml:"material"`
}

// IsSceneFile reports whether name looks like a path to a YAML scene
func IsSceneFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// LoadSceneFile reads and builds the scene at path
func LoadSceneFile(path string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	s, err := ParseScene(data, cameraOverrides...)
	if err != nil {
		return nil, fmt.Errorf("scene file %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// ParseScene builds a scene from YAML. Objects naming the same material share
// one Material value.
func ParseScene(data []byte, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	var file SceneFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing scene: %w", err)
	}

	cameraConfig, err := file.cameraConfig()
	if err != nil {
		return nil, err
	}
	s := newScene(file.Name, applyOverrides(cameraConfig, cameraOverrides))

	materials := make(map[string]material.Material, len(file.Materials))
	for name, spec := range file.Materials {
		mat, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}

	lookup := func(name string) (material.Material, error) {
		mat, ok := materials[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q is not defined", ErrUnknownMaterial, name)
		}
		return mat, nil
	}

	for i, spec := range file.Spheres {
		center, err := toVec3(spec.Center)
		if err != nil {
			return nil, fmt.Errorf("sphere %d center: %w", i, err)
		}
		if spec.Radius == 0 {
			return nil, fmt.Errorf("sphere %d: radius must not be zero", i)
		}
		mat, err := lookup(spec.Material)
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		s.Add(geometry.NewSphere(center, spec.Radius, mat))
	}

	for i, spec := range file.Quads {
		corner, err := toVec3(spec.Corner)
		if err != nil {
			return nil, fmt.Errorf("quad %d corner: %w", i, err)
		}
		u, err := toVec3(spec.U)
		if err != nil {
			return nil, fmt.Errorf("quad %d u: %w", i, err)
		}
		v, err := toVec3(spec.V)
		if err != nil {
			return nil, fmt.Errorf("quad %d v: %w", i, err)
		}
		if u.Cross(v).NearZero() {
			return nil, fmt.Errorf("quad %d: edges are parallel", i)
		}
		mat, err := lookup(spec.Material)
		if err != nil {
			return nil, fmt.Errorf("quad %d: %w", i, err)
		}
		s.Add(geometry.NewQuad(corner, u, v, mat))
	}

	return s, nil
}

// cameraConfig merges the file's camera block over the default camera
func (f *SceneFile) cameraConfig() (geometry.CameraConfig, error) {
	config := geometry.DefaultCameraConfig()
	if f.Camera == nil {
		return config, nil
	}

	override := geometry.CameraConfig{
		VFov:        f.Camera.VFov,
		AspectRatio: f.Camera.AspectRatio,
	}
	var err error
	if f.Camera.Center != nil {
		if override.Center, err = toVec3(f.Camera.Center); err != nil {
			return config, fmt.Errorf("camera center: %w", err)
		}
	}
	if f.Camera.LookAt != nil {
		if override.LookAt, err = toVec3(f.Camera.LookAt); err != nil {
			return config, fmt.Errorf("camera look_at: %w", err)
		}
	}
	if f.Camera.Up != nil {
		if override.Up, err = toVec3(f.Camera.Up); err != nil {
			return config, fmt.Errorf("camera up: %w", err)
		}
	}

	return geometry.MergeCameraConfig(config, override), nil
}

// build creates the material a spec describes
func (m MaterialSpec) build() (material.Material, error) {
	switch strings.ToLower(m.Type) {
	case "lambertian":
		albedo, err := toVec3(m.Albedo)
		if err != nil {
			return nil, fmt.Errorf("albedo: %w", err)
		}
		return material.NewLambertian(albedo), nil
	case "metal":
		albedo, err := toVec3(m.Albedo)
		if err != nil {
			return nil, fmt.Errorf("albedo: %w", err)
		}
		return material.NewMetal(albedo, m.Fuzz), nil
	case "dielectric", "glass":
		if m.IOR <= 0 {
			return nil, fmt.Errorf("ior must be positive, got %g", m.IOR)
		}
		return material.NewDielectric(m.IOR), nil
	}
	return nil, fmt.Errorf("%w: type %q", ErrUnknownMaterial, m.Type)
}

func toVec3(values []float64) (core.Vec3, error) {
	if len(values) != 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(values))
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}
