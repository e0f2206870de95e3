package renderer

import (
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

// Intersection interval for every traced ray. The lower bound keeps a
// scattered ray from re-hitting the surface it left (shadow acne).
const (
	MinHitDistance = 0.001
)

var (
	MaxHitDistance = math.Inf(1)

	skyWhite = core.NewVec3(1.0, 1.0, 1.0)
	skyBlue  = core.NewVec3(0.5, 0.7, 1.0)
)

// RayColor returns the color carried back along ray after at most depth bounces
func RayColor(ray core.Ray, world geometry.Hittable, depth int, sampler core.Sampler) core.Color {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Color{}
	}

	hit, isHit := world.Hit(ray, MinHitDistance, MaxHitDistance)
	if !isHit {
		return BackgroundGradient(ray)
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return core.Color{} // Material absorbed the ray
	}

	return scatter.Attenuation.MultiplyVec(RayColor(scatter.Scattered, world, depth-1, sampler))
}

// BackgroundGradient blends white to sky blue by the ray's vertical direction
func BackgroundGradient(ray core.Ray) core.Color {
	unitDirection := ray.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	return skyWhite.Lerp(skyBlue, t)
}
