package renderer

import (
	"image"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

// DefaultTileSize is used when a config leaves TileSize unset
const DefaultTileSize = 32

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	TileSize        int   // Edge length of a parallel work tile
	NumWorkers      int   // Number of parallel workers (0 = use CPU count)
	Seed            int64 // Base seed for every random stream
}

// DefaultSamplingConfig returns the settings of the classic 400px render
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		TileSize:        DefaultTileSize,
		NumWorkers:      0,
		Seed:            42,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *geometry.Camera
	GetWorld() geometry.Hittable
}

// Raytracer handles the rendering process.
// It holds no per-render state, so one value can serve many workers.
type Raytracer struct {
	scene  Scene
	config SamplingConfig
	logger core.Logger
}

// NewRaytracer creates a new raytracer; a nil logger logs to stdout
func NewRaytracer(scene Scene, config SamplingConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Raytracer{
		scene:  scene,
		config: config,
		logger: logger,
	}
}

// RenderSequential renders every pixel on the calling goroutine with a single
// random stream, scanlines from the top of the image down.
func (rt *Raytracer) RenderSequential() (*Image, RenderStats) {
	start := time.Now()
	width, height := rt.config.Width, rt.config.Height
	sampler := core.NewSeededSampler(rt.config.Seed)
	pixelStats := newPixelStatsGrid(width, height)

	// j counts image-plane rows from the bottom, y counts output rows from the top
	for j := height - 1; j >= 0; j-- {
		rt.logger.Printf("Scanlines remaining: %d\n", j)
		y := height - 1 - j
		for i := 0; i < width; i++ {
			rt.samplePixel(i, j, &pixelStats[y][i], sampler)
		}
	}

	stats := RenderStats{
		TotalPixels:  width * height,
		TotalSamples: width * height * rt.config.SamplesPerPixel,
	}
	stats.finalize(start)
	rt.logger.Printf("Done in %v\n", stats.Duration)

	return imageFromPixelStats(pixelStats, width, height), stats
}

// RenderBounds renders the pixels inside bounds into the shared pixel stats array.
// Callers must hand each goroutine a disjoint bounds.
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, pixelStats [][]PixelStats, sampler core.Sampler) RenderStats {
	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy()}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		j := rt.config.Height - 1 - y
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			stats.TotalSamples += rt.samplePixel(i, j, &pixelStats[y][i], sampler)
		}
	}

	return stats
}

// samplePixel accumulates SamplesPerPixel jittered samples for pixel (i, j)
func (rt *Raytracer) samplePixel(i, j int, ps *PixelStats, sampler core.Sampler) int {
	camera := rt.scene.GetCamera()
	world := rt.scene.GetWorld()

	// A one pixel wide or tall image still maps onto the plane
	uScale := float64(max(rt.config.Width-1, 1))
	vScale := float64(max(rt.config.Height-1, 1))

	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		u := (float64(i) + sampler.Get1D()) / uScale
		v := (float64(j) + sampler.Get1D()) / vScale

		ray := camera.GetRay(u, v)
		ps.AddSample(RayColor(ray, world, rt.config.MaxDepth, sampler))
	}

	return rt.config.SamplesPerPixel
}
