package output

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

type fixedScene struct {
	camera *geometry.Camera
	world  *geometry.HittableList
}

func (s fixedScene) GetCamera() *geometry.Camera { return s.camera }
func (s fixedScene) GetWorld() geometry.Hittable { return s.world }

type discardLogger struct{}

func (discardLogger) Printf(format string, args ...interface{}) {}

// newTwoSphereScene looks down at a huge ground sphere from one unit above it,
// with the upper half of the frame open sky.
func newTwoSphereScene() fixedScene {
	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	metal := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0)

	return fixedScene{
		camera: geometry.NewCamera(geometry.CameraConfig{
			Center:      core.NewVec3(0, 1, 0),
			LookAt:      core.NewVec3(0, 0, -1),
			Up:          core.NewVec3(0, 1, 0),
			VFov:        120,
			AspectRatio: 4.0 / 3.0,
		}),
		world: geometry.NewHittableList(
			geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground),
			geometry.NewSphere(core.NewVec3(0, 0.5, -3), 0.5, metal),
		),
	}
}

func renderPPM(t *testing.T, config renderer.SamplingConfig, parallel bool) string {
	t.Helper()

	rt := renderer.NewRaytracer(newTwoSphereScene(), config, discardLogger{})

	var img *renderer.Image
	if parallel {
		var err error
		img, _, err = rt.Render(context.Background())
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
	} else {
		img, _ = rt.RenderSequential()
	}

	var buf bytes.Buffer
	if err := WritePPM(&buf, img); err != nil {
		t.Fatalf("WritePPM failed: %v", err)
	}
	return buf.String()
}

func tinyConfig() renderer.SamplingConfig {
	return renderer.SamplingConfig{
		Width:           4,
		Height:          3,
		SamplesPerPixel: 1,
		MaxDepth:        1,
		TileSize:        2,
		NumWorkers:      2,
		Seed:            42,
	}
}

func TestRenderPPM_EndToEnd(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		t.Run(fmt.Sprintf("parallel=%t", parallel), func(t *testing.T) {
			out := renderPPM(t, tinyConfig(), parallel)

			if !strings.HasPrefix(out, "P3\n4 3\n255\n") {
				t.Fatalf("Unexpected header in %q", out)
			}

			lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
			pixels := lines[3:]
			if len(pixels) != 12 {
				t.Fatalf("Expected 12 pixel lines, got %d", len(pixels))
			}

			for i, line := range pixels {
				var r, g, b int
				if n, err := fmt.Sscanf(line, "%d %d %d", &r, &g, &b); n != 3 || err != nil {
					t.Fatalf("Malformed pixel line %d: %q", i, line)
				}
				if r < 0 || r > 255 || g < 0 || g > 255 || b < 0 || b > 255 {
					t.Errorf("Channel out of range on line %d: %q", i, line)
				}

				switch row := i / 4; row {
				case 0:
					// Top row sees only sky, whose blue channel is saturated
					if b != 255 {
						t.Errorf("Top row pixel %d should be sky, got %q", i, line)
					}
				case 2:
					// With one bounce every surface hit is black
					if line != "0 0 0" {
						t.Errorf("Bottom row pixel %d should hit the ground, got %q", i, line)
					}
				}
			}
		})
	}
}

// centerSampler puts every sample at the middle of its pixel
type centerSampler struct{}

func (centerSampler) Get1D() float64 { return 0.5 }

// The default camera at 4:3 over the classic ground sphere, with a small
// sphere straight ahead. Pixel centers give u in {1/6, 1/2, 5/6, 7/6} and
// v in {1/4, 3/4, 5/4}, so directions are (-4/3 + 8u/3, -1 + 2v, -1).
// At depth 1 a hit is black and a miss is the sky gradient.
const centeredGoldenPPM = `P3
4 3
255
192 219 255
188 218 255
192 219 255
198 223 255
208 228 255
0 0 0
208 228 255
212 231 255
0 0 0
0 0 0
0 0 0
0 0 0
`

func TestRenderPPM_PixelCentersGolden(t *testing.T) {
	gray := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	scene := fixedScene{
		camera: geometry.NewDefaultCamera(4.0 / 3.0),
		world: geometry.NewHittableList(
			geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, gray),
			geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, gray),
		),
	}

	config := tinyConfig()
	rt := renderer.NewRaytracer(scene, config, discardLogger{})

	pixelStats := make([][]renderer.PixelStats, config.Height)
	for y := range pixelStats {
		pixelStats[y] = make([]renderer.PixelStats, config.Width)
	}
	bounds := image.Rect(0, 0, config.Width, config.Height)
	stats := rt.RenderBounds(bounds, pixelStats, centerSampler{})
	if stats.TotalSamples != config.Width*config.Height {
		t.Errorf("Expected %d samples, got %d", config.Width*config.Height, stats.TotalSamples)
	}

	img := renderer.NewImage(config.Width, config.Height)
	for y := 0; y < config.Height; y++ {
		for x := 0; x < config.Width; x++ {
			img.Set(x, y, pixelStats[y][x].GetColor())
		}
	}

	var buf bytes.Buffer
	if err := WritePPM(&buf, img); err != nil {
		t.Fatalf("WritePPM failed: %v", err)
	}
	if got := buf.String(); got != centeredGoldenPPM {
		t.Errorf("PPM mismatch\ngot:\n%s\nexpected:\n%s", got, centeredGoldenPPM)
	}
}

func TestRenderPPM_Reproducible(t *testing.T) {
	config := tinyConfig()
	config.SamplesPerPixel = 4
	config.MaxDepth = 8

	first := renderPPM(t, config, true)
	if second := renderPPM(t, config, true); second != first {
		t.Error("Repeated renders with the same seed differ")
	}

	config.NumWorkers = 1
	if single := renderPPM(t, config, true); single != first {
		t.Error("Output depends on the number of workers")
	}

	config.NumWorkers = 2
	if sequential := renderPPM(t, config, false); sequential != renderPPM(t, config, false) {
		t.Error("Repeated sequential renders with the same seed differ")
	}
}

func TestRenderPPM_ZeroDepthIsBlack(t *testing.T) {
	config := tinyConfig()
	config.MaxDepth = 0

	out := renderPPM(t, config, false)
	expected := "P3\n4 3\n255\n" + strings.Repeat("0 0 0\n", 12)
	if out != expected {
		t.Errorf("Expected an all black image, got %q", out)
	}
}
