package renderer

import (
	"testing"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

func TestPixelStats_GetColor(t *testing.T) {
	var ps PixelStats
	if !ps.GetColor().Equals(core.Color{}) {
		t.Errorf("Expected black for a pixel with no samples, got %v", ps.GetColor())
	}

	ps.AddSample(core.NewVec3(1, 0, 0.5))
	ps.AddSample(core.NewVec3(0, 1, 0.5))

	if ps.SampleCount != 2 {
		t.Errorf("Expected 2 samples, got %d", ps.SampleCount)
	}
	expected := core.NewVec3(0.5, 0.5, 0.5)
	if !ps.GetColor().Equals(expected) {
		t.Errorf("Expected average %v, got %v", expected, ps.GetColor())
	}
}

func TestRenderStats_AddAndFinalize(t *testing.T) {
	var stats RenderStats
	stats.add(RenderStats{TotalPixels: 4, TotalSamples: 40, TilesRendered: 1})
	stats.add(RenderStats{TotalPixels: 6, TotalSamples: 20, TilesRendered: 1})

	stats.finalize(time.Now().Add(-time.Millisecond))

	if stats.TotalPixels != 10 || stats.TotalSamples != 60 || stats.TilesRendered != 2 {
		t.Errorf("Unexpected totals %+v", stats)
	}
	if stats.AverageSamples != 6 {
		t.Errorf("Expected 6 average samples, got %f", stats.AverageSamples)
	}
	if stats.Duration < time.Millisecond {
		t.Errorf("Expected duration of at least 1ms, got %v", stats.Duration)
	}
}

func TestImage_AtAndSet(t *testing.T) {
	img := NewImage(3, 2)
	img.Set(2, 1, core.NewVec3(0.1, 0.2, 0.3))

	if !img.At(2, 1).Equals(core.NewVec3(0.1, 0.2, 0.3)) {
		t.Errorf("Expected stored color, got %v", img.At(2, 1))
	}
	if !img.Pixels[5].Equals(core.NewVec3(0.1, 0.2, 0.3)) {
		t.Error("Pixels should be stored row-major")
	}
}
