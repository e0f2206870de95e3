package renderer

import (
	"image"
	"testing"
)

func TestNewTileGrid_CoversImage(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tileSize      int
		expectedTiles int
	}{
		{"exact fit", 64, 32, 16, 8},
		{"ragged edges", 50, 30, 16, 8},
		{"single tile", 10, 10, 64, 1},
		{"default size", 100, 40, 0, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tileSize, 42)
			if len(tiles) != tt.expectedTiles {
				t.Fatalf("Expected %d tiles, got %d", tt.expectedTiles, len(tiles))
			}

			// Every pixel belongs to exactly one tile
			covered := make([]int, tt.width*tt.height)
			for i, tile := range tiles {
				if tile.ID != i {
					t.Errorf("Expected tile ID %d, got %d", i, tile.ID)
				}
				if !tile.Bounds.In(image.Rect(0, 0, tt.width, tt.height)) {
					t.Errorf("Tile %d bounds %v exceed the image", i, tile.Bounds)
				}
				for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
					for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
						covered[y*tt.width+x]++
					}
				}
			}
			for i, count := range covered {
				if count != 1 {
					t.Fatalf("Pixel %d covered %d times", i, count)
				}
			}
		})
	}
}

func TestNewTile_SeededStreams(t *testing.T) {
	bounds := image.Rect(0, 0, 4, 4)

	a := NewTile(3, bounds, 100)
	b := NewTile(3, bounds, 100)
	c := NewTile(4, bounds, 100)

	same := true
	differs := false
	for i := 0; i < 10; i++ {
		va, vb, vc := a.Sampler.Get1D(), b.Sampler.Get1D(), c.Sampler.Get1D()
		if va != vb {
			same = false
		}
		if va != vc {
			differs = true
		}
	}

	if !same {
		t.Error("Tiles with equal seed and ID should share a random stream")
	}
	if !differs {
		t.Error("Tiles with different IDs should have different random streams")
	}
}
