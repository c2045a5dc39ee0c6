package oracle

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png" // course maps are PNG
	"os"

	"github.com/lab1702/golf-ai/game"
)

// Raster classifies course points from the engine's map image. The image is stretched
// over the course rectangle, so a 32x32 map covers 640x640 units with 20-unit tiles.
// Classification is done once at load time; lookups are a clamped cell index.
type Raster struct {
	cols   int
	rows   int
	width  float64 // Course width in world units
	height float64 // Course height in world units
	cells  []game.Terrain
}

// LoadRaster reads a PNG course map from disk
func LoadRaster(path string, bounds game.Bounds) (*Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open course map: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode course map %s: %w", path, err)
	}
	return NewRaster(img, bounds), nil
}

// FallbackRaster is an all-fairway 32x32 map, used when the course image is unavailable
func FallbackRaster(bounds game.Bounds) *Raster {
	const tiles = 32
	return &Raster{
		cols:   tiles,
		rows:   tiles,
		width:  bounds.Width,
		height: bounds.Height,
		cells:  make([]game.Terrain, tiles*tiles), // zero value is fairway
	}
}

// NewRaster classifies every pixel of img
func NewRaster(img image.Image, bounds game.Bounds) *Raster {
	b := img.Bounds()
	r := &Raster{
		cols:   b.Dx(),
		rows:   b.Dy(),
		width:  bounds.Width,
		height: bounds.Height,
		cells:  make([]game.Terrain, b.Dx()*b.Dy()),
	}
	for y := 0; y < r.rows; y++ {
		for x := 0; x < r.cols; x++ {
			r.cells[y*r.cols+x] = ClassifyColor(img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return r
}

// ClassifyColor maps a map pixel to a terrain using the engine's color thresholds.
// The hole (near black) and the tee (strong red) are plain fairway.
func ClassifyColor(c color.Color) game.Terrain {
	r16, g16, b16, _ := c.RGBA()
	r, g, b := int(r16>>8), int(g16>>8), int(b16>>8)

	switch {
	case r < 30 && g < 30 && b < 30:
		return game.TerrainFairway
	case r > 150 && r > g+40 && r > b+40:
		return game.TerrainFairway
	case b > 120 && b > g+20 && b > r+20:
		return game.TerrainWater
	case r < 70 && g < 80 && b < 70 && g <= r+20:
		return game.TerrainForest
	case r > 130 && g > 130 && b < 100 && abs(r-g) < 30 && r+g > 260 && g < 200:
		return game.TerrainSand
	case g > 200 && r > 80 && b < 150 && g > r && g > b:
		return game.TerrainSmooth
	case g >= 85 && g <= 170 && g > r+8 && g > b+8 && r <= 120 && b <= 120:
		return game.TerrainRough
	}
	return game.TerrainFairway
}

// cellIndex returns the pixel cell for a world position, clamped to the map
func (r *Raster) cellIndex(p game.Point2D) int {
	col := int(p.X / r.width * float64(r.cols))
	row := int(p.Y / r.height * float64(r.rows))

	if col < 0 {
		col = 0
	} else if col >= r.cols {
		col = r.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= r.rows {
		row = r.rows - 1
	}

	return row*r.cols + col
}

// TerrainAt returns the terrain under p
func (r *Raster) TerrainAt(p game.Point2D) (game.Terrain, error) {
	if len(r.cells) == 0 {
		return game.TerrainFairway, game.NewError(game.TERRAIN_QUERY_FAILED, "empty course map")
	}
	if !p.IsFinite() {
		return game.TerrainFairway, game.NewError(game.TERRAIN_QUERY_FAILED, fmt.Sprintf("non-finite point %v", p))
	}
	return r.cells[r.cellIndex(p)], nil
}

// IsSand reports whether p is in a bunker
func (r *Raster) IsSand(p game.Point2D) (bool, error) {
	t, err := r.TerrainAt(p)
	if err != nil {
		return false, err
	}
	return t == game.TerrainSand, nil
}

// IsHazard reports whether p is water or forest
func (r *Raster) IsHazard(p game.Point2D) (bool, error) {
	t, err := r.TerrainAt(p)
	if err != nil {
		return false, err
	}
	return t.IsHazard(), nil
}

// Counts returns how many map cells fall in each terrain, for startup logging
func (r *Raster) Counts() map[game.Terrain]int {
	counts := make(map[game.Terrain]int)
	for _, t := range r.cells {
		counts[t]++
	}
	return counts
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
