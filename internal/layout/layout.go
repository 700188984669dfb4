package layout

import (
	"math"

	"github.com/Gaurav-Gosain/spatialwm/internal/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// Params holds the magnitudes used by every layout mode.
type Params struct {
	GridDepth   float64    `toml:"grid_depth"`
	GridSpacing float64    `toml:"grid_spacing"`
	GridCurve   float64    `toml:"grid_curve"`
	GridScale   mgl64.Vec3 `toml:"grid_scale"`

	AroundRadius float64 `toml:"around_radius"`
	AroundHeight float64 `toml:"around_height"`

	CockpitDistance float64 `toml:"cockpit_distance"`
	CockpitMargin   float64 `toml:"cockpit_margin"`
	// UnitsPerPixel converts a window's logical width/height into world units.
	UnitsPerPixel float64 `toml:"units_per_pixel"`

	// MinDistance is the smallest allowed gap between two window centers.
	MinDistance float64 `toml:"min_distance"`
}

// DefaultParams returns the stock layout magnitudes.
func DefaultParams() Params {
	return Params{
		GridDepth:       3,
		GridSpacing:     2,
		GridCurve:       0.1,
		GridScale:       mgl64.Vec3{1.5, 1, 1},
		AroundRadius:    5,
		AroundHeight:    1,
		CockpitDistance: 5,
		CockpitMargin:   0.9,
		UnitsPerPixel:   1.0 / 300,
		MinDistance:     0.75,
	}
}

// Item is one window handed to the engine, in layout order.
type Item struct {
	ID     string
	Width  float64
	Height float64
	Scale  mgl64.Vec3
}

// Result holds the computed transform for every placed item.
type Result struct {
	Positions map[string]mgl64.Vec3
	Scales    map[string]mgl64.Vec3
}

func newResult(n int) Result {
	return Result{
		Positions: make(map[string]mgl64.Vec3, n),
		Scales:    make(map[string]mgl64.Vec3, n),
	}
}

// Compute places items according to mode relative to cam. Only the given
// items appear in the result. With adjustScale false each item keeps its
// current scale. Compute is pure: identical inputs give identical output.
func Compute(mode Mode, items []Item, cam geom.Camera, adjustScale bool, p Params) (Result, error) {
	if geom.IsNil(cam) {
		return newResult(0), geom.ErrNoCamera
	}

	var res Result
	switch mode {
	case None:
		return newResult(0), nil
	case Grid:
		res = grid(items, cam, adjustScale, p)
	case Around:
		res = around(items, cam, adjustScale, p)
	case Cockpit:
		res = cockpit(items, cam, adjustScale, p)
	default:
		return newResult(0), ErrUnknownMode
	}

	res.Positions = geom.SeparateOverlapping(ids(items), res.Positions, p.MinDistance)
	return res, nil
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

// gridDims returns a roughly square column/row count for n cells.
func gridDims(n int) (cols, rows int) {
	if n == 0 {
		return 0, 0
	}
	cols = int(math.Ceil(math.Sqrt(float64(n))))
	rows = int(math.Ceil(float64(n) / float64(cols)))
	return cols, rows
}

func grid(items []Item, cam geom.Camera, adjustScale bool, p Params) Result {
	res := newResult(len(items))
	cols, rows := gridDims(len(items))

	for i, it := range items {
		col := i % cols
		row := i / cols
		x := (float64(col) - float64(cols-1)/2) * p.GridSpacing
		y := (float64(rows-1)/2 - float64(row)) * p.GridSpacing
		// Peripheral cells recede so the grid curves around the viewer.
		z := -p.GridDepth - math.Abs(x)*p.GridCurve - math.Abs(y)*p.GridCurve

		res.Positions[it.ID] = geom.RotatePosition(mgl64.Vec3{x, y, z}, cam)
		res.Scales[it.ID] = pickScale(adjustScale, p.GridScale, it.Scale)
	}
	return res
}

func around(items []Item, cam geom.Camera, adjustScale bool, p Params) Result {
	res := newResult(len(items))
	n := float64(len(items))

	for i, it := range items {
		angle := float64(i) / n * 2 * math.Pi
		x := math.Sin(angle) * p.AroundRadius
		z := -math.Cos(angle) * p.AroundRadius

		res.Positions[it.ID] = geom.RotatePosition(mgl64.Vec3{x, p.AroundHeight, z}, cam)
		res.Scales[it.ID] = pickScale(adjustScale, geom.Unit, it.Scale)
	}
	return res
}

// cockpit fits every window into the visible frustum at CockpitDistance.
func cockpit(items []Item, cam geom.Camera, adjustScale bool, p Params) Result {
	res := newResult(len(items))
	cols, rows := gridDims(len(items))
	if cols == 0 {
		return res
	}

	fov := mgl64.DegToRad(cam.FOV())
	aspect := cam.Aspect()
	if aspect <= 0 {
		aspect = 1
	}
	// FOV is vertical: the visible height comes first, width follows from aspect.
	maxHeight := 2 * math.Tan(fov/2) * p.CockpitDistance
	maxWidth := maxHeight * aspect
	cellW := maxWidth / float64(cols)
	cellH := maxHeight / float64(rows)

	for i, it := range items {
		col := i % cols
		row := i / cols
		x := (float64(col) - float64(cols-1)/2) * cellW
		y := (float64(rows-1)/2 - float64(row)) * cellH

		res.Positions[it.ID] = geom.RotatePosition(mgl64.Vec3{x, y, -p.CockpitDistance}, cam)

		if !adjustScale {
			res.Scales[it.ID] = it.Scale
			continue
		}
		factor := fitFactor(it, cellW, cellH, p)
		res.Scales[it.ID] = mgl64.Vec3{factor, factor, factor}
	}
	return res
}

// fitFactor scales a window down until it fits its cell, never up.
func fitFactor(it Item, cellW, cellH float64, p Params) float64 {
	worldW := it.Width * p.UnitsPerPixel
	worldH := it.Height * p.UnitsPerPixel
	factor := 1.0
	if worldW > 0 {
		factor = math.Min(factor, cellW/worldW)
	}
	if worldH > 0 {
		factor = math.Min(factor, cellH/worldH)
	}
	margin := p.CockpitMargin
	if margin <= 0 {
		margin = 1
	}
	return factor * margin
}

func pickScale(adjust bool, computed, current mgl64.Vec3) mgl64.Vec3 {
	if adjust {
		return computed
	}
	return current
}
