// Package pool provides sync.Pool backed buffers for the per-frame rendering
// paths, which would otherwise allocate a fresh builder and grid every tick.
package pool

import (
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
)

var stringBuilderPool = sync.Pool{
	New: func() any {
		return &strings.Builder{}
	},
}

// GetStringBuilder returns an empty builder from the pool.
func GetStringBuilder() *strings.Builder {
	return stringBuilderPool.Get().(*strings.Builder)
}

// PutStringBuilder resets sb and returns it to the pool.
func PutStringBuilder(sb *strings.Builder) {
	sb.Reset()
	stringBuilderPool.Put(sb)
}

// Grid is a reusable character raster.
type Grid struct {
	Width  int
	Height int
	Cells  [][]rune
}

var gridPool = sync.Pool{
	New: func() any {
		return &Grid{}
	},
}

// GetGrid returns a blank width x height grid filled with spaces.
func GetGrid(width, height int) *Grid {
	g := gridPool.Get().(*Grid)
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if cap(g.Cells) < height {
		g.Cells = make([][]rune, height)
	}
	g.Cells = g.Cells[:height]
	for y := range g.Cells {
		row := g.Cells[y]
		if cap(row) < width {
			row = make([]rune, width)
		}
		row = row[:width]
		for x := range row {
			row[x] = ' '
		}
		g.Cells[y] = row
	}
	g.Width = width
	g.Height = height
	return g
}

// PutGrid returns g to the pool.
func PutGrid(g *Grid) {
	if g == nil {
		return
	}
	gridPool.Put(g)
}

// Set writes r at (x, y). Out-of-bounds writes are dropped. Overwriting
// either half of a wide rune blanks the other half.
func (g *Grid) Set(x, y int, r rune) {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return
	}
	row := g.Cells[y]
	if row[x] == continuation && x > 0 {
		row[x-1] = ' '
	}
	if x+1 < g.Width && row[x+1] == continuation {
		row[x+1] = ' '
	}
	row[x] = r
}

// At returns the rune at (x, y), or a space when out of bounds.
func (g *Grid) At(x, y int) rune {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return ' '
	}
	return g.Cells[y][x]
}

// continuation marks the cell covered by the right half of a wide rune.
const continuation rune = 0

// WriteString writes s starting at (x, y), clipped to the row. Wide runes
// take two cells; one that would straddle the right edge becomes a space.
func (g *Grid) WriteString(x, y int, s string) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		switch {
		case w <= 0:
			continue
		case w == 2 && x == g.Width-1:
			g.Set(x, y, ' ')
		case w == 2:
			g.Set(x, y, r)
			g.Set(x+1, y, continuation)
		default:
			g.Set(x, y, r)
		}
		x += w
	}
}

// String joins the rows with newlines.
func (g *Grid) String() string {
	sb := GetStringBuilder()
	defer PutStringBuilder(sb)
	for y, row := range g.Cells {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, r := range row {
			if r != continuation {
				sb.WriteRune(r)
			}
		}
	}
	return sb.String()
}
