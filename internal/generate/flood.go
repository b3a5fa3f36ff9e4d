package generate

import (
	"sort"

	"github.com/zyedidia/generic/mapset"

	"ctf-cavegen/internal/gamemap"
)

// Region is the set of cells reached by one flood fill.
type Region struct {
	cells mapset.Set[gamemap.Point]
}

func newRegion() Region {
	return Region{cells: mapset.New[gamemap.Point]()}
}

// Len returns the number of cells in the region.
func (r Region) Len() int { return r.cells.Size() }

// Has reports whether p is in the region.
func (r Region) Has(p gamemap.Point) bool { return r.cells.Has(p) }

// Each calls fn for every cell in unspecified order.
func (r Region) Each(fn func(p gamemap.Point)) { r.cells.Each(fn) }

// Equal reports whether both regions hold exactly the same cells.
func (r Region) Equal(other Region) bool {
	if r.Len() != other.Len() {
		return false
	}
	equal := true
	r.cells.Each(func(p gamemap.Point) {
		if equal && !other.cells.Has(p) {
			equal = false
		}
	})
	return equal
}

// Points returns the cells sorted row-major.
func (r Region) Points() []gamemap.Point {
	out := make([]gamemap.Point, 0, r.Len())
	r.cells.Each(func(p gamemap.Point) { out = append(out, p) })
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// FloodFill returns every floor cell 4-connected to seed through floor
// cells. A seed that is not floor yields an empty region.
func FloodFill(g *gamemap.Grid, seed gamemap.Point) Region {
	region := newRegion()
	if !g.InBounds(seed.X, seed.Y) || g.At(seed.X, seed.Y) != gamemap.Floor {
		return region
	}
	region.cells.Put(seed)
	stack := []gamemap.Point{seed}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range g.Neighbors(cur.X, cur.Y, gamemap.VonNeumann) {
			if g.At(n.X, n.Y) != gamemap.Floor || region.cells.Has(n) {
				continue
			}
			region.cells.Put(n)
			stack = append(stack, n)
		}
	}
	return region
}

// ValidateDensity fails with *DensityError when the region's share of
// totalCells is outside [minFrac, maxFrac].
func ValidateDensity(r Region, totalCells int, minFrac, maxFrac float64) error {
	return checkDensity(r.Len(), totalCells, minFrac, maxFrac)
}

func checkDensity(floor, total int, minFrac, maxFrac float64) error {
	err := &DensityError{Floor: floor, Total: total, Min: minFrac, Max: maxFrac}
	if f := err.Fraction(); total == 0 || f < minFrac || f > maxFrac {
		return err
	}
	return nil
}
