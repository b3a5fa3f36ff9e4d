package generate

import "ctf-cavegen/internal/gamemap"

// Graph is an undirected unit-weight adjacency list over the walkable
// cells of a finished grid.
type Graph struct {
	adj   map[gamemap.Point][]gamemap.Point
	edges int
}

// Path is an ordered cell sequence, both endpoints included.
type Path []gamemap.Point

// Len returns the number of steps in the path.
func (p Path) Len() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// BuildGraph links every pair of 4-adjacent walkable cells.
func BuildGraph(g *gamemap.Grid) *Graph {
	gr := &Graph{adj: make(map[gamemap.Point][]gamemap.Point)}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if !g.At(x, y).Walkable() {
				continue
			}
			p := gamemap.Point{X: x, Y: y}
			if _, ok := gr.adj[p]; !ok {
				gr.adj[p] = nil
			}
			// Only look right and down so each edge is added once.
			for _, q := range []gamemap.Point{p.Add(1, 0), p.Add(0, 1)} {
				if g.Walkable(q.X, q.Y) {
					gr.adj[p] = append(gr.adj[p], q)
					gr.adj[q] = append(gr.adj[q], p)
					gr.edges++
				}
			}
		}
	}
	return gr
}

// Len returns the number of vertices.
func (gr *Graph) Len() int { return len(gr.adj) }

// Edges returns the number of undirected edges.
func (gr *Graph) Edges() int { return gr.edges }

// Has reports whether p is a vertex.
func (gr *Graph) Has(p gamemap.Point) bool {
	_, ok := gr.adj[p]
	return ok
}

// Neighbors returns the vertices adjacent to p.
func (gr *Graph) Neighbors(p gamemap.Point) []gamemap.Point { return gr.adj[p] }

// bfs returns the parent links of a breadth-first search from src.
// The source maps to itself.
func (gr *Graph) bfs(src gamemap.Point) map[gamemap.Point]gamemap.Point {
	parent := map[gamemap.Point]gamemap.Point{src: src}
	if !gr.Has(src) {
		return parent
	}
	queue := []gamemap.Point{src}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range gr.adj[cur] {
			if _, seen := parent[n]; seen {
				continue
			}
			parent[n] = cur
			queue = append(queue, n)
		}
	}
	return parent
}

// Reachable returns how many vertices a search from src visits.
func (gr *Graph) Reachable(src gamemap.Point) int {
	if !gr.Has(src) {
		return 0
	}
	return len(gr.bfs(src))
}

// Verify returns a shortest path from a to b, or *NoPathError when the
// two are not connected.
func Verify(gr *Graph, a, b gamemap.Point) (Path, error) {
	if !gr.Has(a) || !gr.Has(b) {
		return nil, &NoPathError{From: a, To: b}
	}
	parent := gr.bfs(a)
	if _, ok := parent[b]; !ok {
		return nil, &NoPathError{From: a, To: b}
	}
	var rev Path
	for cur := b; ; cur = parent[cur] {
		rev = append(rev, cur)
		if cur == a {
			break
		}
	}
	path := make(Path, len(rev))
	for i, p := range rev {
		path[len(rev)-1-i] = p
	}
	return path, nil
}
