package gamemap

import (
	"encoding/json"
	"math/rand"
	"testing"
)

func TestInBounds(t *testing.T) {
	g := New(10, 8)
	cases := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{9, 7, true},
		{-1, 0, false},
		{10, 0, false},
		{0, 8, false},
	}
	for _, c := range cases {
		got := g.InBounds(c.x, c.y)
		if got != c.want {
			t.Errorf("InBounds(%d,%d)=%v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestWalkable(t *testing.T) {
	g := New(5, 5)
	// all walls initially
	if g.Walkable(2, 2) {
		t.Error("wall cell should not be walkable")
	}
	g.Set(2, 2, Floor)
	if !g.Walkable(2, 2) {
		t.Error("floor cell should be walkable")
	}
	g.Set(2, 2, FlagA)
	if !g.Walkable(2, 2) {
		t.Error("flag cell should be walkable")
	}
	if g.Walkable(-1, 0) {
		t.Error("out-of-bounds should not be walkable")
	}
}

func TestNeighborsClipAtEdges(t *testing.T) {
	g := New(5, 4)
	cases := []struct {
		name string
		x, y int
		conn Connectivity
		want int
	}{
		{"moore interior", 2, 2, Moore, 8},
		{"moore corner", 0, 0, Moore, 3},
		{"moore edge", 2, 0, Moore, 5},
		{"moore far corner", 4, 3, Moore, 3},
		{"von neumann interior", 2, 2, VonNeumann, 4},
		{"von neumann corner", 0, 0, VonNeumann, 2},
		{"von neumann edge", 0, 2, VonNeumann, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := g.Neighbors(tc.x, tc.y, tc.conn)
			if len(got) != tc.want {
				t.Fatalf("Neighbors(%d,%d) returned %d points, want %d", tc.x, tc.y, len(got), tc.want)
			}
			for _, p := range got {
				if !g.InBounds(p.X, p.Y) {
					t.Errorf("neighbor %v out of bounds", p)
				}
				if p.X == tc.x && p.Y == tc.y {
					t.Errorf("neighbors of (%d,%d) must not include the cell itself", tc.x, tc.y)
				}
			}
		})
	}
}

func TestCountNeighborsMatchesNeighbors(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g := NewNoise(12, 9, 0.5, rng)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			want := 0
			for _, p := range g.Neighbors(x, y, Moore) {
				if g.At(p.X, p.Y) == Wall {
					want++
				}
			}
			if got := g.CountNeighbors(x, y, Moore, Wall); got != want {
				t.Fatalf("CountNeighbors(%d,%d)=%d, want %d", x, y, got, want)
			}
		}
	}
}

func TestNewNoiseIsReproducible(t *testing.T) {
	a := NewNoise(30, 20, 0.5, rand.New(rand.NewSource(42)))
	b := NewNoise(30, 20, 0.5, rand.New(rand.NewSource(42)))
	if !a.Equal(b) {
		t.Fatal("same seed should produce the same noise")
	}
}

func TestNewNoiseExtremes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if n := NewNoise(8, 8, 1, rng).Count(Wall); n != 64 {
		t.Errorf("wall probability 1 gave %d walls, want 64", n)
	}
	if n := NewNoise(8, 8, 0, rng).Count(Floor); n != 64 {
		t.Errorf("wall probability 0 gave %d floors, want 64", n)
	}
}

func TestCloneIsDeep(t *testing.T) {
	g := New(4, 4)
	c := g.Clone()
	c.Set(1, 1, Floor)
	if g.At(1, 1) != Wall {
		t.Fatal("mutating a clone must not touch the original")
	}
	g.CopyFrom(c)
	if !g.Equal(c) {
		t.Fatal("CopyFrom should make the grids equal")
	}
}

func TestParseRoundTrip(t *testing.T) {
	rows := []string{
		"#####",
		"#A..#",
		"#..B#",
		"#####",
	}
	g, err := Parse(rows...)
	if err != nil {
		t.Fatal(err)
	}
	if g.Width != 5 || g.Height != 4 {
		t.Fatalf("size = %dx%d, want 5x4", g.Width, g.Height)
	}
	if p, ok := g.Find(FlagB); !ok || p != (Point{3, 2}) {
		t.Errorf("Find(FlagB) = %v,%v; want (3,2)", p, ok)
	}

	data, err := json.Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	var back Grid
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Equal(g) {
		t.Errorf("JSON round trip changed the grid:\n%s\nvs\n%s", back.String(), g.String())
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	if _, err := Parse("###", "##"); err == nil {
		t.Error("ragged rows should fail")
	}
	if _, err := Parse("#x#"); err == nil {
		t.Error("unknown rune should fail")
	}
	if _, err := Parse(); err == nil {
		t.Error("empty input should fail")
	}
}

func TestManhattan(t *testing.T) {
	if d := Manhattan(Point{1, 2}, Point{4, 0}); d != 5 {
		t.Errorf("Manhattan = %d, want 5", d)
	}
}
