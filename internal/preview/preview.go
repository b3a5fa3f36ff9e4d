// Package preview is the interactive level viewer shared by the local
// binaries and the SSH server. The caller owns the screen.
package preview

import (
	"fmt"
	"math/rand"

	"github.com/gdamore/tcell/v2"

	"ctf-cavegen/internal/generate"
	"ctf-cavegen/internal/render"
)

const helpLine = "[r] new level  [p] path  [t] theme  [q] quit"

// LevelGenerator is satisfied by *generate.Generator.
type LevelGenerator interface {
	Generate(width, height int, rng *rand.Rand) (*generate.Level, error)
}

// Preview holds the viewer state for one screen.
type Preview struct {
	screen   tcell.Screen
	renderer *render.Renderer
	gen      LevelGenerator

	width, height int
	seed          int64
	showPath      bool

	level *generate.Level
	err   error
}

// New returns a Preview that will show width×height levels starting at seed.
func New(screen tcell.Screen, gen LevelGenerator, width, height int, seed int64, theme render.Theme) *Preview {
	return &Preview{
		screen:   screen,
		renderer: render.NewRenderer(screen, theme),
		gen:      gen,
		width:    width,
		height:   height,
		seed:     seed,
	}
}

// Run generates the first level and loops until the user quits or the
// screen is finalized.
func Run(screen tcell.Screen, gen LevelGenerator, width, height int, seed int64, theme render.Theme) {
	New(screen, gen, width, height, seed, theme).Run()
}

// Run is the event loop.
func (p *Preview) Run() {
	p.regenerate()
	for {
		p.Draw()

		ev := p.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			p.screen.Sync()
			p.renderer.Resize()
		case *tcell.EventKey:
			if p.Handle(keyToAction(ev)) {
				return
			}
		}
	}
}

// Handle applies a, reporting whether the viewer should close.
func (p *Preview) Handle(a Action) (quit bool) {
	switch a {
	case ActionQuit:
		return true
	case ActionRegenerate:
		p.seed++
		p.regenerate()
	case ActionTogglePath:
		p.showPath = !p.showPath
	case ActionNextTheme:
		p.renderer.SetTheme(render.NextTheme(p.renderer.Theme()))
	}
	return false
}

// Draw renders the current level and HUD.
func (p *Preview) Draw() {
	p.renderer.DrawLevel(p.level, p.showPath)
	lines := []string{render.StatusLine(p.level, p.seed)}
	if p.err != nil {
		lines = append(lines, fmt.Sprintf("generation failed: %v", p.err))
	}
	lines = append(lines, helpLine+"  theme: "+p.renderer.Theme().Name)
	p.renderer.DrawHUD(lines)
}

// Level returns the level on screen, nil after a failed generation.
func (p *Preview) Level() *generate.Level { return p.level }

// Seed returns the seed of the level on screen.
func (p *Preview) Seed() int64 { return p.seed }

func (p *Preview) regenerate() {
	p.level, p.err = p.gen.Generate(p.width, p.height, rand.New(rand.NewSource(p.seed)))
}
