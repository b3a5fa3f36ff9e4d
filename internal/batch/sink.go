package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"ctf-cavegen/internal/generate"
	"ctf-cavegen/internal/render"
)

// Sink receives finished batch items.
type Sink interface {
	Put(Item) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Item) error

func (f SinkFunc) Put(it Item) error { return f(it) }

type teeSink []Sink

// Tee returns a Sink that hands every item to each of sinks in order and
// stops at the first error.
func Tee(sinks ...Sink) Sink { return teeSink(sinks) }

func (t teeSink) Put(it Item) error {
	for _, s := range t {
		if err := s.Put(it); err != nil {
			return err
		}
	}
	return nil
}

// DirSink writes <id>.json and, when Tiles is set, <id>.png for every
// successful item. Failed items are skipped.
type DirSink struct {
	Dir         string
	Tiles       *render.TileSet
	OverlayPath bool
}

// NewDirSink creates dir if needed. A nil tiles disables PNG output.
func NewDirSink(dir string, tiles *render.TileSet) (*DirSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}
	return &DirSink{Dir: dir, Tiles: tiles}, nil
}

// Document is the JSON file written for one level.
type Document struct {
	ID    uuid.UUID       `json:"id"`
	Index int             `json:"index"`
	Seed  int64           `json:"seed"`
	Level *generate.Level `json:"level"`
}

func (d *DirSink) Put(it Item) error {
	if it.Err != nil {
		return nil
	}
	data, err := json.MarshalIndent(Document{ID: it.ID, Index: it.Index, Seed: it.Seed, Level: it.Level}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding level: %w", err)
	}
	if err := os.WriteFile(d.path(it, ".json"), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing level: %w", err)
	}
	if d.Tiles == nil {
		return nil
	}
	f, err := os.Create(d.path(it, ".png"))
	if err != nil {
		return fmt.Errorf("creating image: %w", err)
	}
	if err := render.WritePNG(f, render.Composite(it.Level, *d.Tiles, d.OverlayPath)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (d *DirSink) path(it Item, ext string) string {
	return filepath.Join(d.Dir, it.ID.String()+ext)
}
