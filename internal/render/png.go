package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"ctf-cavegen/internal/gamemap"
	"ctf-cavegen/internal/generate"
)

// DefaultTileSize is the edge length of one cell in pixels.
const DefaultTileSize = 40

// tileFiles names the images LoadTileSet reads for each cell kind.
var tileFiles = map[gamemap.Cell]string{
	gamemap.Wall:  "wall.png",
	gamemap.Floor: "floor.png",
	gamemap.FlagA: "red_flag.png",
	gamemap.FlagB: "blue_flag.png",
}

var pathTint = color.NRGBA{R: 0xf5, G: 0xc5, B: 0x18, A: 0xff}

// TileSet maps each cell kind to a square image of Size pixels.
type TileSet struct {
	Size  int
	Tiles map[gamemap.Cell]image.Image
}

// DefaultTileSet returns flat-colored tiles.
func DefaultTileSet() TileSet {
	colors := map[gamemap.Cell]color.Color{
		gamemap.Wall:  color.NRGBA{R: 0x3b, G: 0x34, B: 0x2e, A: 0xff},
		gamemap.Floor: color.NRGBA{R: 0xc9, G: 0xb2, B: 0x8f, A: 0xff},
		gamemap.FlagA: color.NRGBA{R: 0xd6, G: 0x28, B: 0x28, A: 0xff},
		gamemap.FlagB: color.NRGBA{R: 0x1f, G: 0x5f, B: 0xd6, A: 0xff},
	}
	ts := TileSet{Size: DefaultTileSize, Tiles: make(map[gamemap.Cell]image.Image, len(colors))}
	for c, col := range colors {
		img := image.NewRGBA(image.Rect(0, 0, DefaultTileSize, DefaultTileSize))
		draw.Draw(img, img.Bounds(), &image.Uniform{C: col}, image.Point{}, draw.Src)
		ts.Tiles[c] = img
	}
	return ts
}

// LoadTileSet reads wall.png, floor.png, red_flag.png and blue_flag.png
// from dir. All tiles must be square and the same size.
func LoadTileSet(dir string) (TileSet, error) {
	ts := TileSet{Tiles: make(map[gamemap.Cell]image.Image, len(tileFiles))}
	for c, name := range tileFiles {
		img, err := decodePNG(filepath.Join(dir, name))
		if err != nil {
			return TileSet{}, err
		}
		b := img.Bounds()
		if b.Dx() != b.Dy() {
			return TileSet{}, fmt.Errorf("tile %s is %dx%d, want square", name, b.Dx(), b.Dy())
		}
		if ts.Size == 0 {
			ts.Size = b.Dx()
		} else if b.Dx() != ts.Size {
			return TileSet{}, fmt.Errorf("tile %s is %dpx, want %dpx", name, b.Dx(), ts.Size)
		}
		ts.Tiles[c] = img
	}
	return ts, nil
}

func decodePNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening tile: %w", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding tile %s: %w", path, err)
	}
	return img, nil
}

// Composite pastes one tile per cell into a new image. With overlayPath set,
// floor cells on the flag to flag path get a translucent tint.
func Composite(level *generate.Level, tiles TileSet, overlayPath bool) *image.RGBA {
	g := level.Grid
	s := tiles.Size
	dst := image.NewRGBA(image.Rect(0, 0, g.Width*s, g.Height*s))
	onPath := pathSet(level.Path)
	mask := &image.Uniform{C: color.Alpha{A: 0x70}}

	g.Each(func(x, y int, c gamemap.Cell) {
		rect := image.Rect(x*s, y*s, (x+1)*s, (y+1)*s)
		if tile, ok := tiles.Tiles[c]; ok {
			draw.Draw(dst, rect, tile, tile.Bounds().Min, draw.Src)
		}
		if overlayPath && c == gamemap.Floor && onPath.Has(gamemap.Point{X: x, Y: y}) {
			draw.DrawMask(dst, rect, &image.Uniform{C: pathTint}, image.Point{}, mask, image.Point{}, draw.Over)
		}
	})
	return dst
}

// WritePNG encodes img to w.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}
