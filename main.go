package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"ctf-cavegen/internal/config"
	"ctf-cavegen/internal/generate"
	"ctf-cavegen/internal/preview"
	"ctf-cavegen/internal/render"
)

func main() {
	cfg := config.Default()
	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "error: init screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	preview.Run(screen, generate.NewGenerator(cfg.Generation, nil),
		cfg.Width, cfg.Height, time.Now().UnixNano(), render.Themes[0])
}
