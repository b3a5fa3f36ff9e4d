// levelgen generates capture-the-flag cave levels from the command line.
//
//	levelgen generate --count 20 --out generated
//	levelgen print --ascii --path --seed 7
//	levelgen preview
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
