// Command spaceshot captures an output or a region of a Wayland desktop
// to a PNG file, optionally copying it to the clipboard and notifying
// the desktop.
package main

import (
	"os"
	"path/filepath"

	"github.com/Mabi19/spaceshot/internal/app"
)

func main() {
	os.Exit(int(app.Run(filepath.Base(os.Args[0]), os.Args[1:])))
}
