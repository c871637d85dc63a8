package display

import (
	"fmt"
	"io"

	"github.com/backmassage/reviewtool/internal/term"
)

const banner = ` ___           _             _____         _
| _ \_____ __(_)_____ __ __|_   _|__  ___| |
|   / -_) V /| / -_) V  V /  | |/ _ \/ _ \ |
|_|_\___|\_/ |_\___|\_/\_/   |_|\___/\___/_|
`

// PrintBanner writes the ASCII art banner and version line to w, in
// magenta when colors are enabled.
func PrintBanner(w io.Writer, version string) {
	term.Magenta.Fprint(w, banner)
	fmt.Fprintf(w, "reviewtool v%s\n\n", version)
}
