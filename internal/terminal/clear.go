// Package terminal provides helpers for tidying up interactive prompts.
package terminal

import (
	"fmt"
	"io"
	"math"
	"os"

	"golang.org/x/term"
)

// ClearPreviousLines erases the last textLength characters of prompt and
// input from stdout, plus the line the cursor moved to after Enter. Nothing
// is written when stdout is not a terminal.
func ClearPreviousLines(textLength int) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return
	}
	width := 80
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		width = w
	}
	clearLines(os.Stdout, LinesFor(textLength, width)+1)
}

// LinesFor returns how many terminal rows textLength characters occupy at
// the given width. It is at least 1.
func LinesFor(textLength, width int) int {
	if width <= 0 {
		width = 80
	}
	n := int(math.Ceil(float64(textLength) / float64(width)))
	if n < 1 {
		n = 1
	}
	return n
}

func clearLines(w io.Writer, n int) {
	for i := 0; i < n; i++ {
		fmt.Fprint(w, "\r\x1b[2K")
		if i < n-1 {
			fmt.Fprint(w, "\x1b[1A")
		}
	}
}
