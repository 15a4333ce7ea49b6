package outwriter

import (
	"os"

	"github.com/huangsam/reportboard/internal/contract"
	"golang.org/x/term"
)

// terminalWidth returns the width override, the detected terminal width, or 80.
func terminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detected, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detected <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return detected
}

// GetMaxCellWidth splits the terminal width across columns of the records table.
func GetMaxCellWidth(cfg *contract.Config, columns int) int {
	if columns <= 0 {
		columns = 1
	}
	// Row number column plus borders, separators and padding
	available := terminalWidth(cfg) - 8 - 3*columns
	width := available / columns
	if width < 8 {
		return 8
	}
	if width > 40 {
		return 40
	}
	return width
}
