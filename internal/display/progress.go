package display

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

// Progress is a file-count progress bar. Safe for concurrent use.
type Progress struct {
	bar *progressbar.ProgressBar
}

// NewProgress creates a bar for total items writing to w. Pass io.Discard
// to run silently.
func NewProgress(w io.Writer, total int, description string) *Progress {
	bar := progressbar.NewOptions(
		total,
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
		progressbar.OptionClearOnFinish(),
	)
	return &Progress{bar: bar}
}

// Add advances the bar by n items.
func (p *Progress) Add(n int) {
	_ = p.bar.Add(n)
}

// Finish completes the bar.
func (p *Progress) Finish() {
	_ = p.bar.Finish()
}
