package ui

import (
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// BarProgress draws one progress bar per file family.
type BarProgress struct {
	out io.Writer
	bar *progressbar.ProgressBar
}

func NewBarProgress(out io.Writer) *BarProgress {
	return &BarProgress{out: out}
}

func (p *BarProgress) Start(family string, total int) {
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.out),
		progressbar.OptionSetDescription(family+" files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
		}),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() { io.WriteString(p.out, "\n") }),
	)
}

func (p *BarProgress) Advance() {
	if p.bar != nil {
		p.bar.Add(1)
	}
}

func (p *BarProgress) Finish() {
	if p.bar != nil {
		p.bar.Finish()
		p.bar = nil
	}
}
