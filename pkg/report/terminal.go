package report

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

const (
	// maxDisplayBins caps how many bins are drawn; requests for finer
	// histograms are downsampled to fit a terminal.
	maxDisplayBins = 48
	barWidth       = 60
)

// TerminalRenderer draws report histograms as colored horizontal bar charts
// on a terminal. When Interactive is set it blocks after drawing until the
// user presses q.
type TerminalRenderer struct {
	log logrus.FieldLogger
	out io.Writer

	// Interactive enables the quit-on-keypress wait after rendering.
	Interactive bool
}

// NewTerminalRenderer creates a renderer writing to out.
func NewTerminalRenderer(logger *logrus.Logger, out io.Writer) *TerminalRenderer {
	return &TerminalRenderer{
		log: logger.WithField("component", "renderer"),
		out: out,
	}
}

var seriesColors = map[Color]*color.Color{
	ColorNeutral: color.New(color.FgWhite),
	ColorWarning: color.New(color.FgRed),
	ColorPulsar:  color.New(color.FgGreen),
	ColorBest:    color.New(color.FgCyan),
}

// Render draws one histogram per series, all sharing the same value range.
func (r *TerminalRenderer) Render(ctx context.Context, req *RenderRequest) error {
	if len(req.Series) == 0 {
		fmt.Fprintln(r.out, "No values to plot.")
		return nil
	}

	bins := req.Bins
	if bins > maxDisplayBins {
		bins = maxDisplayBins
	}

	lo, hi := ValueRange(req.Series)

	fmt.Fprintf(r.out, "%s\n", req.Title)
	fmt.Fprintf(r.out, "%s vs. %s\n\n", req.YLabel, req.XLabel)

	for _, s := range req.Series {
		if err := ctx.Err(); err != nil {
			return err
		}

		r.renderSeries(s, bins, lo, hi, req.Normalize, req.LogScale)
	}

	if r.Interactive {
		return r.waitForQuit()
	}

	return nil
}

func (r *TerminalRenderer) renderSeries(s Series, bins int, lo, hi float64, normalize, logScale bool) {
	c := seriesColors[s.Color]
	if c == nil {
		c = seriesColors[ColorNeutral]
	}

	fmt.Fprintln(r.out, c.Sprint(s.Label))

	h := NewHistogram(s.Values, bins, lo, hi)
	if normalize {
		h.Normalize()
	}

	maxCount := h.MaxCount()
	if maxCount == 0 {
		return
	}

	for i, count := range h.Counts {
		edge := h.Lo + float64(i)*h.BinWidth
		fmt.Fprintf(r.out, "%12.4g |%s %.4g\n", edge, c.Sprint(bar(count, maxCount, logScale)), count)
	}

	fmt.Fprintln(r.out)
}

// bar scales a count to a run of block characters. With logScale the bar
// length follows log10 so sparse bins stay visible next to dominant ones.
func bar(count, maxCount float64, logScale bool) string {
	if count <= 0 {
		return ""
	}

	frac := count / maxCount
	if logScale {
		// log10(1 + 9x) maps [0, 1] onto [0, 1]
		frac = math.Log10(1 + 9*frac)
	}

	n := int(frac * barWidth)
	if n < 1 {
		n = 1
	}

	return strings.Repeat("█", n)
}

// waitForQuit blocks until the user presses q (or ctrl-c) on the terminal.
func (r *TerminalRenderer) waitForQuit() error {
	fmt.Fprintln(r.out, "Press q to quit.")

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer func() {
		if restoreErr := term.Restore(fd, oldState); restoreErr != nil {
			r.log.WithError(restoreErr).Debug("Failed to restore terminal state")
		}
	}()

	buf := make([]byte, 1)

	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			return fmt.Errorf("failed to read keypress: %w", err)
		}

		switch buf[0] {
		case 'q', 'Q', 0x03:
			return nil
		}
	}
}
