// Package report produces composite-rating diagnostic reports: it runs the
// four canonical classification-bucket queries and hands the resulting
// series to a histogram renderer.
package report

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/plazar/ratings/pkg/composite"
	"github.com/plazar/ratings/pkg/database"
	"github.com/sirupsen/logrus"
)

// DefaultBins is the histogram bin count used when the caller supplies none.
const DefaultBins = 1000

// Color identifies the presentation role of a series. The renderer chooses
// the actual colors; the driver only fixes the roles and their order.
type Color int

// Series presentation roles, in rendering order
const (
	ColorNeutral Color = iota // all candidates
	ColorWarning              // RFI / noise
	ColorPulsar               // known or harmonic pulsars
	ColorBest                 // human classes 1-3
)

// Series is one labeled value sequence handed to the renderer.
type Series struct {
	Label  string
	Color  Color
	Values []float64
}

// RenderRequest carries everything a renderer needs to draw the report.
type RenderRequest struct {
	Title     string
	XLabel    string
	YLabel    string
	Bins      int
	Normalize bool
	LogScale  bool
	Series    []Series
}

// Renderer is the external visualization collaborator.
type Renderer interface {
	Render(ctx context.Context, req *RenderRequest) error
}

// Options control report production.
type Options struct {
	Where     string
	Bins      int
	Normalize bool
	LogScale  bool
}

// bucket is one of the four canonical query shapes. The slice order below
// is the rendering contract.
type bucket struct {
	label string
	color Color
	codes []int
}

func reportBuckets() []bucket {
	return []bucket{
		{label: "All Cands", color: ColorNeutral, codes: nil},
		{label: "RFI/Noise", color: ColorWarning, codes: []int{4, 5}},
		{label: "Known/Harmonic", color: ColorPulsar, codes: []int{6, 7}},
		{label: "Class 1/2/3", color: ColorBest, codes: []int{1, 2, 3}},
	}
}

// Driver orchestrates report production. It holds no per-run state: every
// Produce call builds its queries fresh.
type Driver struct {
	log      logrus.FieldLogger
	builder  *composite.Builder
	client   database.ClientInterface
	renderer Renderer
}

// NewDriver creates a report driver.
func NewDriver(logger *logrus.Logger, builder *composite.Builder, client database.ClientInterface, renderer Renderer) *Driver {
	return &Driver{
		log:      logger.WithField("component", "report"),
		builder:  builder,
		client:   client,
		renderer: renderer,
	}
}

// Produce runs the four bucket queries for the canonical expression and
// renders the surviving series as histograms.
func (d *Driver) Produce(ctx context.Context, canonicalExpr string, opts Options) error {
	if opts.Bins <= 0 {
		opts.Bins = DefaultBins
	}

	log := d.log.WithField("run_id", uuid.New().String())

	series, err := d.collect(ctx, canonicalExpr, opts, log)
	if err != nil {
		return err
	}

	req := &RenderRequest{
		Title:     canonicalExpr,
		XLabel:    "Composite rating value",
		YLabel:    "Number",
		Bins:      opts.Bins,
		Normalize: opts.Normalize,
		LogScale:  opts.LogScale,
		Series:    series,
	}

	return d.renderer.Render(ctx, req)
}

// collect runs the bucket queries strictly sequentially and returns the
// non-empty series in the fixed bucket order. An empty bucket is valid and
// is simply skipped; each surviving label embeds the literal value count.
func (d *Driver) collect(ctx context.Context, canonicalExpr string, opts Options, log logrus.FieldLogger) ([]Series, error) {
	series := make([]Series, 0, 4)

	for _, b := range reportBuckets() {
		query := d.builder.Build(canonicalExpr, composite.Options{
			Where:           opts.Where,
			Classifications: b.codes,
		})

		values, err := d.client.QueryValues(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("query for %q bucket failed: %w", b.label, err)
		}

		log.WithFields(logrus.Fields{
			"bucket": b.label,
			"count":  len(values),
		}).Debug("Collected bucket values")

		if len(values) == 0 {
			continue
		}

		series = append(series, Series{
			Label:  fmt.Sprintf("%s (%d)", b.label, len(values)),
			Color:  b.color,
			Values: values,
		})
	}

	return series, nil
}
