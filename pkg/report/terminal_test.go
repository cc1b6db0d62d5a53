package report

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalRenderer_Render(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	renderer := NewTerminalRenderer(logrus.New(), &buf)

	req := &RenderRequest{
		Title:  "pdm_candidates.snr * rat12.value",
		XLabel: "Composite rating value",
		YLabel: "Number",
		Bins:   10,
		Series: []Series{
			{Label: "All Cands (4)", Color: ColorNeutral, Values: []float64{1, 2, 3, 4}},
			{Label: "RFI/Noise (2)", Color: ColorWarning, Values: []float64{1, 1}},
		},
	}

	require.NoError(t, renderer.Render(context.Background(), req))

	out := buf.String()
	assert.Contains(t, out, "pdm_candidates.snr * rat12.value")
	assert.Contains(t, out, "All Cands (4)")
	assert.Contains(t, out, "RFI/Noise (2)")
	assert.Contains(t, out, "█")

	// Series render in request order.
	assert.Less(t, strings.Index(out, "All Cands"), strings.Index(out, "RFI/Noise"))
}

func TestTerminalRenderer_Render_Empty(t *testing.T) {
	var buf bytes.Buffer
	renderer := NewTerminalRenderer(logrus.New(), &buf)

	require.NoError(t, renderer.Render(context.Background(), &RenderRequest{}))
	assert.Contains(t, buf.String(), "No values to plot.")
}

func TestBar(t *testing.T) {
	assert.Empty(t, bar(0, 10, false))
	assert.Equal(t, barWidth, len([]rune(bar(10, 10, false))))
	assert.NotEmpty(t, bar(1, 1000, false), "non-zero counts always draw at least one block")

	// Log scaling lengthens sparse bins relative to linear scaling.
	linear := len([]rune(bar(10, 1000, false)))
	logged := len([]rune(bar(10, 1000, true)))
	assert.Greater(t, logged, linear)
}
