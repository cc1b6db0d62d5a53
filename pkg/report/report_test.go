package report

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/plazar/ratings/internal/testutil"
	"github.com/plazar/ratings/pkg/composite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureRenderer records the render request instead of drawing it
type captureRenderer struct {
	req *RenderRequest
	err error
}

func (c *captureRenderer) Render(_ context.Context, req *RenderRequest) error {
	c.req = req
	return c.err
}

func constValues(n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = float64(i)
	}

	return values
}

func newTestDriver(fake *testutil.FakeDatabase, renderer Renderer) *Driver {
	builder := composite.NewBuilder(composite.DefaultSchema())
	return NewDriver(logrus.New(), builder, fake, renderer)
}

func TestDriver_Produce_BucketLabelsAndOmission(t *testing.T) {
	// Four buckets returning 100, 10, 5 and 0 values: the empty bucket is
	// omitted and each surviving label embeds its literal count.
	counts := []int{100, 10, 5, 0}
	call := 0

	fake := &testutil.FakeDatabase{
		ValuesFunc: func(_ context.Context, _ string) ([]float64, error) {
			values := constValues(counts[call])
			call++
			return values, nil
		},
	}

	capture := &captureRenderer{}
	driver := newTestDriver(fake, capture)

	err := driver.Produce(context.Background(), "rat12.value", Options{})
	require.NoError(t, err)
	require.NotNil(t, capture.req)

	require.Len(t, capture.req.Series, 3)
	assert.Equal(t, "All Cands (100)", capture.req.Series[0].Label)
	assert.Equal(t, "RFI/Noise (10)", capture.req.Series[1].Label)
	assert.Equal(t, "Known/Harmonic (5)", capture.req.Series[2].Label)

	assert.Equal(t, ColorNeutral, capture.req.Series[0].Color)
	assert.Equal(t, ColorWarning, capture.req.Series[1].Color)
	assert.Equal(t, ColorPulsar, capture.req.Series[2].Color)
}

func TestDriver_Produce_QueryShapes(t *testing.T) {
	fake := &testutil.FakeDatabase{
		ValuesFunc: func(_ context.Context, _ string) ([]float64, error) {
			return []float64{1}, nil
		},
	}

	driver := newTestDriver(fake, &captureRenderer{})

	err := driver.Produce(context.Background(), "rat12.value", Options{Where: "headers.nchan > 0"})
	require.NoError(t, err)

	require.Len(t, fake.Queries, 4)

	// All-candidates query carries no classification restriction.
	assert.NotContains(t, fake.Queries[0], "pdm_classifications")

	assert.Contains(t, fake.Queries[1], "pdm_classifications.rank IN (4,5)")
	assert.Contains(t, fake.Queries[2], "pdm_classifications.rank IN (6,7)")
	assert.Contains(t, fake.Queries[3], "pdm_classifications.rank IN (1,2,3)")

	for _, query := range fake.Queries {
		assert.Contains(t, query, "WHERE headers.nchan > 0")
		assert.True(t, strings.HasSuffix(query, "HAVING composite_rating IS NOT NULL"))
	}
}

func TestDriver_Produce_RenderRequest(t *testing.T) {
	fake := &testutil.FakeDatabase{
		ValuesFunc: func(_ context.Context, _ string) ([]float64, error) {
			return []float64{1, 2, 3}, nil
		},
	}

	capture := &captureRenderer{}
	driver := newTestDriver(fake, capture)

	err := driver.Produce(context.Background(), "pdm_candidates.snr", Options{
		Bins:      200,
		Normalize: true,
		LogScale:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, "pdm_candidates.snr", capture.req.Title)
	assert.Equal(t, "Composite rating value", capture.req.XLabel)
	assert.Equal(t, "Number", capture.req.YLabel)
	assert.Equal(t, 200, capture.req.Bins)
	assert.True(t, capture.req.Normalize)
	assert.True(t, capture.req.LogScale)
}

func TestDriver_Produce_DefaultBins(t *testing.T) {
	fake := &testutil.FakeDatabase{
		ValuesFunc: func(_ context.Context, _ string) ([]float64, error) {
			return []float64{1}, nil
		},
	}

	capture := &captureRenderer{}
	driver := newTestDriver(fake, capture)

	require.NoError(t, driver.Produce(context.Background(), "1", Options{}))
	assert.Equal(t, DefaultBins, capture.req.Bins)
}

func TestDriver_Produce_QueryError(t *testing.T) {
	queryErr := errors.New("Unknown column 'pdm_candidates.bogus' in 'field list'")

	fake := &testutil.FakeDatabase{
		ValuesFunc: func(_ context.Context, _ string) ([]float64, error) {
			return nil, queryErr
		},
	}

	capture := &captureRenderer{}
	driver := newTestDriver(fake, capture)

	err := driver.Produce(context.Background(), "pdm_candidates.bogus", Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, queryErr)
	assert.Nil(t, capture.req, "renderer must not run after a query failure")

	// Failed on the first bucket, no further queries issued.
	assert.Len(t, fake.Queries, 1)
}
