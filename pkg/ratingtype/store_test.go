package ratingtype

import (
	"context"
	"testing"

	"github.com/plazar/ratings/internal/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRows() []map[string]interface{} {
	return []map[string]interface{}{
		{
			"rating_id":   int64(1),
			"name":        "Profile Chi-Squared",
			"version":     int64(3),
			"description": "Reduced chi-squared of the folded profile.",
		},
		{
			"rating_id":   int64(12),
			"name":        "Subband SNR",
			"version":     int64(1),
			"description": "SNR computed per subband.",
		},
	}
}

func TestStore_List(t *testing.T) {
	fake := &testutil.FakeDatabase{
		RowsFunc: func(_ context.Context, _ string) ([]map[string]interface{}, error) {
			return testRows(), nil
		},
	}

	store := NewStore(logrus.New(), fake)

	types, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, types, 2)

	assert.Equal(t, 1, types[0].RatingID)
	assert.Equal(t, "Profile Chi-Squared", types[0].Name)
	assert.Equal(t, 3, types[0].Version)
	assert.Equal(t, 12, types[1].RatingID)

	require.Len(t, fake.Queries, 1)
	assert.Equal(t, "SELECT * FROM rating_types", fake.Queries[0])
}

func TestStore_Get(t *testing.T) {
	fake := &testutil.FakeDatabase{
		RowsFunc: func(_ context.Context, _ string) ([]map[string]interface{}, error) {
			return testRows()[1:], nil
		},
	}

	store := NewStore(logrus.New(), fake)

	types, err := store.Get(context.Background(), 12)
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, "Subband SNR", types[0].Name)

	require.Len(t, fake.Queries, 1)
	assert.Equal(t, "SELECT * FROM rating_types WHERE rating_id IN (12)", fake.Queries[0])
}

func TestStore_Get_NotFound(t *testing.T) {
	fake := &testutil.FakeDatabase{}
	store := NewStore(logrus.New(), fake)

	_, err := store.Get(context.Background(), 999)
	assert.ErrorIs(t, err, ErrRatingNotFound)

	_, err = store.Get(context.Background())
	assert.ErrorIs(t, err, ErrRatingNotFound)
}
