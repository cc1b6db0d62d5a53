package rater

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransferRater_Rate(t *testing.T) {
	rater := NewTransferRater(logrus.New(), TransferConfig{Institution: "UBC"})

	var gotName string
	var gotArgs []string

	rater.runCommand = func(_ context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		return nil
	}

	path := writePfd(t, []byte{1, 2, 3})

	value, err := rater.Rate(context.Background(), nil,
		&Candidate{PdmCandID: 9, CornellCandID: int64Ptr(99)},
		&Product{Filename: path})

	require.NoError(t, err)
	assert.Equal(t, 1.0, value)

	assert.Equal(t, "rsync", gotName)
	require.Len(t, gotArgs, 3)
	assert.Equal(t, "-u", gotArgs[0])
	assert.Equal(t, path, gotArgs[1])
	assert.Equal(t, "mtan@miarka.physics.mcgill.ca:/data/alfa/PALFA/pfds/UBC/cand.pfd", gotArgs[2])
}

func TestTransferRater_Rate_TransferFailure(t *testing.T) {
	rater := NewTransferRater(logrus.New(), TransferConfig{})
	rater.runCommand = func(_ context.Context, _ string, _ ...string) error {
		return errors.New("exit status 12")
	}

	_, err := rater.Rate(context.Background(), nil,
		&Candidate{PdmCandID: 9, CornellCandID: int64Ptr(99)},
		&Product{Filename: writePfd(t, []byte{1})})

	assert.ErrorIs(t, err, ErrTransferFailure)
}

func TestTransferRater_Rate_MissingPrerequisite(t *testing.T) {
	rater := NewTransferRater(logrus.New(), TransferConfig{})

	called := false
	rater.runCommand = func(_ context.Context, _ string, _ ...string) error {
		called = true
		return nil
	}

	_, err := rater.Rate(context.Background(), nil,
		&Candidate{PdmCandID: 9},
		&Product{Filename: writePfd(t, []byte{1})})

	assert.ErrorIs(t, err, ErrMissingPrerequisite)
	assert.False(t, called, "no transfer may happen when the prerequisite is missing")
}
