// Package rater defines the rating plug-in interface and the side-effecting
// raters that upload or transfer candidate data products.
package rater

import (
	"context"
	"errors"
)

// Static errors
var (
	// ErrMissingPrerequisite is returned when a side-effect rating is
	// invoked for a candidate lacking its remote-archive identifier.
	ErrMissingPrerequisite = errors.New("candidate is not uploaded to the remote archive")
	// ErrTransferFailure is returned when an external file transfer reports
	// a non-zero completion status.
	ErrTransferFailure = errors.New("file transfer failed")
	// ErrProductMissing is returned when a rater's data product file does
	// not exist on disk.
	ErrProductMissing = errors.New("data product file does not exist")
	// ErrRaterUnknown is returned when a rater has no matching rating type
	// in the store.
	ErrRaterUnknown = errors.New("no rating type registered for rater")
)

// Header carries the observation header fields raters consume.
type Header struct {
	HeaderID   int64
	SourceName string
}

// Candidate identifies one pulsar candidate. CornellCandID is the remote
// archive identifier; it is nil until the candidate itself has been
// uploaded.
type Candidate struct {
	PdmCandID     int64
	CornellCandID *int64
}

// Product points at the candidate's folded data product (.pfd file).
type Product struct {
	Filename string
}

// Rater scores one candidate. Implementations may be pure database-backed
// computations or may perform external side effects; either way Rate must
// be all-or-nothing — on error no partial side effect may remain.
type Rater interface {
	Name() string
	Version() int
	Description() string
	Rate(ctx context.Context, hdr *Header, cand *Candidate, prod *Product) (float64, error)
}
