package rater

import (
	"context"
	"fmt"

	"github.com/plazar/ratings/pkg/database"
	"github.com/sirupsen/logrus"
)

// Job pairs one candidate with its header and data product.
type Job struct {
	Header    *Header
	Candidate *Candidate
	Product   *Product
}

// Runner applies raters to candidates sequentially and stores the resulting
// values in the ratings relation. Each rater's id is resolved once from
// rating_types by name and version.
type Runner struct {
	log    logrus.FieldLogger
	client database.ClientInterface
}

// NewRunner creates a runner storing values through the given client.
func NewRunner(logger *logrus.Logger, client database.ClientInterface) *Runner {
	return &Runner{
		log:    logger.WithField("component", "runner"),
		client: client,
	}
}

// Run rates every job with every rater. A failing rater stops work on that
// candidate and the error is returned; nothing is retried.
func (r *Runner) Run(ctx context.Context, raters []Rater, jobs []Job) error {
	ids := make(map[string]int, len(raters))

	for _, rt := range raters {
		id, err := r.resolveRatingID(ctx, rt)
		if err != nil {
			return err
		}

		ids[rt.Name()] = id
	}

	for _, job := range jobs {
		for _, rt := range raters {
			value, err := rt.Rate(ctx, job.Header, job.Candidate, job.Product)
			if err != nil {
				return fmt.Errorf("rater %q on candidate %d: %w", rt.Name(), job.Candidate.PdmCandID, err)
			}

			if err := r.storeValue(ctx, job.Candidate.PdmCandID, ids[rt.Name()], value); err != nil {
				return err
			}
		}
	}

	return nil
}

// resolveRatingID finds the rating_types row matching the rater's name and
// version.
func (r *Runner) resolveRatingID(ctx context.Context, rt Rater) (int, error) {
	query := fmt.Sprintf("SELECT rating_id FROM rating_types WHERE name = '%s' AND version = %d",
		rt.Name(), rt.Version())

	rows, err := r.client.QueryRows(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve rating id: %w", err)
	}

	if len(rows) == 0 {
		return 0, fmt.Errorf("%w: %s v%d", ErrRaterUnknown, rt.Name(), rt.Version())
	}

	id, ok := rows[0]["rating_id"].(int64)
	if !ok {
		return 0, fmt.Errorf("%w: %s v%d has a non-integer rating_id", ErrRaterUnknown, rt.Name(), rt.Version())
	}

	return int(id), nil
}

func (r *Runner) storeValue(ctx context.Context, candID int64, ratingID int, value float64) error {
	query := fmt.Sprintf("INSERT INTO ratings (pdm_cand_id, rating_id, value) VALUES (%d, %d, %g)",
		candID, ratingID, value)

	if err := r.client.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to store rating value: %w", err)
	}

	return nil
}
