package ratingtype

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/plazar/ratings/pkg/database"
	"github.com/sirupsen/logrus"
)

// Static errors
var (
	ErrRatingNotFound = errors.New("rating type not found")
)

const ratingTypesTable = "rating_types"

// Store fetches rating type definitions from the external store
type Store struct {
	log    logrus.FieldLogger
	client database.ClientInterface
}

// NewStore creates a rating type store backed by the given client.
func NewStore(logger *logrus.Logger, client database.ClientInterface) *Store {
	return &Store{
		log:    logger.WithField("component", "ratingtype"),
		client: client,
	}
}

// List returns every known rating type.
func (s *Store) List(ctx context.Context) ([]RatingType, error) {
	rows, err := s.client.QueryRows(ctx, "SELECT * FROM "+ratingTypesTable)
	if err != nil {
		return nil, fmt.Errorf("failed to list rating types: %w", err)
	}

	types := make([]RatingType, 0, len(rows))
	for _, row := range rows {
		types = append(types, fromRow(row))
	}

	return types, nil
}

// Get returns the rating types with the given ids. Requesting an unknown id
// yields ErrRatingNotFound when nothing matches.
func (s *Store) Get(ctx context.Context, ids ...int) ([]RatingType, error) {
	if len(ids) == 0 {
		return nil, ErrRatingNotFound
	}

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}

	query := fmt.Sprintf("SELECT * FROM %s WHERE rating_id IN (%s)", ratingTypesTable, strings.Join(parts, ","))

	rows, err := s.client.QueryRows(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rating types: %w", err)
	}

	if len(rows) == 0 {
		return nil, ErrRatingNotFound
	}

	types := make([]RatingType, 0, len(rows))
	for _, row := range rows {
		types = append(types, fromRow(row))
	}

	return types, nil
}
