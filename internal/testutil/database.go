// Package testutil provides test doubles shared by the package tests,
// chiefly an in-memory stand-in for the MySQL store client.
package testutil

import (
	"context"

	"github.com/plazar/ratings/pkg/database"
)

// FakeDatabase implements database.ClientInterface for tests. Each method
// records the query it received and delegates to the matching hook; a nil
// hook returns empty results.
type FakeDatabase struct {
	ValuesFunc func(ctx context.Context, query string) ([]float64, error)
	RowsFunc   func(ctx context.Context, query string) ([]map[string]interface{}, error)
	ExecFunc   func(ctx context.Context, query string) error

	Queries []string
	Execs   []string
}

var _ database.ClientInterface = (*FakeDatabase)(nil)

// QueryValues records the query and delegates to ValuesFunc.
func (f *FakeDatabase) QueryValues(ctx context.Context, query string) ([]float64, error) {
	f.Queries = append(f.Queries, query)

	if f.ValuesFunc == nil {
		return []float64{}, nil
	}

	return f.ValuesFunc(ctx, query)
}

// QueryRows records the query and delegates to RowsFunc.
func (f *FakeDatabase) QueryRows(ctx context.Context, query string) ([]map[string]interface{}, error) {
	f.Queries = append(f.Queries, query)

	if f.RowsFunc == nil {
		return []map[string]interface{}{}, nil
	}

	return f.RowsFunc(ctx, query)
}

// Exec records the statement and delegates to ExecFunc.
func (f *FakeDatabase) Exec(ctx context.Context, query string) error {
	f.Execs = append(f.Execs, query)

	if f.ExecFunc == nil {
		return nil
	}

	return f.ExecFunc(ctx, query)
}

// Start is a no-op.
func (f *FakeDatabase) Start(_ context.Context) error { return nil }

// Stop is a no-op.
func (f *FakeDatabase) Stop() error { return nil }
