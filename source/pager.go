package source

import (
	"context"

	"github.com/treeder/gotils/v2"
)

const (
	// DefaultPageSize matches the remote service's limit.
	DefaultPageSize = 1000

	// DefaultMaxPages bounds a single fetch. The end-of-data signal is a
	// short page, so a remote that keeps returning full pages would spin
	// forever without a cap.
	DefaultMaxPages = 200
)

// Pager holds pagination settings. The zero value uses the defaults.
type Pager struct {
	PageSize int
	MaxPages int
}

// FetchAll pulls every page of a collection: skip advances by the page
// size until a short page signals exhaustion or the page cap is hit. On
// error it logs and returns whatever was accumulated so far; callers get
// a partial result, never an error.
func FetchAll[T any](ctx context.Context, p Pager, page func(ctx context.Context, skip, limit int) ([]T, error)) []T {
	size := p.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	max := p.MaxPages
	if max <= 0 {
		max = DefaultMaxPages
	}

	var all []T
	skip := 0
	for i := 0; i < max; i++ {
		batch, err := page(ctx, skip, size)
		if err != nil {
			gotils.C(ctx).Printf("page fetch failed at skip %v, returning %v records: %v", skip, len(all), err)
			return all
		}
		all = append(all, batch...)
		if len(batch) < size {
			return all
		}
		skip += size
	}
	gotils.C(ctx).Printf("page cap %v reached, returning %v records", max, len(all))
	return all
}
