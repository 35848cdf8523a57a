package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/zarlcorp/zfixture/internal/dispatch"
)

// ErrInvalidCount is returned when a negative number of users is requested.
var ErrInvalidCount = errors.New("invalid user count")

// GenerateUserData produces numUsers records in parallel. Each worker range
// gets its own Generator. The result is in range order and has exactly
// numUsers entries; a failing range fails the whole batch.
func GenerateUserData(ctx context.Context, numUsers int, opts ...dispatch.Option) ([]User, error) {
	return generateUserData(ctx, numUsers, dispatch.New(opts...))
}

func generateUserData(ctx context.Context, numUsers int, d *dispatch.Dispatcher, genOpts ...Option) ([]User, error) {
	if numUsers < 0 {
		return nil, fmt.Errorf("generate %d users: %w", numUsers, ErrInvalidCount)
	}

	return dispatch.Collect(ctx, d, numUsers, func(ctx context.Context, r dispatch.Range) ([]User, error) {
		g, err := New(genOpts...)
		if err != nil {
			return nil, err
		}
		return g.GenerateRange(ctx, r.Start, r.End)
	})
}
