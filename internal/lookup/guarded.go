package lookup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Adithya-Monish-Kumar-K/zengin/internal/store/pgstore"
	"github.com/Adithya-Monish-Kumar-K/zengin/internal/store/redisstore"
	"github.com/Adithya-Monish-Kumar-K/zengin/internal/zengin"
	apperrors "github.com/Adithya-Monish-Kumar-K/zengin/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/zengin/pkg/resilience"
)

var (
	_ Source = (*redisstore.Store)(nil)
	_ Source = (*pgstore.Store)(nil)
)

// Guarded bounds every call to a remote store with a timeout and a circuit
// breaker. Failures are returned wrapped in ErrUnavailable.
type Guarded struct {
	next    Source
	breaker *resilience.CircuitBreaker
	timeout time.Duration
}

func Guard(next Source, breaker *resilience.CircuitBreaker, timeout time.Duration) *Guarded {
	return &Guarded{next: next, breaker: breaker, timeout: timeout}
}

func (g *Guarded) Banks(ctx context.Context) (zengin.Banks, error) {
	banks, _, err := guard(ctx, g, "banks", func(ctx context.Context) (zengin.Banks, bool, error) {
		banks, err := g.next.Banks(ctx)
		return banks, true, err
	})
	return banks, err
}

func (g *Guarded) Bank(ctx context.Context, code string) (zengin.Bank, bool, error) {
	return guard(ctx, g, "bank", func(ctx context.Context) (zengin.Bank, bool, error) {
		return g.next.Bank(ctx, code)
	})
}

func (g *Guarded) Branches(ctx context.Context, bankCode string) (zengin.Branches, bool, error) {
	return guard(ctx, g, "branches", func(ctx context.Context) (zengin.Branches, bool, error) {
		return g.next.Branches(ctx, bankCode)
	})
}

func (g *Guarded) Branch(ctx context.Context, bankCode, branchCode string) (zengin.Branch, bool, error) {
	return guard(ctx, g, "branch", func(ctx context.Context) (zengin.Branch, bool, error) {
		return g.next.Branch(ctx, bankCode, branchCode)
	})
}

func guard[T any](ctx context.Context, g *Guarded, op string, fn func(context.Context) (T, bool, error)) (T, bool, error) {
	var (
		val   T
		found bool
	)
	err := g.breaker.Execute(func() error {
		return resilience.WithTimeout(ctx, g.timeout, g.breaker.Name()+" "+op, func(ctx context.Context) error {
			v, ok, err := fn(ctx)
			if err != nil {
				return err
			}
			val, found = v, ok
			return nil
		})
	}, countsAsFailure)
	if err != nil {
		var zero T
		return zero, false, fmt.Errorf("%w: %w", apperrors.ErrUnavailable, err)
	}
	return val, found, nil
}

// A caller giving up is not a store failure.
func countsAsFailure(err error) bool {
	return !errors.Is(err, context.Canceled)
}
