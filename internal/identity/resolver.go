package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Complexlity/paywithglide/internal/httpx"
	"github.com/Complexlity/paywithglide/internal/metrics"
	"github.com/Complexlity/paywithglide/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Resolver turns handles, addresses and ids into user records
type Resolver struct {
	lookup  Lookup
	cache   Cache
	group   singleflight.Group
	logger  *zap.Logger
	metrics metrics.Recorder
}

// NewResolver creates a resolver. cache backs ResolveByID only.
func NewResolver(lookup Lookup, cache Cache, logger *zap.Logger, rec metrics.Recorder) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Resolver{
		lookup:  lookup,
		cache:   cache,
		logger:  logger,
		metrics: rec,
	}
}

// Resolve finds the account for a handle or an address. The handle search always
// runs; the address lookup runs alongside it when identifier is an address. A
// populated handle result wins over an address result.
func (r *Resolver) Resolve(ctx context.Context, identifier string) (model.UserRecord, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return model.UserRecord{}, model.ErrNotFound
	}

	var (
		byHandle, byAddress   []model.UserRecord
		handleErr, addressErr error
		g                     errgroup.Group
	)

	g.Go(func() error {
		byHandle, handleErr = r.lookup.SearchByHandle(ctx, identifier)
		return nil
	})
	if common.IsHexAddress(identifier) {
		g.Go(func() error {
			byAddress, addressErr = r.lookup.BulkByAddress(ctx, strings.ToLower(identifier))
			return nil
		})
	}
	_ = g.Wait()

	if len(byHandle) > 0 {
		return byHandle[0], nil
	}
	if len(byAddress) > 0 {
		return byAddress[0], nil
	}

	if err := lookupFailure(handleErr, addressErr); err != nil {
		r.logger.Warn("identity lookup failed",
			zap.String("identifier", identifier),
			zap.Error(err),
		)
		return model.UserRecord{}, err
	}
	return model.UserRecord{}, model.ErrNotFound
}

// lookupFailure drops 404s, which the provider uses for "no such user"
func lookupFailure(errs ...error) error {
	var failed []error
	for _, err := range errs {
		if err != nil && !httpx.IsStatus(err, http.StatusNotFound) {
			failed = append(failed, err)
		}
	}
	return errors.Join(failed...)
}

// ResolveByID fetches a user by id, reading through the cache. Concurrent misses
// for the same id share one upstream request, which outlives any single caller's
// cancellation; each caller still stops waiting when its own ctx is done.
func (r *Resolver) ResolveByID(ctx context.Context, id string) (model.UserRecord, error) {
	labels := map[string]string{"source": "neynar"}
	if u, ok := r.cache.Get(id); ok {
		r.metrics.IncCounter(metrics.IdentityCacheHit, labels)
		return u, nil
	}
	r.metrics.IncCounter(metrics.IdentityCacheMiss, labels)

	fetchCtx := context.WithoutCancel(ctx)
	ch := r.group.DoChan(id, func() (any, error) {
		return r.fetchByID(fetchCtx, id)
	})

	select {
	case <-ctx.Done():
		return model.UserRecord{}, fmt.Errorf("resolve user %s: %w", id, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return model.UserRecord{}, fmt.Errorf("resolve user %s: %w", id, res.Err)
		}
		return res.Val.(model.UserRecord), nil
	}
}

func (r *Resolver) fetchByID(ctx context.Context, id string) (model.UserRecord, error) {
	users, err := r.lookup.BulkByID(ctx, id)
	if err != nil {
		if httpx.IsStatus(err, http.StatusNotFound) {
			return model.UserRecord{}, model.ErrNotFound
		}
		return model.UserRecord{}, err
	}
	if len(users) == 0 {
		return model.UserRecord{}, model.ErrNotFound
	}
	r.cache.Add(id, users[0])
	return users[0], nil
}

// ResolveMany fetches several users concurrently, preserving order
func (r *Resolver) ResolveMany(ctx context.Context, ids ...string) ([]model.UserRecord, error) {
	out := make([]model.UserRecord, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			u, err := r.ResolveByID(ctx, id)
			if err != nil {
				return err
			}
			out[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
