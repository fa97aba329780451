package application

import (
	"context"

	"github.com/oksasatya/vidtube/internal/domain/entity"
)

// mutateOwned validates id, loads the resource, checks that actorID owns it
// and then hands it to apply. apply is responsible for persisting and for
// mapping its own failures.
func mutateOwned[T entity.Owned](
	ctx context.Context,
	rt *Runtime,
	kind, id, actorID string,
	load func(ctx context.Context, id string) (T, error),
	apply func(ctx context.Context, res T) error,
) (T, error) {
	var zero T
	id, err := ValidateID(kind, id)
	if err != nil {
		return zero, err
	}

	lctx, cancel := rt.storageCtx(ctx)
	res, err := load(lctx, id)
	cancel()
	if err != nil {
		return zero, fromRepo(err, kind)
	}

	if !sameID(res.OwnedBy(), actorID) {
		return zero, forbidden("you are not allowed to modify this " + kind)
	}

	if err := apply(ctx, res); err != nil {
		return zero, err
	}
	return res, nil
}

// persist runs a single repository write under the storage bound.
func persist(ctx context.Context, rt *Runtime, kind string, write func(ctx context.Context) error) error {
	wctx, cancel := rt.storageCtx(ctx)
	defer cancel()
	return fromRepo(write(wctx), kind)
}
