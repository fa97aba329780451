package application

import (
	"context"
	"errors"

	repo "github.com/oksasatya/vidtube/internal/domain/repository"
)

// ToggleResult reports the membership state after a toggle.
type ToggleResult struct {
	Active   bool `json:"active"`
	Relation any  `json:"relation,omitempty"`
}

// toggler describes one (actor, target) relation.
type toggler[R any] struct {
	kind   string
	target string
	exists func(ctx context.Context) error
	find   func(ctx context.Context) (R, error)
	remove func(ctx context.Context, rel R) error
	create func(ctx context.Context) (R, error)
}

// toggle flips the relation: an existing row is removed, a missing one is
// created. The unique index on the pair turns a lost race into ErrConflict.
func toggle[R any](ctx context.Context, rt *Runtime, t toggler[R]) (ToggleResult, error) {
	if _, err := ValidateID(t.kind, t.target); err != nil {
		return ToggleResult{}, err
	}

	if err := persist(ctx, rt, t.kind, t.exists); err != nil {
		return ToggleResult{}, err
	}

	fctx, cancel := rt.storageCtx(ctx)
	rel, err := t.find(fctx)
	cancel()
	switch {
	case err == nil:
		if err := persist(ctx, rt, t.kind, func(ctx context.Context) error { return t.remove(ctx, rel) }); err != nil {
			return ToggleResult{}, err
		}
		return ToggleResult{Active: false}, nil
	case errors.Is(err, repo.ErrNotFound):
	default:
		return ToggleResult{}, storageErr("failed to read "+t.kind+" relation", err)
	}

	cctx, cancel := rt.storageCtx(ctx)
	created, err := t.create(cctx)
	cancel()
	if err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return ToggleResult{}, conflict("duplicate "+t.kind+" relation", err)
		}
		return ToggleResult{}, fromRepo(err, t.kind)
	}
	return ToggleResult{Active: true, Relation: created}, nil
}
