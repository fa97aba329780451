package assets

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/oksasatya/vidtube/internal/domain/entity"
	"github.com/oksasatya/vidtube/internal/domain/repository"
)

// BreakerStore fails fast while the wrapped store keeps failing, instead of
// letting every request wait for its own upload timeout.
type BreakerStore struct {
	next repository.AssetStore
	cb   *gobreaker.CircuitBreaker
}

func NewBreakerStore(next repository.AssetStore, maxFailures int, openFor time.Duration, logger *logrus.Logger) *BreakerStore {
	if maxFailures <= 0 {
		maxFailures = 5
	}
	st := gobreaker.Settings{
		Name:        "asset-store",
		MaxRequests: 1,
		Timeout:     openFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(maxFailures)
		},
		// The caller giving up is not a store failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			if logger != nil {
				logger.WithFields(logrus.Fields{"name": name, "from": from.String(), "to": to.String()}).Warn("circuit breaker state")
			}
		},
	}
	return &BreakerStore{next: next, cb: gobreaker.NewCircuitBreaker(st)}
}

func (b *BreakerStore) Upload(ctx context.Context, in repository.AssetUpload) (entity.Asset, error) {
	res, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Upload(ctx, in)
	})
	if err != nil {
		return entity.Asset{}, err
	}
	return res.(entity.Asset), nil
}

func (b *BreakerStore) Delete(ctx context.Context, assetID string, kind entity.AssetKind) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, b.next.Delete(ctx, assetID, kind)
	})
	return err
}

// State exposes the breaker state for health reporting.
func (b *BreakerStore) State() string { return b.cb.State().String() }

var _ repository.AssetStore = (*BreakerStore)(nil)
