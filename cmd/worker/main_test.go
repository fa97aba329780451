package main

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/oksasatya/vidtube/internal/domain/entity"
	"github.com/oksasatya/vidtube/internal/domain/repository"
)

type stubStore struct {
	deleted   []string
	deleteErr error
}

func (s *stubStore) Upload(context.Context, repository.AssetUpload) (entity.Asset, error) {
	return entity.Asset{}, errors.New("not supported")
}

func (s *stubStore) Delete(_ context.Context, id string, _ entity.AssetKind) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func TestDeleteOrphan(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		failing error
		want    outcome
		deleted int
	}{
		{"deleted", `{"asset_id":"videos/u1/a.mp4","kind":"video"}`, nil, ack, 1},
		{"store failure retries", `{"asset_id":"videos/u1/a.mp4","kind":"video"}`, errors.New("bucket down"), retry, 0},
		{"not json", `{`, nil, drop, 0},
		{"missing id", `{"kind":"video"}`, nil, drop, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logger, _ := test.NewNullLogger()
			store := &stubStore{deleteErr: tc.failing}
			if got := deleteOrphan(context.Background(), store, []byte(tc.body), logger); got != tc.want {
				t.Fatalf("outcome = %d, want %d", got, tc.want)
			}
			if len(store.deleted) != tc.deleted {
				t.Fatalf("deleted %v, want %d", store.deleted, tc.deleted)
			}
		})
	}
}

func TestDeleteOrphan_MissingIDLogsError(t *testing.T) {
	logger, hook := test.NewNullLogger()
	deleteOrphan(context.Background(), &stubStore{}, []byte(`{"kind":"thumbnail"}`), logger)

	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.ErrorLevel {
		t.Fatalf("expected an error entry, got %+v", entry)
	}
	err, ok := entry.Data[logrus.ErrorKey].(error)
	if !ok || !errors.Is(err, errMissingAssetID) {
		t.Fatalf("expected logged error %v, got %v", errMissingAssetID, entry.Data[logrus.ErrorKey])
	}
}
