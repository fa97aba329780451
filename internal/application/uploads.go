package application

import (
	"bytes"
	"context"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/vidtube/internal/domain/entity"
	repo "github.com/oksasatya/vidtube/internal/domain/repository"
	"github.com/oksasatya/vidtube/pkg/helpers"
)

// Upload is one file part of a request.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

func (u *Upload) present() bool { return u != nil && u.Body != nil }

// Media wires the asset store into the services that own media.
type Media struct {
	Store         repo.AssetStore
	ImageMaxWidth int
}

type assetPart struct {
	kind   entity.AssetKind
	upload *Upload
	dst    *entity.Asset
}

// uploadAll uploads parts concurrently. Each successful upload is recorded on
// saga with a compensating delete; the caller compensates on error.
func (m *Media) uploadAll(ctx context.Context, rt *Runtime, saga *Saga, ownerID string, parts ...assetPart) error {
	if m == nil || m.Store == nil {
		return uploadErr("asset store not configured", nil)
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, p := range parts {
		p := p
		g.Go(func() error {
			return saga.Run(gctx, "upload "+string(p.kind),
				func(ctx context.Context) error {
					a, err := m.upload(ctx, rt, ownerID, p.kind, p.upload)
					if err != nil {
						return err
					}
					*p.dst = a
					return nil
				},
				m.deleteStep(rt, p.dst, p.kind),
			)
		})
	}
	if err := g.Wait(); err != nil {
		return uploadErr("failed to upload "+firstKind(parts), err)
	}
	return nil
}

func firstKind(parts []assetPart) string {
	if len(parts) == 1 {
		return string(parts[0].kind)
	}
	return "media"
}

func (m *Media) upload(ctx context.Context, rt *Runtime, ownerID string, kind entity.AssetKind, up *Upload) (entity.Asset, error) {
	body, contentType := up.Body, up.ContentType
	if kind.IsImage() && m.ImageMaxWidth > 0 {
		raw, err := io.ReadAll(body)
		if err != nil {
			return entity.Asset{}, err
		}
		body = bytes.NewReader(raw)
		if out, ok := helpers.NormalizeImage(raw, m.ImageMaxWidth); ok {
			body, contentType = bytes.NewReader(out), "image/jpeg"
		}
	}

	uctx, cancel := rt.uploadCtx(ctx)
	defer cancel()
	return m.Store.Upload(uctx, repo.AssetUpload{
		Kind:        kind,
		OwnerID:     ownerID,
		Filename:    up.Filename,
		ContentType: contentType,
		Body:        body,
	})
}

// deleteStep returns a compensating delete for the asset stored in dst.
func (m *Media) deleteStep(rt *Runtime, dst *entity.Asset, kind entity.AssetKind) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return m.remove(ctx, rt, *dst, kind)
	}
}

// remove deletes asset best-effort: a failure is logged and queued for the
// cleanup worker and returned only for the caller's logging.
func (m *Media) remove(ctx context.Context, rt *Runtime, asset entity.Asset, kind entity.AssetKind) error {
	if m == nil || m.Store == nil || asset.ID == "" {
		return nil
	}
	dctx, cancel := rt.uploadCtx(ctx)
	defer cancel()
	err := m.Store.Delete(dctx, asset.ID, kind)
	if err != nil {
		rt.log().WithError(err).WithField("asset_id", asset.ID).WithField("kind", kind).Error("asset delete failed")
		rt.reportOrphan(ctx, asset, kind, err)
	}
	return err
}
