package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/vidtube/internal/domain/entity"
	"github.com/oksasatya/vidtube/internal/domain/repository"
)

type PlaylistRepository struct {
	pool *pgxpool.Pool
}

func NewPlaylistRepository(pool *pgxpool.Pool) *PlaylistRepository {
	return &PlaylistRepository{pool: pool}
}

func scanPlaylist(row pgx.Row) (*entity.Playlist, error) {
	p := &entity.Playlist{}
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.VideoIDs, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	if p.VideoIDs == nil {
		p.VideoIDs = []string{}
	}
	return p, nil
}

func (r *PlaylistRepository) Create(ctx context.Context, p *entity.Playlist) error {
	if p.VideoIDs == nil {
		p.VideoIDs = []string{}
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO playlists (name, description, video_ids, owner_id)
		VALUES ($1, $2, $3::text[]::uuid[], $4)
		RETURNING id, created_at, updated_at
	`, p.Name, p.Description, p.VideoIDs, p.OwnerID)
	return mapErr(row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt))
}

func (r *PlaylistRepository) GetByID(ctx context.Context, id string) (*entity.Playlist, error) {
	return scanPlaylist(r.pool.QueryRow(ctx, `
		SELECT id, name, description, video_ids::text[], owner_id, created_at, updated_at
		FROM playlists WHERE id = $1
	`, id))
}

// Update overwrites name, description and the full ordered video list.
func (r *PlaylistRepository) Update(ctx context.Context, p *entity.Playlist) error {
	p.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE playlists
		SET name = $1, description = $2, video_ids = $3::text[]::uuid[], updated_at = $4
		WHERE id = $5
	`, p.Name, p.Description, p.VideoIDs, p.UpdatedAt, p.ID)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PlaylistRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PlaylistRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Playlist, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, video_ids::text[], owner_id, created_at, updated_at
		FROM playlists WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Playlist, 0)
	for rows.Next() {
		p, err := scanPlaylist(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

var _ repository.PlaylistRepository = (*PlaylistRepository)(nil)
