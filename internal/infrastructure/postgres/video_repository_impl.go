package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/vidtube/internal/domain/entity"
	"github.com/oksasatya/vidtube/internal/domain/repository"
)

type VideoRepository struct {
	pool *pgxpool.Pool
}

func NewVideoRepository(pool *pgxpool.Pool) *VideoRepository {
	return &VideoRepository{pool: pool}
}

const videoColumns = `id, title, description, video_url, video_asset_id, thumbnail_url, thumbnail_asset_id,
	duration, views, is_published, owner_id, created_at, updated_at`

// sortable columns accepted by List; anything else falls back to created_at.
var videoSortColumns = map[string]string{
	"created_at": "created_at",
	"views":      "views",
	"duration":   "duration",
	"title":      "title",
}

func scanVideo(row pgx.Row) (*entity.Video, error) {
	v := &entity.Video{}
	if err := row.Scan(&v.ID, &v.Title, &v.Description, &v.VideoFile.URL, &v.VideoFile.ID,
		&v.Thumbnail.URL, &v.Thumbnail.ID, &v.Duration, &v.Views, &v.IsPublished,
		&v.OwnerID, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return v, nil
}

func collectVideos(rows pgx.Rows) ([]entity.Video, error) {
	defer rows.Close()
	out := make([]entity.Video, 0)
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

func (r *VideoRepository) Create(ctx context.Context, v *entity.Video) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO videos (title, description, video_url, video_asset_id, thumbnail_url, thumbnail_asset_id,
		                    duration, is_published, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, views, created_at, updated_at
	`, v.Title, v.Description, v.VideoFile.URL, v.VideoFile.ID, v.Thumbnail.URL, v.Thumbnail.ID,
		v.Duration, v.IsPublished, v.OwnerID)

	return mapErr(row.Scan(&v.ID, &v.Views, &v.CreatedAt, &v.UpdatedAt))
}

func (r *VideoRepository) GetByID(ctx context.Context, id string) (*entity.Video, error) {
	return scanVideo(r.pool.QueryRow(ctx, `SELECT `+videoColumns+` FROM videos WHERE id = $1`, id))
}

func (r *VideoRepository) Update(ctx context.Context, v *entity.Video) error {
	v.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE videos
		SET title = $1, description = $2, video_url = $3, video_asset_id = $4,
		    thumbnail_url = $5, thumbnail_asset_id = $6, duration = $7, is_published = $8, updated_at = $9
		WHERE id = $10
	`, v.Title, v.Description, v.VideoFile.URL, v.VideoFile.ID, v.Thumbnail.URL, v.Thumbnail.ID,
		v.Duration, v.IsPublished, v.UpdatedAt, v.ID)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *VideoRepository) Delete(ctx context.Context, id string, cascade bool) error {
	if !cascade {
		res, err := r.pool.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id)
		if err != nil {
			return mapErr(err)
		}
		if res.RowsAffected() == 0 {
			return repository.ErrNotFound
		}
		return nil
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		res, err := tx.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id)
		if err != nil {
			return mapErr(err)
		}
		if res.RowsAffected() == 0 {
			return repository.ErrNotFound
		}
		if _, err := tx.Exec(ctx, `
			DELETE FROM likes
			WHERE (target_kind = 'video' AND target_id = $1)
			   OR (target_kind = 'comment' AND target_id IN (SELECT id FROM comments WHERE video_id = $1))
		`, id); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `DELETE FROM comments WHERE video_id = $1`, id)
		return err
	})
}

func (r *VideoRepository) IncrementViews(ctx context.Context, id string) (int64, error) {
	var views int64
	err := r.pool.QueryRow(ctx, `UPDATE videos SET views = views + 1 WHERE id = $1 RETURNING views`, id).Scan(&views)
	return views, mapErr(err)
}

func (r *VideoRepository) List(ctx context.Context, f repository.VideoFilter) ([]entity.Video, int64, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.ViewerID != "" {
		where = append(where, "(is_published OR owner_id = "+arg(f.ViewerID)+")")
	} else {
		where = append(where, "is_published")
	}
	if f.OwnerID != "" {
		where = append(where, "owner_id = "+arg(f.OwnerID))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		p := arg("%" + q + "%")
		where = append(where, "(title ILIKE "+p+" OR description ILIKE "+p+")")
	}
	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM videos WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	col, ok := videoSortColumns[f.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := "ASC"
	if f.SortDesc {
		dir = "DESC"
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	query := fmt.Sprintf(`SELECT %s FROM videos WHERE %s ORDER BY %s %s, id LIMIT %s OFFSET %s`,
		videoColumns, cond, col, dir, arg(limit), arg(offset(f.Page, limit)))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	out, err := collectVideos(rows)
	return out, total, err
}

func (r *VideoRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Video, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+videoColumns+`
		FROM videos
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	return collectVideos(rows)
}

func (r *VideoRepository) ChannelStats(ctx context.Context, ownerID string) (entity.ChannelStats, error) {
	var s entity.ChannelStats
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM videos WHERE owner_id = $1),
			(SELECT coalesce(sum(views), 0)::bigint FROM videos WHERE owner_id = $1),
			(SELECT count(*) FROM likes l JOIN videos v ON l.target_kind = 'video' AND l.target_id = v.id
			 WHERE v.owner_id = $1),
			(SELECT count(*) FROM subscriptions WHERE channel_id = $1)
	`, ownerID).Scan(&s.TotalVideos, &s.TotalViews, &s.TotalLikes, &s.TotalSubscribers)
	return s, err
}

var _ repository.VideoRepository = (*VideoRepository)(nil)
