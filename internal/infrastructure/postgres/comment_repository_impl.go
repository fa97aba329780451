package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/vidtube/internal/domain/entity"
	"github.com/oksasatya/vidtube/internal/domain/repository"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func scanComment(row pgx.Row) (*entity.Comment, error) {
	c := &entity.Comment{}
	if err := row.Scan(&c.ID, &c.Content, &c.VideoID, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return c, nil
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO comments (content, video_id, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, c.Content, c.VideoID, c.OwnerID)
	return mapErr(row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt))
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	return scanComment(r.pool.QueryRow(ctx, `
		SELECT id, content, video_id, owner_id, created_at, updated_at
		FROM comments WHERE id = $1
	`, id))
}

func (r *CommentRepository) Update(ctx context.Context, c *entity.Comment) error {
	c.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `UPDATE comments SET content = $1, updated_at = $2 WHERE id = $3`,
		c.Content, c.UpdatedAt, c.ID)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		res, err := tx.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if res.RowsAffected() == 0 {
			return repository.ErrNotFound
		}
		_, err = tx.Exec(ctx, `DELETE FROM likes WHERE target_kind = 'comment' AND target_id = $1`, id)
		return err
	})
}

func (r *CommentRepository) ListByVideo(ctx context.Context, videoID string, page, limit int) ([]entity.Comment, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM comments WHERE video_id = $1`, videoID).Scan(&total); err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, content, video_id, owner_id, created_at, updated_at
		FROM comments
		WHERE video_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`, videoID, limit, offset(page, limit))
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]entity.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *c)
	}
	return out, total, rows.Err()
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
