package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/vidtube/internal/domain/entity"
	"github.com/oksasatya/vidtube/internal/domain/repository"
)

type TweetRepository struct {
	pool *pgxpool.Pool
}

func NewTweetRepository(pool *pgxpool.Pool) *TweetRepository {
	return &TweetRepository{pool: pool}
}

func scanTweet(row pgx.Row) (*entity.Tweet, error) {
	t := &entity.Tweet{}
	if err := row.Scan(&t.ID, &t.Content, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return t, nil
}

func (r *TweetRepository) Create(ctx context.Context, t *entity.Tweet) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tweets (content, owner_id) VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, t.Content, t.OwnerID)
	return mapErr(row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt))
}

func (r *TweetRepository) GetByID(ctx context.Context, id string) (*entity.Tweet, error) {
	return scanTweet(r.pool.QueryRow(ctx, `
		SELECT id, content, owner_id, created_at, updated_at FROM tweets WHERE id = $1
	`, id))
}

func (r *TweetRepository) Update(ctx context.Context, t *entity.Tweet) error {
	t.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `UPDATE tweets SET content = $1, updated_at = $2 WHERE id = $3`,
		t.Content, t.UpdatedAt, t.ID)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TweetRepository) Delete(ctx context.Context, id string) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		res, err := tx.Exec(ctx, `DELETE FROM tweets WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if res.RowsAffected() == 0 {
			return repository.ErrNotFound
		}
		_, err = tx.Exec(ctx, `DELETE FROM likes WHERE target_kind = 'tweet' AND target_id = $1`, id)
		return err
	})
}

func (r *TweetRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Tweet, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, content, owner_id, created_at, updated_at
		FROM tweets WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Tweet, 0)
	for rows.Next() {
		t, err := scanTweet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

var _ repository.TweetRepository = (*TweetRepository)(nil)
