package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/vidtube/internal/domain/entity"
	"github.com/oksasatya/vidtube/internal/domain/repository"
)

type LikeRepository struct {
	pool *pgxpool.Pool
}

func NewLikeRepository(pool *pgxpool.Pool) *LikeRepository {
	return &LikeRepository{pool: pool}
}

func (r *LikeRepository) Find(ctx context.Context, userID string, target entity.LikeTarget) (*entity.Like, error) {
	var (
		l    entity.Like
		kind string
		id   string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, liked_by, target_kind, target_id, created_at
		FROM likes
		WHERE liked_by = $1 AND target_kind = $2 AND target_id = $3
	`, userID, string(target.Kind()), target.ID()).Scan(&l.ID, &l.LikedBy, &kind, &id, &l.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	if l.Target, err = entity.ParseLikeTarget(kind, id); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LikeRepository) Create(ctx context.Context, l *entity.Like) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO likes (liked_by, target_kind, target_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, l.LikedBy, string(l.Target.Kind()), l.Target.ID())
	return mapErr(row.Scan(&l.ID, &l.CreatedAt))
}

func (r *LikeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM likes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *LikeRepository) ListLikedVideos(ctx context.Context, userID string) ([]entity.Video, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT v.id, v.title, v.description, v.video_url, v.video_asset_id, v.thumbnail_url, v.thumbnail_asset_id,
		       v.duration, v.views, v.is_published, v.owner_id, v.created_at, v.updated_at
		FROM likes l
		JOIN videos v ON v.id = l.target_id
		WHERE l.liked_by = $1 AND l.target_kind = 'video' AND (v.is_published OR v.owner_id = $1)
		ORDER BY l.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return collectVideos(rows)
}

var _ repository.LikeRepository = (*LikeRepository)(nil)

type SubscriptionRepository struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{pool: pool}
}

func (r *SubscriptionRepository) Find(ctx context.Context, subscriberID, channelID string) (*entity.Subscription, error) {
	s := &entity.Subscription{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, channel_id, subscriber_id, created_at
		FROM subscriptions
		WHERE subscriber_id = $1 AND channel_id = $2
	`, subscriberID, channelID).Scan(&s.ID, &s.ChannelID, &s.SubscriberID, &s.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return s, nil
}

func (r *SubscriptionRepository) Create(ctx context.Context, s *entity.Subscription) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO subscriptions (subscriber_id, channel_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, s.SubscriberID, s.ChannelID)
	return mapErr(row.Scan(&s.ID, &s.CreatedAt))
}

func (r *SubscriptionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *SubscriptionRepository) ListSubscribers(ctx context.Context, channelID string) ([]entity.Channel, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.username, u.fullname, u.avatar_url
		FROM subscriptions s
		JOIN users u ON u.id = s.subscriber_id
		WHERE s.channel_id = $1
		ORDER BY s.created_at DESC
	`, channelID)
	if err != nil {
		return nil, err
	}
	return collectChannels(rows)
}

func (r *SubscriptionRepository) ListChannels(ctx context.Context, subscriberID string) ([]entity.Channel, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.username, u.fullname, u.avatar_url
		FROM subscriptions s
		JOIN users u ON u.id = s.channel_id
		WHERE s.subscriber_id = $1
		ORDER BY s.created_at DESC
	`, subscriberID)
	if err != nil {
		return nil, err
	}
	return collectChannels(rows)
}

func collectChannels(rows pgx.Rows) ([]entity.Channel, error) {
	defer rows.Close()
	out := make([]entity.Channel, 0)
	for rows.Next() {
		var c entity.Channel
		if err := rows.Scan(&c.ID, &c.Username, &c.FullName, &c.Avatar); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

var _ repository.SubscriptionRepository = (*SubscriptionRepository)(nil)
