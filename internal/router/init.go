package router

import (
	"context"
	"fmt"

	app "github.com/oksasatya/vidtube/internal/application"
	"github.com/oksasatya/vidtube/internal/container"
	pginfra "github.com/oksasatya/vidtube/internal/infrastructure/postgres"
	"github.com/oksasatya/vidtube/internal/infrastructure/search"
	handlers "github.com/oksasatya/vidtube/internal/interface/http"
	"github.com/oksasatya/vidtube/internal/router/modules"
)

type serviceDeps struct {
	Users         *app.UserService
	Videos        *app.VideoService
	Comments      *app.CommentService
	Tweets        *app.TweetService
	Likes         *app.LikeService
	Subscriptions *app.SubscriptionService
	Playlists     *app.PlaylistService
	Dashboard     *app.DashboardService
}

func buildRuntime() *app.Runtime {
	cfg := container.GetConfig()
	rt := &app.Runtime{
		Cfg:            cfg,
		Logger:         container.GetLogger(),
		StorageTimeout: cfg.StorageTimeout,
		UploadTimeout:  cfg.UploadTimeout,
		EmailQueue:     cfg.RabbitMQEmailQueue,
		CleanupQueue:   cfg.RabbitMQCleanupQueue,
	}
	// a nil *RabbitPublisher must not end up inside the interface
	if pub := container.GetRabbitPub(); pub != nil {
		rt.Jobs = pub
	}
	return rt
}

func buildServices() serviceDeps {
	cfg := container.GetConfig()
	pool := container.GetPGPool()
	rt := buildRuntime()

	users := pginfra.NewUserRepository(pool)
	videos := pginfra.NewVideoRepository(pool)
	comments := pginfra.NewCommentRepository(pool)
	tweets := pginfra.NewTweetRepository(pool)
	likes := pginfra.NewLikeRepository(pool)
	subs := pginfra.NewSubscriptionRepository(pool)
	playlists := pginfra.NewPlaylistRepository(pool)

	media := &app.Media{Store: container.GetAssetStore(), ImageMaxWidth: cfg.ImageMaxWidth}

	var idx app.SearchIndex
	if es := container.GetES(); es != nil {
		idx = search.NewElastic(es, container.GetLogger())
	}

	return serviceDeps{
		Users:         app.NewUserService(users, subs, container.GetJWT(), container.GetRedis(), media, idx, cfg.ESUsersIndex, rt),
		Videos:        app.NewVideoService(videos, media, cfg.VideoDeleteCascade, idx, cfg.ESVideosIndex, rt),
		Comments:      app.NewCommentService(comments, videos, rt),
		Tweets:        app.NewTweetService(tweets, users, rt),
		Likes:         app.NewLikeService(likes, videos, comments, tweets, rt),
		Subscriptions: app.NewSubscriptionService(subs, users, rt),
		Playlists:     app.NewPlaylistService(playlists, videos, users, rt),
		Dashboard:     app.NewDashboardService(videos, users, rt),
	}
}

func healthChecks() map[string]handlers.Pinger {
	checks := map[string]handlers.Pinger{}
	if pool := container.GetPGPool(); pool != nil {
		checks["postgres"] = pool.Ping
	}
	if rdb := container.GetRedis(); rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	if es := container.GetES(); es != nil {
		checks["elasticsearch"] = func(ctx context.Context) error {
			res, err := es.Ping(es.Ping.WithContext(ctx))
			if err != nil {
				return err
			}
			defer func() { _ = res.Body.Close() }()
			if res.IsError() {
				return fmt.Errorf("elasticsearch: %s", res.Status())
			}
			return nil
		}
	}
	return checks
}

// InitModules builds the services from the container and registers every
// feature module with r.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	jwt := container.GetJWT()
	svc := buildServices()

	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(healthChecks(), container.GetBreakerState())))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Users, logger, cfg.CookieDomain, cfg.CookieSecure, cfg.MaxUploadBytes), jwt))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc.Users, logger, cfg.MaxUploadBytes), jwt))
	r.Add(modules.NewVideoModule(handlers.NewVideoHandler(svc.Videos, logger, cfg.MaxUploadBytes), jwt))
	r.Add(modules.NewCommentModule(handlers.NewCommentHandler(svc.Comments, logger), jwt))
	r.Add(modules.NewTweetModule(handlers.NewTweetHandler(svc.Tweets, logger), jwt))
	r.Add(modules.NewLikeModule(handlers.NewLikeHandler(svc.Likes, logger), jwt))
	r.Add(modules.NewSubscriptionModule(handlers.NewSubscriptionHandler(svc.Subscriptions, logger), jwt))
	r.Add(modules.NewPlaylistModule(handlers.NewPlaylistHandler(svc.Playlists, logger), jwt))
	r.Add(modules.NewDashboardModule(handlers.NewDashboardHandler(svc.Dashboard, logger), jwt))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
