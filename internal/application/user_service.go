package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/vidtube/internal/domain/entity"
	repo "github.com/oksasatya/vidtube/internal/domain/repository"
	"github.com/oksasatya/vidtube/pkg/helpers"
)

type UserService struct {
	Repo       repo.UserRepository
	Subs       repo.SubscriptionRepository
	JWT        *helpers.JWTManager
	Redis      *redis.Client
	Media      *Media
	Search     SearchIndex
	UsersIndex string
	*Runtime
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func NewUserService(repo repo.UserRepository, subs repo.SubscriptionRepository, jwt *helpers.JWTManager, rdb *redis.Client, media *Media, search SearchIndex, usersIndex string, rt *Runtime) *UserService {
	return &UserService{
		Repo:       repo,
		Subs:       subs,
		JWT:        jwt,
		Redis:      rdb,
		Media:      media,
		Search:     search,
		UsersIndex: usersIndex,
		Runtime:    rt,
	}
}

type LoginResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullname"`
}

type RegisterInput struct {
	FullName string
	Email    string
	Username string
	Password string
	Avatar   *Upload
	Cover    *Upload
}

// Register uploads the avatar (and cover, when given) and then creates the
// user. Uploaded images are deleted again if any later step fails.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if blank(in.FullName) || blank(in.Email) || blank(in.Username) || blank(in.Password) {
		return nil, invalidArg("all fields are required")
	}
	if !in.Avatar.present() {
		return nil, invalidArg("avatar file is required")
	}

	lctx, cancel := s.storageCtx(ctx)
	existing, err := s.Repo.FindByUsernameOrEmail(lctx, in.Username, in.Email)
	cancel()
	switch {
	case err == nil && existing != nil:
		return nil, conflict("user with email or username already exists", nil)
	case err != nil && !errors.Is(err, repo.ErrNotFound):
		return nil, storageErr("failed to check existing user", err)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, invalidArg("password cannot be used")
	}

	u := &entity.User{
		Username: in.Username,
		Email:    in.Email,
		FullName: strings.TrimSpace(in.FullName),
		Password: hash,
	}

	saga := NewSaga(s.Runtime)
	parts := []assetPart{{kind: entity.AssetAvatar, upload: in.Avatar, dst: &u.Avatar}}
	if in.Cover.present() {
		parts = append(parts, assetPart{kind: entity.AssetCover, upload: in.Cover, dst: &u.Cover})
	}
	if err := s.Media.uploadAll(ctx, s.Runtime, saga, u.Username, parts...); err != nil {
		saga.Compensate(ctx)
		return nil, err
	}

	if err := persist(ctx, s.Runtime, "user", func(ctx context.Context) error { return s.Repo.Create(ctx, u) }); err != nil {
		saga.Compensate(ctx)
		s.log().WithError(err).WithField("username", u.Username).Error("create user failed")
		if errors.Is(err, ErrConflict) {
			return nil, conflict("user with email or username already exists", err)
		}
		return nil, storageErr("failed to register user", err)
	}

	_ = s.indexUser(ctx, u)
	s.sendWelcome(ctx, u)
	return u, nil
}

// Authenticate accepts an email or a username as identifier.
func (s *UserService) Authenticate(ctx context.Context, identifier, password string) (*entity.User, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	var (
		u   *entity.User
		err error
	)
	if strings.Contains(identifier, "@") {
		u, err = s.Repo.GetByEmail(ctx, identifier)
	} else {
		u, err = s.Repo.FindByUsernameOrEmail(ctx, identifier, "")
	}
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.PasswordMatches(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueTokens generates access/refresh tokens and records a session in Redis.
func (s *UserService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		s.log().WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		s.log().WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		return TokenPair{}, err
	}

	if s.Redis != nil {
		fields := map[string]any{
			"user_id":    u.ID,
			"username":   u.Username,
			"email":      u.Email,
			"fullname":   u.FullName,
			"avatar_url": u.Avatar.URL,
			"sid":        sid,
			"logged_in":  true,
			"created_at": nowRFC3339(),
		}
		key := helpers.SessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, s.JWT.RefreshTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil {
			s.log().WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (s *UserService) Login(ctx context.Context, identifier, password string) (*LoginResponse, TokenPair, error) {
	u, err := s.Authenticate(ctx, identifier, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	resp := &LoginResponse{UserID: u.ID, Username: u.Username, Email: u.Email, FullName: u.FullName}
	return resp, pair, nil
}

func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil || u == nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	// the refresh token must belong to the live session
	if s.Redis != nil {
		key := helpers.SessionKey(u.ID)
		data, rErr := s.Redis.HGetAll(ctx, key).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", ErrInvalidCredentials
		}
	}
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, "", err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, "", err
	}
	if s.Redis != nil {
		key := helpers.SessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"sid":        sid,
			"updated_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, s.JWT.RefreshTTL)
		_, _ = pipe.Exec(ctx)
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, u.ID, nil
}

// Logout drops the session so outstanding tokens stop authenticating.
func (s *UserService) Logout(ctx context.Context, userID string) {
	if s.Redis == nil || userID == "" {
		return
	}
	if err := s.Redis.Del(ctx, helpers.SessionKey(userID)).Err(); err != nil {
		s.log().WithError(err).WithField("user_id", userID).Warn("redis session delete failed")
	}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

type UpdateProfileInput struct {
	FullName string
	Email    string
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	if blank(in.FullName) && blank(in.Email) {
		return nil, invalidArg("fullname or email is required")
	}
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	if !blank(in.FullName) {
		u.FullName = strings.TrimSpace(in.FullName)
	}
	if !blank(in.Email) {
		u.Email = strings.ToLower(strings.TrimSpace(in.Email))
	}
	if err := persist(ctx, s.Runtime, "user", func(ctx context.Context) error { return s.Repo.Update(ctx, u) }); err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, conflict("email already in use", err)
		}
		return nil, err
	}

	s.touchSession(ctx, u)
	_ = s.indexUser(ctx, u)
	return u, nil
}

// ChangePassword replaces the password after checking the current one.
func (s *UserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if blank(newPassword) {
		return invalidArg("new password is required")
	}
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return ErrUserNotFound
	}
	if !helpers.PasswordMatches(u.Password, oldPassword) {
		return invalidArg("invalid old password")
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return invalidArg("password cannot be used")
	}
	u.Password = hash
	return persist(ctx, s.Runtime, "user", func(ctx context.Context) error { return s.Repo.Update(ctx, u) })
}

func (s *UserService) UpdateAvatar(ctx context.Context, userID string, up *Upload) (*entity.User, error) {
	return s.replaceImage(ctx, userID, entity.AssetAvatar, up)
}

func (s *UserService) UpdateCover(ctx context.Context, userID string, up *Upload) (*entity.User, error) {
	return s.replaceImage(ctx, userID, entity.AssetCover, up)
}

// replaceImage uploads the new image, persists the reference and only then
// deletes the old image.
func (s *UserService) replaceImage(ctx context.Context, userID string, kind entity.AssetKind, up *Upload) (*entity.User, error) {
	if !up.present() {
		return nil, invalidArg(string(kind) + " file is required")
	}
	lctx, cancel := s.storageCtx(ctx)
	u, err := s.Repo.GetByID(lctx, userID)
	cancel()
	if err != nil {
		return nil, fromRepo(err, "user")
	}

	slot := &u.Avatar
	if kind == entity.AssetCover {
		slot = &u.Cover
	}
	old := *slot

	var fresh entity.Asset
	saga := NewSaga(s.Runtime)
	if err := s.Media.uploadAll(ctx, s.Runtime, saga, u.Username, assetPart{kind: kind, upload: up, dst: &fresh}); err != nil {
		saga.Compensate(ctx)
		return nil, err
	}
	*slot = fresh
	if err := persist(ctx, s.Runtime, "user", func(ctx context.Context) error { return s.Repo.Update(ctx, u) }); err != nil {
		saga.Compensate(ctx)
		return nil, storageErr("failed to update "+string(kind), err)
	}

	_ = s.Media.remove(ctx, s.Runtime, old, kind)
	s.touchSession(ctx, u)
	_ = s.indexUser(ctx, u)
	return u, nil
}

// ChannelProfile is the public view of a channel with subscription counts.
type ChannelProfile struct {
	entity.Channel
	CoverImage      string `json:"cover_image"`
	SubscriberCount int    `json:"subscribers_count"`
	SubscribedCount int    `json:"channels_subscribed_to_count"`
	IsSubscribed    bool   `json:"is_subscribed"`
}

func (s *UserService) ChannelProfile(ctx context.Context, username, viewerID string) (*ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, invalidArg("username is missing")
	}
	lctx, cancel := s.storageCtx(ctx)
	defer cancel()
	u, err := s.Repo.FindByUsernameOrEmail(lctx, username, "")
	if err != nil {
		return nil, fromRepo(err, "channel")
	}
	subscribers, err := s.Subs.ListSubscribers(lctx, u.ID)
	if err != nil {
		return nil, storageErr("failed to load subscribers", err)
	}
	channels, err := s.Subs.ListChannels(lctx, u.ID)
	if err != nil {
		return nil, storageErr("failed to load subscriptions", err)
	}
	p := &ChannelProfile{
		Channel:         entity.Channel{ID: u.ID, Username: u.Username, FullName: u.FullName, Avatar: u.Avatar.URL},
		CoverImage:      u.Cover.URL,
		SubscriberCount: len(subscribers),
		SubscribedCount: len(channels),
	}
	for _, sub := range subscribers {
		if sub.ID == viewerID {
			p.IsSubscribed = true
			break
		}
	}
	return p, nil
}

// touchSession refreshes the cached profile fields, keeping the session TTL.
func (s *UserService) touchSession(ctx context.Context, u *entity.User) {
	if s.Redis == nil {
		return
	}
	key := helpers.SessionKey(u.ID)
	pipe := s.Redis.Pipeline()
	pipe.HSet(ctx, key, map[string]any{
		"email":      u.Email,
		"fullname":   u.FullName,
		"avatar_url": u.Avatar.URL,
		"updated_at": nowRFC3339(),
	})
	if ttl, tErr := s.Redis.TTL(ctx, key).Result(); tErr == nil && ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	if _, pErr := pipe.Exec(ctx); pErr != nil {
		s.log().WithError(pErr).WithField("key", key).Warn("redis pipeline failed")
	}
}

func (s *UserService) indexUser(ctx context.Context, u *entity.User) error {
	if s.Search == nil || s.UsersIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"fullname":   u.FullName,
		"avatar_url": u.Avatar.URL,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": u.UpdatedAt.Format(time.RFC3339Nano),
	}
	if err := s.Search.Index(ctx, s.UsersIndex, u.ID, doc); err != nil {
		s.log().WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		return err
	}
	return nil
}

// SearchUsers performs a simple multi_match search on username, email and name.
func (s *UserService) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.Search == nil || s.UsersIndex == "" {
		return []map[string]any{}, nil
	}
	return s.Search.Search(ctx, s.UsersIndex, q, []string{"username^3", "email^2", "fullname"}, size)
}
