package application

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/oksasatya/vidtube/internal/domain/entity"
	repo "github.com/oksasatya/vidtube/internal/domain/repository"
)

func newID() string { return uuid.NewString() }

func file(name string) *Upload {
	return &Upload{Filename: name, ContentType: "application/octet-stream", Body: bytes.NewReader([]byte("data:" + name))}
}

// fakeStore is an in-memory asset store.
type fakeStore struct {
	mu         sync.Mutex
	objects    map[string]entity.AssetKind
	deleted    []string
	failUpload map[entity.AssetKind]error
	failDelete error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string]entity.AssetKind{}, failUpload: map[entity.AssetKind]error{}}
}

func (s *fakeStore) Upload(_ context.Context, in repo.AssetUpload) (entity.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failUpload[in.Kind]; err != nil {
		return entity.Asset{}, err
	}
	id := string(in.Kind) + "/" + newID()
	s.objects[id] = in.Kind
	return entity.Asset{ID: id, URL: "https://cdn.test/" + id}, nil
}

func (s *fakeStore) Delete(_ context.Context, id string, _ entity.AssetKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failDelete != nil {
		return s.failDelete
	}
	delete(s.objects, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *fakeStore) has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[id]
	return ok
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// fakeJobs records every published job.
type fakeJobs struct {
	mu   sync.Mutex
	jobs map[string][]any
}

func (j *fakeJobs) PublishTo(_ context.Context, queue string, body any) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.jobs == nil {
		j.jobs = map[string][]any{}
	}
	j.jobs[queue] = append(j.jobs[queue], body)
	return nil
}

func (j *fakeJobs) on(queue string) []any {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.jobs[queue]
}

type fakeUsers struct {
	mu        sync.Mutex
	byID      map[string]*entity.User
	createErr error
}

func newFakeUsers(users ...*entity.User) *fakeUsers {
	f := &fakeUsers{byID: map[string]*entity.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	u.ID = newID()
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return f.FindByUsernameOrEmail(context.Background(), "", email)
}

func (f *fakeUsers) FindByUsernameOrEmail(_ context.Context, username, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if (username != "" && u.Username == username) || (email != "" && u.Email == email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUsers) Update(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

type deleteCall struct {
	id      string
	cascade bool
}

type fakeVideos struct {
	mu        sync.Mutex
	byID      map[string]*entity.Video
	createErr error
	updateErr error
	deletes   []deleteCall
	updates   int
}

func newFakeVideos(videos ...*entity.Video) *fakeVideos {
	f := &fakeVideos{byID: map[string]*entity.Video{}}
	for _, v := range videos {
		f.byID[v.ID] = v
	}
	return f
}

func (f *fakeVideos) Create(_ context.Context, v *entity.Video) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	v.ID = newID()
	cp := *v
	f.byID[v.ID] = &cp
	return nil
}

func (f *fakeVideos) GetByID(_ context.Context, id string) (*entity.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVideos) Update(_ context.Context, v *entity.Video) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates++
	cp := *v
	f.byID[v.ID] = &cp
	return nil
}

func (f *fakeVideos) Delete(_ context.Context, id string, cascade bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, deleteCall{id: id, cascade: cascade})
	delete(f.byID, id)
	return nil
}

func (f *fakeVideos) IncrementViews(_ context.Context, id string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.byID[id]
	if !ok {
		return 0, repo.ErrNotFound
	}
	v.Views++
	return v.Views, nil
}

func (f *fakeVideos) List(_ context.Context, flt repo.VideoFilter) ([]entity.Video, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Video
	for _, v := range f.byID {
		if v.IsPublished || v.OwnerID == flt.ViewerID {
			out = append(out, *v)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeVideos) ListByOwner(_ context.Context, ownerID string) ([]entity.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Video
	for _, v := range f.byID {
		if v.OwnerID == ownerID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeVideos) ChannelStats(_ context.Context, ownerID string) (entity.ChannelStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var st entity.ChannelStats
	for _, v := range f.byID {
		if v.OwnerID == ownerID {
			st.TotalVideos++
			st.TotalViews += v.Views
		}
	}
	return st, nil
}

func (f *fakeVideos) get(id string) (entity.Video, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.byID[id]
	if !ok {
		return entity.Video{}, false
	}
	return *v, true
}

type fakeComments struct {
	mu   sync.Mutex
	byID map[string]*entity.Comment
}

func newFakeComments(comments ...*entity.Comment) *fakeComments {
	f := &fakeComments{byID: map[string]*entity.Comment{}}
	for _, c := range comments {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeComments) Create(_ context.Context, c *entity.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = newID()
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeComments) GetByID(_ context.Context, id string) (*entity.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeComments) Update(_ context.Context, c *entity.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeComments) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
	return nil
}

func (f *fakeComments) ListByVideo(_ context.Context, videoID string, _, _ int) ([]entity.Comment, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Comment
	for _, c := range f.byID {
		if c.VideoID == videoID {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

type fakeTweets struct {
	mu   sync.Mutex
	byID map[string]*entity.Tweet
}

func newFakeTweets(tweets ...*entity.Tweet) *fakeTweets {
	f := &fakeTweets{byID: map[string]*entity.Tweet{}}
	for _, t := range tweets {
		f.byID[t.ID] = t
	}
	return f
}

func (f *fakeTweets) Create(_ context.Context, t *entity.Tweet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = newID()
	cp := *t
	f.byID[t.ID] = &cp
	return nil
}

func (f *fakeTweets) GetByID(_ context.Context, id string) (*entity.Tweet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTweets) Update(_ context.Context, t *entity.Tweet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *t
	f.byID[t.ID] = &cp
	return nil
}

func (f *fakeTweets) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
	return nil
}

func (f *fakeTweets) ListByOwner(_ context.Context, ownerID string) ([]entity.Tweet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Tweet
	for _, t := range f.byID {
		if t.OwnerID == ownerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

type fakePlaylists struct {
	mu   sync.Mutex
	byID map[string]*entity.Playlist
}

func newFakePlaylists(playlists ...*entity.Playlist) *fakePlaylists {
	f := &fakePlaylists{byID: map[string]*entity.Playlist{}}
	for _, p := range playlists {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakePlaylists) Create(_ context.Context, p *entity.Playlist) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = newID()
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakePlaylists) GetByID(_ context.Context, id string) (*entity.Playlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *p
	cp.VideoIDs = append([]string(nil), p.VideoIDs...)
	return &cp, nil
}

func (f *fakePlaylists) Update(_ context.Context, p *entity.Playlist) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	cp.VideoIDs = append([]string(nil), p.VideoIDs...)
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakePlaylists) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
	return nil
}

func (f *fakePlaylists) ListByOwner(_ context.Context, ownerID string) ([]entity.Playlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Playlist
	for _, p := range f.byID {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

// fakeLikes enforces the (user, target) uniqueness like the real unique index.
type fakeLikes struct {
	mu        sync.Mutex
	byKey     map[string]*entity.Like
	createErr error
}

func newFakeLikes() *fakeLikes { return &fakeLikes{byKey: map[string]*entity.Like{}} }

func likeKey(userID string, t entity.LikeTarget) string {
	return fmt.Sprintf("%s|%s|%s", userID, t.Kind(), t.ID())
}

func (f *fakeLikes) Find(_ context.Context, userID string, t entity.LikeTarget) (*entity.Like, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.byKey[likeKey(userID, t)]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return l, nil
}

func (f *fakeLikes) Create(_ context.Context, l *entity.Like) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	k := likeKey(l.LikedBy, l.Target)
	if _, ok := f.byKey[k]; ok {
		return repo.ErrConflict
	}
	l.ID = newID()
	f.byKey[k] = l
	return nil
}

func (f *fakeLikes) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, l := range f.byKey {
		if l.ID == id {
			delete(f.byKey, k)
		}
	}
	return nil
}

func (f *fakeLikes) ListLikedVideos(context.Context, string) ([]entity.Video, error) {
	return nil, nil
}

func (f *fakeLikes) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byKey)
}

type fakeSubs struct {
	mu    sync.Mutex
	byKey map[string]*entity.Subscription
}

func newFakeSubs() *fakeSubs { return &fakeSubs{byKey: map[string]*entity.Subscription{}} }

func (f *fakeSubs) Find(_ context.Context, subscriberID, channelID string) (*entity.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byKey[subscriberID+"|"+channelID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return s, nil
}

func (f *fakeSubs) Create(_ context.Context, s *entity.Subscription) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := s.SubscriberID + "|" + s.ChannelID
	if _, ok := f.byKey[k]; ok {
		return repo.ErrConflict
	}
	s.ID = newID()
	f.byKey[k] = s
	return nil
}

func (f *fakeSubs) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, s := range f.byKey {
		if s.ID == id {
			delete(f.byKey, k)
		}
	}
	return nil
}

func (f *fakeSubs) ListSubscribers(_ context.Context, channelID string) ([]entity.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Channel
	for _, s := range f.byKey {
		if s.ChannelID == channelID {
			out = append(out, entity.Channel{ID: s.SubscriberID})
		}
	}
	return out, nil
}

func (f *fakeSubs) ListChannels(_ context.Context, subscriberID string) ([]entity.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Channel
	for _, s := range f.byKey {
		if s.SubscriberID == subscriberID {
			out = append(out, entity.Channel{ID: s.ChannelID})
		}
	}
	return out, nil
}
