package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	app "github.com/oksasatya/vidtube/internal/application"
	"github.com/oksasatya/vidtube/internal/domain/entity"
	"github.com/oksasatya/vidtube/internal/interface/middleware"
	"github.com/oksasatya/vidtube/pkg/validation"
)

func init() { gin.SetMode(gin.TestMode) }

func kindErr(kind error, msg string) error { return &app.Error{Kind: kind, Message: msg} }

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{kindErr(app.ErrInvalidArgument, "bad"), http.StatusBadRequest},
		{kindErr(app.ErrPermissionDenied, "no"), http.StatusForbidden},
		{kindErr(app.ErrNotFound, "gone"), http.StatusNotFound},
		{app.ErrUserNotFound, http.StatusNotFound},
		{kindErr(app.ErrConflict, "dup"), http.StatusConflict},
		{app.ErrInvalidCredentials, http.StatusUnauthorized},
		{kindErr(app.ErrUpload, "up"), http.StatusInternalServerError},
		{kindErr(app.ErrStorage, "db"), http.StatusInternalServerError},
		{errors.New("unknown"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.want {
			t.Errorf("statusFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return env
}

// signedIn stands in for the auth middleware.
func signedIn(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxUserIDKey, userID)
		c.Next()
	}
}

type stubLikes struct {
	active  map[string]bool
	err     error
	actorID string
}

func (s *stubLikes) flip(actorID, id string) (app.ToggleResult, error) {
	s.actorID = actorID
	if s.err != nil {
		return app.ToggleResult{}, s.err
	}
	s.active[id] = !s.active[id]
	return app.ToggleResult{Active: s.active[id]}, nil
}

func (s *stubLikes) ToggleVideoLike(_ context.Context, actorID, id string) (app.ToggleResult, error) {
	return s.flip(actorID, id)
}

func (s *stubLikes) ToggleCommentLike(_ context.Context, actorID, id string) (app.ToggleResult, error) {
	return s.flip(actorID, id)
}

func (s *stubLikes) ToggleTweetLike(_ context.Context, actorID, id string) (app.ToggleResult, error) {
	return s.flip(actorID, id)
}

func (s *stubLikes) LikedVideos(context.Context, string) ([]entity.Video, error) {
	return []entity.Video{}, nil
}

func TestLikeHandler_ToggleStatusCodes(t *testing.T) {
	svc := &stubLikes{active: map[string]bool{}}
	h := NewLikeHandler(svc, nil)
	r := gin.New()
	r.POST("/likes/toggle/v/:videoId", signedIn("u1"), h.ToggleVideo)

	do := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/likes/toggle/v/v1", nil))
		return w
	}

	w := do()
	if w.Code != http.StatusCreated {
		t.Fatalf("first toggle: status %d", w.Code)
	}
	if env := decode(t, w); env.Message != "Video liked successfully" || !env.Success {
		t.Fatalf("unexpected envelope %+v", env)
	}
	if svc.actorID != "u1" {
		t.Fatalf("actor = %q", svc.actorID)
	}

	w = do()
	if w.Code != http.StatusOK {
		t.Fatalf("second toggle: status %d", w.Code)
	}
	if env := decode(t, w); env.Message != "Video unliked successfully" {
		t.Fatalf("unexpected message %q", env.Message)
	}
}

func TestLikeHandler_ErrorEnvelope(t *testing.T) {
	cases := map[int]error{
		http.StatusNotFound:            kindErr(app.ErrNotFound, "video not found"),
		http.StatusBadRequest:          kindErr(app.ErrInvalidArgument, "invalid video id"),
		http.StatusConflict:            kindErr(app.ErrConflict, "duplicate video relation"),
		http.StatusInternalServerError: &app.Error{Kind: app.ErrStorage, Message: "failed to access video", Cause: context.DeadlineExceeded, Retryable: true},
	}
	for status, err := range cases {
		h := NewLikeHandler(&stubLikes{err: err}, nil)
		r := gin.New()
		r.POST("/likes/toggle/t/:tweetId", signedIn("u1"), h.ToggleTweet)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/likes/toggle/t/t1", nil))

		if w.Code != status {
			t.Fatalf("%v: status %d, want %d", err, w.Code, status)
		}
		env := decode(t, w)
		if env.Success || env.Message != app.Message(err) {
			t.Fatalf("unexpected envelope %+v", env)
		}
		if status == http.StatusInternalServerError && !bytes.Contains(env.Error, []byte(`"retryable":true`)) {
			t.Fatalf("retryable detail missing: %s", env.Error)
		}
	}
}

type stubVideos struct {
	published app.PublishVideoInput
	body      []byte
	deleted   string
}

func (s *stubVideos) Publish(_ context.Context, actorID string, in app.PublishVideoInput) (*entity.Video, error) {
	s.published = in
	if in.VideoFile == nil || in.Thumbnail == nil {
		return nil, kindErr(app.ErrInvalidArgument, "video file is required")
	}
	s.body, _ = io.ReadAll(in.VideoFile.Body)
	return &entity.Video{ID: "v1", Title: in.Title, OwnerID: actorID, IsPublished: true}, nil
}

func (s *stubVideos) Get(context.Context, string, string) (*entity.Video, error) {
	return nil, kindErr(app.ErrNotFound, "video not found")
}

func (s *stubVideos) List(context.Context, string, app.ListVideosInput) (*app.VideoPage, error) {
	return &app.VideoPage{}, nil
}

func (s *stubVideos) SearchVideos(context.Context, string, int) ([]map[string]any, error) {
	return nil, nil
}

func (s *stubVideos) Update(context.Context, string, string, app.UpdateVideoInput) (*entity.Video, error) {
	return nil, kindErr(app.ErrPermissionDenied, "you are not allowed to modify this video")
}

func (s *stubVideos) Delete(_ context.Context, _ string, id string) error {
	s.deleted = id
	return nil
}

func (s *stubVideos) TogglePublish(context.Context, string, string) (*entity.Video, error) {
	return &entity.Video{}, nil
}

func multipartBody(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	for field, content := range files {
		fw, err := mw.CreateFormFile(field, field+".bin")
		if err != nil {
			t.Fatal(err)
		}
		_, _ = fw.Write([]byte(content))
	}
	_ = mw.Close()
	return buf, mw.FormDataContentType()
}

func TestVideoHandler_Publish(t *testing.T) {
	svc := &stubVideos{}
	h := NewVideoHandler(svc, nil, 1<<20)
	r := gin.New()
	r.POST("/videos", signedIn("owner"), h.Publish)

	body, ct := multipartBody(t,
		map[string]string{"title": "Intro", "description": "desc", "duration": "12.5"},
		map[string]string{"videoFile": "frames", "thumbnail": "pixels"},
	)
	req := httptest.NewRequest(http.MethodPost, "/videos", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	if svc.published.Title != "Intro" || svc.published.Duration != 12.5 {
		t.Fatalf("unexpected input %+v", svc.published)
	}
	if string(svc.body) != "frames" {
		t.Fatalf("video body = %q", svc.body)
	}
}

func TestVideoHandler_PublishRejectsBadInput(t *testing.T) {
	h := NewVideoHandler(&stubVideos{}, nil, 4)
	r := gin.New()
	r.POST("/videos", signedIn("owner"), h.Publish)

	cases := []struct {
		name   string
		fields map[string]string
		files  map[string]string
		want   int
	}{
		{"missing thumbnail", map[string]string{"title": "a", "description": "b"}, map[string]string{"videoFile": "ok"}, http.StatusBadRequest},
		{"bad duration", map[string]string{"duration": "long"}, map[string]string{"videoFile": "ok", "thumbnail": "ok"}, http.StatusBadRequest},
		{"too large", nil, map[string]string{"videoFile": "way too large", "thumbnail": "ok"}, http.StatusRequestEntityTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, ct := multipartBody(t, tc.fields, tc.files)
			req := httptest.NewRequest(http.MethodPost, "/videos", body)
			req.Header.Set("Content-Type", ct)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("status %d, want %d: %s", w.Code, tc.want, w.Body.String())
			}
		})
	}
}

func TestVideoHandler_ErrorsMapToStatus(t *testing.T) {
	svc := &stubVideos{}
	h := NewVideoHandler(svc, nil, 0)
	r := gin.New()
	r.GET("/videos/:videoId", h.Get)
	r.PATCH("/videos/:videoId", signedIn("stranger"), h.Update)
	r.DELETE("/videos/:videoId", signedIn("owner"), h.Delete)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/videos/v1", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("get: status %d", w.Code)
	}

	body, ct := multipartBody(t, map[string]string{"title": "x"}, nil)
	req := httptest.NewRequest(http.MethodPatch, "/videos/v1", body)
	req.Header.Set("Content-Type", ct)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("update: status %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/videos/v1", nil))
	if w.Code != http.StatusOK || svc.deleted != "v1" {
		t.Fatalf("delete: status %d deleted %q", w.Code, svc.deleted)
	}
}

func TestHealthHandler(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	for _, tc := range []struct {
		checks map[string]Pinger
		want   int
	}{
		{map[string]Pinger{"postgres": ok, "redis": ok}, http.StatusOK},
		{map[string]Pinger{"postgres": ok, "redis": down}, http.StatusServiceUnavailable},
	} {
		h := NewHealthHandler(tc.checks, func() string { return "closed" })
		r := gin.New()
		r.GET("/healthcheck", h.Check)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
		if w.Code != tc.want {
			t.Fatalf("status %d, want %d: %s", w.Code, tc.want, w.Body.String())
		}
	}
}

type stubComments struct {
	added []string
}

func (s *stubComments) ListByVideo(_ context.Context, videoID string, page, limit int) (*app.CommentPage, error) {
	return &app.CommentPage{Comments: []entity.Comment{}, Total: 12, Page: page, Limit: limit}, nil
}

func (s *stubComments) Add(_ context.Context, actorID, videoID, content string) (*entity.Comment, error) {
	s.added = append(s.added, content)
	return &entity.Comment{ID: "c1", Content: content, VideoID: videoID, OwnerID: actorID}, nil
}

func (s *stubComments) Update(context.Context, string, string, string) (*entity.Comment, error) {
	return nil, kindErr(app.ErrPermissionDenied, "you do not own this comment")
}

func (s *stubComments) Delete(context.Context, string, string) error { return nil }

func TestCommentHandler_Binding(t *testing.T) {
	validation.Init()
	svc := &stubComments{}
	h := NewCommentHandler(svc, nil)
	r := gin.New()
	r.POST("/comments/:videoId", signedIn("u1"), h.Add)
	r.GET("/comments/:videoId", h.List)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/comments/v1", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := post(`{"content":"   "}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("blank content: status %d", w.Code)
	}
	var details map[string]string
	_ = json.Unmarshal(decode(t, w).Error, &details)
	if details["content"] != "is required" {
		t.Fatalf("details = %v", details)
	}

	if w := post(`{"content":"nice video"}`); w.Code != http.StatusCreated {
		t.Fatalf("valid comment: status %d", w.Code)
	}
	if len(svc.added) != 1 || svc.added[0] != "nice video" {
		t.Fatalf("service saw %v", svc.added)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/comments/v1?page=1&limit=5", nil))
	var page struct {
		Meta struct {
			Total   int64 `json:"total"`
			HasMore bool  `json:"has_more"`
		} `json:"meta"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &page)
	if w.Code != http.StatusOK || page.Meta.Total != 12 || !page.Meta.HasMore {
		t.Fatalf("list: %d %s", w.Code, w.Body.String())
	}
}
