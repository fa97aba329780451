package application

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/oksasatya/vidtube/internal/domain/entity"
)

type videoFixture struct {
	store  *fakeStore
	videos *fakeVideos
	jobs   *fakeJobs
	svc    *VideoService
}

func newVideoFixture(videos ...*entity.Video) videoFixture {
	f := videoFixture{store: newFakeStore(), videos: newFakeVideos(videos...), jobs: &fakeJobs{}}
	rt := &Runtime{Jobs: f.jobs, CleanupQueue: "cleanup", EmailQueue: "emails"}
	f.svc = NewVideoService(f.videos, &Media{Store: f.store}, false, nil, "", rt)
	return f
}

func publishInput() PublishVideoInput {
	return PublishVideoInput{
		Title:       "Intro",
		Description: "First upload",
		Duration:    12.5,
		VideoFile:   file("intro.mp4"),
		Thumbnail:   file("intro.jpg"),
	}
}

func storedVideo(owner string) *entity.Video {
	return &entity.Video{
		ID:          newID(),
		Title:       "Old",
		Description: "Old description",
		VideoFile:   entity.Asset{ID: "video/old", URL: "https://cdn.test/video/old"},
		Thumbnail:   entity.Asset{ID: "thumbnail/old", URL: "https://cdn.test/thumbnail/old"},
		IsPublished: true,
		OwnerID:     owner,
	}
}

func TestVideoService_Publish(t *testing.T) {
	f := newVideoFixture()
	owner := newID()

	v, err := f.svc.Publish(context.Background(), owner, publishInput())
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if v.ID == "" || v.OwnerID != owner || !v.IsPublished {
		t.Fatalf("unexpected video %+v", v)
	}
	if !f.store.has(v.VideoFile.ID) || !f.store.has(v.Thumbnail.ID) {
		t.Fatal("both assets should be in the store")
	}
	if _, ok := f.videos.get(v.ID); !ok {
		t.Fatal("video should be persisted")
	}
}

func TestVideoService_PublishValidation(t *testing.T) {
	f := newVideoFixture()
	cases := map[string]func(*PublishVideoInput){
		"blank title":       func(in *PublishVideoInput) { in.Title = "  " },
		"blank description": func(in *PublishVideoInput) { in.Description = "" },
		"negative duration": func(in *PublishVideoInput) { in.Duration = -1 },
		"NaN duration":      func(in *PublishVideoInput) { in.Duration = math.NaN() },
		"Inf duration":      func(in *PublishVideoInput) { in.Duration = math.Inf(1) },
		"-Inf duration":     func(in *PublishVideoInput) { in.Duration = math.Inf(-1) },
		"missing video":     func(in *PublishVideoInput) { in.VideoFile = nil },
		"missing thumbnail": func(in *PublishVideoInput) { in.Thumbnail = &Upload{} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := publishInput()
			mutate(&in)
			_, err := f.svc.Publish(context.Background(), newID(), in)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("expected invalid argument, got %v", err)
			}
		})
	}
	if f.store.count() != 0 {
		t.Fatal("validation failures must not upload anything")
	}
}

func TestVideoService_PublishVideoUploadFails(t *testing.T) {
	f := newVideoFixture()
	f.store.failUpload[entity.AssetVideo] = errors.New("bucket unavailable")

	_, err := f.svc.Publish(context.Background(), newID(), publishInput())
	if !errors.Is(err, ErrUpload) {
		t.Fatalf("expected upload error, got %v", err)
	}
	if f.store.count() != 0 {
		t.Fatalf("no asset may remain, found %d", f.store.count())
	}
	if len(f.videos.byID) != 0 {
		t.Fatal("video must not be created")
	}
}

func TestVideoService_PublishCommitFails(t *testing.T) {
	f := newVideoFixture()
	f.videos.createErr = errors.New("insert failed")

	_, err := f.svc.Publish(context.Background(), newID(), publishInput())
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if f.store.count() != 0 {
		t.Fatalf("uploaded assets must be deleted, %d remain", f.store.count())
	}
	if len(f.store.deleted) != 2 {
		t.Fatalf("expected 2 compensating deletes, got %d", len(f.store.deleted))
	}
}

func TestVideoService_PublishCompensationFailureIsQueued(t *testing.T) {
	f := newVideoFixture()
	f.videos.createErr = errors.New("insert failed")
	f.store.failDelete = errors.New("delete refused")

	_, err := f.svc.Publish(context.Background(), newID(), publishInput())
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	orphans := f.jobs.on("cleanup")
	if len(orphans) != 2 {
		t.Fatalf("expected 2 orphan jobs, got %d", len(orphans))
	}
	if o, ok := orphans[0].(entity.OrphanedAsset); !ok || o.ID == "" || o.Reason == "" {
		t.Fatalf("unexpected orphan job %#v", orphans[0])
	}
}

func TestVideoService_GetHidesUnpublishedFromOthers(t *testing.T) {
	owner := newID()
	v := storedVideo(owner)
	v.IsPublished = false
	f := newVideoFixture(v)

	if _, err := f.svc.Get(context.Background(), newID(), v.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for stranger, got %v", err)
	}
	got, err := f.svc.Get(context.Background(), owner, v.ID)
	if err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if got.Views != 0 {
		t.Fatal("owner reads do not count as views")
	}
}

func TestVideoService_GetCountsViews(t *testing.T) {
	v := storedVideo(newID())
	f := newVideoFixture(v)
	viewer := newID()

	for i := 1; i <= 2; i++ {
		got, err := f.svc.Get(context.Background(), viewer, v.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Views != int64(i) {
			t.Fatalf("views = %d, want %d", got.Views, i)
		}
	}
}

func TestVideoService_UpdateByNonOwnerIsDenied(t *testing.T) {
	owner := newID()
	v := storedVideo(owner)
	f := newVideoFixture(v)

	_, err := f.svc.Update(context.Background(), newID(), v.ID, UpdateVideoInput{Title: "Hijacked", VideoFile: file("x.mp4")})
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
	got, _ := f.videos.get(v.ID)
	if got.Title != "Old" || f.videos.updates != 0 {
		t.Fatal("video must be unchanged")
	}
	if f.store.count() != 0 {
		t.Fatal("nothing may be uploaded for a denied update")
	}
}

func TestVideoService_UpdateReplacesFile(t *testing.T) {
	owner := newID()
	v := storedVideo(owner)
	f := newVideoFixture(v)
	f.store.objects["video/old"] = entity.AssetVideo

	got, err := f.svc.Update(context.Background(), owner, v.ID, UpdateVideoInput{VideoFile: file("new.mp4")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.VideoFile.ID == "video/old" || !f.store.has(got.VideoFile.ID) {
		t.Fatalf("new file should be stored and referenced, got %+v", got.VideoFile)
	}
	if f.store.has("video/old") {
		t.Fatal("replaced file should be deleted")
	}
	if got.Thumbnail.ID != "thumbnail/old" {
		t.Fatal("thumbnail must be untouched")
	}
	stored, _ := f.videos.get(v.ID)
	if stored.VideoFile.ID != got.VideoFile.ID {
		t.Fatal("persisted reference should point at the new file")
	}
}

func TestVideoService_UpdateSaveFailsKeepsOldFile(t *testing.T) {
	owner := newID()
	v := storedVideo(owner)
	f := newVideoFixture(v)
	f.store.objects["video/old"] = entity.AssetVideo
	f.videos.updateErr = errors.New("update failed")

	_, err := f.svc.Update(context.Background(), owner, v.ID, UpdateVideoInput{VideoFile: file("new.mp4")})
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if !f.store.has("video/old") {
		t.Fatal("old file must remain")
	}
	if f.store.count() != 1 {
		t.Fatalf("new upload must be deleted, store holds %d objects", f.store.count())
	}
	stored, _ := f.videos.get(v.ID)
	if stored.VideoFile.ID != "video/old" {
		t.Fatal("stored reference must still point at the old file")
	}
}

func TestVideoService_UpdateNothing(t *testing.T) {
	v := storedVideo(newID())
	f := newVideoFixture(v)
	if _, err := f.svc.Update(context.Background(), v.OwnerID, v.ID, UpdateVideoInput{Title: " "}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestVideoService_Delete(t *testing.T) {
	owner := newID()

	t.Run("non owner", func(t *testing.T) {
		v := storedVideo(owner)
		f := newVideoFixture(v)
		if err := f.svc.Delete(context.Background(), newID(), v.ID); !errors.Is(err, ErrPermissionDenied) {
			t.Fatalf("expected permission denied, got %v", err)
		}
		if _, ok := f.videos.get(v.ID); !ok {
			t.Fatal("video must still be retrievable")
		}
	})

	for _, cascade := range []bool{false, true} {
		v := storedVideo(owner)
		f := newVideoFixture(v)
		f.svc.CascadeDelete = cascade
		f.store.objects["video/old"] = entity.AssetVideo
		f.store.objects["thumbnail/old"] = entity.AssetThumbnail

		if err := f.svc.Delete(context.Background(), owner, v.ID); err != nil {
			t.Fatalf("delete (cascade=%v): %v", cascade, err)
		}
		if len(f.videos.deletes) != 1 || f.videos.deletes[0].cascade != cascade {
			t.Fatalf("delete calls = %+v, want cascade=%v", f.videos.deletes, cascade)
		}
		if f.store.count() != 0 {
			t.Fatal("assets should be deleted with the video")
		}
	}
}

func TestVideoService_DeleteAssetFailureStillDeletesVideo(t *testing.T) {
	owner := newID()
	v := storedVideo(owner)
	f := newVideoFixture(v)
	f.store.failDelete = errors.New("store down")

	if err := f.svc.Delete(context.Background(), owner, v.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := f.videos.get(v.ID); ok {
		t.Fatal("video row should be gone")
	}
	if n := len(f.jobs.on("cleanup")); n != 2 {
		t.Fatalf("expected 2 cleanup jobs, got %d", n)
	}
}

func TestVideoService_TogglePublish(t *testing.T) {
	owner := newID()
	v := storedVideo(owner)
	f := newVideoFixture(v)

	got, err := f.svc.TogglePublish(context.Background(), owner, v.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if got.IsPublished {
		t.Fatal("expected unpublished after first toggle")
	}
	got, _ = f.svc.TogglePublish(context.Background(), owner, v.ID)
	if !got.IsPublished {
		t.Fatal("expected published after second toggle")
	}
	if _, err := f.svc.TogglePublish(context.Background(), newID(), v.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
}

func TestVideoService_MissingVideo(t *testing.T) {
	f := newVideoFixture()
	if err := f.svc.Delete(context.Background(), newID(), newID()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := f.svc.Delete(context.Background(), newID(), "bogus"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}
