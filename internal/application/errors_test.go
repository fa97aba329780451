package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/sony/gobreaker"

	repo "github.com/oksasatya/vidtube/internal/domain/repository"
)

var kinds = []error{ErrInvalidArgument, ErrNotFound, ErrPermissionDenied, ErrConflict, ErrUpload, ErrStorage}

func matchedKinds(err error) []error {
	var out []error
	for _, k := range kinds {
		if errors.Is(err, k) {
			out = append(out, k)
		}
	}
	return out
}

func TestErrors_ExactlyOneKind(t *testing.T) {
	inner := notFound("video not found")
	cases := map[string]error{
		"storage wrapping not found": storageErr("failed", inner),
		"upload wrapping storage":    uploadErr("failed", storageErr("x", errors.New("io"))),
		"conflict from repo":         fromRepo(fmt.Errorf("insert: %w", repo.ErrConflict), "like"),
		"not found from repo":        fromRepo(repo.ErrNotFound, "video"),
		"opaque repo error":          fromRepo(errors.New("connection reset"), "video"),
		"invalid from repo":          fromRepo(fmt.Errorf("insert: %w", repo.ErrInvalid), "subscription"),
	}
	for name, err := range cases {
		t.Run(name, func(t *testing.T) {
			if got := matchedKinds(err); len(got) != 1 {
				t.Fatalf("expected one kind, matched %v", got)
			}
		})
	}
}

func TestErrors_FromRepoInvalidIsInvalidArgument(t *testing.T) {
	err := fromRepo(fmt.Errorf("%w: check violation", repo.ErrInvalid), "channel")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestErrors_FromRepoKeepsServiceErrors(t *testing.T) {
	perm := forbidden("nope")
	if got := fromRepo(perm, "video"); got != perm {
		t.Fatalf("service error should pass through unchanged, got %v", got)
	}
}

func TestErrors_Retryable(t *testing.T) {
	if !IsRetryable(storageErr("slow", context.DeadlineExceeded)) {
		t.Fatal("deadline should be retryable")
	}
	if !IsRetryable(uploadErr("open", gobreaker.ErrOpenState)) {
		t.Fatal("open breaker should be retryable")
	}
	if IsRetryable(storageErr("bad", errors.New("syntax error"))) {
		t.Fatal("plain failure should not be retryable")
	}
	if IsRetryable(errors.New("foreign")) {
		t.Fatal("non-service error is never retryable")
	}
}

func TestMessage(t *testing.T) {
	if got := Message(storageErr("failed to save video", errors.New("pg down"))); got != "failed to save video" {
		t.Fatalf("Message = %q", got)
	}
	if got := Message(errors.New("raw")); got != "raw" {
		t.Fatalf("Message = %q", got)
	}
}

func TestValidateID(t *testing.T) {
	id := newID()
	got, err := ValidateID("video", id)
	if err != nil || got != id {
		t.Fatalf("valid id: got %q, %v", got, err)
	}
	got, err = ValidateID("video", strings.ToUpper(id))
	if err != nil || got != id {
		t.Fatalf("upper-case id should canonicalize to %q, got %q, %v", id, got, err)
	}
	for _, bad := range []string{
		"", "  ", "123", "not-a-uuid",
		"urn:uuid:" + id,
		"{" + id + "}",
		strings.ReplaceAll(id, "-", ""),
	} {
		if _, err := ValidateID("video", bad); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("id %q: expected invalid argument, got %v", bad, err)
		}
	}
}
