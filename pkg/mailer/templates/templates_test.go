package templates

import (
	"strings"
	"testing"
	"time"

	"github.com/oksasatya/vidtube/config"
)

func TestRender_Welcome(t *testing.T) {
	cfg := &config.Config{AppName: "vidtube", SupportURL: "https://help.test"}
	data := NewWelcomeData(cfg, "Ada", "ada@example.com", WithTime(time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC)))

	subject, text, html, err := Render(Welcome, data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if subject != "Welcome to vidtube" {
		t.Fatalf("subject = %q", subject)
	}
	if !strings.Contains(text, "Hi Ada") || !strings.Contains(text, "https://help.test") {
		t.Fatalf("text body missing fields:\n%s", text)
	}
	if !strings.Contains(html, "Ada") {
		t.Fatal("html body should greet the recipient")
	}
}

func TestRender_NewSubscriber(t *testing.T) {
	data := NewSubscriberData(nil, "Channel Owner", "owner@example.com", "grace",
		WithChannelURL("https://vidtube.test/c/grace"))

	subject, text, _, err := Render(NewSubscriber, data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if subject != "grace subscribed to your channel" {
		t.Fatalf("subject = %q", subject)
	}
	if !strings.Contains(text, "https://vidtube.test/c/grace") {
		t.Fatalf("text body missing channel link:\n%s", text)
	}
}

func TestRender_Unknown(t *testing.T) {
	if Known("password_reset") {
		t.Fatal("unexpected template")
	}
	if _, _, _, err := Render("password_reset", nil); err == nil {
		t.Fatal("expected error for a missing template")
	}
}

func TestRender_BlankFieldsUseDefaults(t *testing.T) {
	_, text, _, err := Render(Welcome, NewWelcomeData(nil, "", "x@example.com"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(text, "Hi there") || strings.Contains(text, "<no value>") {
		t.Fatalf("unexpected text:\n%s", text)
	}
}
