package notifier

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DorinSirca/ismyjobcooked-api/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleShare(title, platform string) model.ShareEvent {
	return model.ShareEvent{
		ID:          "share-123",
		Platform:    platform,
		JobTitle:    title,
		CookedScore: 91.6,
		ShareText:   "My job is cooked",
		Timestamp:   time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestSlackNotifier_SingleShare(t *testing.T) {
	var body []byte
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		contentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL, srv.Client(), discardLogger())

	if err := n.NotifyShare(context.Background(), sampleShare("data entry clerk", "twitter")); err != nil {
		t.Fatalf("NotifyShare() = %v, want nil", err)
	}
	if contentType != "application/json" {
		t.Errorf("content type = %q", contentType)
	}

	var payload slackPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}

	header := payload.Blocks[0]
	if header.Text.Text != "🔥 Data entry clerk shared on Twitter" {
		t.Errorf("header text = %q", header.Text.Text)
	}

	fields := payload.Blocks[1].Fields
	if fields[0].Text != "*Cooked score:*\n92%" {
		t.Errorf("score field = %q", fields[0].Text)
	}
	if fields[1].Text != "*Level:*\nBURNT" {
		t.Errorf("level field = %q", fields[1].Text)
	}
}

func TestSlackNotifier_SlackReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL, srv.Client(), discardLogger())

	err := n.NotifyShare(context.Background(), sampleShare("Fails", "tiktok"))
	if err == nil {
		t.Fatal("expected error for 500, got nil")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("error = %v, want status code", err)
	}
}

func TestSlackNotifier_RateLimited(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := calls.Add(1)
		if c == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
		} else {
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL, srv.Client(), discardLogger())
	err := n.NotifyShare(context.Background(), sampleShare("Rate Limited", "linkedin"))
	if err != nil {
		t.Fatalf("expected nil after retry, got %v", err)
	}
	if c := calls.Load(); c != 2 {
		t.Errorf("expected 2 HTTP calls (initial + retry), got %d", c)
	}
}

func TestSlackNotifier_RateLimitedTwiceFails(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "1")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL, srv.Client(), discardLogger())
	if err := n.NotifyShare(context.Background(), sampleShare("x", "twitter")); err == nil {
		t.Fatal("expected error after second 429")
	}
	if c := calls.Load(); c != 2 {
		t.Errorf("expected exactly one retry, got %d calls", c)
	}
}

func TestSlackNotifier_CancelDuringRetryWait(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL, srv.Client(), discardLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := n.NotifyShare(ctx, sampleShare("x", "twitter"))
	if err == nil {
		t.Fatal("expected error when cancelled during retry wait")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("NotifyShare took %v, want prompt return", elapsed)
	}
}

func TestSlackNotifier_PayloadFormat(t *testing.T) {
	withText := buildPayload(sampleShare("nurse", "clipboard"))
	if len(withText.Blocks) != 5 {
		t.Fatalf("expected 5 blocks, got %d", len(withText.Blocks))
	}
	wantTypes := []string{"header", "section", "section", "context", "divider"}
	for i, want := range wantTypes {
		if withText.Blocks[i].Type != want {
			t.Errorf("block[%d] type = %q, want %q", i, withText.Blocks[i].Type, want)
		}
	}
	if got := withText.Blocks[2].Text.Text; got != "> My job is cooked" {
		t.Errorf("quote block = %q", got)
	}
	if got := withText.Blocks[3].Elements[0].Text; !strings.Contains(got, "share-123") {
		t.Errorf("context block = %q, want share id", got)
	}

	ev := sampleShare("nurse", "clipboard")
	ev.ShareText = ""
	ev.CookedScore = 10
	plain := buildPayload(ev)
	if len(plain.Blocks) != 4 {
		t.Fatalf("expected 4 blocks without share text, got %d", len(plain.Blocks))
	}
	if got := plain.Blocks[1].Fields[1].Text; got != "*Level:*\nRAW" {
		t.Errorf("level field = %q", got)
	}
}

func TestSendTestMessage(t *testing.T) {
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL, srv.Client(), discardLogger())
	if err := SendTestMessage(context.Background(), n); err != nil {
		t.Fatalf("SendTestMessage: %v", err)
	}
	if !strings.Contains(string(body), "Notification Test Engineer") {
		t.Errorf("payload = %s", body)
	}
}
