package notifier

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/DorinSirca/ismyjobcooked-api/internal/model"
)

func TestLogNotifier_NotifyShare(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))

	err := n.NotifyShare(context.Background(), model.ShareEvent{
		ID:          "abc",
		Platform:    "twitter",
		JobTitle:    "teacher",
		CookedScore: 30,
	})
	if err != nil {
		t.Fatalf("NotifyShare = %v, want nil", err)
	}

	out := buf.String()
	for _, want := range []string{"result shared", "share_id=abc", "platform=twitter", "job_title=teacher", "cooked_score=30"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}

func TestLogNotifier_ZeroScoreOmitted(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))

	if err := n.NotifyShare(context.Background(), model.ShareEvent{Platform: "tiktok", JobTitle: "nurse"}); err != nil {
		t.Fatalf("NotifyShare = %v, want nil", err)
	}
	if strings.Contains(buf.String(), "cooked_score") {
		t.Errorf("unexpected cooked_score in %q", buf.String())
	}
}
