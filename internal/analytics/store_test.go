package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/DorinSirca/ismyjobcooked-api/internal/events"
	"github.com/DorinSirca/ismyjobcooked-api/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestStore(pub events.Publisher) (*Store, *time.Time) {
	s := New(pub, slog.New(slog.DiscardHandler))
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	s.WithClock(func() time.Time { return now })
	return s, &now
}

func score(v float64) *float64 { return &v }

func TestTrackSearch_JobLookupIsCaseInsensitive(t *testing.T) {
	s, _ := newTestStore(nil)
	ctx := context.Background()

	s.TrackSearch(ctx, SearchInput{JobTitle: "Teacher", CookedScore: score(42)})

	stats, err := s.Job("teacher")
	if err != nil {
		t.Fatalf("Job: %v", err)
	}
	if stats.Searches != 1 {
		t.Errorf("searches = %d, want 1", stats.Searches)
	}
	if stats.AverageScore != 42 {
		t.Errorf("averageScore = %v, want 42", stats.AverageScore)
	}
	if stats.Rank == nil || *stats.Rank != 1 {
		t.Errorf("rank = %v, want 1", stats.Rank)
	}
	if len(stats.RecentSearches) != 1 || stats.RecentSearches[0].UserAgent != "unknown" {
		t.Errorf("recentSearches = %+v", stats.RecentSearches)
	}
}

func TestTrackSearch_AverageIgnoresMissingScore(t *testing.T) {
	s, _ := newTestStore(nil)
	ctx := context.Background()

	s.TrackSearch(ctx, SearchInput{JobTitle: "nurse", CookedScore: score(30)})
	s.TrackSearch(ctx, SearchInput{JobTitle: "nurse"})
	s.TrackSearch(ctx, SearchInput{JobTitle: "nurse", CookedScore: score(60)})

	stats, err := s.Job("nurse")
	if err != nil {
		t.Fatal(err)
	}
	if stats.Searches != 3 {
		t.Errorf("searches = %d, want 3", stats.Searches)
	}
	// 90 total over 3 searches once the third score lands
	if stats.AverageScore != 30 {
		t.Errorf("averageScore = %v, want 30", stats.AverageScore)
	}
	if got := stats.RecentSearches[0].CookedScore; got != 60 {
		t.Errorf("newest session score = %v, want 60", got)
	}
}

func TestTrackSearch_ZeroScoreCountsTowardAverage(t *testing.T) {
	s, _ := newTestStore(nil)
	ctx := context.Background()

	s.TrackSearch(ctx, SearchInput{JobTitle: "cashier", CookedScore: score(80)})
	s.TrackSearch(ctx, SearchInput{JobTitle: "cashier", CookedScore: score(0)})

	stats, err := s.Job("cashier")
	if err != nil {
		t.Fatal(err)
	}
	if stats.AverageScore != 40 {
		t.Errorf("averageScore = %v, want 40", stats.AverageScore)
	}
}

func TestJob_NotFound(t *testing.T) {
	s, _ := newTestStore(nil)
	_, err := s.Job("astronaut")
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("err = %v, want ErrJobNotFound", err)
	}
}

func TestTrackShare_UnknownPlatformOnlyCountsTotal(t *testing.T) {
	s, _ := newTestStore(nil)
	ctx := context.Background()

	total, ev := s.TrackShare(ctx, ShareInput{Platform: "MySpace", JobTitle: "teacher"})
	if total != 1 {
		t.Errorf("total = %d, want 1", total)
	}
	if ev.ID == "" {
		t.Error("share event has no id")
	}

	stats := s.Shares("", 0)
	if stats.TotalShares != 1 {
		t.Errorf("totalShares = %d, want 1", stats.TotalShares)
	}
	for _, p := range KnownPlatforms {
		if stats.ShareMetrics[p] != 0 {
			t.Errorf("shareMetrics[%s] = %d, want 0", p, stats.ShareMetrics[p])
		}
	}
	if _, ok := stats.ShareMetrics["myspace"]; ok {
		t.Error("unknown platform got its own counter")
	}
}

func TestTrackShare_KnownPlatform(t *testing.T) {
	s, _ := newTestStore(nil)
	ctx := context.Background()

	s.TrackShare(ctx, ShareInput{Platform: "Twitter", JobTitle: "teacher", CookedScore: score(0)})
	s.TrackShare(ctx, ShareInput{Platform: "twitter", JobTitle: "nurse"})

	stats := s.Shares("twitter", 0)
	if len(stats.ShareMetrics) != 1 || stats.ShareMetrics["twitter"] != 2 {
		t.Errorf("shareMetrics = %v, want twitter:2 only", stats.ShareMetrics)
	}
	if got := s.Shares("pinterest", 0).ShareMetrics["pinterest"]; got != 0 {
		t.Errorf("unknown platform filter = %d, want 0", got)
	}
}

func TestTrackShare_DailySharesNeedExistingDay(t *testing.T) {
	s, _ := newTestStore(nil)
	ctx := context.Background()

	s.TrackShare(ctx, ShareInput{Platform: "twitter", JobTitle: "teacher"})
	if snap := s.Snapshot(); len(snap.DailyStats) != 0 {
		t.Fatalf("share created a day entry: %v", snap.DailyStats)
	}

	s.TrackSearch(ctx, SearchInput{JobTitle: "teacher"})
	s.TrackShare(ctx, ShareInput{Platform: "twitter", JobTitle: "teacher"})
	day := s.Snapshot().DailyStats["2025-03-10"]
	if day.Searches != 1 || day.Shares != 1 {
		t.Errorf("day = %+v, want 1 search and 1 share", day)
	}
}

func TestShares_WindowAndOrder(t *testing.T) {
	s, now := newTestStore(nil)
	ctx := context.Background()

	start := *now
	for i := 0; i < 25; i++ {
		*now = start.Add(time.Duration(i) * time.Minute)
		s.TrackShare(ctx, ShareInput{Platform: "linkedin", JobTitle: fmt.Sprintf("job %d", i)})
	}
	*now = start.AddDate(0, 0, 40)
	s.TrackShare(ctx, ShareInput{Platform: "linkedin", JobTitle: "late"})

	recent := s.Shares("", 7)
	if len(recent.ViralContent) != 1 || recent.ViralContent[0].JobTitle != "late" {
		t.Errorf("7-day window = %+v, want only the late share", recent.ViralContent)
	}

	all := s.Shares("", 60)
	if len(all.ViralContent) != 20 {
		t.Fatalf("len = %d, want 20", len(all.ViralContent))
	}
	if all.ViralContent[0].JobTitle != "late" || all.ViralContent[19].JobTitle != "job 6" {
		t.Errorf("order = %s ... %s", all.ViralContent[0].JobTitle, all.ViralContent[19].JobTitle)
	}
	if all.TotalShares != 26 {
		t.Errorf("totalShares = %d, want 26", all.TotalShares)
	}
}

func TestTrending_TiesKeepFirstSeenOrder(t *testing.T) {
	s, _ := newTestStore(nil)
	ctx := context.Background()

	for _, title := range []string{"b", "a", "c", "c", "a"} {
		s.TrackSearch(ctx, SearchInput{JobTitle: title})
	}

	got := s.Trending(0)
	want := []string{"a", "c", "b"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Title != w {
			t.Errorf("trending[%d] = %s, want %s", i, got[i].Title, w)
		}
	}
	if got := s.Trending(1); len(got) != 1 {
		t.Errorf("limit 1 returned %d", len(got))
	}

	stats, _ := s.Job("b")
	if stats.Rank == nil || *stats.Rank != 3 {
		t.Errorf("rank of b = %v, want 3", stats.Rank)
	}
}

func TestDashboard(t *testing.T) {
	s, now := newTestStore(nil)
	ctx := context.Background()

	old := now.AddDate(0, 0, -10)
	s.TrackSearch(ctx, SearchInput{JobTitle: "clerk", CookedScore: score(90), Timestamp: old})
	s.TrackSearch(ctx, SearchInput{JobTitle: "nurse", CookedScore: score(20)})
	s.TrackSearch(ctx, SearchInput{JobTitle: "nurse"})
	s.TrackShare(ctx, ShareInput{Platform: "tiktok", JobTitle: "nurse"})

	d := s.Dashboard(0)
	if d.Overview.TotalSearches != 3 || d.Overview.TotalShares != 1 {
		t.Errorf("overview totals = %+v", d.Overview)
	}
	if d.Overview.AverageCookedScore != 55 {
		t.Errorf("averageCookedScore = %v, want 55", d.Overview.AverageCookedScore)
	}
	if d.Overview.UniqueJobsSearched != 2 {
		t.Errorf("uniqueJobsSearched = %d, want 2", d.Overview.UniqueJobsSearched)
	}
	if d.RecentStats.Period != "7 days" {
		t.Errorf("period = %q", d.RecentStats.Period)
	}
	if d.RecentStats.Searches != 2 || d.RecentStats.UniqueJobs != 1 {
		t.Errorf("recentStats = %+v", d.RecentStats)
	}
	if d.RecentStats.AverageScore != 10 {
		t.Errorf("recent averageScore = %v, want 10", d.RecentStats.AverageScore)
	}
	if len(d.PopularJobs) != 2 || d.PopularJobs[0].Title != "nurse" {
		t.Errorf("popularJobs = %+v", d.PopularJobs)
	}
	if d.ShareMetrics["tiktok"] != 1 || len(d.ViralContent) != 1 {
		t.Errorf("shares = %v / %d", d.ShareMetrics, len(d.ViralContent))
	}
}

func TestReset(t *testing.T) {
	hub := events.NewHub()
	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	s, _ := newTestStore(hub)
	ctx := events.WithRequestID(context.Background(), "req-1")

	s.TrackSearch(ctx, SearchInput{JobTitle: "teacher", CookedScore: score(50)})
	s.TrackShare(ctx, ShareInput{Platform: "twitter", JobTitle: "teacher"})
	s.Reset(ctx)

	searches, shares := s.Totals()
	if searches != 0 || shares != 0 {
		t.Errorf("totals = %d/%d, want 0/0", searches, shares)
	}
	if _, err := s.Job("teacher"); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("job after reset: %v", err)
	}
	d := s.Dashboard(7)
	if d.RecentStats.Searches != 0 || len(d.ViralContent) != 0 || len(d.PopularJobs) != 0 {
		t.Errorf("dashboard after reset = %+v", d)
	}
	if d.ShareMetrics["twitter"] != 0 {
		t.Errorf("twitter counter = %d", d.ShareMetrics["twitter"])
	}
	if !s.Empty() {
		t.Error("store not empty after reset")
	}

	var types []string
	for len(sub) > 0 {
		var ev events.Event
		if err := json.Unmarshal([]byte(<-sub), &ev); err != nil {
			t.Fatal(err)
		}
		if ev.RequestID != "req-1" {
			t.Errorf("request id = %q", ev.RequestID)
		}
		types = append(types, ev.Type)
	}
	want := []string{events.TypeSearchTracked, events.TypeShareTracked, events.TypeAnalyticsReset}
	if fmt.Sprint(types) != fmt.Sprint(want) {
		t.Errorf("events = %v, want %v", types, want)
	}
}

func TestSnapshotRestore(t *testing.T) {
	src, _ := newTestStore(nil)
	ctx := context.Background()

	src.TrackSearch(ctx, SearchInput{JobTitle: "clerk", CookedScore: score(80)})
	src.TrackSearch(ctx, SearchInput{JobTitle: "nurse", CookedScore: score(20)})
	src.TrackSearch(ctx, SearchInput{JobTitle: "nurse", CookedScore: score(40)})
	src.TrackShare(ctx, ShareInput{Platform: "linkedin", JobTitle: "nurse"})

	raw, err := json.Marshal(src.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	var snap model.AnalyticsSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		t.Fatal(err)
	}

	dst, _ := newTestStore(nil)
	dst.Restore(snap)

	if a, b := src.Dashboard(7), dst.Dashboard(7); fmt.Sprint(a) != fmt.Sprint(b) {
		t.Errorf("dashboard differs after restore:\n%+v\n%+v", a, b)
	}
	stats, err := dst.Job("nurse")
	if err != nil {
		t.Fatal(err)
	}
	if stats.AverageScore != 30 || stats.Rank == nil || *stats.Rank != 1 {
		t.Errorf("nurse = %+v", stats)
	}

	// restored store keeps counting from the snapshot
	dst.TrackSearch(ctx, SearchInput{JobTitle: "clerk"})
	dst.TrackSearch(ctx, SearchInput{JobTitle: "clerk"})
	if got := dst.Trending(1)[0].Title; got != "clerk" {
		t.Errorf("top after more searches = %s, want clerk", got)
	}
}

func TestConcurrentWrites(t *testing.T) {
	s, _ := newTestStore(nil)
	ctx := context.Background()

	const workers, perWorker = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				s.TrackSearch(ctx, SearchInput{JobTitle: fmt.Sprintf("job %d", i%5), CookedScore: score(float64(w))})
				s.TrackShare(ctx, ShareInput{Platform: "clipboard", JobTitle: "x"})
				_ = s.Dashboard(7)
				_ = s.Trending(3)
			}
		}(w)
	}
	wg.Wait()

	searches, shares := s.Totals()
	if searches != workers*perWorker || shares != workers*perWorker {
		t.Errorf("totals = %d/%d, want %d", searches, shares, workers*perWorker)
	}
	total := 0
	for _, j := range s.Trending(10) {
		total += j.Searches
	}
	if total != workers*perWorker {
		t.Errorf("per-job searches sum = %d", total)
	}
}
