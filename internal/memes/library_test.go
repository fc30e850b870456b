package memes

import (
	"errors"
	"testing"
	"time"
)

func TestLibrary_Shape(t *testing.T) {
	l := NewLibrary()
	all := l.All()
	if len(all) != 15 {
		t.Fatalf("library has %d memes, want 15", len(all))
	}
	for i, m := range all {
		if m.ID != int64(i+1) {
			t.Errorf("meme %d has ID %d", i, m.ID)
		}
		if m.ViralScore < 85 || m.ViralScore > 95 {
			t.Errorf("meme %d viral score %d", m.ID, m.ViralScore)
		}
	}
}

func TestDaily_StableWithinDay(t *testing.T) {
	l := NewLibrary()
	morning := time.Date(2025, time.March, 10, 0, 5, 0, 0, time.UTC)
	evening := time.Date(2025, time.March, 10, 23, 55, 0, 0, time.UTC)

	a, b := l.Daily(morning), l.Daily(evening)
	if a.Title != b.Title || a.ID != b.ID {
		t.Errorf("same day produced different memes: %q vs %q", a.Title, b.Title)
	}
	if !a.IsDaily || a.DayOfYear != 69 || a.ID != 69 {
		t.Errorf("unexpected daily meta: %+v", a)
	}
	// 69 % 15 = 9 -> the tenth meme
	if a.Title != "The future of work:" {
		t.Errorf("daily title = %q", a.Title)
	}
}

func TestDaily_DiffersNextDay(t *testing.T) {
	l := NewLibrary()
	day := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)
	for i := range 40 {
		today := day.AddDate(0, 0, i)
		tomorrow := today.AddDate(0, 0, 1)
		if today.Year() != tomorrow.Year() {
			continue
		}
		if l.Daily(today).Title == l.Daily(tomorrow).Title {
			t.Errorf("%s and next day share a meme", today.Format(time.DateOnly))
		}
	}
}

func TestDaily_WrapsModuloLibrary(t *testing.T) {
	l := NewLibrary()
	jan1 := time.Date(2025, time.January, 1, 8, 0, 0, 0, time.UTC)
	jan16 := jan1.AddDate(0, 0, 15)
	if l.Daily(jan1).Title != l.Daily(jan16).Title {
		t.Error("days 15 apart should share the rotation slot")
	}
	if l.Daily(jan1).ID == l.Daily(jan16).ID {
		t.Error("IDs are day numbers and must differ")
	}
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"AI Reality Check": "ai-reality-check",
		"AI vs  Human":     "ai-vs-human",
		"Timeline":         "timeline",
	}
	for in, want := range tests {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestByCategory(t *testing.T) {
	l := NewLibrary()
	got, err := l.ByCategory("Developer-Humor")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != 12 {
		t.Errorf("got %+v", got)
	}

	if _, err := l.ByCategory("cat-pictures"); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestTrending(t *testing.T) {
	l := NewLibrary()
	top := l.Trending(0)
	if len(top) != DefaultTrendingLimit {
		t.Fatalf("default limit gave %d memes", len(top))
	}
	if top[0].ViralScore != 95 || top[1].ViralScore != 94 {
		t.Errorf("not sorted by viral score: %d, %d", top[0].ViralScore, top[1].ViralScore)
	}
	if len(l.Trending(100)) != 15 {
		t.Error("limit above size should return everything")
	}
	if l.All()[0].ID != 1 {
		t.Error("Trending must not reorder the library")
	}
}

func TestCategoriesAndAverage(t *testing.T) {
	l := NewLibrary()
	if n := len(l.Categories()); n != 15 {
		t.Errorf("got %d categories, want 15", n)
	}
	// 1347 / 15 = 89.8
	if avg := l.AverageViralScore(); avg != 90 {
		t.Errorf("AverageViralScore() = %d, want 90", avg)
	}
}
