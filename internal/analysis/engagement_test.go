package analysis

import (
	"math"
	"testing"

	"github.com/LumenBytes/vidlens-cli/internal/dataset"
)

func TestEngageTotalsAndRatios(t *testing.T) {
	records := []dataset.VideoRecord{
		{ID: "v1", Views: 600, Likes: 30, Comments: 6, DurationMin: 4},
		{ID: "v2", Views: 400, Likes: 20, Comments: 4, DurationMin: 6},
	}
	e := Engage(records)
	if e.Videos != 2 || e.TotalViews != 1000 || e.TotalLikes != 50 || e.TotalComments != 10 {
		t.Fatalf("unexpected totals: %+v", e)
	}
	if math.Abs(e.AvgViewsPerVideo-500) > 1e-9 {
		t.Fatalf("expected avg views 500, got %v", e.AvgViewsPerVideo)
	}
	if math.Abs(e.LikesPer1000Views-50) > 1e-9 {
		t.Fatalf("expected 50 likes/1000 views, got %v", e.LikesPer1000Views)
	}
	if math.Abs(e.AvgDurationMin-5) > 1e-9 {
		t.Fatalf("expected avg duration 5, got %v", e.AvgDurationMin)
	}
	if math.Abs(e.EngagementScore-0.06) > 1e-9 {
		t.Fatalf("expected score 0.06, got %v", e.EngagementScore)
	}
}

func TestEngageZeroViews(t *testing.T) {
	e := Engage([]dataset.VideoRecord{{ID: "v1"}})
	if e.LikesPer1000Views != 0 || e.EngagementScore != 0 {
		t.Fatalf("expected zero ratios with zero views, got %+v", e)
	}
}

func TestEngageEmpty(t *testing.T) {
	e := Engage(nil)
	if e.Videos != 0 || e.AvgViewsPerVideo != 0 {
		t.Fatalf("expected zero-value engagement, got %+v", e)
	}
}

func TestTopVideosOrderingAndTieBreak(t *testing.T) {
	records := []dataset.VideoRecord{
		{ID: "vb", Views: 200},
		{ID: "va", Views: 200},
		{ID: "vc", Views: 500},
		{ID: "vd", Views: 100},
	}
	top := TopVideos(records, FieldViews, 3)
	if len(top) != 3 {
		t.Fatalf("expected 3 results, got %d", len(top))
	}
	if top[0].ID != "vc" || top[1].ID != "va" || top[2].ID != "vb" {
		t.Fatalf("unexpected order: %s, %s, %s", top[0].ID, top[1].ID, top[2].ID)
	}
	// input untouched
	if records[0].ID != "vb" {
		t.Fatal("input slice was reordered")
	}
}

func TestTopVideosClampsN(t *testing.T) {
	records := []dataset.VideoRecord{{ID: "v1", Views: 1}}
	if got := TopVideos(records, FieldViews, 10); len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
	if got := TopVideos(records, FieldViews, 0); got != nil {
		t.Fatalf("expected nil for n=0, got %v", got)
	}
}
