package analysis

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/LumenBytes/vidlens-cli/internal/dataset"
)

func rec(id, channel, category string, day int, views, likes int64) dataset.VideoRecord {
	return dataset.VideoRecord{
		ID:          id,
		Title:       "t-" + id,
		Channel:     channel,
		Category:    category,
		PublishedAt: time.Date(2024, time.March, day, 12, 0, 0, 0, time.UTC),
		Views:       views,
		Likes:       likes,
		Dislikes:    1,
		Comments:    2,
	}
}

func TestGroupBySingleCategoryMean(t *testing.T) {
	records := []dataset.VideoRecord{
		rec("v1", "A", "Music", 1, 100, 10),
		rec("v2", "A", "Music", 2, 200, 20),
		rec("v3", "B", "Music", 3, 300, 30),
	}
	results, err := GroupBy(records, DimCategory, FieldViews)
	if err != nil {
		t.Fatalf("group by: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 group, got %d", len(results))
	}
	g := results[0]
	if g.Key != "Music" || g.Count != 3 {
		t.Fatalf("unexpected group: %+v", g)
	}
	if math.Abs(g.Mean-200) > 1e-9 || math.Abs(g.Median-200) > 1e-9 {
		t.Fatalf("expected mean=median=200, got mean=%v median=%v", g.Mean, g.Median)
	}
	if g.Min != 100 || g.Max != 300 || g.Sum != 600 {
		t.Fatalf("unexpected stats: %+v", g)
	}
}

func TestGroupByOrderingDeterministic(t *testing.T) {
	records := []dataset.VideoRecord{
		rec("v1", "x", "Beta", 1, 1, 1),
		rec("v2", "x", "Beta", 1, 1, 1),
		rec("v3", "x", "Alpha", 1, 1, 1),
		rec("v4", "x", "Alpha", 1, 1, 1),
		rec("v5", "x", "Gamma", 1, 1, 1),
		rec("v6", "x", "Gamma", 1, 1, 1),
		rec("v7", "x", "Gamma", 1, 1, 1),
	}
	first, err := GroupBy(records, DimCategory, FieldViews)
	if err != nil {
		t.Fatalf("group by: %v", err)
	}
	wantKeys := []string{"Gamma", "Alpha", "Beta"}
	for i, k := range wantKeys {
		if first[i].Key != k {
			t.Fatalf("position %d: expected %s, got %s", i, k, first[i].Key)
		}
	}
	second, err := GroupBy(records, DimCategory, FieldViews)
	if err != nil {
		t.Fatalf("group by: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("expected identical results on repeated runs")
	}
}

func TestGroupByCountsSumToRecordCount(t *testing.T) {
	records := []dataset.VideoRecord{
		rec("v1", "A", "Music", 1, 10, 1),
		rec("v2", "B", "Gaming", 5, 20, 2),
		rec("v3", "A", "Music", 15, 30, 3),
		rec("v4", "C", "News", 25, 40, 4),
		rec("v5", "B", "Gaming", 28, 50, 5),
	}
	for _, dim := range []Dimension{DimCategory, DimChannel, DimMonth, DimPeriod} {
		results, err := GroupBy(records, dim, FieldLikes)
		if err != nil {
			t.Fatalf("group by %s: %v", dim, err)
		}
		total := 0
		seen := map[string]bool{}
		for _, g := range results {
			if g.Count < 1 {
				t.Fatalf("%s: group %q with count < 1", dim, g.Key)
			}
			if seen[g.Key] {
				t.Fatalf("%s: duplicate key %q", dim, g.Key)
			}
			seen[g.Key] = true
			total += g.Count
		}
		if total != len(records) {
			t.Fatalf("%s: counts sum %d != %d records", dim, total, len(records))
		}
	}
}

func TestGroupByMonthBuckets(t *testing.T) {
	records := []dataset.VideoRecord{
		rec("v1", "A", "Music", 1, 10, 1),
		rec("v2", "A", "Music", 2, 20, 2),
	}
	records[1].PublishedAt = time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC)
	results, err := GroupBy(records, DimMonth, FieldViews)
	if err != nil {
		t.Fatalf("group by: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 month buckets, got %d", len(results))
	}
	// equal counts: ascending key tie-break
	if results[0].Key != "2024-03" || results[1].Key != "2024-04" {
		t.Fatalf("unexpected bucket order: %v, %v", results[0].Key, results[1].Key)
	}
}

func TestGroupByPeriodBuckets(t *testing.T) {
	records := []dataset.VideoRecord{
		rec("v1", "A", "Music", 3, 10, 1),
		rec("v2", "A", "Music", 14, 20, 2),
		rec("v3", "A", "Music", 29, 30, 3),
		rec("v4", "A", "Music", 30, 40, 4),
	}
	results, err := GroupBy(records, DimPeriod, FieldViews)
	if err != nil {
		t.Fatalf("group by: %v", err)
	}
	if results[0].Key != "Last" || results[0].Count != 2 {
		t.Fatalf("expected Last first with count 2, got %+v", results[0])
	}
}

func TestGroupByMedianEvenCount(t *testing.T) {
	records := []dataset.VideoRecord{
		rec("v1", "A", "Music", 1, 10, 1),
		rec("v2", "A", "Music", 1, 20, 1),
		rec("v3", "A", "Music", 1, 30, 1),
		rec("v4", "A", "Music", 1, 100, 1),
	}
	results, err := GroupBy(records, DimCategory, FieldViews)
	if err != nil {
		t.Fatalf("group by: %v", err)
	}
	if math.Abs(results[0].Median-25) > 1e-9 {
		t.Fatalf("expected median 25, got %v", results[0].Median)
	}
}

func TestGroupByRejectsUnknownInputs(t *testing.T) {
	records := []dataset.VideoRecord{rec("v1", "A", "Music", 1, 10, 1)}
	if _, err := GroupBy(records, Dimension("year"), FieldViews); err == nil {
		t.Fatal("expected error for unknown dimension")
	}
	if _, err := GroupBy(records, DimCategory, Field("subscribers")); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestParseHelpers(t *testing.T) {
	if _, err := ParseDimension("channel"); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if _, err := ParseField("duration"); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if _, err := ParseDimension(""); err == nil {
		t.Fatal("expected error for empty dimension")
	}
	if _, err := ParseField("Views"); err == nil {
		t.Fatal("expected error for wrong-case field")
	}
}
