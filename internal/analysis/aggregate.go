package analysis

import (
	"fmt"
	"sort"

	"github.com/LumenBytes/vidlens-cli/internal/dataset"
)

// Field selects one numeric column of a VideoRecord.
type Field string

const (
	FieldViews    Field = "views"
	FieldLikes    Field = "likes"
	FieldDislikes Field = "dislikes"
	FieldComments Field = "comments"
	FieldDuration Field = "duration"
)

// ParseField validates a user-supplied field name.
func ParseField(s string) (Field, error) {
	switch Field(s) {
	case FieldViews, FieldLikes, FieldDislikes, FieldComments, FieldDuration:
		return Field(s), nil
	}
	return "", fmt.Errorf("unknown field: %q (use views|likes|dislikes|comments|duration)", s)
}

// Value extracts the field from a record as a float64.
func (f Field) Value(r dataset.VideoRecord) float64 {
	switch f {
	case FieldViews:
		return float64(r.Views)
	case FieldLikes:
		return float64(r.Likes)
	case FieldDislikes:
		return float64(r.Dislikes)
	case FieldComments:
		return float64(r.Comments)
	case FieldDuration:
		return r.DurationMin
	}
	return 0
}

// Dimension selects the grouping key of an aggregation.
type Dimension string

const (
	DimCategory Dimension = "category"
	DimChannel  Dimension = "channel"
	DimMonth    Dimension = "month"
	DimPeriod   Dimension = "period"
)

// ParseDimension validates a user-supplied grouping dimension.
func ParseDimension(s string) (Dimension, error) {
	switch Dimension(s) {
	case DimCategory, DimChannel, DimMonth, DimPeriod:
		return Dimension(s), nil
	}
	return "", fmt.Errorf("unknown dimension: %q (use category|channel|month|period)", s)
}

// Key returns the group key of a record under this dimension.
func (d Dimension) Key(r dataset.VideoRecord) string {
	switch d {
	case DimCategory:
		return r.Category
	case DimChannel:
		return r.Channel
	case DimMonth:
		return r.PublishMonth()
	case DimPeriod:
		return r.PostingPeriod()
	}
	return ""
}

// AggregateResult is one row of a grouped summary over a numeric field.
type AggregateResult struct {
	Key    string  `json:"key"`
	Count  int     `json:"count"`
	Sum    float64 `json:"sum"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// GroupBy aggregates the given field per group value. Results come back
// ordered by descending count, then ascending key, so repeated runs over the
// same records produce identical output. Every group present has count >= 1
// and the counts sum to len(records).
func GroupBy(records []dataset.VideoRecord, dim Dimension, field Field) ([]AggregateResult, error) {
	if _, err := ParseDimension(string(dim)); err != nil {
		return nil, err
	}
	if _, err := ParseField(string(field)); err != nil {
		return nil, err
	}

	values := make(map[string][]float64)
	for _, r := range records {
		key := dim.Key(r)
		values[key] = append(values[key], field.Value(r))
	}

	out := make([]AggregateResult, 0, len(values))
	for key, vals := range values {
		res := AggregateResult{Key: key, Count: len(vals)}
		sorted := append([]float64(nil), vals...)
		sort.Float64s(sorted)
		res.Min = sorted[0]
		res.Max = sorted[len(sorted)-1]
		for _, v := range sorted {
			res.Sum += v
		}
		res.Mean = res.Sum / float64(len(sorted))
		res.Median = median(sorted)
		out = append(out, res)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Key < out[j].Key
		}
		return out[i].Count > out[j].Count
	})
	return out, nil
}

// median expects a sorted, non-empty slice.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
