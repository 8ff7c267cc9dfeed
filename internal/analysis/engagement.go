package analysis

import (
	"sort"

	"github.com/LumenBytes/vidlens-cli/internal/dataset"
)

// Engagement summarizes audience interaction across a record set.
type Engagement struct {
	Videos            int     `json:"videos"`
	TotalViews        int64   `json:"totalViews"`
	TotalLikes        int64   `json:"totalLikes"`
	TotalDislikes     int64   `json:"totalDislikes"`
	TotalComments     int64   `json:"totalComments"`
	AvgViewsPerVideo  float64 `json:"avgViewsPerVideo"`
	LikesPer1000Views float64 `json:"likesPer1000Views"`
	AvgDurationMin    float64 `json:"avgDurationMin"`
	// EngagementScore is the combined like+comment rate per view.
	EngagementScore float64 `json:"engagementScore"`
}

// Engage computes engagement metrics over the cleaned record set. Ratios
// against views are zero when no views were recorded.
func Engage(records []dataset.VideoRecord) Engagement {
	var e Engagement
	var durTotal float64
	for _, r := range records {
		e.Videos++
		e.TotalViews += r.Views
		e.TotalLikes += r.Likes
		e.TotalDislikes += r.Dislikes
		e.TotalComments += r.Comments
		durTotal += r.DurationMin
	}
	if e.Videos > 0 {
		e.AvgViewsPerVideo = float64(e.TotalViews) / float64(e.Videos)
		e.AvgDurationMin = durTotal / float64(e.Videos)
	}
	if e.TotalViews > 0 {
		e.LikesPer1000Views = float64(e.TotalLikes) / float64(e.TotalViews) * 1000
		e.EngagementScore = float64(e.TotalLikes+e.TotalComments) / float64(e.TotalViews)
	}
	return e
}

// TopVideos returns the n records with the highest value of the given field,
// ordered descending with ties broken by ascending video ID. The input slice
// is not modified.
func TopVideos(records []dataset.VideoRecord, field Field, n int) []dataset.VideoRecord {
	if n <= 0 || len(records) == 0 {
		return nil
	}
	out := append([]dataset.VideoRecord(nil), records...)
	sort.Slice(out, func(i, j int) bool {
		vi, vj := field.Value(out[i]), field.Value(out[j])
		if vi == vj {
			return out[i].ID < out[j].ID
		}
		return vi > vj
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
