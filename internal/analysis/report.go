package analysis

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/LumenBytes/vidlens-cli/internal/dataset"
)

// GroupSection is one grouped aggregation included in a report.
type GroupSection struct {
	Dimension Dimension         `json:"dimension"`
	Field     Field             `json:"field"`
	Results   []AggregateResult `json:"results"`
}

// CorrelationLine is one correlation result (or the reason it is undefined).
type CorrelationLine struct {
	X    Field   `json:"x"`
	Y    Field   `json:"y"`
	R    float64 `json:"r"`
	Note string  `json:"note,omitempty"`
}

// Report is the rendered output of one analysis run.
type Report struct {
	RunID        string                `json:"runId"`
	Dataset      string                `json:"dataset"`
	Rows         int                   `json:"rows"`
	Clean        dataset.CleanSummary  `json:"clean"`
	Engagement   Engagement            `json:"engagement"`
	Groups       []GroupSection        `json:"groups"`
	Correlations []CorrelationLine     `json:"correlations"`
	TopField     Field                 `json:"topField,omitempty"`
	Top          []dataset.VideoRecord `json:"top,omitempty"`
}

// NewReport starts a report for one run over the named dataset.
func NewReport(name string, rows int, clean dataset.CleanSummary) *Report {
	return &Report{
		RunID:   uuid.NewString(),
		Dataset: name,
		Rows:    rows,
		Clean:   clean,
	}
}

// AddCorrelation records a correlation outcome; an undefined coefficient is
// reported as a note instead of failing the report.
func (rep *Report) AddCorrelation(x, y Field, r float64, err error) {
	line := CorrelationLine{X: x, Y: y, R: r}
	if err != nil {
		line.Note = err.Error()
	}
	rep.Correlations = append(rep.Correlations, line)
}

// Markdown renders a compact report suitable for a terminal or a doc.
func (rep *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	b.WriteString(fmt.Sprintf("File: %s\n", rep.Dataset))
	b.WriteString(fmt.Sprintf("Run: %s\n", rep.RunID))
	b.WriteString(fmt.Sprintf("Rows: %d (kept %d, dropped %d)\n", rep.Rows, rep.Clean.Kept, rep.Clean.Dropped))
	if rep.Clean.Dropped > 0 {
		b.WriteString(fmt.Sprintf(
			"Dropped by reason: numeric %d, timestamp %d, duration %d, missing id %d, duplicate id %d\n",
			rep.Clean.BadNumeric, rep.Clean.BadTimestamp, rep.Clean.BadDuration,
			rep.Clean.MissingID, rep.Clean.DuplicateID))
	}

	b.WriteString("\n[ENGAGEMENT]\n")
	e := rep.Engagement
	b.WriteString(fmt.Sprintf("- videos: %d\n", e.Videos))
	b.WriteString(fmt.Sprintf("- total views: %d, total likes: %d, total comments: %d\n",
		e.TotalViews, e.TotalLikes, e.TotalComments))
	b.WriteString(fmt.Sprintf("- avg views/video: %.2f\n", e.AvgViewsPerVideo))
	b.WriteString(fmt.Sprintf("- likes per 1000 views: %.2f\n", e.LikesPer1000Views))
	if e.AvgDurationMin > 0 {
		b.WriteString(fmt.Sprintf("- avg duration: %.1f min\n", e.AvgDurationMin))
	}
	b.WriteString(fmt.Sprintf("- engagement score: %.4f\n", e.EngagementScore))

	for _, g := range rep.Groups {
		b.WriteString(fmt.Sprintf("\n[GROUP-BY %s ~ %s]\n", strings.ToUpper(string(g.Dimension)), g.Field))
		for _, res := range g.Results {
			b.WriteString(fmt.Sprintf("- %s (n=%d): mean %.4g, median %.4g (min %.4g, max %.4g)\n",
				res.Key, res.Count, res.Mean, res.Median, res.Min, res.Max))
		}
	}

	if len(rep.Correlations) > 0 {
		b.WriteString("\n[CORRELATIONS]\n")
		for _, c := range rep.Correlations {
			if c.Note != "" {
				b.WriteString(fmt.Sprintf("- %s ~ %s: n/a (%s)\n", c.X, c.Y, c.Note))
				continue
			}
			b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f\n", c.X, c.Y, c.R))
		}
	}

	if len(rep.Top) > 0 {
		b.WriteString(fmt.Sprintf("\n[TOP VIDEOS by %s]\n", rep.TopField))
		b.WriteString("| title | channel | views | likes | published |\n")
		b.WriteString("| --- | --- | --- | --- | --- |\n")
		for _, v := range rep.Top {
			b.WriteString(fmt.Sprintf("| %s | %s | %d | %d | %s |\n",
				safeCell(v.Title), safeCell(v.Channel), v.Views, v.Likes,
				v.PublishedAt.Format("2006-01-02")))
		}
	}
	return b.String()
}

func safeCell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}
