package dataset

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// TimestampLayout is the single accepted format for the published_at column.
// The upstream dataset carries RFC 3339 timestamps.
const TimestampLayout = time.RFC3339

// ErrNoValidRows indicates every row was dropped during cleaning.
var ErrNoValidRows = errors.New("dataset: no valid rows after cleaning")

// CleanSummary reports how many rows survived cleaning and why the rest
// were dropped.
type CleanSummary struct {
	Kept         int `json:"kept"`
	Dropped      int `json:"dropped"`
	BadNumeric   int `json:"badNumeric"`
	BadTimestamp int `json:"badTimestamp"`
	BadDuration  int `json:"badDuration"`
	MissingID    int `json:"missingId"`
	DuplicateID  int `json:"duplicateId"`
}

var numericColumns = []string{"views", "likes", "dislikes", "comments"}

// Clean converts raw rows into validated VideoRecords. Rows with a missing
// or non-numeric count, a negative count, an unparsable timestamp, a
// malformed duration, or a missing/duplicate video id are dropped and
// counted; individual bad rows never fail the run. Clean returns
// ErrNoValidRows only when nothing survives.
func Clean(t *Table) ([]VideoRecord, CleanSummary, error) {
	var sum CleanSummary
	records := make([]VideoRecord, 0, len(t.Rows))
	seen := make(map[string]struct{}, len(t.Rows))

	for _, row := range t.Rows {
		id := strings.TrimSpace(row["video_id"])
		if id == "" {
			sum.MissingID++
			sum.Dropped++
			continue
		}
		if _, dup := seen[id]; dup {
			sum.DuplicateID++
			sum.Dropped++
			continue
		}

		counts := make(map[string]int64, len(numericColumns))
		ok := true
		for _, col := range numericColumns {
			n, err := parseCount(row[col])
			if err != nil {
				ok = false
				break
			}
			counts[col] = n
		}
		if !ok {
			sum.BadNumeric++
			sum.Dropped++
			continue
		}

		publishedAt, err := time.Parse(TimestampLayout, strings.TrimSpace(row["published_at"]))
		if err != nil {
			sum.BadTimestamp++
			sum.Dropped++
			continue
		}

		var durationMin float64
		if raw := strings.TrimSpace(row[DurationColumn]); t.HasDuration && raw != "" {
			durationMin, err = parseISODuration(raw)
			if err != nil {
				sum.BadDuration++
				sum.Dropped++
				continue
			}
		}

		seen[id] = struct{}{}
		records = append(records, VideoRecord{
			ID:          id,
			Title:       strings.TrimSpace(row["title"]),
			Channel:     strings.TrimSpace(row["channel"]),
			Category:    NormalizeCategory(row["category"]),
			PublishedAt: publishedAt,
			Views:       counts["views"],
			Likes:       counts["likes"],
			Dislikes:    counts["dislikes"],
			Comments:    counts["comments"],
			DurationMin: durationMin,
		})
		sum.Kept++
	}

	if len(records) == 0 {
		return nil, sum, fmt.Errorf("%w (%d rows dropped)", ErrNoValidRows, sum.Dropped)
	}
	return records, sum, nil
}

// parseCount parses a non-negative base-10 integer count.
func parseCount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty count")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse count: %w", err)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count: %d", n)
	}
	return n, nil
}

var isoDurationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?$`)

// parseISODuration converts an ISO-8601 duration like PT1H2M30S to minutes.
func parseISODuration(s string) (float64, error) {
	m := isoDurationRe.FindStringSubmatch(s)
	if m == nil || (m[1] == "" && m[2] == "" && m[3] == "") {
		return 0, fmt.Errorf("malformed duration: %q", s)
	}
	h, _ := strconv.ParseFloat(zeroIfEmpty(m[1]), 64)
	min, _ := strconv.ParseFloat(zeroIfEmpty(m[2]), 64)
	sec, _ := strconv.ParseFloat(zeroIfEmpty(m[3]), 64)
	return h*60 + min + sec/60, nil
}

func zeroIfEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

// NormalizeCategory trims whitespace and canonicalizes casing so that
// " music " and "MUSIC" land in the same group.
func NormalizeCategory(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	upperNext := true
	for _, r := range strings.ToLower(s) {
		if upperNext && unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
		} else {
			b.WriteRune(r)
		}
		if r == ' ' || r == '&' || r == '-' {
			upperNext = true
		}
	}
	return b.String()
}
