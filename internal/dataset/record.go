package dataset

import "time"

// VideoRecord is one cleaned, validated row of the video statistics dataset.
// Records are constructed once by Clean and never mutated afterwards.
type VideoRecord struct {
	ID          string
	Title       string
	Channel     string
	Category    string
	PublishedAt time.Time
	Views       int64
	Likes       int64
	Dislikes    int64
	Comments    int64
	// DurationMin is the video length in minutes, parsed from the optional
	// ISO-8601 duration column. Zero when the column is absent.
	DurationMin float64
}

// PostingPeriod buckets a publish date into the part of the month it falls
// in: days 1-10 "First", 11-20 "Middle", the rest "Last".
func (r VideoRecord) PostingPeriod() string {
	switch d := r.PublishedAt.Day(); {
	case d <= 10:
		return "First"
	case d <= 20:
		return "Middle"
	default:
		return "Last"
	}
}

// PublishMonth returns the YYYY-MM bucket of the publish date.
func (r VideoRecord) PublishMonth() string {
	return r.PublishedAt.Format("2006-01")
}
