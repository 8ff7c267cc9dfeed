package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Column names the loader requires in the CSV header. The duration column is
// optional and picked up when present.
var RequiredColumns = []string{
	"video_id", "title", "channel", "category",
	"published_at", "views", "likes", "dislikes", "comments",
}

// DurationColumn is the optional ISO-8601 duration column.
const DurationColumn = "duration"

// ErrMissingColumns indicates the header lacks one or more required columns.
var ErrMissingColumns = errors.New("dataset: missing required columns")

// RawRow maps a column name to its raw string value for one CSV row.
type RawRow map[string]string

// Table holds the raw contents of one loaded dataset file.
type Table struct {
	Name        string
	Header      []string
	Rows        []RawRow
	HasDuration bool
}

// Load reads the whole CSV file at path into memory and returns its rows as
// column→value maps. The file handle is released before Load returns. A
// missing file, an unreadable file, or a header without the required columns
// is a fatal error; no row-level validation happens here.
func Load(path string, delimiter rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	if delimiter != 0 {
		r.Comma = delimiter
	}

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrMissingColumns)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = cleanHeader(header[i])
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[h] = i
	}
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	_, hasDuration := index[DurationColumn]

	t := &Table{Name: filepath.Base(path), Header: header, HasDuration: hasDuration}
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(t.Rows)+2, err)
		}
		row := make(RawRow, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// cleanHeader trims whitespace and strips stray quotes from a header cell.
func cleanHeader(h string) string {
	h = strings.TrimSpace(h)
	h = strings.ReplaceAll(h, `"`, "")
	return strings.ToLower(h)
}
