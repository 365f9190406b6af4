// Package corpus loads delimiter-separated tweet exports into records.
// The loader owns all input validation: rows that reach the caller carry a
// parsed timestamp and non-negative engagement counts, and a blank text
// cell becomes an absent text, never an error.
package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/corey/secframe/internal/ports"
)

// Column aliases, matched case-insensitively against the header row.
var (
	textAliases = []string{"text", "tweet", "content"}
	timeAliases = []string{"timeparsed", "timestamp", "date", "created_at", "time"}
)

// timeLayouts are tried in order for every timestamp cell. Epoch seconds
// are accepted as a fallback.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// columns maps resolved header positions. Engagement columns may be absent
// (-1), text and time may not.
type columns struct {
	text     int
	time     int
	likes    int
	retweets int
	replies  int
}

// LoadFile reads one corpus file. A .tsv extension selects tab delimiting;
// anything else reads as comma-separated.
func LoadFile(path string) ([]ports.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	comma := ','
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		comma = '\t'
	}

	records, err := Load(f, comma)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return records, nil
}

// Load reads a delimited corpus with a header row. Quoting is lenient and
// rows may have trailing fields missing. A header-only corpus yields zero
// records without error; an unparseable timestamp fails the whole load
// with its row number.
func Load(r io.Reader, comma rune) ([]ports.Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty corpus: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var out []ports.Record
	row := 1 // header
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		rec, err := convertRow(fields, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// resolveColumns finds the text, timestamp, and engagement columns in the
// header. First alias match wins per column.
func resolveColumns(header []string) (columns, error) {
	cols := columns{text: -1, time: -1, likes: -1, retweets: -1, replies: -1}

	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff") // UTF-8 BOM from spreadsheet exports
		}
		name := strings.ToLower(strings.TrimSpace(h))
		switch {
		case cols.text < 0 && hasAlias(textAliases, name):
			cols.text = i
		case cols.time < 0 && hasAlias(timeAliases, name):
			cols.time = i
		case cols.likes < 0 && name == "likes":
			cols.likes = i
		case cols.retweets < 0 && name == "retweets":
			cols.retweets = i
		case cols.replies < 0 && name == "replies":
			cols.replies = i
		}
	}

	if cols.text < 0 {
		return cols, fmt.Errorf("no text column (want one of: %s)", strings.Join(textAliases, ", "))
	}
	if cols.time < 0 {
		return cols, fmt.Errorf("no timestamp column (want one of: %s)", strings.Join(timeAliases, ", "))
	}
	return cols, nil
}

func hasAlias(aliases []string, name string) bool {
	for _, a := range aliases {
		if a == name {
			return true
		}
	}
	return false
}

// convertRow maps one data row onto a Record. Text is optional; the
// timestamp is mandatory and must parse; engagement cells parse leniently.
func convertRow(fields []string, cols columns) (ports.Record, error) {
	var rec ports.Record

	if cols.text < len(fields) {
		if text := strings.TrimSpace(fields[cols.text]); text != "" {
			rec.Text = &text
		}
	}

	if cols.time >= len(fields) {
		return rec, fmt.Errorf("missing timestamp cell")
	}
	ts, err := parseTime(strings.TrimSpace(fields[cols.time]))
	if err != nil {
		return rec, err
	}
	rec.Timestamp = ts

	rec.Likes = parseCount(fields, cols.likes)
	rec.Retweets = parseCount(fields, cols.retweets)
	rec.Replies = parseCount(fields, cols.replies)
	return rec, nil
}

// parseTime tries the known layouts, then epoch seconds.
func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

// parseCount reads an engagement cell leniently: an absent column, empty
// cell, negative value, or junk is 0. Float renderings like "12.0" truncate.
func parseCount(fields []string, idx int) int {
	if idx < 0 || idx >= len(fields) {
		return 0
	}
	s := strings.TrimSpace(fields[idx])
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 0 {
		return int(f)
	}
	return 0
}
