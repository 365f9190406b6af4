// Package export writes scored corpora to CSV.
//
// Two shapes: the full scored record set (engagement, per-category counts,
// per-group totals, intensity) and the high-intensity selection (records at
// or above a threshold, strongest first). Column order follows the taxonomy,
// so two exports from the same dictionary always line up.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/corey/secframe/internal/domain/aggregate"
	"github.com/corey/secframe/internal/domain/dictionary"
	"github.com/corey/secframe/internal/ports"
)

// timeLayout is one of the layouts the corpus loader accepts, so an exported
// corpus can be fed straight back into analyze.
const timeLayout = "2006-01-02 15:04:05"

// WriteScoredCSV writes the full scored record set: one row per record with
// the raw engagement columns, per-category counts and per-group totals in
// taxonomy order, and security_intensity last.
func WriteScoredCSV(w io.Writer, dict *dictionary.Store, records []ports.ScoredRecord) error {
	cw := csv.NewWriter(w)

	categories := dict.CategoryNames()
	groups := dict.Groups()

	header := []string{"date", "text", "likes", "retweets", "replies", "total_engagement"}
	header = append(header, categories...)
	for _, g := range groups {
		header = append(header, g.Name+"_total")
	}
	header = append(header, "security_intensity")
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, rec := range records {
		row := make([]string, 0, len(header))
		row = append(row,
			rec.Timestamp.Format(timeLayout),
			rec.Body(),
			strconv.Itoa(rec.Likes),
			strconv.Itoa(rec.Retweets),
			strconv.Itoa(rec.Replies),
			strconv.Itoa(rec.Engagement()),
		)
		for _, name := range categories {
			row = append(row, strconv.Itoa(rec.Categories[name]))
		}
		for _, g := range groups {
			row = append(row, strconv.Itoa(rec.Groups[g.Name]))
		}
		row = append(row, strconv.Itoa(rec.Intensity))
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteHighIntensityCSV writes the records scoring at or above threshold,
// strongest first, with per-category counts. Returns how many records made
// the cut.
func WriteHighIntensityCSV(w io.Writer, dict *dictionary.Store, records []ports.ScoredRecord, threshold int) (int, error) {
	selection := aggregate.TopByIntensity(records, threshold)

	cw := csv.NewWriter(w)

	categories := dict.CategoryNames()
	header := []string{"date", "text", "security_intensity", "total_engagement"}
	header = append(header, categories...)
	if err := cw.Write(header); err != nil {
		return 0, err
	}

	for _, rec := range selection {
		row := make([]string, 0, len(header))
		row = append(row,
			rec.Timestamp.Format(timeLayout),
			rec.Body(),
			strconv.Itoa(rec.Intensity),
			strconv.Itoa(rec.Engagement()),
		)
		for _, name := range categories {
			row = append(row, strconv.Itoa(rec.Categories[name]))
		}
		if err := cw.Write(row); err != nil {
			return 0, err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, err
	}
	return len(selection), nil
}
