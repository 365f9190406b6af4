package app

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/corey/secframe/internal/domain/dictionary"
	"github.com/corey/secframe/internal/ports"
)

// Summary condenses one scored corpus for reporting: volume, date range,
// intensity distribution, engagement, and per-category/per-group totals in
// taxonomy order.
type Summary struct {
	Records         int
	From, To        time.Time
	Intense         int     // records with intensity > 0
	IntenseShare    float64 // fraction of records with intensity > 0
	TotalIntensity  int
	MeanIntensity   float64
	StddevIntensity float64
	MedianIntensity float64
	TotalEngagement int
	CategoryTotals  []CategoryTotal
	GroupTotals     []GroupTotal
}

// CategoryTotal is the corpus-wide mention count for one category.
type CategoryTotal struct {
	Name  string
	Label string
	Group string
	Total int
}

// GroupTotal is the corpus-wide mention count for one group.
type GroupTotal struct {
	Name      string
	Label     string
	Composite bool
	Total     int
}

// Summarize reduces a scored corpus to a Summary. An empty corpus yields
// zeroed statistics, never NaN.
func Summarize(dict *dictionary.Store, records []ports.ScoredRecord) Summary {
	s := Summary{Records: len(records)}

	catTotals := make(map[string]int, dict.NumCategories())
	groupTotals := make(map[string]int, len(dict.Groups()))
	intensities := make([]float64, 0, len(records))

	for i, sr := range records {
		if i == 0 || sr.Timestamp.Before(s.From) {
			s.From = sr.Timestamp
		}
		if i == 0 || sr.Timestamp.After(s.To) {
			s.To = sr.Timestamp
		}
		if sr.Intensity > 0 {
			s.Intense++
		}
		s.TotalIntensity += sr.Intensity
		s.TotalEngagement += sr.Engagement()
		intensities = append(intensities, float64(sr.Intensity))

		for name, n := range sr.Categories {
			catTotals[name] += n
		}
		for name, n := range sr.Groups {
			groupTotals[name] += n
		}
	}

	if len(records) > 0 {
		s.IntenseShare = float64(s.Intense) / float64(len(records))
		s.MeanIntensity = stat.Mean(intensities, nil)
		sort.Float64s(intensities)
		// Empirical quantile: the true middle element for odd counts, the
		// lower middle for even counts.
		s.MedianIntensity = stat.Quantile(0.5, stat.Empirical, intensities, nil)
	}
	if len(records) > 1 {
		s.StddevIntensity = stat.StdDev(intensities, nil)
	}

	for _, c := range dict.Categories() {
		s.CategoryTotals = append(s.CategoryTotals, CategoryTotal{
			Name:  c.Name,
			Label: c.Label,
			Group: c.Group,
			Total: catTotals[c.Name],
		})
	}
	for _, g := range dict.Groups() {
		s.GroupTotals = append(s.GroupTotals, GroupTotal{
			Name:      g.Name,
			Label:     g.Label,
			Composite: g.Composite,
			Total:     groupTotals[g.Name],
		})
	}

	return s
}
