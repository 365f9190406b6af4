package cmd

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/corey/secframe/internal/app"
	"github.com/corey/secframe/internal/domain/aggregate"
	"github.com/corey/secframe/internal/domain/dictionary"
	"github.com/corey/secframe/internal/ports"
)

// ANSI color codes for terminal output.
const (
	colorReset   = "\033[0m"
	colorBold    = "\033[1m"
	colorCyan    = "\033[36m"
	colorMagenta = "\033[35m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorGray    = "\033[90m"
)

const dateLayout = "2006-01-02"

// displayName renders a taxonomy label, falling back to the identifier
// title-cased with Spanish rules when no label was configured.
func displayName(name, label string) string {
	if label != "" {
		return label
	}
	return cases.Title(language.Spanish).String(strings.ReplaceAll(name, "_", " "))
}

// shortID abbreviates a run id for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatRunHeader formats one run's identity line.
//
//	⚡ run 1a2b3c4d │ corpus.csv │ 1500 records │ 2023-05-01 → 2023-09-30
func formatRunHeader(meta ports.RunMeta) string {
	return fmt.Sprintf("%s⚡ run %s%s │ %s │ %d records │ %s → %s\n",
		colorBold, shortID(meta.ID), colorReset,
		meta.Source, meta.Records,
		meta.From.Format(dateLayout), meta.To.Format(dateLayout))
}

// formatSummary formats a corpus summary: intensity distribution,
// engagement, then group and category totals in taxonomy order.
func formatSummary(sum app.Summary) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("  Securitized:  %d of %d records (%.1f%%)\n",
		sum.Intense, sum.Records, sum.IntenseShare*100))
	sb.WriteString(fmt.Sprintf("  Intensity:    total %d │ mean %.2f │ stddev %.2f │ median %.1f\n",
		sum.TotalIntensity, sum.MeanIntensity, sum.StddevIntensity, sum.MedianIntensity))
	sb.WriteString(fmt.Sprintf("  Engagement:   %d\n", sum.TotalEngagement))

	sb.WriteString(fmt.Sprintf("\n  %sGroups%s\n", colorBold, colorReset))
	for _, g := range sum.GroupTotals {
		marker := ""
		if g.Composite {
			marker = fmt.Sprintf("  %s●composite%s", colorMagenta, colorReset)
		}
		sb.WriteString(fmt.Sprintf("    %s%-24s%s %6d%s\n",
			colorCyan, displayName(g.Name, g.Label), colorReset, g.Total, marker))
	}

	sb.WriteString(fmt.Sprintf("\n  %sCategories%s\n", colorBold, colorReset))
	for _, c := range sum.CategoryTotals {
		sb.WriteString(fmt.Sprintf("    %-24s %6d  %s%s%s\n",
			displayName(c.Name, c.Label), c.Total, colorGray, c.Group, colorReset))
	}

	return sb.String()
}

// formatPeriodTable formats bucket rows in period order. A bucket with no
// records shows — for its mean, never 0.
func formatPeriodTable(buckets []*aggregate.Bucket) string {
	if len(buckets) == 0 {
		return "  no records to bucket\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("  %s%-10s %8s %8s %10s %12s%s\n",
		colorBold, "period", "records", "mean", "intensity", "engagement", colorReset))
	for _, b := range buckets {
		mean := "—"
		if m, ok := b.MeanIntensity(); ok {
			mean = fmt.Sprintf("%.2f", m)
		}
		sb.WriteString(fmt.Sprintf("  %s%-10s%s %8d %8s %10d %12d\n",
			colorCyan, b.Key, colorReset,
			b.Records, mean, b.IntensitySum, b.EngagementSum))
	}
	return sb.String()
}

// formatRuns formats the stored-run listing, newest first.
func formatRuns(metas []ports.RunMeta) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s⚡ %d runs%s\n", colorBold, len(metas), colorReset))
	for _, m := range metas {
		sb.WriteString(fmt.Sprintf("  %s%s%s  %s  %s%-20s%s %6d records  %s → %s\n",
			colorCyan, shortID(m.ID), colorReset,
			m.CreatedAt.Format("2006-01-02 15:04"),
			colorGray, m.Source, colorReset,
			m.Records,
			m.From.Format(dateLayout), m.To.Format(dateLayout)))
	}
	return sb.String()
}

// formatDict formats the validated taxonomy: groups with composite markers,
// categories with keyword counts, optionally the keywords themselves.
func formatDict(store *dictionary.Store, withKeywords bool) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s⚡ taxonomy ok%s │ %d groups │ %d categories │ %d keywords\n",
		colorBold, colorReset,
		len(store.Groups()), store.NumCategories(), store.NumKeywords()))

	for _, g := range store.Groups() {
		marker := fmt.Sprintf("%s○ reported only%s", colorGray, colorReset)
		if g.Composite {
			marker = fmt.Sprintf("%s●composite%s", colorMagenta, colorReset)
		}
		sb.WriteString(fmt.Sprintf("  %s%s%s — %s  %s\n",
			colorCyan, g.Name, colorReset, displayName(g.Name, g.Label), marker))
		for _, c := range g.Categories {
			sb.WriteString(fmt.Sprintf("    %-22s %s%d keywords%s\n",
				c.Name, colorGreen, len(c.Keywords), colorReset))
			if withKeywords {
				sb.WriteString(fmt.Sprintf("      %s%s%s\n",
					colorGray, strings.Join(c.Keywords, ", "), colorReset))
			}
		}
	}
	return sb.String()
}
