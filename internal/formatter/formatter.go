// Package formatter renders comparison reports for terminal output.
package formatter

import (
	"fmt"
	"strings"

	"github.com/timing-report/pkg/model"
	"github.com/timing-report/pkg/utils"
)

const nameColumnWidth = 40

// TableFormatter prints a comparison report as an aligned text table, one
// row per ranked child region. Optimized columns appear only when the report
// carries an optimized document.
type TableFormatter struct{}

// NewTableFormatter creates a table formatter.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{}
}

// Format outputs the report to the logger, one line per row.
func (f *TableFormatter) Format(report *model.ComparisonReport, log utils.Logger) {
	if report == nil {
		return
	}

	log.Info("Region: %s (baseline parent mean = %.6f s), top %d children by baseline mean",
		report.Region, report.ParentMean, report.TopN)

	if len(report.Rows) == 0 {
		log.Info("  (no child regions to report)")
		return
	}

	log.Info("%s", f.header(report))
	for _, row := range report.Rows {
		log.Info("%s", f.line(report, &row))
	}

	if report.HasOptimized {
		log.Info("Labels mark rows whose baseline/optimized delta exceeds %.1f%%.",
			report.Threshold)
	}
}

func (f *TableFormatter) header(report *model.ComparisonReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-*s %12s %12s %12s %8s",
		nameColumnWidth, "NAME", "BASE MEAN", "BASE MIN", "BASE MAX", "SHARE%")
	if report.HasOptimized {
		fmt.Fprintf(&b, " %12s %12s %12s %10s %7s",
			"OPT MEAN", "OPT MIN", "OPT MAX", deltaHeading(report.Mode), "LABEL")
	}
	return b.String()
}

func (f *TableFormatter) line(report *model.ComparisonReport, row *model.ComparisonRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-*s %12.6f %12.6f %12.6f %8s",
		nameColumnWidth, truncateString(row.Name, nameColumnWidth),
		row.BaseMean, row.BaseMin, row.BaseMax,
		floatCell(row.ShareOfParent, "%.2f"))
	if report.HasOptimized {
		fmt.Fprintf(&b, " %12s %12s %12s %10s %7s",
			floatCell(row.OptMean, "%.6f"),
			floatCell(row.OptMin, "%.6f"),
			floatCell(row.OptMax, "%.6f"),
			deltaCell(report.Mode, row.Delta),
			string(row.Label))
	}
	return b.String()
}

func deltaHeading(mode model.CompareMode) string {
	if mode == model.ModeSpeedup {
		return "SPEEDUP"
	}
	return "DELTA%"
}

// deltaCell renders the mode-dependent metric, "-" when it is undefined for
// the row.
func deltaCell(mode model.CompareMode, delta *float64) string {
	if delta == nil {
		return "-"
	}
	if mode == model.ModeSpeedup {
		return fmt.Sprintf("%.3fx", *delta)
	}
	return fmt.Sprintf("%+.2f", *delta)
}

func floatCell(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
