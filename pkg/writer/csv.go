package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/timing-report/pkg/model"
)

// CSVWriter writes the rows of a comparison report as CSV. The optimized
// column group is emitted only when the report was built against a second
// document, so a baseline-only report stays narrow.
type CSVWriter struct{}

// NewCSVWriter creates a new CSV report writer.
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

var baselineHeader = []string{
	"region",
	"baseline_mean_s", "baseline_min_s", "baseline_max_s",
	"baseline_count", "baseline_PETs", "baseline_PEs",
	"share_of_parent_pct",
}

var optimizedHeader = []string{
	"optimized_mean_s", "optimized_min_s", "optimized_max_s",
	"optimized_count", "optimized_PETs", "optimized_PEs",
	"delta", "label",
}

// Write writes the report rows as CSV to the writer.
func (w *CSVWriter) Write(report *model.ComparisonReport, writer io.Writer) error {
	cw := csv.NewWriter(writer)

	header := baselineHeader
	if report.HasOptimized {
		header = append(append([]string{}, baselineHeader...), optimizedHeader...)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range report.Rows {
		record := []string{
			row.Name,
			formatFloat(row.BaseMean),
			formatFloat(row.BaseMin),
			formatFloat(row.BaseMax),
			formatIntPtr(row.BaseCount),
			formatIntPtr(row.BasePETs),
			formatIntPtr(row.BasePEs),
			formatFloatPtr(row.ShareOfParent),
		}
		if report.HasOptimized {
			record = append(record,
				formatFloatPtr(row.OptMean),
				formatFloatPtr(row.OptMin),
				formatFloatPtr(row.OptMax),
				formatIntPtr(row.OptCount),
				formatIntPtr(row.OptPETs),
				formatIntPtr(row.OptPEs),
				formatFloatPtr(row.Delta),
				string(row.Label),
			)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteToFile writes the report rows as CSV to a file.
func (w *CSVWriter) WriteToFile(report *model.ComparisonReport, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return w.Write(report, file)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// formatFloatPtr renders nullable metrics; absent values become empty cells.
func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func formatIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
