// Package repository persists comparison run history.
package repository

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/timing-report/pkg/model"
)

// ComparisonRun represents the comparison_runs table. One row per executed
// comparison, with the full report kept as JSON alongside the normalized
// per-child rows.
type ComparisonRun struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement"`
	RunUUID       string    `gorm:"column:run_uuid;type:varchar(64);uniqueIndex"`
	Region        string    `gorm:"column:region;type:varchar(255);index"`
	ParentMean    float64   `gorm:"column:parent_mean_s"`
	TopN          int       `gorm:"column:top_n"`
	Mode          string    `gorm:"column:mode;type:varchar(16)"`
	Threshold     float64   `gorm:"column:threshold_pct"`
	BaselinePath  string    `gorm:"column:baseline_path;type:varchar(512)"`
	OptimizedPath string    `gorm:"column:optimized_path;type:varchar(512)"`
	HasOptimized  bool      `gorm:"column:has_optimized"`
	Report        JSONField `gorm:"column:report;type:json"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`

	Rows []ComparisonRunRow `gorm:"foreignKey:RunID"`
}

// TableName returns the table name for ComparisonRun.
func (ComparisonRun) TableName() string {
	return "comparison_runs"
}

// ComparisonRunRow represents the comparison_run_rows table.
type ComparisonRunRow struct {
	ID    int64 `gorm:"column:id;primaryKey;autoIncrement"`
	RunID int64 `gorm:"column:run_id;index"`

	// Rank preserves the report ordering, largest baseline mean first.
	Rank int    `gorm:"column:rank"`
	Name string `gorm:"column:name;type:varchar(255)"`

	BaseMean  float64 `gorm:"column:baseline_mean_s"`
	BaseMin   float64 `gorm:"column:baseline_min_s"`
	BaseMax   float64 `gorm:"column:baseline_max_s"`
	BaseCount *int    `gorm:"column:baseline_count"`

	ShareOfParent *float64 `gorm:"column:share_of_parent_pct"`

	HasCounterpart bool     `gorm:"column:has_counterpart"`
	OptMean        *float64 `gorm:"column:optimized_mean_s"`
	OptMin         *float64 `gorm:"column:optimized_min_s"`
	OptMax         *float64 `gorm:"column:optimized_max_s"`

	Delta        *float64 `gorm:"column:delta"`
	Label        string   `gorm:"column:label;type:varchar(16)"`
	PercentDelta *float64 `gorm:"column:percent_delta"`
}

// TableName returns the table name for ComparisonRunRow.
func (ComparisonRunRow) TableName() string {
	return "comparison_run_rows"
}

// NewComparisonRun builds a persistable run record from a report.
func NewComparisonRun(runUUID, baselinePath, optimizedPath string, report *model.ComparisonReport) (*ComparisonRun, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return nil, err
	}

	run := &ComparisonRun{
		RunUUID:       runUUID,
		Region:        report.Region,
		ParentMean:    report.ParentMean,
		TopN:          report.TopN,
		Mode:          report.ModeName,
		Threshold:     report.Threshold,
		BaselinePath:  baselinePath,
		OptimizedPath: optimizedPath,
		HasOptimized:  report.HasOptimized,
		Report:        JSONField(reportJSON),
	}

	for i, row := range report.Rows {
		run.Rows = append(run.Rows, ComparisonRunRow{
			Rank:           i + 1,
			Name:           row.Name,
			BaseMean:       row.BaseMean,
			BaseMin:        row.BaseMin,
			BaseMax:        row.BaseMax,
			BaseCount:      row.BaseCount,
			ShareOfParent:  row.ShareOfParent,
			HasCounterpart: row.HasCounterpart,
			OptMean:        row.OptMean,
			OptMin:         row.OptMin,
			OptMax:         row.OptMax,
			Delta:          row.Delta,
			Label:          string(row.Label),
			PercentDelta:   row.PercentDelta,
		})
	}

	return run, nil
}

// ToReport reconstructs the report from the stored JSON column.
func (r *ComparisonRun) ToReport() (*model.ComparisonReport, error) {
	if r.Report == nil {
		return nil, errors.New("run has no stored report")
	}

	var report model.ComparisonReport
	if err := json.Unmarshal(r.Report, &report); err != nil {
		return nil, err
	}
	report.Mode, _ = model.ParseCompareMode(report.ModeName)
	return &report, nil
}

// JSONField stores raw JSON in a database column.
type JSONField []byte

// Value implements driver.Valuer interface.
func (j JSONField) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return []byte(j), nil
}

// Scan implements sql.Scanner interface.
func (j *JSONField) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		*j = append((*j)[0:0], v...)
		return nil
	case string:
		*j = []byte(v)
		return nil
	default:
		return errors.New("unsupported type for JSONField")
	}
}

// MarshalJSON implements json.Marshaler interface.
func (j JSONField) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return []byte(j), nil
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (j *JSONField) UnmarshalJSON(data []byte) error {
	*j = append((*j)[0:0], data...)
	return nil
}
