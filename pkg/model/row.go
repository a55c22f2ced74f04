package model

// Classification labels a comparison row whose delta cleared the annotation
// threshold. Rows below the threshold, and rows with an exactly zero delta,
// stay unclassified.
type Classification string

const (
	ClassNone   Classification = ""
	ClassFaster Classification = "faster"
	ClassSlower Classification = "slower"
)

// ComparisonRow is one ranked baseline child with its optional optimized
// counterpart. Rows are created by the comparator and consumed by the
// table/CSV/chart renderers; nothing mutates them afterwards.
//
// Nullable fields use pointers: ShareOfParent is nil when the parent mean is
// not positive, the Opt* fields are nil when the counterpart region is absent
// from the optimized document, and Delta is nil when its denominator is not
// positive. A missing counterpart flags the row instead of dropping it.
type ComparisonRow struct {
	Name string `json:"region"`

	BaseMean  float64 `json:"baseline_mean_s"`
	BaseMin   float64 `json:"baseline_min_s"`
	BaseMax   float64 `json:"baseline_max_s"`
	BaseCount *int    `json:"baseline_count"`
	BasePETs  *int    `json:"baseline_pets,omitempty"`
	BasePEs   *int    `json:"baseline_pes,omitempty"`

	// ShareOfParent is 100*mean/parentMean in percent.
	ShareOfParent *float64 `json:"share_of_parent_pct"`

	HasCounterpart bool     `json:"has_counterpart"`
	OptMean        *float64 `json:"optimized_mean_s"`
	OptMin         *float64 `json:"optimized_min_s"`
	OptMax         *float64 `json:"optimized_max_s"`
	OptCount       *int     `json:"optimized_count,omitempty"`
	OptPETs        *int     `json:"optimized_pets,omitempty"`
	OptPEs         *int     `json:"optimized_pes,omitempty"`

	// Delta is the mode-dependent comparison metric: percent saved in
	// ModePercent, base/opt ratio in ModeSpeedup.
	Delta *float64       `json:"delta"`
	Label Classification `json:"label,omitempty"`

	// PercentDelta is 100*(base-opt)/base regardless of mode; the
	// classification threshold is always applied to this value.
	PercentDelta *float64 `json:"percent_delta,omitempty"`
}

// ComparisonReport is the full output of one comparison pass, shaped so the
// renderers never need to re-invoke the parser.
type ComparisonReport struct {
	Region       string          `json:"region"`
	ParentMean   float64         `json:"parent_mean_s"`
	TopN         int             `json:"top_n"`
	Mode         CompareMode     `json:"-"`
	ModeName     string          `json:"mode"`
	Threshold    float64         `json:"threshold_pct"`
	HasOptimized bool            `json:"has_optimized"`
	Rows         []ComparisonRow `json:"rows"`
}
