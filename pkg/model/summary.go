// Package model defines the core data structures used throughout the application.
package model

// RegionRecord is one parsed line of a profiler timing summary table.
//
// PETs, PEs and Count are pointers because they are legitimately absent:
// the summary grammar has a variant without the PETs/PEs columns, and the
// count column may carry the MULTIPLE sentinel instead of an integer. A nil
// Count means "aggregated/variable count", not zero.
type RegionRecord struct {
	Name   string  `json:"region"`
	Indent int     `json:"indent"`
	PETs   *int    `json:"pets,omitempty"`
	PEs    *int    `json:"pes,omitempty"`
	Count  *int    `json:"count"`
	Mean   float64 `json:"mean_s"`
	Min    float64 `json:"min_s"`
	MinPET int     `json:"min_pet"`
	Max    float64 `json:"max_s"`
	MaxPET int     `json:"max_pet"`
}

// SummaryDocument holds the ordered records parsed from one summary file.
// Record order is load-bearing: both the indentation tree and duplicate-name
// resolution depend on it.
type SummaryDocument struct {
	Path    string         `json:"path"`
	Records []RegionRecord `json:"records"`
}

// First returns the first parsed record. The parser guarantees at least one
// record in any document it returns.
func (d *SummaryDocument) First() RegionRecord {
	return d.Records[0]
}

// HasRegion reports whether any record carries the given name.
func (d *SummaryDocument) HasRegion(name string) bool {
	for i := range d.Records {
		if d.Records[i].Name == name {
			return true
		}
	}
	return false
}
