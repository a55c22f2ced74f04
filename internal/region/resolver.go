// Package region locates regions in a parsed summary and derives their
// direct children from indentation. The summary table stores no explicit
// parent/child links; structure is positional and recomputed on demand.
package region

import (
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/timing-report/pkg/errors"
	"github.com/timing-report/pkg/model"
)

// maxSampleNames bounds the diagnostic name sample in NotFoundError.
const maxSampleNames = 30

// NotFoundError reports a region missing from a document, with a bounded
// sample of the names that do exist.
type NotFoundError struct {
	Region    string
	Path      string
	Available []string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("region %q not found", e.Region)
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if len(e.Available) > 0 {
		msg += fmt.Sprintf(" (available: %s)", strings.Join(e.Available, ", "))
	}
	return msg
}

// Unwrap ties the error to the REGION_NOT_FOUND code so errors.Is against
// the pkg/errors sentinel and IsRegionNotFound match it.
func (e *NotFoundError) Unwrap() error {
	return apperrors.ErrRegionNotFound
}

// FindRegion returns the first record with the given name and its position
// in the document. On a miss it returns a NotFoundError listing a sorted,
// deduplicated sample of available names.
func FindRegion(doc *model.SummaryDocument, name string) (model.RegionRecord, int, error) {
	for i, r := range doc.Records {
		if r.Name == name {
			return r, i, nil
		}
	}
	return model.RegionRecord{}, 0, &NotFoundError{
		Region:    name,
		Path:      doc.Path,
		Available: sampleNames(doc.Records),
	}
}

// CollectChildren returns the maximal contiguous run of records after
// parentIdx whose indent is strictly greater than the parent's. The run
// stops at the first record at or above the parent's level (or at document
// end); the stop condition does not distinguish deeper descendants inside
// the run from the parent's later siblings beyond it.
//
// An empty result means the region has no children; that is a normal
// outcome, not an error.
func CollectChildren(doc *model.SummaryDocument, parentIdx int) []model.RegionRecord {
	parentIndent := doc.Records[parentIdx].Indent
	children := make([]model.RegionRecord, 0)
	for j := parentIdx + 1; j < len(doc.Records); j++ {
		if doc.Records[j].Indent <= parentIndent {
			break
		}
		children = append(children, doc.Records[j])
	}
	return children
}

// sampleNames returns up to maxSampleNames distinct region names in sorted
// order for diagnostics.
func sampleNames(records []model.RegionRecord) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0, maxSampleNames)
	for _, r := range records {
		if _, ok := seen[r.Name]; ok {
			continue
		}
		seen[r.Name] = struct{}{}
		names = append(names, r.Name)
		if len(names) == maxSampleNames {
			break
		}
	}
	sort.Strings(names)
	return names
}
