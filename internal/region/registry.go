package region

import "github.com/timing-report/pkg/model"

// Registry maps region names to their records for one document. It exists
// for cross-document alignment by name only; a counterpart's position in
// its own document is irrelevant.
type Registry map[string]model.RegionRecord

// BuildRegistry scans the document in order and indexes records by name.
// When a name repeats, the later record overwrites the earlier one: last
// occurrence wins, no merging.
func BuildRegistry(doc *model.SummaryDocument) Registry {
	reg := make(Registry, len(doc.Records))
	for _, r := range doc.Records {
		reg[r.Name] = r
	}
	return reg
}

// Lookup returns the record for a name, if present.
func (r Registry) Lookup(name string) (model.RegionRecord, bool) {
	rec, ok := r[name]
	return rec, ok
}
