// Package summary parses profiler timing summary tables.
//
// The region table is line oriented: each row carries a name, an optional
// PETs/PEs column pair, a count (or the MULTIPLE sentinel), and the
// mean/min/max statistics interleaved with the min/max PET ids. Indentation
// encodes nesting, so leading whitespace is part of the grammar.
package summary

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/timing-report/internal/parser"
	"github.com/timing-report/pkg/model"
)

// The two grammar variants, tried most-specific-first. A row with PETs/PEs
// columns also matches the short variant (the lazy name group would swallow
// the two integers), so the long variant must win when both apply.
var (
	rowWithPETs = regexp.MustCompile(
		`^(?P<indent>\s*)(?P<name>\S.*?\S|\S)\s+` +
			`(?P<pets>\d+)\s+(?P<pes>\d+)\s+` +
			`(?P<count>MULTIPLE|\d+)\s+` +
			`(?P<mean>\d+\.\d+)\s+` +
			`(?P<min>\d+\.\d+)\s+` +
			`(?P<minpet>\d+)\s+` +
			`(?P<max>\d+\.\d+)\s+` +
			`(?P<maxpet>\d+)\s*$`)

	rowWithoutPETs = regexp.MustCompile(
		`^(?P<indent>\s*)(?P<name>\S.*?\S|\S)\s+` +
			`(?P<count>MULTIPLE|\d+)\s+` +
			`(?P<mean>\d+\.\d+)\s+` +
			`(?P<min>\d+\.\d+)\s+` +
			`(?P<minpet>\d+)\s+` +
			`(?P<max>\d+\.\d+)\s+` +
			`(?P<maxpet>\d+)\s*$`)

	matchers = []*regexp.Regexp{rowWithPETs, rowWithoutPETs}
)

// countSentinel marks a row whose invocation count is aggregated across
// variable executions rather than a single integer.
const countSentinel = "MULTIPLE"

// Parser parses timing summary region tables.
type Parser struct{}

// NewParser creates a new summary parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses a summary document from the reader.
//
// The tokenizer is a filter, not a validator: headers, separators, blank
// lines and anything else outside the grammar are skipped silently. The only
// hard failure is a document in which nothing matched at all.
func (p *Parser) Parse(ctx context.Context, reader io.Reader) (*model.SummaryDocument, error) {
	doc := &model.SummaryDocument{
		Records: make([]model.RegionRecord, 0),
	}

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		record, ok := tokenizeLine(scanner.Text())
		if !ok {
			continue
		}
		doc.Records = append(doc.Records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	if len(doc.Records) == 0 {
		return nil, parser.ErrUnrecognizedDocument
	}

	return doc, nil
}

// ParseFile parses the summary file at path.
func (p *Parser) ParseFile(ctx context.Context, path string) (*model.SummaryDocument, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open summary file: %w", err)
	}
	defer file.Close()

	doc, err := p.Parse(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	doc.Path = path
	return doc, nil
}

// Name returns the name of this parser.
func (p *Parser) Name() string {
	return "summary"
}

// tokenizeLine matches one raw line against the grammar variants and returns
// the decoded record. The boolean is false for non-matching lines.
func tokenizeLine(line string) (model.RegionRecord, bool) {
	for _, re := range matchers {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		return decodeRow(re, m), true
	}
	return model.RegionRecord{}, false
}

// decodeRow converts a regex match into a RegionRecord. All numeric
// conversions are infallible after a successful match.
func decodeRow(re *regexp.Regexp, m []string) model.RegionRecord {
	group := func(name string) string {
		idx := re.SubexpIndex(name)
		if idx < 0 {
			return ""
		}
		return m[idx]
	}

	record := model.RegionRecord{
		Name:   strings.TrimSpace(group("name")),
		Indent: len(group("indent")),
		Mean:   mustFloat(group("mean")),
		Min:    mustFloat(group("min")),
		MinPET: mustInt(group("minpet")),
		Max:    mustFloat(group("max")),
		MaxPET: mustInt(group("maxpet")),
	}

	if s := group("pets"); s != "" {
		record.PETs = intPtr(mustInt(s))
		record.PEs = intPtr(mustInt(group("pes")))
	}

	if s := group("count"); s != countSentinel {
		record.Count = intPtr(mustInt(s))
	}

	return record
}

func mustFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func mustInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func intPtr(v int) *int {
	return &v
}
