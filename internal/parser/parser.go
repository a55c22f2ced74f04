// Package parser defines the interfaces for parsing profiler timing summaries.
package parser

import (
	"context"
	"io"

	"github.com/timing-report/pkg/model"
)

// Parser is the interface for parsing timing summary documents.
type Parser interface {
	// Parse parses a summary document from the reader. Lines that do not
	// match the region-table grammar are skipped; a document in which no
	// line matches is an error.
	Parse(ctx context.Context, reader io.Reader) (*model.SummaryDocument, error)

	// ParseFile parses the file at path and records the path in the
	// returned document.
	ParseFile(ctx context.Context, path string) (*model.SummaryDocument, error)

	// Name returns the name of this parser.
	Name() string
}
