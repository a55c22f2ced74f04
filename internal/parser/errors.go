package parser

import (
	apperrors "github.com/timing-report/pkg/errors"
)

// ErrUnrecognizedDocument is returned when no line of a document matches
// the region-table grammar. It carries the UNRECOGNIZED_DOCUMENT code, so
// errors.Is against the pkg/errors sentinel and IsUnrecognizedDocument
// both match it through any wrapping.
var ErrUnrecognizedDocument = apperrors.New(apperrors.CodeUnrecognizedDocument, "no region rows recognized in document")
