package pdfparse

import (
	"fmt"
	"strings"
)

// WarningCode identifies a class of non-fatal extraction issue.
type WarningCode string

const (
	// WarnPageFailed indicates a page could not be decoded; its text is
	// empty and processing continued with the remaining pages.
	WarnPageFailed WarningCode = "page_failed"

	// WarnNoItems indicates table extraction found no line items.
	WarnNoItems WarningCode = "no_items"

	// WarnNoFields indicates field extraction matched none of the fields.
	WarnNoFields WarningCode = "no_fields"
)

// Warning describes a non-fatal issue encountered during extraction.
// Page is 1-based and zero for document-level warnings.
type Warning struct {
	Code    WarningCode
	Page    int
	Message string
}

// String implements fmt.Stringer.
func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("page %d: %s (%s)", w.Page, w.Message, w.Code)
	}
	return fmt.Sprintf("%s (%s)", w.Message, w.Code)
}

// FormatWarnings joins warnings into a single human-readable string,
// one warning per line. It returns "" for an empty slice.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "\n")
}
