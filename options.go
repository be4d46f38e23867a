package pdfparse

import (
	"github.com/wonderhao123/pdf-parse/fields"
	"github.com/wonderhao123/pdf-parse/layout"
	"github.com/wonderhao123/pdf-parse/tables"
)

// ExtractOptions holds configuration for an extraction run.
type ExtractOptions struct {
	// Page selection (1-indexed in API, stored as-is)
	pages []int

	// Separator used when joining page texts
	pageJoin string

	// Component configuration
	layoutConfig layout.Config
	tableConfig  tables.Config
	fieldConfig  fields.Config

	// Caller-supplied reconstructor; overrides layoutConfig when set
	recon *layout.Reconstructor
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		pages:        nil, // nil means all pages
		pageJoin:     "\n",
		layoutConfig: layout.DefaultConfig(),
		tableConfig:  tables.DefaultConfig(),
		fieldConfig:  fields.DefaultConfig(),
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		pageJoin:     o.pageJoin,
		layoutConfig: o.layoutConfig,
		tableConfig:  o.tableConfig,
		fieldConfig:  o.fieldConfig,
		recon:        o.recon,
	}

	// Deep copy pages slice
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}

	return newOpts
}
