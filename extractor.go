package pdfparse

import (
	"fmt"

	"github.com/wonderhao123/pdf-parse/decoder"
	"github.com/wonderhao123/pdf-parse/fields"
	"github.com/wonderhao123/pdf-parse/layout"
	"github.com/wonderhao123/pdf-parse/model"
	"github.com/wonderhao123/pdf-parse/tables"
)

// Extractor provides a fluent interface for recovering invoice data from
// decoded document transcripts. Each configuration method returns a new
// Extractor instance, making it safe for concurrent use and allowing method
// chaining.
type Extractor struct {
	// Source (only one is used)
	filename string
	data     []byte
	dec      decoder.Decoder

	// Lifecycle
	decoderReady bool

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:     e.filename,
		data:         e.data,
		dec:          e.dec,
		decoderReady: e.decoderReady,
		options:      e.options.clone(),
		err:          e.err,
		warnings:     append([]Warning(nil), e.warnings...),
	}
}

// ensureDecoder opens the transcript decoder if not already open.
func (e *Extractor) ensureDecoder() error {
	if e.decoderReady {
		return nil
	}

	switch {
	case e.dec != nil:
		e.decoderReady = true
		return nil

	case e.data != nil:
		d, err := decoder.NewJSONDecoder(e.data)
		if err != nil {
			return fmt.Errorf("failed to decode transcript: %w", err)
		}
		e.dec = d
		e.decoderReady = true
		return nil

	case e.filename != "":
		d, err := decoder.OpenTranscript(e.filename)
		if err != nil {
			return fmt.Errorf("failed to open transcript: %w", err)
		}
		e.dec = d
		e.decoderReady = true
		return nil

	default:
		return fmt.Errorf("no input specified")
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages specifies which pages to extract from (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	doc, _, err := pdfparse.Open("invoice.json").Pages(1, 3, 5).Document()
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pages...)
	return newExt
}

// PageRange specifies a range of pages to extract (1-indexed, inclusive).
//
// Example:
//
//	doc, _, err := pdfparse.Open("invoice.json").PageRange(2, 4).Document()
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	for i := start; i <= end; i++ {
		newExt.options.pages = append(newExt.options.pages, i)
	}
	return newExt
}

// JoinPages sets the separator used when joining page texts into the full
// document text. The default is a single newline.
//
// Example:
//
//	text, _, err := pdfparse.Open("invoice.json").JoinPages("\n\n").Text()
func (e *Extractor) JoinPages(sep string) *Extractor {
	newExt := e.clone()
	newExt.options.pageJoin = sep
	return newExt
}

// WithLayoutConfig overrides the line reconstruction configuration.
func (e *Extractor) WithLayoutConfig(config layout.Config) *Extractor {
	newExt := e.clone()
	newExt.options.layoutConfig = config
	return newExt
}

// WithReconstructor supplies a caller-built reconstructor for page text
// assembly, taking precedence over WithLayoutConfig.
func (e *Extractor) WithReconstructor(recon *layout.Reconstructor) *Extractor {
	newExt := e.clone()
	newExt.options.recon = recon
	return newExt
}

// WithTableConfig overrides the table extraction configuration.
func (e *Extractor) WithTableConfig(config tables.Config) *Extractor {
	newExt := e.clone()
	newExt.options.tableConfig = config
	return newExt
}

// WithFieldConfig overrides the field extraction configuration.
func (e *Extractor) WithFieldConfig(config fields.Config) *Extractor {
	newExt := e.clone()
	newExt.options.fieldConfig = config
	return newExt
}

// ============================================================================
// Terminal Methods
// ============================================================================

// PageCount returns the number of pages in the document.
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if err := e.ensureDecoder(); err != nil {
		return 0, err
	}
	return e.dec.PageCount(), nil
}

// Metadata returns the document-level properties.
func (e *Extractor) Metadata() (model.Metadata, error) {
	if e.err != nil {
		return model.Metadata{}, e.err
	}
	if err := e.ensureDecoder(); err != nil {
		return model.Metadata{}, err
	}
	return e.dec.Metadata(), nil
}

// Document decodes the selected pages and reconstructs their text. A page
// the decoder fails on is recorded on the document and reported as a
// warning; it never fails the whole extraction.
//
// Example:
//
//	doc, warnings, err := pdfparse.Open("invoice.json").Document()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println(pdfparse.FormatWarnings(warnings))
//	}
func (e *Extractor) Document() (*model.Document, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureDecoder(); err != nil {
		return nil, nil, err
	}

	recon := e.options.recon
	if recon == nil {
		recon = layout.NewReconstructorWithConfig(e.options.layoutConfig)
	}
	doc := decoder.DecodeDocument(e.dec, recon, e.pageIndices())

	warnings := append([]Warning(nil), e.warnings...)
	for _, page := range doc.FailedPages() {
		warnings = append(warnings, Warning{
			Code:    WarnPageFailed,
			Page:    page.PageNumber,
			Message: page.Error,
		})
	}
	return doc, warnings, nil
}

// Text decodes the selected pages and returns the full reconstructed
// document text, pages joined with the configured separator.
func (e *Extractor) Text() (string, []Warning, error) {
	doc, warnings, err := e.Document()
	if err != nil {
		return "", nil, err
	}
	return doc.JoinPages(e.options.pageJoin), warnings, nil
}

// Items decodes the document and extracts its line item table.
//
// Example:
//
//	items, warnings, err := pdfparse.Open("invoice.json").Items()
func (e *Extractor) Items() ([]tables.LineItem, []Warning, error) {
	doc, warnings, err := e.Document()
	if err != nil {
		return nil, nil, err
	}

	items := tables.NewExtractorWithConfig(e.options.tableConfig).Extract(doc.JoinPages(e.options.pageJoin))
	if len(items) == 0 {
		warnings = append(warnings, Warning{
			Code:    WarnNoItems,
			Message: "no line items recognized",
		})
	}
	return items, warnings, nil
}

// Fields decodes the document and extracts its scalar invoice fields.
//
// Example:
//
//	set, warnings, err := pdfparse.Open("invoice.json").Fields()
func (e *Extractor) Fields() (fields.FieldSet, []Warning, error) {
	doc, warnings, err := e.Document()
	if err != nil {
		return fields.FieldSet{}, nil, err
	}

	set := fields.NewExtractorWithConfig(e.options.fieldConfig).Extract(doc.JoinPages(e.options.pageJoin))
	if set.InvoiceNumber.Value == "" && set.Item.Value == "" && set.Price.Value == "" {
		warnings = append(warnings, Warning{
			Code:    WarnNoFields,
			Message: "no invoice fields recognized",
		})
	}
	return set, warnings, nil
}

// pageIndices converts the 1-indexed page selection to the decoder's
// 0-based indices. nil means all pages.
func (e *Extractor) pageIndices() []int {
	if e.options.pages == nil {
		return nil
	}
	indices := make([]int, len(e.options.pages))
	for i, p := range e.options.pages {
		indices[i] = p - 1
	}
	return indices
}
