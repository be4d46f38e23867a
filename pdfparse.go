// Package pdfparse provides a fluent API for recovering structured invoice
// data from decoded PDF transcripts: per-page text reconstruction, line item
// table extraction, and scalar field extraction.
//
// Basic usage:
//
//	items, warnings, err := pdfparse.Open("invoice.json").Items()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println(pdfparse.FormatWarnings(warnings))
//	}
//
// With options:
//
//	set, _, err := pdfparse.Open("invoice.json").
//	    Pages(1, 2).
//	    Fields()
//
// For advanced use cases, the lower-level decoder, layout, tables, and
// fields packages are also available.
package pdfparse

import (
	"github.com/wonderhao123/pdf-parse/decoder"
)

// Open prepares an Extractor for a JSON transcript file. The file is read
// and validated lazily, on the first terminal operation.
//
// Example:
//
//	doc, warnings, err := pdfparse.Open("invoice.json").Document()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromBytes prepares an Extractor for an in-memory JSON transcript.
func FromBytes(data []byte) *Extractor {
	return &Extractor{
		data:    data,
		options: defaultOptions(),
	}
}

// FromDecoder creates an Extractor from an already-opened decoder. This is
// useful when the transcript comes from somewhere other than a JSON file.
//
// Example:
//
//	d, err := decoder.OpenTranscript("invoice.json")
//	if err != nil {
//	    // handle error
//	}
//	items, warnings, err := pdfparse.FromDecoder(d).Items()
func FromDecoder(d decoder.Decoder) *Extractor {
	return &Extractor{
		dec:          d,
		decoderReady: true,
		options:      defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := pdfparse.Must(pdfparse.Open("invoice.json").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustExtract is a helper that wraps a call to a terminal operation
// returning (T, []Warning, error) and panics if the error is non-nil.
// It discards warnings and returns just the value.
//
// Example:
//
//	items := pdfparse.MustExtract(pdfparse.Open("invoice.json").Items())
func MustExtract[T any](val T, warnings []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
