package decoder

import (
	"github.com/wonderhao123/pdf-parse/layout"
	"github.com/wonderhao123/pdf-parse/model"
	"github.com/wonderhao123/pdf-parse/text"
)

// Decoder is the contract with the external PDF decoding engine. A decoder
// is scoped to one already-opened document.
type Decoder interface {
	// PageCount returns the number of pages in the document.
	PageCount() int

	// Metadata returns the document-level properties.
	Metadata() model.Metadata

	// PageFragments returns the positioned text fragments of one page.
	// pageIndex is 0-based. A per-page failure returns an error; it must
	// not be treated as fatal for the document.
	PageFragments(pageIndex int) ([]text.Fragment, error)
}

// DecodeDocument folds over the document's pages, reconstructing each page's
// text. A page the decoder fails on is recorded with its error message and
// empty text, and the fold continues with the next page; one bad page never
// aborts the document.
//
// pageIndices selects which 0-based pages to decode; nil means all pages.
// Out-of-range indices are skipped.
func DecodeDocument(dec Decoder, recon *layout.Reconstructor, pageIndices []int) *model.Document {
	if recon == nil {
		recon = layout.NewReconstructor()
	}

	pageCount := dec.PageCount()
	doc := model.NewDocument(pageCount, dec.Metadata())

	indices := pageIndices
	if indices == nil {
		indices = make([]int, pageCount)
		for i := range indices {
			indices[i] = i
		}
	}

	for _, i := range indices {
		if i < 0 || i >= pageCount {
			continue
		}

		page := model.PageText{PageNumber: i + 1}
		fragments, err := dec.PageFragments(i)
		if err != nil {
			page.Error = err.Error()
		} else {
			page.Text = recon.Reconstruct(fragments)
		}
		doc.AddPage(page)
	}

	return doc
}
