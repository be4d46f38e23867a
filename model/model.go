package model

import "strings"

// Metadata holds the document-level properties reported by the decoder.
// Fields the decoder cannot supply are empty, except Title and Author which
// default to "Unknown".
type Metadata struct {
	Title            string
	Author           string
	Subject          string
	Creator          string
	Producer         string
	CreationDate     string
	ModificationDate string
}

// PageText is the reconstructed text of one page. PageNumber is 1-based.
// A page the decoder failed on carries an Error message and empty Text;
// it still occupies its slot in the document.
type PageText struct {
	PageNumber int
	Text       string
	Error      string
}

// Failed reports whether the page could not be decoded.
func (p PageText) Failed() bool {
	return p.Error != ""
}

// Document is the decoded form of one input document: metadata plus the
// reconstructed text of every page, in page order.
type Document struct {
	PageCount int
	Metadata  Metadata
	Pages     []PageText
}

// NewDocument creates a document with the given page count and metadata.
func NewDocument(pageCount int, metadata Metadata) *Document {
	return &Document{
		PageCount: pageCount,
		Metadata:  metadata,
		Pages:     make([]PageText, 0, pageCount),
	}
}

// AddPage appends a page to the document.
func (d *Document) AddPage(page PageText) {
	d.Pages = append(d.Pages, page)
}

// FullText joins the text of all pages with a line separator. Failed pages
// contribute empty text. The result is derived on each call, not stored.
func (d *Document) FullText() string {
	return d.JoinPages("\n")
}

// JoinPages joins the text of all pages with the given separator. Failed
// pages contribute empty text.
func (d *Document) JoinPages(sep string) string {
	if d == nil || len(d.Pages) == 0 {
		return ""
	}
	texts := make([]string, len(d.Pages))
	for i, p := range d.Pages {
		texts[i] = p.Text
	}
	return strings.Join(texts, sep)
}

// FailedPages returns the pages that could not be decoded.
func (d *Document) FailedPages() []PageText {
	if d == nil {
		return nil
	}
	var failed []PageText
	for _, p := range d.Pages {
		if p.Failed() {
			failed = append(failed, p)
		}
	}
	return failed
}
