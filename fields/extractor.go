package fields

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Config holds field extraction limits.
type Config struct {
	// MaxItemLength truncates the extracted item description (default: 100)
	MaxItemLength int
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{MaxItemLength: 100}
}

// Minimum captured lengths (exclusive) per field.
const (
	invoiceNumberMinLength = 2
	itemMinLength          = 3
)

// invoiceNumberRules recognize a labeled invoice reference. A token carrying
// at least one digit is preferred over a bare alphanumeric token; a hash
// reference is the last resort.
var invoiceNumberRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:invoice|inv|reference|ref)\s*(?:number|num|no)?[\s.:#-]*([A-Za-z0-9/-]*[0-9][A-Za-z0-9/-]*)`),
	regexp.MustCompile(`(?i)\b(?:invoice|inv)\s*(?:number|num|no)?[\s.:#-]*([A-Za-z0-9/-]+)`),
	regexp.MustCompile(`#\s*([A-Za-z0-9/-]+)`),
}

// itemRules recognize a labeled description running to the end of its line.
var itemRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:description|item|product|goods|services?)\s*[:#-]\s*([^\n]+)`),
	regexp.MustCompile(`(?i)\b(?:for|regarding)\s*:\s*([^\n]+)`),
}

// priceRules recognize a labeled amount, a bare currency-prefixed number, or
// a two-decimal number followed by a currency code.
var priceRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:grand\s+total|total|amount|price|cost|sum|payment|pay)\b(?:\s+due)?[\s.:#-]*[$€£₹¥]?\s*([0-9,]+(?:\.[0-9]+)?)`),
	regexp.MustCompile(`[$€£₹¥]\s*([0-9,]+(?:\.[0-9]+)?)`),
	regexp.MustCompile(`(?i)\b([0-9,]+\.[0-9]{2})\s*(?:usd|eur|gbp|inr|jpy|cad|aud)\b`),
}

var itemInvalidCharsRe = regexp.MustCompile(`[^\w\s.,-]`)

// Extractor recovers scalar invoice fields from reconstructed document text.
type Extractor struct {
	config Config
}

// NewExtractor creates an extractor with default configuration.
func NewExtractor() *Extractor {
	return &Extractor{config: DefaultConfig()}
}

// NewExtractorWithConfig creates an extractor with custom configuration.
func NewExtractorWithConfig(config Config) *Extractor {
	return &Extractor{config: config}
}

// Extract scans the full document text and returns a fresh field set. Fields
// with no matching pattern are left empty. Extraction is read-only and
// idempotent: the same text always yields the same set.
func (e *Extractor) Extract(documentText string) FieldSet {
	var set FieldSet
	e.Refresh(&set, documentText)
	return set
}

// Refresh re-extracts into an existing set. User-edited fields keep their
// values; only auto-filled or empty fields are updated.
func (e *Extractor) Refresh(set *FieldSet, documentText string) {
	if v, ok := firstCapture(invoiceNumberRules, documentText, e.acceptInvoiceNumber); ok {
		set.InvoiceNumber.AutoFill(v)
	}
	if v, ok := firstCapture(itemRules, documentText, e.acceptItem); ok {
		set.Item.AutoFill(v)
	}
	if v, ok := firstCapture(priceRules, documentText, e.acceptPrice); ok {
		set.Price.AutoFill(v)
	}
}

// firstCapture runs the rule list in priority order and returns the first
// captured value the field's accept function admits. A capture that fails
// acceptance is a non-match and later rules still apply.
func firstCapture(rules []*regexp.Regexp, text string, accept func(string) (string, bool)) (string, bool) {
	for _, re := range rules {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v, ok := accept(m[1]); ok {
			return v, true
		}
	}
	return "", false
}

func (e *Extractor) acceptInvoiceNumber(capture string) (string, bool) {
	v := strings.TrimSpace(capture)
	if len(v) <= invoiceNumberMinLength {
		return "", false
	}
	return strings.ToUpper(v), true
}

func (e *Extractor) acceptItem(capture string) (string, bool) {
	v := strings.TrimSpace(capture)
	if len(v) <= itemMinLength {
		return "", false
	}
	v = strings.TrimSpace(itemInvalidCharsRe.ReplaceAllString(v, ""))
	if len(v) <= itemMinLength {
		return "", false
	}
	if len(v) > e.config.MaxItemLength {
		v = v[:e.config.MaxItemLength]
	}
	return v, true
}

func (e *Extractor) acceptPrice(capture string) (string, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(capture, ",", ""), 64)
	if err != nil || v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return "", false
	}
	return strconv.FormatFloat(v, 'f', 2, 64), true
}
