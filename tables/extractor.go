package tables

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Config holds extraction limits.
type Config struct {
	// MaxDescriptionLength truncates item descriptions (default: 150)
	MaxDescriptionLength int

	// MaxQuantity is the largest plausible quantity; values above it are
	// treated as a misread price and reset to 1 (default: 1000)
	MaxQuantity float64

	// FallbackItemLimit caps how many items the whole-text fallback scan
	// may collect (default: 10)
	FallbackItemLimit int
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxDescriptionLength: 150,
		MaxQuantity:          1000,
		FallbackItemLimit:    10,
	}
}

// Minimum description lengths (exclusive) for the two passes.
const (
	anchoredMinDescription = 2
	fallbackMinDescription = 3
)

// Extractor recovers line items from reconstructed document text.
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

// Extract scans the full document text for an item table. It returns the
// recovered items in document order, possibly empty. Extraction is pure:
// the same text always yields the same items.
func (e *Extractor) Extract(documentText string) []LineItem {
	lines := filterLines(documentText)

	var items []LineItem
	if start, end := findTableBounds(lines); start >= 0 {
		items = e.parseRows(lines[start:end])
	}

	if len(items) == 0 {
		items = e.fallbackScan(documentText)
	}

	e.refineQuantities(items)
	items = dedupe(items)
	renumber(items)
	return items
}

// filterLines splits the text into trimmed, non-empty lines.
func filterLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// findTableBounds locates the item table inside the line list. start is the
// index of the first line after the header, or -1 when no header pattern
// matches. end is the index of the first footer line after the header,
// exclusive, or len(lines) when no footer is found.
func findTableBounds(lines []string) (start, end int) {
	start = -1
	for i, line := range lines {
		for _, pattern := range headerPatterns {
			if pattern.MatchString(line) {
				start = i + 1
				break
			}
		}
		if start >= 0 {
			break
		}
	}

	if start < 0 {
		return -1, -1
	}

	for i := start; i < len(lines); i++ {
		if footerPattern.MatchString(lines[i]) {
			return start, i
		}
	}
	return start, len(lines)
}

// parseRows runs the anchored rule table over each candidate line. The first
// rule whose match survives validation wins the line; a match that fails
// validation is treated as a non-match and later rules still apply.
func (e *Extractor) parseRows(lines []string) []LineItem {
	var items []LineItem
	for _, line := range lines {
		if separatorLine.MatchString(line) {
			continue
		}
		for _, rule := range anchoredRowRules {
			m := rule.pattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			r, ok := rule.extract(m)
			if !ok {
				continue
			}
			item, ok := e.validateRow(r, anchoredMinDescription, anchoredStoplist)
			if !ok {
				continue
			}
			item.ID = len(items) + 1
			items = append(items, item)
			break
		}
	}
	return items
}

// fallbackScan re-scans the entire text with the looser rule list. Scanning
// stops at the first rule that yields any item, and collection is capped at
// the configured limit.
func (e *Extractor) fallbackScan(text string) []LineItem {
	var items []LineItem
	for _, rule := range fallbackRowRules {
		for _, m := range rule.pattern.FindAllStringSubmatch(text, -1) {
			if len(items) >= e.config.FallbackItemLimit {
				break
			}
			r, ok := rule.extract(m)
			if !ok {
				continue
			}
			item, ok := e.validateRow(r, fallbackMinDescription, fallbackStoplist)
			if !ok {
				continue
			}
			item.ID = len(items) + 1
			items = append(items, item)
		}
		if len(items) > 0 {
			break
		}
	}
	return items
}

// validateRow checks a rule's raw fields and produces a sanitized item.
// minDescription is exclusive and applies to the description before
// cleaning; the cleaned description must still be longer than 2 characters.
func (e *Extractor) validateRow(r row, minDescription int, stoplist *regexp.Regexp) (LineItem, bool) {
	desc := strings.TrimSpace(r.description)
	if len(desc) <= minDescription {
		return LineItem{}, false
	}
	if r.quantity <= 0 {
		return LineItem{}, false
	}
	if r.price <= 0 || math.IsNaN(r.price) || math.IsInf(r.price, 0) {
		return LineItem{}, false
	}

	desc = leadingIndexRe.ReplaceAllString(desc, "")
	desc = invalidDescCharsRe.ReplaceAllString(desc, "")
	desc = strings.TrimSpace(desc)
	if len(desc) <= anchoredMinDescription {
		return LineItem{}, false
	}
	if stoplist.MatchString(desc) {
		return LineItem{}, false
	}
	if len(desc) > e.config.MaxDescriptionLength {
		desc = desc[:e.config.MaxDescriptionLength]
	}

	qty := r.quantity
	if qty > e.config.MaxQuantity {
		qty = 1
	}

	return LineItem{
		Description: desc,
		Quantity:    round2(qty),
		Price:       formatPrice(r.price),
	}, true
}

// refineQuantities scans each item's description for an embedded quantity
// indicator; the first in-range value overwrites the parsed quantity and the
// matched text is stripped from the description. This deliberately runs over
// every item and can replace a correctly-parsed quantity when a unit-like
// number appears inside a product name.
func (e *Extractor) refineQuantities(items []LineItem) {
	for i := range items {
		desc := items[i].Description
		for _, re := range quantityIndicatorRules {
			loc := re.FindStringSubmatchIndex(desc)
			if loc == nil {
				continue
			}
			val, err := strconv.ParseFloat(desc[loc[2]:loc[3]], 64)
			if err != nil || val <= 0 || val > e.config.MaxQuantity {
				continue
			}
			items[i].Quantity = round2(val)
			items[i].Description = strings.TrimSpace(desc[:loc[0]] + desc[loc[1]:])
			break
		}
	}
}

// dedupe keeps only the first occurrence of each case-insensitive
// description, preserving order.
func dedupe(items []LineItem) []LineItem {
	seen := make(map[string]bool, len(items))
	result := items[:0]
	for _, item := range items {
		key := strings.ToLower(item.Description)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, item)
	}
	return result
}

// renumber reassigns sequential 1-based IDs after deduplication.
func renumber(items []LineItem) {
	for i := range items {
		items[i].ID = i + 1
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
