package tables

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// row holds the raw fields a rule pulled out of one line, before validation.
type row struct {
	description string
	quantity    float64
	price       float64
}

// extractFunc derives row fields from a regex match. Returning false marks
// the match as a non-match for the line, so later rules still get a chance.
type extractFunc func(m []string) (row, bool)

// rowRule pairs a line-shape pattern with the function that interprets its
// capture groups. Rules are evaluated in slice order with early exit.
type rowRule struct {
	pattern *regexp.Regexp
	extract extractFunc
}

// headerPatterns recognize table column headers: co-occurrence of an
// item-like keyword with price/quantity-like keywords. Checked in order;
// the first line matching any of them anchors the table start.
var headerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:description|item|product|service).*?(?:qty|quantity).*?(?:price|amount|rate|cost)`),
	regexp.MustCompile(`(?i)(?:item|product).*?(?:price|amount|cost)`),
	regexp.MustCompile(`(?i)(?:description|service).*?(?:amount|total|price)`),
	regexp.MustCompile(`(?i)(?:no|#).*?(?:description|item).*?(?:price|amount)`),
}

// footerPattern recognizes table terminators: totals, taxes, and closing
// boilerplate.
var footerPattern = regexp.MustCompile(`(?i)(?:total|subtotal|tax|vat|grand total|amount due|balance|thank you|terms)`)

// separatorLine matches ruled lines made of dashes, equals signs, or blanks.
var separatorLine = regexp.MustCompile(`^[-=\s]+$`)

// anchoredRowRules are the line shapes tried, in priority order, for each
// line inside the anchored table region.
var anchoredRowRules = []rowRule{
	// description, quantity, unit price, total
	{regexp.MustCompile(`^(.{3,}?)\s+([0-9]+(?:\.[0-9]+)?)\s+([0-9,]+\.?[0-9]*)\s+([0-9,]+\.?[0-9]*)\s*$`), extractFourField},
	// description, quantity, price
	{regexp.MustCompile(`^(.{3,}?)\s+([0-9]+(?:\.[0-9]+)?)\s+([0-9,]+\.?[0-9]*)\s*$`), extractThreeField},
	// description, decimal quantity, price
	{regexp.MustCompile(`^(.{3,}?)\s+([0-9]*\.?[0-9]+)\s+([0-9,]+\.?[0-9]*)\s*$`), extractThreeField},
	// index-prefixed description, quantity, price
	{regexp.MustCompile(`^([0-9]+\.?\s+.{3,}?)\s+([0-9]+(?:\.[0-9]+)?)\s+([0-9,]+\.?[0-9]*)\s*$`), extractThreeField},
	// description, unit-suffixed quantity, price
	{regexp.MustCompile(`(?i)^(.{3,}?)\s+([0-9]+(?:\.[0-9]+)?)\s*(?:each|pcs?|units?|items?|kg|lbs?|hrs?|hours?|days?|boxes?|sets?)?\s+([0-9,]+\.?[0-9]*)\s*$`), extractThreeField},
	// description and two-decimal price, no quantity
	{regexp.MustCompile(`^(.{5,}?)\s+([0-9,]+\.[0-9]{2})\s*$`), extractTwoField},
	// dash- or colon-separated description and price
	{regexp.MustCompile(`^(.{3,}?)\s*[-:]\s*([0-9,]+\.?[0-9]*)\s*$`), extractTwoField},
	// wide-space-separated description and price
	{regexp.MustCompile(`^(.{3,}?)\s{3,}([0-9,]+\.?[0-9]*)\s*$`), extractTwoField},
	// tab-separated description, quantity, price
	{regexp.MustCompile(`^(.{3,}?)\t+([0-9]+(?:\.[0-9]+)?)\t+([0-9,]+\.?[0-9]*)\t*.*$`), extractThreeField},
	// pipe-separated description, quantity, price
	{regexp.MustCompile(`^(.{3,}?)\|([0-9]+(?:\.[0-9]+)?)\|([0-9,]+\.?[0-9]*)\|?.*$`), extractThreeField},
}

// fallbackRowRules are the looser shapes scanned against the whole document
// text when the anchored pass yields nothing. The first rule in the list
// that produces any item wins; later rules are not tried.
var fallbackRowRules = []rowRule{
	// quantity and two-decimal price
	{regexp.MustCompile(`(?m)^(.+?)\s+([0-9]+(?:\.[0-9]+)?)\s+([0-9,]+\.[0-9]{2})\s*$`), extractThreeField},
	// two-decimal price only
	{regexp.MustCompile(`(?m)^(.+?)\s+([0-9,]+\.[0-9]{2})\s*$`), extractTwoField},
	// dash-separated, optional quantity
	{regexp.MustCompile(`(.+?)\s*[-\x{2013}\x{2014}]\s*([0-9]+(?:\.[0-9]+)?)?\s*\$?([0-9,]+\.?[0-9]*)`), extractOptionalQuantity},
	// colon-separated, optional quantity
	{regexp.MustCompile(`(.+?)\s*:\s*([0-9]+(?:\.[0-9]+)?)?\s*\$?([0-9,]+\.?[0-9]*)`), extractOptionalQuantity},
	// tab-separated
	{regexp.MustCompile(`(?m)^(.+?)\t+([0-9]+(?:\.[0-9]+)?)\t+([0-9,]+\.?[0-9]*)`), extractThreeField},
}

// quantityIndicatorRules recognize quantity mentions embedded in an item
// description ("5 x", "qty: 3", "2.5 kg"). The capture group is the value.
var quantityIndicatorRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)([0-9]+(?:\.[0-9]+)?)\s*(?:x|times|each|pcs?|pieces?|units?|items?)`),
	regexp.MustCompile(`(?i)(?:qty|quantity|count)[\s:]*([0-9]+(?:\.[0-9]+)?)`),
	regexp.MustCompile(`(?i)([0-9]+(?:\.[0-9]+)?)\s*(?:kg|lbs?|pounds?|oz|ounces?|g|grams?)`),
	regexp.MustCompile(`(?i)([0-9]+(?:\.[0-9]+)?)\s*(?:hrs?|hours?|days?|weeks?|months?)`),
	regexp.MustCompile(`(?i)([0-9]+(?:\.[0-9]+)?)\s*(?:sets?|boxes?|packs?|bottles?|cans?)`),
}

// anchoredStoplist rejects rows whose cleaned description is a summary or
// footer word rather than an item.
var anchoredStoplist = regexp.MustCompile(`(?i)^(?:total|subtotal|tax|vat|discount|shipping|fee|charge|amount|due|balance|paid)$`)

// fallbackStoplist is the wider stoplist for the whole-text scan, which also
// sees label lines like "Invoice" and "Date".
var fallbackStoplist = regexp.MustCompile(`(?i)^(?:total|subtotal|tax|vat|discount|shipping|fee|amount|due|balance|paid|invoice|date)$`)

var (
	leadingIndexRe     = regexp.MustCompile(`^[0-9]+\.?\s*`)
	invalidDescCharsRe = regexp.MustCompile(`[^\w\s.,/-]`)
)

// extractFourField interprets a description/quantity/unit-price/total match.
// The unit price is preferred; when it is absent or non-positive the unit
// price is derived from the row total.
func extractFourField(m []string) (row, bool) {
	qty := parseQuantity(m[2])
	unit, unitOK := parseAmount(m[3])
	total, totalOK := parseAmount(m[4])

	switch {
	case unitOK && unit > 0:
		return row{description: m[1], quantity: qty, price: unit}, true
	case totalOK && total > 0:
		return row{description: m[1], quantity: qty, price: total / qty}, true
	}
	return row{}, false
}

// extractThreeField interprets a description/quantity/price match.
func extractThreeField(m []string) (row, bool) {
	price, ok := parseAmount(m[3])
	if !ok {
		return row{}, false
	}
	return row{description: m[1], quantity: parseQuantity(m[2]), price: price}, true
}

// extractTwoField interprets a description/price match; quantity defaults to 1.
func extractTwoField(m []string) (row, bool) {
	price, ok := parseAmount(m[2])
	if !ok {
		return row{}, false
	}
	return row{description: m[1], quantity: 1, price: price}, true
}

// extractOptionalQuantity interprets a description/price match whose quantity
// group may be empty.
func extractOptionalQuantity(m []string) (row, bool) {
	price, ok := parseAmount(m[3])
	if !ok {
		return row{}, false
	}
	qty := 1.0
	if m[2] != "" {
		qty = parseQuantity(m[2])
	}
	return row{description: m[1], quantity: qty, price: price}, true
}

// parseAmount parses a price token, stripping thousands separators. ok is
// false for unparseable or non-finite values.
func parseAmount(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parseQuantity parses a quantity token, defaulting to 1 when the token is
// unparseable or zero.
func parseQuantity(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || v == 0 {
		return 1
	}
	return v
}
