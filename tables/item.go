package tables

// LineItem is one recovered row of the invoice table. ID is 1-based and
// sequential within one extraction run. Quantity is rounded to two decimals
// and always positive; Price is a positive amount formatted to two decimals.
// Descriptions are unique case-insensitively within a result set.
type LineItem struct {
	ID          int
	Description string
	Quantity    float64
	Price       string
}
