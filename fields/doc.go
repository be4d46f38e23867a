// Package fields extracts scalar invoice fields (invoice number, primary
// item, price) from reconstructed document text. Each field carries its own
// prioritized rule list; the first pattern whose captured value passes that
// field's validation wins and later patterns are not tried. Extracted values
// are tagged with their provenance so user-edited values are never
// overwritten by re-extraction.
package fields
