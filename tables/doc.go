// Package tables recovers an invoice item table from reconstructed document
// text. Detection is anchored: the first line matching a column-header
// pattern starts the table, the first subsequent totals/terms line ends it.
// Rows are parsed by an ordered rule table of line-shape patterns where the
// first matching, validating rule wins; a looser whole-text fallback scan
// runs only when anchored parsing finds nothing.
package tables
