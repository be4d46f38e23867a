// Package text defines the positioned text fragment type produced by the
// external page decoder. A fragment is one run of text with a baseline
// origin and a size; many fragments make up a page, in no particular order.
package text
