// Package layout reconstructs logical text lines from the unordered bag of
// positioned fragments the decoder reports for a page. It is purely
// geometric: fragments are ordered top-to-bottom and left-to-right, vertical
// gaps become line or paragraph breaks, and horizontal gaps become spaces.
package layout
