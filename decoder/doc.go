// Package decoder defines the boundary to the external PDF decoding engine
// and the page-by-page fold that turns decoder output into a model.Document.
//
// The engine itself is a black box: anything that can report a page count,
// document metadata, and positioned text fragments per page satisfies
// Decoder. The package ships one concrete implementation, JSONDecoder, which
// reads a serialized transcript of engine output and validates it against a
// JSON Schema before use.
package decoder
