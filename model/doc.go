// Package model defines the document value types produced by decoding: page
// texts, document metadata, and the assembled document. All types are plain
// values owned by the extraction run that produced them.
package model
