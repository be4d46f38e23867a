// Package batch processes a set of document transcripts sequentially,
// isolating per-document failures. One document is decoded and extracted at
// a time; a document that fails is recorded in its result and never stops
// the rest of the batch.
package batch
