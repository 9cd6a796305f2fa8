// Package driver wires the resolver pipeline to files and caches: it loads
// generated BSV, keys it by canonical text, consults the in-memory and disk
// caches, and falls back to a full build. Batch helpers fan translation and
// resolution out over an errgroup.
package driver
