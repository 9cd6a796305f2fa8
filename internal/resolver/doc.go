// Package resolver is the query surface of mslayout.
//
// A Resolver is built once from the BSV text of an elaborated design and a
// top-level constructor name, and then answers three questions:
//
//	Translate("head[19]")  -> "head.req.data[0]"
//	Width("Maybe#(Word)")  -> 17
//	IsBVI("mkExt")         -> true
//
// Everything is computed eagerly in New/Build; afterwards the Resolver is
// immutable and safe for concurrent use. Anything that cannot be resolved
// degrades to the original wire name or a width of -1.
package resolver
