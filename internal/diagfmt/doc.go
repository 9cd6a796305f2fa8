// Package diagfmt renders diagnostics, token streams and resolved layouts
// for the command line, as colored text or as JSON.
package diagfmt
