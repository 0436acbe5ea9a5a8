// Package types defines the data contracts of the layout core: geometry,
// object kinds and their entity structs, property identifiers and values,
// object references and selections, the layer catalog, the block graph
// consulted by schematic symbols, configuration, and the standard errors.
//
// Nothing in this package mutates a document on its own; the document,
// properties and transform packages operate on these types.
package types
