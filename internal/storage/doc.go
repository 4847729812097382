// Package storage implements the csvdb storage hierarchy: a process-wide
// Catalog of databases keyed by (owner, name), each Database owning its
// Tables, each Table backed by one delimited row file.
//
// Nothing here is safe for concurrent use, and nothing protects the files
// from a second process writing the same root.
package storage
