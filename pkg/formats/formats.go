// Package formats locates LPMT transform blocks in container files and scans
// their records with the layout catalog.
package formats
