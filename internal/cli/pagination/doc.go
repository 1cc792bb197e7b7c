// Package pagination provides the paging and sorting flags of the history
// commands.
//
// This package contains:
//   - PaginationParams: CLI flag parsing and validation
//   - PaginationMeta: page metadata for listed results
//   - ParseSort: "field" or "field:order" sort expressions mapped to store columns
package pagination
