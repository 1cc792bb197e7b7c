// Package batch generates emission reports for many farms at once.
//
// Farms are read from a YAML file, fanned out over a bounded worker pool and
// returned in input order. A farm with invalid data produces a failed row
// instead of aborting the run.
package batch
