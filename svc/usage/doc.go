// Package usage tracks per-user monthly activity counters and enforces
// tier-derived limits. Months are UTC buckets keyed "YYYY-MM"; counters
// reset implicitly because a new month has no row yet.
package usage
