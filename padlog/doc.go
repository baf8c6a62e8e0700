// Package padlog is a tiny structured-logging shim used by search to report
// non-fatal anomalies (a skipped mine placement, a root-tier fallback)
// without forcing callers onto a specific logging library.
package padlog
