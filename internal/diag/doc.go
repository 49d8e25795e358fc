// Package diag defines the diagnostic artifacts produced by the analysis
// engine: rule descriptors, diagnostics with source spans, the reporter
// contract and a bounded bag collecting results per compilation.
package diag
