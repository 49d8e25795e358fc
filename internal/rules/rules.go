package rules

import "oplint/internal/analysis"

// All returns freshly constructed instances of every shipped rule.
// Descriptors are built here, once, and passed around explicitly; there
// is no process-wide registry to mutate.
func All() []analysis.Rule {
	return []analysis.Rule{
		NewCertValidation(),
		NewFinalizer(),
	}
}
