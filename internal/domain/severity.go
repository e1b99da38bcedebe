// Package domain — battery severity bands.
// A remaining-runtime estimate in minutes maps onto one of four fixed bands.
// Lower ordinal means more severe.
package domain

// Severity is a discrete alarm level derived from estimated remaining minutes.
type Severity int

const (
	SeverityCritical Severity = iota // Hibernate now
	SeverityLowest                   // Offer suspend or hibernate
	SeverityLow                      // Warn the user
	SeverityNormal                   // Catch-all, no action
)

// band pairs an inclusive upper bound in minutes with its severity.
type band struct {
	threshold float64
	severity  Severity
}

// bands is sorted by increasing threshold.
var bands = []band{
	{1.30, SeverityCritical},
	{5, SeverityLowest},
	{20, SeverityLow},
	{60 * 12, SeverityNormal},
}

// Classify returns the band with the smallest threshold >= minutes.
// Values above every threshold resolve to SeverityNormal.
func Classify(minutes float64) Severity {
	for _, b := range bands {
		if minutes <= b.threshold {
			return b.severity
		}
	}
	return SeverityNormal
}

// Threshold returns the inclusive upper bound of the band in minutes.
func (s Severity) Threshold() float64 {
	for _, b := range bands {
		if b.severity == s {
			return b.threshold
		}
	}
	return bands[len(bands)-1].threshold
}

// SeverityFromThreshold is the exact reverse of Threshold.
func SeverityFromThreshold(threshold float64) (Severity, bool) {
	for _, b := range bands {
		if b.threshold == threshold {
			return b.severity, true
		}
	}
	return SeverityNormal, false
}

// MoreSevereThan reports whether s is strictly worse than other.
func (s Severity) MoreSevereThan(other Severity) bool {
	return s < other
}

// String returns human-readable severity.
func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityLowest:
		return "lowest"
	case SeverityLow:
		return "low"
	case SeverityNormal:
		return "normal"
	default:
		return "unknown"
	}
}

// Severities lists every band from most to least severe.
func Severities() []Severity {
	out := make([]Severity, len(bands))
	for i, b := range bands {
		out[i] = b.severity
	}
	return out
}
