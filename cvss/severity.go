package cvss

type Severity string

const (
	SeverityNone     Severity = "NONE"
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
	// SeverityUndefined is returned for scores outside [0, 10]. It cannot
	// occur for a score produced by Calculate but callers feeding scores
	// from elsewhere still get a total lookup.
	SeverityUndefined Severity = "UNDEFINED"
)

type severityBand struct {
	name   Severity
	bottom float64
	top    float64
}

var severityBands = []severityBand{
	{SeverityNone, 0.0, 0.0},
	{SeverityLow, 0.1, 3.9},
	{SeverityMedium, 4.0, 6.9},
	{SeverityHigh, 7.0, 8.9},
	{SeverityCritical, 9.0, 10.0},
}

// SeverityOf maps a base score onto its severity band. Ranges are inclusive
// on both ends, first match wins.
func SeverityOf(score float64) Severity {
	for _, band := range severityBands {
		if score >= band.bottom && score <= band.top {
			return band.name
		}
	}
	return SeverityUndefined
}
