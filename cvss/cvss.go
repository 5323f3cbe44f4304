package cvss

import "math"

// Version is the CVSS specification revision the calculator implements.
const Version = "3.0"

type AttackVector string

const (
	AttackVectorNetwork         AttackVector = "NETWORK"
	AttackVectorAdjacentNetwork AttackVector = "ADJACENT_NETWORK"
	AttackVectorLocal           AttackVector = "LOCAL"
	AttackVectorPhysical        AttackVector = "PHYSICAL"
)

type AttackComplexity string

const (
	AttackComplexityLow  AttackComplexity = "LOW"
	AttackComplexityHigh AttackComplexity = "HIGH"
)

type PrivilegesRequired string

const (
	PrivilegesRequiredNone PrivilegesRequired = "NONE"
	PrivilegesRequiredLow  PrivilegesRequired = "LOW"
	PrivilegesRequiredHigh PrivilegesRequired = "HIGH"
)

type UserInteraction string

const (
	UserInteractionNone     UserInteraction = "NONE"
	UserInteractionRequired UserInteraction = "REQUIRED"
)

type Scope string

const (
	ScopeUnchanged Scope = "UNCHANGED"
	ScopeChanged   Scope = "CHANGED"
)

type Impact string

const (
	ImpactNone Impact = "NONE"
	ImpactLow  Impact = "LOW"
	ImpactHigh Impact = "HIGH"
)

// Vector holds the eight categorical base metrics of a CVSS v3 vector.
// The zero value of every field is "metric not selected".
type Vector struct {
	AttackVector          AttackVector       `json:"attackVector"`
	AttackComplexity      AttackComplexity   `json:"attackComplexity"`
	PrivilegesRequired    PrivilegesRequired `json:"privilegesRequired"`
	UserInteraction       UserInteraction    `json:"userInteraction"`
	Scope                 Scope              `json:"scope"`
	ConfidentialityImpact Impact             `json:"confidentialityImpact"`
	IntegrityImpact       Impact             `json:"integrityImpact"`
	AvailabilityImpact    Impact             `json:"availabilityImpact"`
}

// Result is derived from a fully populated Vector. It is never settable on
// its own: callers recompute it on every change of the metric selection.
type Result struct {
	BaseScore    float64  `json:"baseScore"`
	BaseSeverity Severity `json:"baseSeverity"`
	VectorString string   `json:"vectorString"`
}

const (
	exploitabilityCoefficient = 8.22
	scopeCoefficient          = 1.08
)

var attackVectorWeights = map[AttackVector]float64{
	AttackVectorNetwork:         0.85,
	AttackVectorAdjacentNetwork: 0.62,
	AttackVectorLocal:           0.55,
	AttackVectorPhysical:        0.2,
}

var attackComplexityWeights = map[AttackComplexity]float64{
	AttackComplexityHigh: 0.44,
	AttackComplexityLow:  0.77,
}

// privilegesRequired weighs differently depending on whether the scope
// changes.
var privilegesRequiredWeights = map[Scope]map[PrivilegesRequired]float64{
	ScopeUnchanged: {
		PrivilegesRequiredNone: 0.85,
		PrivilegesRequiredLow:  0.62,
		PrivilegesRequiredHigh: 0.27,
	},
	ScopeChanged: {
		PrivilegesRequiredNone: 0.85,
		PrivilegesRequiredLow:  0.68,
		PrivilegesRequiredHigh: 0.5,
	},
}

var userInteractionWeights = map[UserInteraction]float64{
	UserInteractionNone:     0.85,
	UserInteractionRequired: 0.62,
}

var scopeWeights = map[Scope]float64{
	ScopeUnchanged: 6.42,
	ScopeChanged:   7.52,
}

// C, I and A share the same weights.
var impactWeights = map[Impact]float64{
	ImpactNone: 0,
	ImpactLow:  0.22,
	ImpactHigh: 0.56,
}

type metricWeights struct {
	attackVector          float64
	attackComplexity      float64
	privilegesRequired    float64
	userInteraction       float64
	scope                 float64
	confidentialityImpact float64
	integrityImpact       float64
	availabilityImpact    float64
}

// lookupWeights resolves every metric of v against the weight tables. It
// reports false as soon as a metric is unset or carries a value outside the
// enumeration - a partial vector never produces a partial score.
func lookupWeights(v Vector) (metricWeights, bool) {
	var w metricWeights
	var ok bool

	if w.attackVector, ok = attackVectorWeights[v.AttackVector]; !ok {
		return w, false
	}
	if w.attackComplexity, ok = attackComplexityWeights[v.AttackComplexity]; !ok {
		return w, false
	}
	if w.scope, ok = scopeWeights[v.Scope]; !ok {
		return w, false
	}
	if w.privilegesRequired, ok = privilegesRequiredWeights[v.Scope][v.PrivilegesRequired]; !ok {
		return w, false
	}
	if w.userInteraction, ok = userInteractionWeights[v.UserInteraction]; !ok {
		return w, false
	}
	if w.confidentialityImpact, ok = impactWeights[v.ConfidentialityImpact]; !ok {
		return w, false
	}
	if w.integrityImpact, ok = impactWeights[v.IntegrityImpact]; !ok {
		return w, false
	}
	if w.availabilityImpact, ok = impactWeights[v.AvailabilityImpact]; !ok {
		return w, false
	}
	return w, true
}

// Calculate computes the CVSS v3.0 base score, severity band and canonical
// vector string for v. The second return value is false when any metric is
// missing or unrecognized; in that case the Result must not be persisted.
func Calculate(v Vector) (Result, bool) {
	w, ok := lookupWeights(v)
	if !ok {
		return Result{BaseSeverity: SeverityUndefined}, false
	}

	exploitability := exploitabilityCoefficient * w.attackVector * w.attackComplexity * w.privilegesRequired * w.userInteraction

	impactMultiplier := 1 - (1-w.confidentialityImpact)*(1-w.integrityImpact)*(1-w.availabilityImpact)

	var impactScore float64
	if v.Scope == ScopeUnchanged {
		impactScore = w.scope * impactMultiplier
	} else {
		impactScore = w.scope*(impactMultiplier-0.029) - 3.25*math.Pow(impactMultiplier-0.02, 15)
	}

	var baseScore float64
	if impactScore <= 0 {
		baseScore = 0
	} else if v.Scope == ScopeUnchanged {
		baseScore = math.Min(exploitability+impactScore, 10)
	} else {
		baseScore = math.Min((exploitability+impactScore)*scopeCoefficient, 10)
	}

	// CVSS rounds up to one decimal, not half-up
	baseScore = math.Ceil(baseScore*10) / 10

	return Result{
		BaseScore:    baseScore,
		BaseSeverity: SeverityOf(baseScore),
		VectorString: v.String(),
	}, true
}

// metric abbreviations in canonical vector order
var vectorOrder = []struct {
	abbrev string
	value  func(Vector) string
}{
	{"AV", func(v Vector) string { return string(v.AttackVector) }},
	{"AC", func(v Vector) string { return string(v.AttackComplexity) }},
	{"PR", func(v Vector) string { return string(v.PrivilegesRequired) }},
	{"UI", func(v Vector) string { return string(v.UserInteraction) }},
	{"S", func(v Vector) string { return string(v.Scope) }},
	{"C", func(v Vector) string { return string(v.ConfidentialityImpact) }},
	{"I", func(v Vector) string { return string(v.IntegrityImpact) }},
	{"A", func(v Vector) string { return string(v.AvailabilityImpact) }},
}

// String encodes v as the canonical vector string, e.g.
// CVSS:3.0/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H. Each metric contributes the
// first letter of its selected value.
func (v Vector) String() string {
	s := "CVSS:" + Version
	for _, m := range vectorOrder {
		value := m.value(v)
		if value == "" {
			continue
		}
		s += "/" + m.abbrev + ":" + value[:1]
	}
	return s
}
