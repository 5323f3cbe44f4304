package cvss

import (
	"fmt"
	"testing"

	gocvss30 "github.com/pandatix/go-cvss/30"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullVector() Vector {
	return Vector{
		AttackVector:          AttackVectorNetwork,
		AttackComplexity:      AttackComplexityLow,
		PrivilegesRequired:    PrivilegesRequiredNone,
		UserInteraction:       UserInteractionNone,
		Scope:                 ScopeUnchanged,
		ConfidentialityImpact: ImpactHigh,
		IntegrityImpact:       ImpactHigh,
		AvailabilityImpact:    ImpactHigh,
	}
}

func TestCalculate(t *testing.T) {
	t.Run("should score the canonical critical vector with 9.8", func(t *testing.T) {
		result, ok := Calculate(fullVector())

		require.True(t, ok)
		assert.InDelta(t, 9.8, result.BaseScore, 0.0001)
		assert.Equal(t, SeverityCritical, result.BaseSeverity)
		assert.Equal(t, "CVSS:3.0/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H", result.VectorString)
	})

	t.Run("should cap the score at 10 for changed scope", func(t *testing.T) {
		v := fullVector()
		v.Scope = ScopeChanged

		result, ok := Calculate(v)

		require.True(t, ok)
		assert.InDelta(t, 10.0, result.BaseScore, 0.0001)
		assert.Equal(t, SeverityCritical, result.BaseSeverity)
	})

	t.Run("should score zero when no impact is selected", func(t *testing.T) {
		v := fullVector()
		v.ConfidentialityImpact = ImpactNone
		v.IntegrityImpact = ImpactNone
		v.AvailabilityImpact = ImpactNone

		result, ok := Calculate(v)

		require.True(t, ok)
		assert.Equal(t, 0.0, result.BaseScore)
		assert.Equal(t, SeverityNone, result.BaseSeverity)
	})

	t.Run("should be undefined when a metric is missing", func(t *testing.T) {
		v := fullVector()
		v.AttackVector = ""

		result, ok := Calculate(v)

		assert.False(t, ok)
		assert.Equal(t, SeverityUndefined, result.BaseSeverity)
		assert.Equal(t, 0.0, result.BaseScore)
	})

	t.Run("should treat an unrecognized metric value like a missing one", func(t *testing.T) {
		v := fullVector()
		v.PrivilegesRequired = "WIFI"

		_, ok := Calculate(v)

		assert.False(t, ok)
	})

	t.Run("should be deterministic", func(t *testing.T) {
		v := fullVector()
		v.Scope = ScopeChanged
		v.PrivilegesRequired = PrivilegesRequiredLow

		first, ok := Calculate(v)
		require.True(t, ok)

		for range 100 {
			again, ok := Calculate(v)
			require.True(t, ok)
			assert.Equal(t, first, again)
		}
	})
}

// every defined vector must agree with the reference implementation the rest
// of the codebase uses for parsing foreign vectors.
func TestCalculateMatchesReferenceImplementation(t *testing.T) {
	attackVectors := []AttackVector{AttackVectorNetwork, AttackVectorAdjacentNetwork, AttackVectorLocal, AttackVectorPhysical}
	scopes := []Scope{ScopeUnchanged, ScopeChanged}
	privileges := []PrivilegesRequired{PrivilegesRequiredNone, PrivilegesRequiredLow, PrivilegesRequiredHigh}
	impacts := []Impact{ImpactNone, ImpactLow, ImpactHigh}

	for _, av := range attackVectors {
		for _, s := range scopes {
			for _, pr := range privileges {
				for _, c := range impacts {
					v := Vector{
						AttackVector:          av,
						AttackComplexity:      AttackComplexityLow,
						PrivilegesRequired:    pr,
						UserInteraction:       UserInteractionRequired,
						Scope:                 s,
						ConfidentialityImpact: c,
						IntegrityImpact:       ImpactLow,
						AvailabilityImpact:    ImpactHigh,
					}

					t.Run(v.String(), func(t *testing.T) {
						result, ok := Calculate(v)
						require.True(t, ok)

						reference, err := gocvss30.ParseVector(result.VectorString)
						require.NoError(t, err)

						assert.InDelta(t, reference.BaseScore(), result.BaseScore, 0.0001)
					})
				}
			}
		}
	}
}

func TestSeverityOf(t *testing.T) {
	t.Run("should map every producible score onto exactly one band", func(t *testing.T) {
		for i := 0; i <= 100; i++ {
			score := float64(i) / 10
			severity := SeverityOf(score)
			assert.NotEqual(t, SeverityUndefined, severity, fmt.Sprintf("score %.1f has no band", score))
		}
	})

	t.Run("should map band boundaries inclusively", func(t *testing.T) {
		assert.Equal(t, SeverityNone, SeverityOf(0.0))
		assert.Equal(t, SeverityLow, SeverityOf(0.1))
		assert.Equal(t, SeverityLow, SeverityOf(3.9))
		assert.Equal(t, SeverityMedium, SeverityOf(4.0))
		assert.Equal(t, SeverityMedium, SeverityOf(6.9))
		assert.Equal(t, SeverityHigh, SeverityOf(7.0))
		assert.Equal(t, SeverityHigh, SeverityOf(8.9))
		assert.Equal(t, SeverityCritical, SeverityOf(9.0))
		assert.Equal(t, SeverityCritical, SeverityOf(10.0))
	})

	t.Run("should fall back to undefined outside the scale", func(t *testing.T) {
		assert.Equal(t, SeverityUndefined, SeverityOf(-0.1))
		assert.Equal(t, SeverityUndefined, SeverityOf(10.1))
	})
}
