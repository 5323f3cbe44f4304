package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Run("should read a v5 document", func(t *testing.T) {
		record := Normalize(map[string]any{
			"cveMetadata": map[string]any{"cveId": "CVE-2026-12345"},
			"CNA_private": map[string]any{"state": "REVIEW", "owner": "whimsy"},
		})

		assert.Equal(t, Record{ID: "CVE-2026-12345", Shape: ShapeV5, State: StateReview, Owner: "whimsy"}, record)
	})

	t.Run("should read a legacy document", func(t *testing.T) {
		record := Normalize(map[string]any{
			"CVE_data_meta": map[string]any{"ID": "CVE-2019-0221", "STATE": "PUBLIC"},
			"CNA_private":   map[string]any{"owner": "tomcat"},
		})

		assert.Equal(t, Record{ID: "CVE-2019-0221", Shape: ShapeLegacy, State: StatePublic, Owner: "tomcat"}, record)
	})

	t.Run("should sanitize a state outside the lifecycle", func(t *testing.T) {
		record := Normalize(map[string]any{
			"cveMetadata": map[string]any{"cveId": "CVE-2026-12345"},
			"CNA_private": map[string]any{"state": "SHIPPED", "owner": "whimsy"},
		})

		assert.Equal(t, StateUnknown, record.State)
	})

	t.Run("should leave the owner empty when the ACL anchor is missing", func(t *testing.T) {
		record := Normalize(map[string]any{
			"cveMetadata": map[string]any{"cveId": "CVE-2026-12345"},
		})

		assert.Empty(t, record.Owner)
	})
}

func TestSetState(t *testing.T) {
	t.Run("should write into the v5 field path", func(t *testing.T) {
		body := map[string]any{
			"cveMetadata": map[string]any{"cveId": "CVE-2026-12345"},
			"CNA_private": map[string]any{"state": "RESERVED", "owner": "whimsy"},
		}

		SetState(body, ShapeV5, StateDraft)

		assert.Equal(t, StateDraft, Normalize(body).State)
		assert.Equal(t, "whimsy", Normalize(body).Owner)
	})

	t.Run("should write into the legacy field path", func(t *testing.T) {
		body := map[string]any{
			"CVE_data_meta": map[string]any{"ID": "CVE-2019-0221", "STATE": "RESERVED"},
		}

		SetState(body, ShapeLegacy, StateDraft)

		assert.Equal(t, StateDraft, Normalize(body).State)
	})

	t.Run("should create the metadata block when absent", func(t *testing.T) {
		body := map[string]any{}

		SetState(body, ShapeV5, StateDraft)

		assert.Equal(t, "DRAFT", body["CNA_private"].(map[string]any)["state"])
	})
}
