// Copyright (C) 2026 the security-vulnogram authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package workflow

// Shape identifies which CVE record schema a stored document follows. Legacy
// records keep their workflow metadata under CVE_data_meta, v5 records under
// cveMetadata/CNA_private. Both shapes share one logical state space.
type Shape string

const (
	ShapeLegacy Shape = "cve4"
	ShapeV5     Shape = "cve5"
)

type State string

const (
	StateReserved State = "RESERVED"
	StateDraft    State = "DRAFT"
	StateReview   State = "REVIEW"
	StateReady    State = "READY"
	StatePublic   State = "PUBLIC"
	// StateUnknown covers documents whose state field is absent or carries
	// a value outside the lifecycle. Comparisons against it never fire a
	// transition.
	StateUnknown State = ""
)

var knownStates = map[State]struct{}{
	StateReserved: {},
	StateDraft:    {},
	StateReview:   {},
	StateReady:    {},
	StatePublic:   {},
}

// Record is the normalized workflow view of a stored CVE document: the few
// fields the engine reasons about, extracted from either schema shape.
type Record struct {
	ID    string
	Shape Shape
	State State
	// Owner is the PMC the record belongs to. Both shapes record it at
	// CNA_private.owner. Empty means the document is missing its ACL
	// anchor, which CanAccess surfaces as a distinct fault.
	Owner string
}

func nestedMap(body map[string]any, key string) map[string]any {
	m, _ := body[key].(map[string]any)
	return m
}

func nestedString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// Normalize extracts the workflow view from a raw record document. A v5
// document is recognized by its cveMetadata block, anything else carrying
// CVE_data_meta is treated as legacy. The state is sanitized: values outside
// the lifecycle become StateUnknown instead of poisoning later comparisons.
func Normalize(body map[string]any) Record {
	record := Record{
		Owner: nestedString(nestedMap(body, "CNA_private"), "owner"),
	}

	if meta := nestedMap(body, "cveMetadata"); meta != nil {
		record.Shape = ShapeV5
		record.ID = nestedString(meta, "cveId")
		record.State = sanitizeState(nestedString(nestedMap(body, "CNA_private"), "state"))
		return record
	}

	meta := nestedMap(body, "CVE_data_meta")
	record.Shape = ShapeLegacy
	record.ID = nestedString(meta, "ID")
	record.State = sanitizeState(nestedString(meta, "STATE"))
	return record
}

func sanitizeState(raw string) State {
	if _, ok := knownStates[State(raw)]; ok {
		return State(raw)
	}
	return StateUnknown
}

// SetState writes a state back into the document at the field path of its
// shape, creating the surrounding block if the document lacks it.
func SetState(body map[string]any, shape Shape, state State) {
	key, field := "CVE_data_meta", "STATE"
	if shape == ShapeV5 {
		key, field = "CNA_private", "state"
	}

	m := nestedMap(body, key)
	if m == nil {
		m = map[string]any{}
		body[key] = m
	}
	m[field] = string(state)
}
