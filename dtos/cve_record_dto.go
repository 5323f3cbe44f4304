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

package dtos

// SaveRecordResponse tells the editor what actually got stored. Refresh is
// set when the stored state differs from the submitted one and the client
// must reload the record before editing further.
type SaveRecordResponse struct {
	CveID   string `json:"cveId"`
	State   string `json:"state"`
	Refresh bool   `json:"refresh"`
}

// RecordSummary is one row of the record index view.
type RecordSummary struct {
	CveID string `json:"cveId"`
	State string `json:"state"`
	Owner string `json:"owner"`
}

type CommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// ScoreResponse is the editor support answer for a metric selection. Defined
// is false when the selection is incomplete or carries an unrecognized value;
// the numeric fields are only meaningful when it is true.
type ScoreResponse struct {
	Defined      bool    `json:"defined"`
	BaseScore    float64 `json:"baseScore,omitempty"`
	BaseSeverity string  `json:"baseSeverity,omitempty"`
	VectorString string  `json:"vectorString,omitempty"`
}
