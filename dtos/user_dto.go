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

type UserResponse struct {
	UserID string   `json:"userID"`
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	Groups []string `json:"groups"`
}

// OwnerFieldSchema is the JSON Schema fragment the record editor renders for
// the owner field. Regular committers get their PMCs as a fixed choice list,
// members of the admin group get a free form string so they can assign any
// project.
type OwnerFieldSchema struct {
	Type   string   `json:"type"`
	Enum   []string `json:"enum,omitempty"`
	Format string   `json:"format,omitempty"`
}
