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

import "slices"

// ContactResolver maps a PMC onto its security contact address. The mapping
// is total: every PMC resolves to some address.
type ContactResolver struct {
	// Domain is the mail domain PMC addresses live under, e.g. apache.org.
	Domain string
	// SecurityGroup is the PMC that routes to the global security address
	// instead of a per project list.
	SecurityGroup string
	// SecurityListPMCs are the projects known to operate their own
	// security@ list. Everyone else gets their private@ list.
	SecurityListPMCs []string
}

// Resolve returns the notification address for a PMC.
func (r ContactResolver) Resolve(pmc string) string {
	if pmc == r.SecurityGroup {
		return r.SecurityGroup + "@" + r.Domain
	}
	if slices.Contains(r.SecurityListPMCs, pmc) {
		return "security@" + pmc + "." + r.Domain
	}
	return "private@" + pmc + "." + r.Domain
}

// AuthorAddress derives the mail address of a committer from their user id.
func (r ContactResolver) AuthorAddress(userID string) string {
	return userID + "@" + r.Domain
}
