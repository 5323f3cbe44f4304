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

package accesscontrol

// Session is the authenticated identity of a request. The zero value,
// NoSession, represents an unauthenticated request; downstream middleware
// decides whether that is acceptable for the route.
type Session struct {
	userID string
	email  string
	name   string
	groups []string
}

var NoSession = Session{}

func NewSession(userID, email, name string, groups []string) Session {
	return Session{
		userID: userID,
		email:  email,
		name:   name,
		groups: groups,
	}
}

func (s Session) GetUserID() string {
	return s.userID
}

func (s Session) GetEmail() string {
	return s.email
}

func (s Session) GetName() string {
	return s.name
}

func (s Session) GetGroups() []string {
	return s.groups
}

func (s Session) IsAuthenticated() bool {
	return s.userID != ""
}
