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
package shared

import (
	"github.com/QPC-github/security-vulnogram/workflow"
)

// AuthSession is the authenticated identity attached to a request by the
// session middleware.
type AuthSession interface {
	GetUserID() string
	GetEmail() string
	GetName() string
	// GetGroups returns the PMCs the user belongs to.
	GetGroups() []string
	IsAuthenticated() bool
}

func GetSession(ctx Context) AuthSession {
	return ctx.Get("session").(AuthSession)
}

func SetSession(ctx Context, session AuthSession) {
	ctx.Set("session", session)
}

// GetActor converts the request session into the explicit actor value the
// workflow engine consumes. The engine itself never touches request state.
func GetActor(ctx Context) workflow.Actor {
	session := GetSession(ctx)
	return workflow.Actor{
		ID:     session.GetUserID(),
		Email:  session.GetEmail(),
		Name:   session.GetName(),
		Groups: session.GetGroups(),
	}
}
