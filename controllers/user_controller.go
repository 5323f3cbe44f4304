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

package controllers

import (
	"slices"
	"strings"

	"github.com/QPC-github/security-vulnogram/accesscontrol"
	"github.com/QPC-github/security-vulnogram/dtos"
	"github.com/QPC-github/security-vulnogram/shared"
	"github.com/QPC-github/security-vulnogram/workflow"
	"github.com/labstack/echo/v4"
)

type UserController struct {
	engine  workflow.Engine
	lists   shared.MailingListResolver
	session sessionIssuer
}

// sessionIssuer reissues the session cookie after a group override. It is
// the same code path the auth controller uses after login.
type sessionIssuer interface {
	SetSessionCookie(ctx shared.Context, session accesscontrol.Session) error
}

func NewUserController(engine workflow.Engine, lists shared.MailingListResolver, auth *AuthController) *UserController {
	return &UserController{engine: engine, lists: lists, session: auth}
}

func (ctrl *UserController) Me(ctx shared.Context) error {
	session := shared.GetSession(ctx)
	return ctx.JSON(200, dtos.UserResponse{
		UserID: session.GetUserID(),
		Email:  session.GetEmail(),
		Name:   session.GetName(),
		Groups: session.GetGroups(),
	})
}

// ListJSON returns the JSON Schema fragment for the owner field of the record
// editor. Admins may assign any project, everyone else chooses among their
// own PMCs.
func (ctrl *UserController) ListJSON(ctx shared.Context) error {
	session := shared.GetSession(ctx)
	groups := session.GetGroups()

	if slices.Contains(groups, ctrl.engine.AdminGroup) {
		return ctx.JSON(200, dtos.OwnerFieldSchema{Type: "string"})
	}

	enum := slices.Clone(groups)
	slices.Sort(enum)
	return ctx.JSON(200, dtos.OwnerFieldSchema{
		Type:   "string",
		Enum:   enum,
		Format: "radio",
	})
}

// SetPMC replaces the caller's group set for the rest of the session. Only
// the admin group may do this; it exists so the security team can exercise
// the workflow from a regular committer's point of view.
func (ctrl *UserController) SetPMC(ctx shared.Context) error {
	session := shared.GetSession(ctx)
	if !slices.Contains(session.GetGroups(), ctrl.engine.AdminGroup) {
		return echo.NewHTTPError(403, "access denied for group "+ctrl.engine.AdminGroup)
	}

	var groups []string
	for _, pmc := range strings.Split(ctx.QueryParam("pmc"), ",") {
		if pmc = strings.TrimSpace(pmc); pmc != "" {
			groups = append(groups, pmc)
		}
	}
	if len(groups) == 0 {
		return echo.NewHTTPError(400, "no pmc given")
	}

	override := accesscontrol.NewSession(session.GetUserID(), session.GetEmail(), session.GetName(), groups)
	if err := ctrl.session.SetSessionCookie(ctx, override); err != nil {
		return echo.NewHTTPError(500, "could not reissue session").WithInternal(err)
	}
	return ctx.JSON(200, map[string]any{"groups": groups})
}

// EmailList resolves the announcement list of a project for the editor's
// mail preview.
func (ctrl *UserController) EmailList(ctx shared.Context) error {
	pmc := ctx.QueryParam("pmc")
	if pmc == "" {
		return echo.NewHTTPError(400, "no pmc given")
	}
	return ctx.JSON(200, map[string]string{
		"address": ctrl.lists.ListAddress(ctx.Request().Context(), pmc),
	})
}
