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
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/QPC-github/security-vulnogram/accesscontrol"
	"github.com/QPC-github/security-vulnogram/shared"
	"github.com/QPC-github/security-vulnogram/workflow"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type fakeLists struct{}

func (fakeLists) ListAddress(ctx context.Context, pmc string) string {
	return "users@" + pmc + ".apache.org"
}

func newUserTestController() *UserController {
	engine := workflow.NewEngine("security", workflow.ContactResolver{
		Domain:        "apache.org",
		SecurityGroup: "security",
	}, "https://cveprocess.apache.org")
	return &UserController{engine: engine, lists: fakeLists{}}
}

func userContext(t *testing.T, target string, session accesscontrol.Session) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	shared.SetSession(ctx, session)
	return ctx, rec
}

func TestListJSONEnumForCommitter(t *testing.T) {
	ctrl := newUserTestController()
	ctx, rec := userContext(t, "/", accesscontrol.NewSession("jane", "jane@apache.org", "Jane Doe", []string{"tomcat", "httpd"}))

	assert.NoError(t, ctrl.ListJSON(ctx))

	var schema map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &schema))
	assert.Equal(t, "string", schema["type"])
	assert.Equal(t, []any{"httpd", "tomcat"}, schema["enum"])
}

func TestListJSONFreeFormForAdmin(t *testing.T) {
	ctrl := newUserTestController()
	ctx, rec := userContext(t, "/", accesscontrol.NewSession("mark", "mark@apache.org", "Mark", []string{"security"}))

	assert.NoError(t, ctrl.ListJSON(ctx))

	var schema map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &schema))
	assert.Equal(t, "string", schema["type"])
	assert.NotContains(t, schema, "enum")
}

func TestSetPMCRejectsNonAdmin(t *testing.T) {
	ctrl := newUserTestController()
	ctx, _ := userContext(t, "/?pmc=httpd", accesscontrol.NewSession("jane", "jane@apache.org", "Jane Doe", []string{"httpd"}))

	err := ctrl.SetPMC(ctx)
	var httpErr *echo.HTTPError
	assert.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 403, httpErr.Code)
}

func TestEmailListRequiresPMC(t *testing.T) {
	ctrl := newUserTestController()
	ctx, _ := userContext(t, "/", accesscontrol.NewSession("jane", "jane@apache.org", "Jane Doe", []string{"httpd"}))

	err := ctrl.EmailList(ctx)
	var httpErr *echo.HTTPError
	assert.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
}

func TestEmailListResolvesAddress(t *testing.T) {
	ctrl := newUserTestController()
	ctx, rec := userContext(t, "/?pmc=httpd", accesscontrol.NewSession("jane", "jane@apache.org", "Jane Doe", []string{"httpd"}))

	assert.NoError(t, ctrl.EmailList(ctx))
	assert.JSONEq(t, `{"address":"users@httpd.apache.org"}`, rec.Body.String())
}
