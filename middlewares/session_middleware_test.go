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

package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/QPC-github/security-vulnogram/accesscontrol"
	"github.com/QPC-github/security-vulnogram/shared"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

var testSecret = []byte("test-secret")

func runSessionMiddleware(t *testing.T, cookie *http.Cookie) shared.AuthSession {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	ctx := e.NewContext(req, httptest.NewRecorder())

	var captured shared.AuthSession
	handler := SessionMiddleware(testSecret)(func(ctx echo.Context) error {
		captured = shared.GetSession(ctx)
		return nil
	})
	assert.NoError(t, handler(ctx))
	return captured
}

func TestSessionMiddlewareValidCookie(t *testing.T) {
	token, err := accesscontrol.IssueToken(
		accesscontrol.NewSession("jane", "jane@apache.org", "Jane Doe", []string{"httpd"}),
		testSecret, time.Hour)
	assert.NoError(t, err)

	session := runSessionMiddleware(t, &http.Cookie{Name: accesscontrol.CookieName, Value: token})
	assert.True(t, session.IsAuthenticated())
	assert.Equal(t, "jane", session.GetUserID())
	assert.Equal(t, []string{"httpd"}, session.GetGroups())
}

func TestSessionMiddlewareTamperedCookie(t *testing.T) {
	token, err := accesscontrol.IssueToken(
		accesscontrol.NewSession("jane", "jane@apache.org", "Jane Doe", []string{"httpd"}),
		[]byte("some-other-secret"), time.Hour)
	assert.NoError(t, err)

	session := runSessionMiddleware(t, &http.Cookie{Name: accesscontrol.CookieName, Value: token})
	assert.False(t, session.IsAuthenticated())
}

func TestSessionMiddlewareMissingCookie(t *testing.T) {
	session := runSessionMiddleware(t, nil)
	assert.False(t, session.IsAuthenticated())
}

func TestEnsureAuthenticated(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := e.NewContext(req, httptest.NewRecorder())
	shared.SetSession(ctx, accesscontrol.NoSession)

	err := EnsureAuthenticated(func(ctx echo.Context) error { return nil })(ctx)

	var httpErr *echo.HTTPError
	assert.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 401, httpErr.Code)
}
