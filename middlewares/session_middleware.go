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
	"log/slog"

	"github.com/QPC-github/security-vulnogram/accesscontrol"
	"github.com/QPC-github/security-vulnogram/shared"
	"github.com/labstack/echo/v4"
)

// SessionMiddleware resolves the session cookie into an identity. A missing
// or invalid cookie yields NoSession instead of an error; public routes are
// still reachable and EnsureAuthenticated gates the rest.
func SessionMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			cookie, err := ctx.Cookie(accesscontrol.CookieName)
			if err != nil {
				shared.SetSession(ctx, accesscontrol.NoSession)
				return next(ctx)
			}

			session, err := accesscontrol.ParseToken(cookie.Value, secret)
			if err != nil {
				slog.Warn("could not verify session cookie", "err", err)
				shared.SetSession(ctx, accesscontrol.NoSession)
				return next(ctx)
			}

			shared.SetSession(ctx, session)
			return next(ctx)
		}
	}
}

func EnsureAuthenticated(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if !shared.GetSession(ctx).IsAuthenticated() {
			return echo.NewHTTPError(401, "not authenticated")
		}
		return next(ctx)
	}
}
