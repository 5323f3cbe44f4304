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

package router

import (
	"github.com/QPC-github/security-vulnogram/controllers"
	"github.com/QPC-github/security-vulnogram/shared"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type APIV1Router struct {
	*echo.Group
}

// NewAPIV1Router registers everything reachable without a session: health,
// metrics, the login round trip and the public record endpoint.
func NewAPIV1Router(
	srv *echo.Echo,
	db shared.DB,
	authController *controllers.AuthController,
	cveController *controllers.CveController,
) APIV1Router {
	apiV1Router := srv.Group("/api/v1")

	apiV1Router.GET("/health/", func(ctx echo.Context) error {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.Ping() != nil {
			return echo.NewHTTPError(503, "database unreachable")
		}
		return ctx.JSON(200, map[string]string{"status": "ok"})
	})

	apiV1Router.GET("/metrics/", echo.WrapHandler(promhttp.Handler()))

	apiV1Router.GET("/login/", authController.Login)
	apiV1Router.GET("/logout/", authController.Logout)

	apiV1Router.GET("/publicjson/:cveID/", cveController.PublicJSON)

	return APIV1Router{Group: apiV1Router}
}
