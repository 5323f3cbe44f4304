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
	"github.com/labstack/echo/v4"
)

type CveRouter struct {
	*echo.Group
}

// NewCveRouter registers the record CRUD routes. Everything here requires a
// session; the per record ACL happens inside the service.
func NewCveRouter(
	sessionRouter SessionRouter,
	cveController *controllers.CveController,
) CveRouter {
	cveRouter := sessionRouter.Group.Group("/cve")
	cveRouter.GET("/", cveController.List)
	cveRouter.GET("/:cveID/", cveController.Read)
	cveRouter.POST("/", cveController.Save)
	cveRouter.DELETE("/:cveID/", cveController.Delete)
	cveRouter.POST("/:cveID/comment/", cveController.Comment)

	return CveRouter{Group: cveRouter}
}
