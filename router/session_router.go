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
	"os"

	"github.com/QPC-github/security-vulnogram/controllers"
	"github.com/QPC-github/security-vulnogram/middlewares"
	"github.com/QPC-github/security-vulnogram/shared"
	"github.com/labstack/echo/v4"
)

type SessionRouter struct {
	*echo.Group
}

// @Summary Get current user info
// @Security CookieAuth
// @Success 200 {object} object{userID=string}
// @Router /whoami [get]
func whoami(ctx echo.Context) error {
	return ctx.JSON(200, map[string]string{
		"userID": shared.GetSession(ctx).GetUserID(),
	})
}

func NewSessionRouter(
	apiV1Router APIV1Router,
	userController *controllers.UserController,
	cveController *controllers.CveController,
) SessionRouter {
	sessionRouter := apiV1Router.Group.Group("",
		middlewares.SessionMiddleware([]byte(os.Getenv("SESSION_SECRET"))),
		middlewares.EnsureAuthenticated,
	)

	sessionRouter.GET("/whoami/", whoami)
	sessionRouter.GET("/users/me/json/", userController.Me)
	sessionRouter.GET("/users/list/json/", userController.ListJSON)
	sessionRouter.GET("/users/setpmc/", userController.SetPMC)
	sessionRouter.GET("/emaillist/", userController.EmailList)
	sessionRouter.POST("/cvss/", cveController.Score)

	return SessionRouter{Group: sessionRouter}
}
