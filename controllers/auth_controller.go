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
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/QPC-github/security-vulnogram/accesscontrol"
	"github.com/QPC-github/security-vulnogram/shared"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/oauth2"
)

const stateCookieName = "cveprocess_oauth_state"

// sessionTTL bounds how long an issued cookie stays valid. Committers have
// to go through the provider again afterwards.
const sessionTTL = 12 * time.Hour

type AuthController struct {
	oauth *oauth2.Config
	// userinfoURL is the provider endpoint that maps an access token onto
	// the committer identity and their project memberships.
	userinfoURL string
	secret      []byte
	frontendURL string
	// committerPMCs are the projects whose plain committers, not only PMC
	// members, may work on records.
	committerPMCs []string
}

func NewAuthController() *AuthController {
	var committerPMCs []string
	for _, pmc := range strings.Split(os.Getenv("COMMITTER_PMCS"), ",") {
		if pmc = strings.TrimSpace(pmc); pmc != "" {
			committerPMCs = append(committerPMCs, pmc)
		}
	}

	return &AuthController{
		oauth: &oauth2.Config{
			ClientID:     os.Getenv("OAUTH_CLIENT_ID"),
			ClientSecret: os.Getenv("OAUTH_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("OAUTH_REDIRECT_URL"),
			Endpoint: oauth2.Endpoint{
				AuthURL:  os.Getenv("OAUTH_AUTH_URL"),
				TokenURL: os.Getenv("OAUTH_TOKEN_URL"),
			},
		},
		userinfoURL:   os.Getenv("OAUTH_USERINFO_URL"),
		secret:        []byte(os.Getenv("SESSION_SECRET")),
		frontendURL:   os.Getenv("FRONTEND_URL"),
		committerPMCs: committerPMCs,
	}
}

type userinfo struct {
	UID      string   `json:"uid"`
	Email    string   `json:"email"`
	Fullname string   `json:"fullname"`
	PMCs     []string `json:"pmcs"`
	Projects []string `json:"projects"`
}

// Login runs both halves of the authorization code flow. Without a code it
// redirects to the provider, with one it exchanges, fetches the identity and
// issues the session cookie.
func (ctrl *AuthController) Login(ctx shared.Context) error {
	code := ctx.QueryParam("code")
	if code == "" {
		state := uuid.NewString()
		ctx.SetCookie(&http.Cookie{
			Name:     stateCookieName,
			Value:    state,
			Path:     "/",
			MaxAge:   600,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
		})
		return ctx.Redirect(302, ctrl.oauth.AuthCodeURL(state))
	}

	stateCookie, err := ctx.Cookie(stateCookieName)
	if err != nil || stateCookie.Value != ctx.QueryParam("state") {
		return echo.NewHTTPError(403, "oauth state mismatch")
	}

	token, err := ctrl.oauth.Exchange(ctx.Request().Context(), code)
	if err != nil {
		return echo.NewHTTPError(403, "could not exchange authorization code").WithInternal(err)
	}

	info, err := ctrl.fetchUserinfo(ctx, token)
	if err != nil {
		return echo.NewHTTPError(500, "could not fetch user info").WithInternal(err)
	}

	session := accesscontrol.NewSession(info.UID, info.Email, info.Fullname, ctrl.effectiveGroups(info))
	if err := ctrl.SetSessionCookie(ctx, session); err != nil {
		return echo.NewHTTPError(500, "could not issue session").WithInternal(err)
	}

	slog.Info("user logged in", "userID", info.UID, "groups", session.GetGroups())
	return ctx.Redirect(302, ctrl.frontendURL)
}

func (ctrl *AuthController) fetchUserinfo(ctx shared.Context, token *oauth2.Token) (userinfo, error) {
	client := ctrl.oauth.Client(ctx.Request().Context(), token)
	resp, err := client.Get(ctrl.userinfoURL)
	if err != nil {
		return userinfo{}, err
	}
	defer resp.Body.Close()

	var info userinfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return userinfo{}, err
	}
	return info, nil
}

// effectiveGroups widens PMC membership with plain committership for the
// projects that opted into that. Everyone else only acts for PMCs they sit
// on.
func (ctrl *AuthController) effectiveGroups(info userinfo) []string {
	groups := slices.Clone(info.PMCs)
	for _, project := range info.Projects {
		if slices.Contains(ctrl.committerPMCs, project) && !slices.Contains(groups, project) {
			groups = append(groups, project)
		}
	}
	return groups
}

func (ctrl *AuthController) SetSessionCookie(ctx shared.Context, session accesscontrol.Session) error {
	token, err := accesscontrol.IssueToken(session, ctrl.secret, sessionTTL)
	if err != nil {
		return err
	}
	ctx.SetCookie(&http.Cookie{
		Name:     accesscontrol.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (ctrl *AuthController) Logout(ctx shared.Context) error {
	ctx.SetCookie(&http.Cookie{
		Name:     accesscontrol.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
	return ctx.Redirect(302, ctrl.frontendURL)
}
