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

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie issued after login.
const CookieName = "cveprocess_session"

type sessionClaims struct {
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	Groups []string `json:"groups"`
	jwt.RegisteredClaims
}

// IssueToken signs the session into a compact JWT. The subject carries the
// user id, everything else the workflow needs rides along as claims so the
// middleware never has to call back into the identity provider.
func IssueToken(session Session, secret []byte, ttl time.Duration) (string, error) {
	claims := sessionClaims{
		Email:  session.email,
		Name:   session.name,
		Groups: session.groups,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken verifies a session cookie value. Anything wrong with the token,
// from a bad signature to an expired claim set, yields an error and the
// caller falls back to NoSession.
func ParseToken(tokenString string, secret []byte) (Session, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return NoSession, err
	}
	if !token.Valid {
		return NoSession, jwt.ErrTokenUnverifiable
	}
	return NewSession(claims.Subject, claims.Email, claims.Name, claims.Groups), nil
}
