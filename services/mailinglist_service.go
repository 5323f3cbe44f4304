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

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// mailingListService asks the list archive which public lists a project
// actually runs so announcement mail lands somewhere subscribed. The archive
// being down must never block a state change, so every failure path degrades
// to the dev list.
type mailingListService struct {
	apiURL     string
	mailDomain string
	httpClient *http.Client
}

func NewMailingListService() *mailingListService {
	apiURL := os.Getenv("LISTS_API_URL")
	if apiURL == "" {
		apiURL = "https://lists.apache.org/api/preferences.lua"
	}
	mailDomain := os.Getenv("MAIL_DOMAIN")
	if mailDomain == "" {
		mailDomain = "apache.org"
	}
	return &mailingListService{
		apiURL:     apiURL,
		mailDomain: mailDomain,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// preferencesResponse is the archive's lists index: outer keys are mail
// domains, inner keys are bare list names on that domain.
type preferencesResponse struct {
	Lists map[string]map[string]int `json:"lists"`
}

// ListAddress returns the best announcement address for a project. Prefers
// users@, then user@, and falls back to dev@ when neither exists or the
// lookup fails.
func (s *mailingListService) ListAddress(ctx context.Context, pmc string) string {
	fallback := fmt.Sprintf("dev@%s.%s", pmc, s.mailDomain)

	domain := fmt.Sprintf("%s.%s", pmc, s.mailDomain)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL, nil)
	if err != nil {
		return fallback
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		slog.Warn("could not query list archive", "domain", domain, "err", err)
		return fallback
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		slog.Warn("list archive returned unexpected status", "domain", domain, "status", resp.StatusCode)
		return fallback
	}

	var prefs preferencesResponse
	if err := json.NewDecoder(resp.Body).Decode(&prefs); err != nil {
		slog.Warn("could not decode list archive response", "domain", domain, "err", err)
		return fallback
	}

	lists := prefs.Lists[domain]
	for _, name := range []string{"users", "user"} {
		if _, ok := lists[name]; ok {
			return fmt.Sprintf("%s@%s", name, domain)
		}
	}
	return fallback
}
