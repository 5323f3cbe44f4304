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
	"os"
	"strings"

	"github.com/QPC-github/security-vulnogram/shared"
	"github.com/QPC-github/security-vulnogram/workflow"
	"go.uber.org/fx"
)

// NewWorkflowEngine builds the state machine from the environment. The
// defaults match the production security team setup, so a bare deployment
// only needs FRONTEND_URL.
func NewWorkflowEngine() workflow.Engine {
	adminGroup := os.Getenv("ADMIN_GROUP")
	if adminGroup == "" {
		adminGroup = "security"
	}
	mailDomain := os.Getenv("MAIL_DOMAIN")
	if mailDomain == "" {
		mailDomain = "apache.org"
	}

	var securityListPMCs []string
	for _, pmc := range strings.Split(os.Getenv("SECURITY_LIST_PMCS"), ",") {
		if pmc = strings.TrimSpace(pmc); pmc != "" {
			securityListPMCs = append(securityListPMCs, pmc)
		}
	}

	contacts := workflow.ContactResolver{
		Domain:           mailDomain,
		SecurityGroup:    adminGroup,
		SecurityListPMCs: securityListPMCs,
	}

	return workflow.NewEngine(adminGroup, contacts, os.Getenv("FRONTEND_URL"))
}

var Module = fx.Module("services",
	fx.Provide(
		NewWorkflowEngine,
		fx.Annotate(NewMailService, fx.As(new(shared.Mailer))),
		fx.Annotate(NewMailingListService, fx.As(new(shared.MailingListResolver))),
		fx.Annotate(NewCveRecordService, fx.As(new(shared.CveRecordService))),
	),
)
