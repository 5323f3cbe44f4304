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
	"fmt"
	"os"
	"strconv"

	"github.com/QPC-github/security-vulnogram/shared"
	"github.com/wneessen/go-mail"
)

// mailService is the SMTP adapter behind shared.Mailer. Everything the
// workflow decides is handed over here fully formed; this layer only moves
// bytes.
type mailService struct {
	client *mail.Client
}

func NewMailService() (*mailService, error) {
	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
		port = p
	}

	opts := []mail.Option{mail.WithPort(port)}
	if user := os.Getenv("SMTP_USER"); user != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(user),
			mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		)
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"), opts...)
	if err != nil {
		return nil, fmt.Errorf("could not create smtp client: %w", err)
	}

	return &mailService{client: client}, nil
}

func (s *mailService) Send(ctx context.Context, m shared.Mail) error {
	msg := mail.NewMsg()
	if err := msg.From(m.From); err != nil {
		return fmt.Errorf("invalid sender %q: %w", m.From, err)
	}
	if err := msg.To(m.To); err != nil {
		return fmt.Errorf("invalid recipient %q: %w", m.To, err)
	}
	if m.CC != "" {
		if err := msg.Cc(m.CC); err != nil {
			return fmt.Errorf("invalid cc %q: %w", m.CC, err)
		}
	}
	if m.BCC != "" {
		if err := msg.Bcc(m.BCC); err != nil {
			return fmt.Errorf("invalid bcc %q: %w", m.BCC, err)
		}
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(mail.TypeTextPlain, m.Text)

	return s.client.DialAndSendWithContext(ctx, msg)
}
