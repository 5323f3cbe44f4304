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
	"errors"
	"fmt"
	"log/slog"

	"github.com/QPC-github/security-vulnogram/database/models"
	databasetypes "github.com/QPC-github/security-vulnogram/database/types"
	"github.com/QPC-github/security-vulnogram/monitoring"
	"github.com/QPC-github/security-vulnogram/shared"
	"github.com/QPC-github/security-vulnogram/workflow"
	"gorm.io/gorm"
)

type cveRecordService struct {
	recordRepository shared.CveRecordRepository
	engine           workflow.Engine
	mailer           shared.Mailer
}

func NewCveRecordService(recordRepository shared.CveRecordRepository, engine workflow.Engine, mailer shared.Mailer) *cveRecordService {
	return &cveRecordService{
		recordRepository: recordRepository,
		engine:           engine,
		mailer:           mailer,
	}
}

// checkAccess gates a record view against the actor and keeps the telemetry
// for the two failure classes apart: a missing owner is a data integrity
// fault worth alerting on, a denial is routine.
func (s *cveRecordService) checkAccess(record workflow.Record, actor workflow.Actor) error {
	_, err := s.engine.CanAccess(record, actor.Groups)
	if err == nil {
		return nil
	}

	if errors.Is(err, workflow.ErrMissingOwner) {
		monitoring.MissingOwnerTotal.Inc()
		monitoring.Alert(fmt.Sprintf("record %s has no owner", record.ID), err)
	} else {
		monitoring.AccessDeniedTotal.Inc()
		slog.Info("record access denied", "cveId", record.ID, "owner", record.Owner, "user", actor.ID)
	}
	return err
}

// List filters the full record set down to what the actor may see. Records
// denied by the ACL are skipped silently, including ownerless ones; the
// integrity fault surfaces when someone opens such a record, not on every
// index view.
func (s *cveRecordService) List(actor workflow.Actor) ([]models.CveRecord, error) {
	records, err := s.recordRepository.All()
	if err != nil {
		return nil, err
	}

	visible := make([]models.CveRecord, 0, len(records))
	for _, record := range records {
		if _, err := s.engine.CanAccess(workflow.Normalize(record.Body), actor.Groups); err == nil {
			visible = append(visible, record)
		}
	}
	return visible, nil
}

func (s *cveRecordService) Read(actor workflow.Actor, cveID string) (models.CveRecord, error) {
	record, err := s.recordRepository.FindByCveID(cveID)
	if err != nil {
		return models.CveRecord{}, err
	}

	if err := s.checkAccess(workflow.Normalize(record.Body), actor); err != nil {
		return models.CveRecord{}, err
	}
	return record, nil
}

// Save validates the transition, persists the document and fires the state
// change notification. The whole workflow decision is computed before the
// first side effect, so a denied save leaves no partial state behind.
func (s *cveRecordService) Save(ctx context.Context, actor workflow.Actor, body map[string]any) (models.CveRecord, bool, error) {
	proposed := workflow.Normalize(body)

	var old *workflow.Record
	current, err := s.recordRepository.FindByCveID(proposed.ID)
	switch {
	case err == nil:
		view := workflow.Normalize(current.Body)
		old = &view
		// access is decided on the stored document, not on whatever
		// ownership the submitted one claims
		if err := s.checkAccess(view, actor); err != nil {
			return models.CveRecord{}, false, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.checkAccess(proposed, actor); err != nil {
			return models.CveRecord{}, false, err
		}
	default:
		return models.CveRecord{}, false, err
	}

	effective, refresh := s.engine.ApplyUpsertHook(proposed.State, actor.Groups)
	if effective != proposed.State {
		slog.Info("record saved in reserved state, demoting", "cveId", proposed.ID, "user", actor.ID)
		workflow.SetState(body, proposed.Shape, effective)
		proposed.State = effective
	}

	record := models.CveRecord{
		CveID:  proposed.ID,
		Body:   databasetypes.JSONB(body),
		Author: actor.ID,
	}
	if err := s.recordRepository.Save(nil, &record); err != nil {
		return models.CveRecord{}, false, err
	}
	monitoring.RecordSavesTotal.WithLabelValues(string(proposed.State)).Inc()

	if event := s.engine.DiffForNotification(old, proposed, actor); event != nil {
		s.dispatch(ctx, shared.Mail{
			From:    event.From,
			To:      event.To,
			CC:      event.CC,
			Subject: event.Subject,
			Text:    event.Text,
		})
	}

	return record, refresh, nil
}

// dispatch hands a notification to the mailer. Delivery is advisory: a
// failure is alerted on but never escalates into failing the save.
func (s *cveRecordService) dispatch(ctx context.Context, mail shared.Mail) {
	if err := s.mailer.Send(ctx, mail); err != nil {
		monitoring.NotificationsFailedTotal.Inc()
		monitoring.Alert("could not send state change notification", err)
		return
	}
	monitoring.NotificationsSentTotal.Inc()
	slog.Info("sent notification mail", "to", mail.To, "subject", mail.Subject)
}

func (s *cveRecordService) Delete(actor workflow.Actor, cveID string) error {
	if !s.engine.CanDelete(actor.Groups) {
		monitoring.AccessDeniedTotal.Inc()
		return &workflow.AccessDeniedError{Owner: s.engine.AdminGroup}
	}
	return s.recordRepository.Delete(nil, cveID)
}

func (s *cveRecordService) PublicJSON(cveID string) (map[string]any, error) {
	record, err := s.recordRepository.FindByCveID(cveID)
	if err != nil {
		// absent and hidden records are indistinguishable on purpose
		return nil, shared.ErrNoDocument
	}
	if workflow.Normalize(record.Body).State != workflow.StatePublic {
		return nil, shared.ErrNoDocument
	}
	return record.Body, nil
}

// Comment mails a note about a record to its PMC security contact, with the
// global security list in copy.
func (s *cveRecordService) Comment(ctx context.Context, actor workflow.Actor, cveID, text string) error {
	record, err := s.recordRepository.FindByCveID(cveID)
	if err != nil {
		return err
	}

	view := workflow.Normalize(record.Body)
	if err := s.checkAccess(view, actor); err != nil {
		return err
	}

	from := actor.Email
	if from == "" {
		from = s.engine.Contacts.AuthorAddress(actor.ID)
	}

	s.dispatch(ctx, shared.Mail{
		From:    fmt.Sprintf("\"%s\" <%s>", actor.Name, from),
		To:      s.engine.Contacts.Resolve(view.Owner),
		CC:      s.engine.Contacts.Resolve(s.engine.AdminGroup),
		BCC:     from,
		Subject: "Comment added on " + cveID,
		Text:    text + "\n\n" + s.engine.RecordURL(view),
	})
	return nil
}
