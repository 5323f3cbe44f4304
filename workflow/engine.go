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

package workflow

import (
	"errors"
	"fmt"
	"slices"
)

// Actor is the identity a mutation is attributed to. It is always passed in
// explicitly; the engine never reads ambient request state.
type Actor struct {
	ID     string
	Email  string
	Name   string
	Groups []string
}

// ErrMissingOwner marks a record whose document lacks CNA_private.owner. That
// is a data integrity fault, distinct from an ordinary ACL denial, and must
// never degrade into a silent allow or deny.
var ErrMissingOwner = errors.New("record is missing its owning PMC (CNA_private.owner)")

// AccessDeniedError is the expected outcome of an actor touching a record
// owned by a PMC they are not part of.
type AccessDeniedError struct {
	Owner string
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("access denied for group %s", e.Owner)
}

// Engine decides record access, forced state demotion and state change
// notifications. All methods are pure functions over their arguments, safe
// for concurrent use.
type Engine struct {
	// AdminGroup is the distinguished security super group. Its members
	// bypass PMC ownership checks and may edit RESERVED records in place.
	AdminGroup string
	Contacts   ContactResolver
	// BaseURL is the public root of the service, used for the record link
	// in notification mails.
	BaseURL string
	// NotifyBounceBack controls per shape whether a REVIEW -> DRAFT
	// transition fires a notification. The upstream service only ever
	// fired it for v5 records because its legacy branch compared against
	// a misspelled field name; keeping the rule explicit per shape makes
	// that discrepancy a configuration decision instead of a hidden bug.
	NotifyBounceBack map[Shape]bool
}

// NewEngine returns an engine with the bounce-back notification enabled for
// both schema shapes.
func NewEngine(adminGroup string, contacts ContactResolver, baseURL string) Engine {
	return Engine{
		AdminGroup: adminGroup,
		Contacts:   contacts,
		BaseURL:    baseURL,
		NotifyBounceBack: map[Shape]bool{
			ShapeLegacy: true,
			ShapeV5:     true,
		},
	}
}

func (e Engine) isAdmin(groups []string) bool {
	return slices.Contains(groups, e.AdminGroup)
}

// CanAccess reports whether an actor holding the given groups may see or
// mutate the record. Members of the admin group always may; everyone else
// needs the owning PMC literally among their groups. A record without an
// owner yields ErrMissingOwner.
func (e Engine) CanAccess(record Record, groups []string) (bool, error) {
	if record.Owner == "" {
		return false, ErrMissingOwner
	}
	if e.isAdmin(groups) {
		return true, nil
	}
	if slices.Contains(groups, record.Owner) {
		return true, nil
	}
	return false, &AccessDeniedError{Owner: record.Owner}
}

// CanDelete reports whether the actor may delete records at all. Deletion is
// reserved to the admin group.
func (e Engine) CanDelete(groups []string) bool {
	return e.isAdmin(groups)
}

// ApplyUpsertHook enforces the workflow rule on every save: a RESERVED record
// edited by anyone outside the admin group is demoted to DRAFT. The second
// return value tells the client to refresh its view of the record because the
// stored state no longer matches what it submitted.
func (e Engine) ApplyUpsertHook(state State, groups []string) (State, bool) {
	if state != StateReserved {
		return state, false
	}
	if e.isAdmin(groups) {
		return state, false
	}
	return StateDraft, true
}

// Notification describes a state change mail to send. The engine only ever
// describes the mail; dispatching it is the caller's concern, and a dispatch
// failure must never fail the save that triggered it.
type Notification struct {
	From    string
	To      string
	CC      string
	Subject string
	Text    string
}

var notifiableStates = map[State]struct{}{
	StateReview: {},
	StateReady:  {},
	StatePublic: {},
}

// DiffForNotification compares the stored record against its replacement and
// returns the notification the transition warrants, or nil. Advancing into
// REVIEW, READY or PUBLIC notifies; falling back from REVIEW to DRAFT
// notifies where the shape's bounce-back rule allows it. Everything else,
// including a save that does not change the state and a record that did not
// exist before, stays silent.
func (e Engine) DiffForNotification(old *Record, updated Record, author Actor) *Notification {
	if old == nil {
		return nil
	}
	if old.State == updated.State {
		return nil
	}
	if updated.State == StateUnknown {
		return nil
	}

	_, advanced := notifiableStates[updated.State]
	bounced := updated.State == StateDraft && old.State == StateReview && e.NotifyBounceBack[updated.Shape]
	if !advanced && !bounced {
		return nil
	}

	from := author.Email
	if from == "" {
		from = e.Contacts.AuthorAddress(author.ID)
	}

	return &Notification{
		From:    from,
		To:      e.Contacts.Resolve(updated.Owner),
		CC:      from,
		Subject: fmt.Sprintf("%s is now %s", updated.ID, updated.State),
		Text: fmt.Sprintf("%s changed state from %s to %s\n\n%s",
			author.ID, old.State, updated.State, e.RecordURL(updated)),
	}
}

// RecordURL returns the editor link for a record, on the path of its shape.
func (e Engine) RecordURL(record Record) string {
	path := "cve"
	if record.Shape == ShapeV5 {
		path = "cve5"
	}
	return fmt.Sprintf("%s/%s/%s", e.BaseURL, path, record.ID)
}
