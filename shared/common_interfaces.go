package shared

import (
	"context"
	"errors"

	"github.com/QPC-github/security-vulnogram/database/models"
	"github.com/QPC-github/security-vulnogram/workflow"
)

// ErrNoDocument is the uniform answer of the public endpoint for everything
// that is not a PUBLIC record: absent, hidden and malformed lookups are
// indistinguishable from the outside.
var ErrNoDocument = errors.New("nodoc")

type CveRecordRepository interface {
	All() ([]models.CveRecord, error)
	FindByCveID(cveID string) (models.CveRecord, error)
	Save(tx DB, record *models.CveRecord) error
	Delete(tx DB, cveID string) error
}

// Mail is the wire-agnostic description of an outbound notification.
type Mail struct {
	From    string
	To      string
	CC      string
	BCC     string
	Subject string
	Text    string
}

// Mailer delivers notification mails. Delivery is advisory: callers log
// failures but never fail the operation that produced the mail.
type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}

// MailingListResolver discovers the public discussion list of a PMC.
type MailingListResolver interface {
	ListAddress(ctx context.Context, pmc string) string
}

type CveRecordService interface {
	Read(actor workflow.Actor, cveID string) (models.CveRecord, error)
	// List returns the records the actor may see: everything for the
	// admin group, otherwise the records of their own PMCs.
	List(actor workflow.Actor) ([]models.CveRecord, error)
	// Save runs the full workflow: ACL check, reserved-state enforcement,
	// persistence and the advisory state change notification. The bool
	// reports whether the client must refresh its view because the stored
	// state was forced away from what was submitted.
	Save(ctx context.Context, actor workflow.Actor, body map[string]any) (models.CveRecord, bool, error)
	Delete(actor workflow.Actor, cveID string) error
	// PublicJSON returns the full document body of a PUBLIC record. Any
	// other state and any lookup failure yield ErrNoDocument, so callers
	// cannot distinguish hidden records from absent ones.
	PublicJSON(cveID string) (map[string]any, error)
	// Comment mails a note about the record to its PMC security contact.
	Comment(ctx context.Context, actor workflow.Actor, cveID, text string) error
}
