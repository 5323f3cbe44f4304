package models

import (
	"time"

	databasetypes "github.com/QPC-github/security-vulnogram/database/types"
)

// CveRecord is a CVE disclosure document moving through the publication
// workflow. The document itself is schemaless from the database's point of
// view: legacy v4 and v5 bodies live side by side in the same jsonb column,
// and the workflow package extracts the state and owner from either shape.
type CveRecord struct {
	CveID     string              `json:"cveId" gorm:"primaryKey;not null;type:text;"`
	Body      databasetypes.JSONB `json:"body" gorm:"type:jsonb;not null"`
	Author    string              `json:"author" gorm:"type:text;"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

func (m CveRecord) TableName() string {
	return "cve_records"
}
