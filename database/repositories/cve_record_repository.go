package repositories

import (
	"github.com/QPC-github/security-vulnogram/database/models"
	"gorm.io/gorm"
)

type cveRecordRepository struct {
	db *gorm.DB
	*GormRepository[string, models.CveRecord]
}

func NewCveRecordRepository(db *gorm.DB) *cveRecordRepository {
	return &cveRecordRepository{
		db:             db,
		GormRepository: newGormRepository[string, models.CveRecord](db),
	}
}

func (g *cveRecordRepository) FindByCveID(cveID string) (models.CveRecord, error) {
	var record models.CveRecord
	err := g.db.First(&record, "cve_id = ?", cveID).Error
	return record, err
}

func (g *cveRecordRepository) Delete(tx *gorm.DB, cveID string) error {
	return g.GetDB(tx).Delete(&models.CveRecord{}, "cve_id = ?", cveID).Error
}
