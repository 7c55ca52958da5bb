package handlers

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// nextDocumentNo issues the next "<prefix>-YYYYMMDD-NNN" number by counting
// today's rows. Callers run this inside the same transaction as the insert
// so concurrent creates cannot both claim the same number.
func nextDocumentNo(tx *gorm.DB, model interface{}, column, prefix string) (string, error) {
	datePart := time.Now().Format("20060102")
	var count int64
	if err := tx.Model(model).
		Where(column+" LIKE ?", fmt.Sprintf("%s-%s-%%", prefix, datePart)).
		Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%03d", prefix, datePart, count+1), nil
}
