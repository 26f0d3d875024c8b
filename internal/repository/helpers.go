package repository

import (
	"context"

	"gorm.io/gorm"
)

// exists reports whether any row of model has column = value.
func exists(ctx context.Context, db *gorm.DB, model any, column string, value any) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(model).Where(column+" = ?", value).Count(&count).Error
	return count > 0, err
}

func countByIDs(ctx context.Context, db *gorm.DB, model any, ids []uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := db.WithContext(ctx).Model(model).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

// replaceJoinRows makes the many2many rows of one owner exactly ids.
func replaceJoinRows(tx *gorm.DB, table, ownerColumn string, ownerID uint64, otherColumn string, ids []uint64) error {
	if err := tx.Exec("DELETE FROM "+table+" WHERE "+ownerColumn+" = ?", ownerID).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	rows := make([]map[string]any, 0, len(ids))
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		rows = append(rows, map[string]any{ownerColumn: ownerID, otherColumn: id})
	}
	return tx.Table(table).Create(rows).Error
}

func deleteJoinRows(tx *gorm.DB, table, column string, id uint64) error {
	return tx.Exec("DELETE FROM "+table+" WHERE "+column+" = ?", id).Error
}
