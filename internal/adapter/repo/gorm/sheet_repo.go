package gormrepo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dicehall/internal/adapter/repo/gorm/model"
	"dicehall/internal/app/ports"
	"dicehall/internal/domain/character"
)

type SheetRepo struct {
	db *gorm.DB
}

func NewSheetRepo(db *gorm.DB) SheetRepo {
	return SheetRepo{db: db}
}

func (r SheetRepo) Get(ctx context.Context, pc int) (character.Sheet, error) {
	var rows []model.SheetAttribute
	err := getDBFromCtx(ctx, r.db).
		Where("pc_number = ?", pc).
		Find(&rows).Error
	if err != nil {
		return character.Sheet{}, err
	}
	if len(rows) == 0 {
		return character.Sheet{}, ports.ErrNotFound
	}

	sheet := character.NewSheet(pc)
	for _, row := range rows {
		sheet.Attrs[row.Name] = row.Value
	}
	return sheet, nil
}

// Save upserts the sheet's attributes; rows for attributes the sheet lacks
// are left alone.
func (r SheetRepo) Save(ctx context.Context, sheet character.Sheet) error {
	if len(sheet.Attrs) == 0 {
		return nil
	}
	now := time.Now()
	rows := make([]model.SheetAttribute, 0, len(sheet.Attrs))
	for name, value := range sheet.Attrs {
		rows = append(rows, model.SheetAttribute{
			PCNumber:  sheet.PC,
			Name:      name,
			Value:     value,
			UpdatedAt: now,
		})
	}
	return getDBFromCtx(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pc_number"}, {Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rows).Error
}

// Replace drops the existing sheet and stores this one atomically.
func (r SheetRepo) Replace(ctx context.Context, sheet character.Sheet) error {
	return getDBFromCtx(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("pc_number = ?", sheet.PC).
			Delete(&model.SheetAttribute{}).Error
		if err != nil {
			return err
		}
		if len(sheet.Attrs) == 0 {
			return nil
		}
		now := time.Now()
		rows := make([]model.SheetAttribute, 0, len(sheet.Attrs))
		for name, value := range sheet.Attrs {
			rows = append(rows, model.SheetAttribute{
				PCNumber:  sheet.PC,
				Name:      name,
				Value:     value,
				UpdatedAt: now,
			})
		}
		return tx.Create(&rows).Error
	})
}

func (r SheetRepo) OccupiedIDs(ctx context.Context) ([]int, error) {
	var ids []int
	err := getDBFromCtx(ctx, r.db).
		Model(&model.SheetAttribute{}).
		Distinct("pc_number").
		Order("pc_number").
		Pluck("pc_number", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// PurgeStale removes whole sheets whose newest attribute update predates
// the cutoff.
func (r SheetRepo) PurgeStale(ctx context.Context, cutoff time.Time) error {
	db := getDBFromCtx(ctx, r.db)
	stale := db.Model(&model.SheetAttribute{}).
		Select("pc_number").
		Group("pc_number").
		Having("MAX(updated_at) < ?", cutoff)
	return db.Where("pc_number IN (?)", stale).
		Delete(&model.SheetAttribute{}).Error
}
