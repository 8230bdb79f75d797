package gormrepo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dicehall/internal/adapter/repo/gorm/model"
	"dicehall/internal/app/ports"
	"dicehall/internal/domain/message"
)

type CommandLogRepo struct {
	db *gorm.DB
}

func NewCommandLogRepo(db *gorm.DB) CommandLogRepo {
	return CommandLogRepo{db: db}
}

func (r CommandLogRepo) Append(ctx context.Context, record ports.CommandRecord) error {
	row := model.CommandLog{
		Command:     record.Request.Command,
		A1:          record.Request.A1,
		A2:          record.Request.A2,
		A3:          record.Request.A3,
		A4:          record.Request.A4,
		A5:          record.Request.A5,
		A6:          record.Request.A6,
		Username:    record.Request.Username,
		IP:          record.Request.IP,
		SubmittedAt: record.Request.Time,
		LoggedAt:    record.LoggedAt,
	}
	return getDBFromCtx(ctx, r.db).Create(&row).Error
}

func (r CommandLogRepo) ListRecent(ctx context.Context, limit int) ([]ports.CommandRecord, error) {
	rows := []model.CommandLog{}
	query := getDBFromCtx(ctx, r.db).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "logged_at"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]ports.CommandRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.CommandRecord{
			Request: message.Request{
				Command:  row.Command,
				A1:       row.A1,
				A2:       row.A2,
				A3:       row.A3,
				A4:       row.A4,
				A5:       row.A5,
				A6:       row.A6,
				Username: row.Username,
				IP:       row.IP,
				Time:     row.SubmittedAt,
			},
			LoggedAt: row.LoggedAt,
		})
	}
	return out, nil
}
