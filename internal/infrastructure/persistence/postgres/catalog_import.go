package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"kdrama-rec-api/internal/domain/entity"
)

// catalogRow 目录表的一行
type catalogRow struct {
	ID          int    `gorm:"column:id;primaryKey;autoIncrement:false"`
	Title       string `gorm:"column:title"`
	Genres      string `gorm:"column:genres"`
	Styles      string `gorm:"column:styles"`
	Platform    string `gorm:"column:platform"`
	Description string `gorm:"column:description"`
}

func buildCreateTableSQL(table string) string {
	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (id INTEGER PRIMARY KEY, title TEXT NOT NULL, genres TEXT, styles TEXT, platform TEXT, description TEXT)",
		quoteQualified(table),
	)
}

func toCatalogRows(items []*entity.Item) []catalogRow {
	rows := make([]catalogRow, 0, len(items))
	for i, item := range items {
		rows = append(rows, catalogRow{
			ID:          i,
			Title:       item.Title,
			Genres:      item.Genres,
			Styles:      item.Styles,
			Platform:    item.Platform,
			Description: item.Description,
		})
	}
	return rows
}

// ReplaceItems 建表（如不存在）并在一个事务内用 items 替换整张表
// 行 id 等于条目下标，使按 id 排序的读取保持原目录顺序
func (r *CatalogRepository) ReplaceItems(ctx context.Context, items []*entity.Item) (int, error) {
	ctx, span := tracer.Start(ctx, "postgres.CatalogRepository.ReplaceItems")
	defer span.End()

	db := r.client.db.WithContext(ctx)
	if err := db.Exec(buildCreateTableSQL(r.table)).Error; err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("create catalog table: %w", err)
	}

	rows := toCatalogRows(items)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM " + quoteQualified(r.table)).Error; err != nil {
			return fmt.Errorf("clear catalog table: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Table(r.table).CreateInBatches(&rows, 200).Error; err != nil {
			return fmt.Errorf("insert catalog rows: %w", err)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	return len(rows), nil
}
