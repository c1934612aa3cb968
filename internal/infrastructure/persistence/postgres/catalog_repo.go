package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"kdrama-rec-api/internal/domain/entity"
)

// CatalogRepository 从数据表读取目录
// 表需包含 title, genres, styles, platform, description 列
type CatalogRepository struct {
	client *Client
	table  string
	query  string
}

// NewCatalogRepository 创建目录仓储
// table 可带 schema 前缀；orderColumn 决定条目顺序，为空时按 title 排序
func NewCatalogRepository(client *Client, table, orderColumn string) *CatalogRepository {
	if orderColumn == "" {
		orderColumn = "title"
	}
	return &CatalogRepository{
		client: client,
		table:  table,
		query:  buildCatalogQuery(table, orderColumn),
	}
}

func buildCatalogQuery(table, orderColumn string) string {
	return fmt.Sprintf(
		"SELECT title, genres, styles, platform, description FROM %s ORDER BY %s",
		quoteQualified(table), pq.QuoteIdentifier(orderColumn),
	)
}

// quoteQualified 分别引用 schema.table 的每一段
func quoteQualified(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(strings.TrimSpace(p))
	}
	return strings.Join(parts, ".")
}

// Name 来源名称
func (r *CatalogRepository) Name() string {
	return "postgres:" + r.table
}

// LoadItems 读取完整目录，NULL 视为空字符串
func (r *CatalogRepository) LoadItems(ctx context.Context) ([]*entity.Item, error) {
	ctx, span := tracer.Start(ctx, "postgres.CatalogRepository.LoadItems",
		trace.WithAttributes(attribute.String("db.table", r.table)))
	defer span.End()

	rows, err := r.client.db.WithContext(ctx).Raw(r.query).Rows()
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	var items []*entity.Item
	for rows.Next() {
		var title, genres, styles, platform, description sql.NullString
		if err := rows.Scan(&title, &genres, &styles, &platform, &description); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		if strings.TrimSpace(title.String) == "" {
			return nil, fmt.Errorf("catalog row %d: empty title", len(items))
		}
		items = append(items, &entity.Item{
			ID:          len(items),
			Title:       title.String,
			Genres:      genres.String,
			Styles:      styles.String,
			Platform:    platform.String,
			Description: description.String,
		})
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("iterate catalog: %w", err)
	}

	span.SetAttributes(attribute.Int("catalog.items", len(items)))
	return items, nil
}
