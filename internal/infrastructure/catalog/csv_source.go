// Package catalog 提供基于文件的目录来源
package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"kdrama-rec-api/internal/domain/entity"
	"kdrama-rec-api/pkg/logger"
)

// 目录文件列名（匹配时忽略大小写）
const (
	ColumnTitle       = "title"
	ColumnGenres      = "genres"
	ColumnStyles      = "styles"
	ColumnPlatform    = "platform"
	ColumnDescription = "description"
)

var optionalColumns = []string{ColumnGenres, ColumnStyles, ColumnPlatform, ColumnDescription}

const utf8BOM = "\ufeff"

// ErrMissingTitleColumn 表头中没有 Title 列
var ErrMissingTitleColumn = errors.New("catalog header has no Title column")

// CSVSource 从 CSV 文件读取目录
type CSVSource struct {
	path string
}

// NewCSVSource 创建 CSV 目录来源
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Name 来源名称
func (s *CSVSource) Name() string {
	return "csv:" + s.path
}

// LoadItems 读取整个文件，每次调用都重新打开
func (s *CSVSource) LoadItems(ctx context.Context) ([]*entity.Item, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	return ParseCSV(ctx, f)
}

// ParseCSV 解析带表头的目录 CSV
// 缺失的可选列按空字符串处理；Title 为空的行视为数据错误
func ParseCSV(ctx context.Context, r io.Reader) ([]*entity.Item, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("catalog has no header row")
		}
		return nil, fmt.Errorf("read catalog header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		key := strings.ToLower(strings.TrimSpace(name))
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	if _, ok := cols[ColumnTitle]; !ok {
		return nil, ErrMissingTitleColumn
	}
	for _, name := range optionalColumns {
		if _, ok := cols[name]; !ok {
			logger.Warn(ctx, "catalog column missing, using empty values", "column", name)
		}
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var items []*entity.Item
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}

		title := field(record, ColumnTitle)
		if strings.TrimSpace(title) == "" {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("catalog line %d: empty title", line)
		}

		items = append(items, &entity.Item{
			ID:          len(items),
			Title:       title,
			Genres:      field(record, ColumnGenres),
			Styles:      field(record, ColumnStyles),
			Platform:    field(record, ColumnPlatform),
			Description: field(record, ColumnDescription),
		})
	}

	return items, nil
}
