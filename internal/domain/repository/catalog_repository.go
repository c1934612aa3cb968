// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"kdrama-rec-api/internal/domain/entity"
)

// CatalogSource 目录数据来源
// 实现方必须保证每条记录都有 Title，Platform 缺失时返回空字符串；
// 返回的条目按目录顺序排列，ID 等于其下标
type CatalogSource interface {
	// Name 来源名称，用于日志
	Name() string

	// LoadItems 读取完整目录快照
	LoadItems(ctx context.Context) ([]*entity.Item, error)
}
