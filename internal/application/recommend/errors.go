package recommend

import "errors"

var (
	// ErrEmptyQuery 查询标题为空（去除首尾空白后）
	ErrEmptyQuery = errors.New("query title is empty")
	// ErrTitleNotFound 目录中不存在该标题（不区分大小写）
	ErrTitleNotFound = errors.New("title not found")
	// ErrInvalidLimit limit 不是非负整数
	ErrInvalidLimit = errors.New("limit must be a non-negative integer")
	// ErrEmptyCatalog 加载时目录为空，服务无法启动
	ErrEmptyCatalog = errors.New("catalog is empty")
	// ErrMissingTitle 目录记录缺少 Title
	ErrMissingTitle = errors.New("catalog record has no title")
)
