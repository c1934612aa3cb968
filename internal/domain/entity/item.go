// Package entity 定义领域实体
package entity

// Item 目录条目（一部剧集）
// ID 为条目在目录中的位置，在进程生命周期内保持稳定
type Item struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Genres      string `json:"genres"`
	Styles      string `json:"styles"`
	Platform    string `json:"platform"`
	Description string `json:"description"`
}

// FeatureText 返回用于向量化的特征文本：genres + ", " + styles
// 缺失字段按空字符串处理
func (i *Item) FeatureText() string {
	return i.Genres + ", " + i.Styles
}
