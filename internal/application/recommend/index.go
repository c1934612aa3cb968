package recommend

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"kdrama-rec-api/internal/domain/entity"
)

// Index 不可变的目录快照：条目、查找表与特征矩阵
// 构建完成后只读，可被任意数量的请求并发访问
type Index struct {
	items        []*entity.Item
	titleKeys    map[string]int
	platformKeys []string
	vocab        *Vocabulary
	matrix       *Matrix
	fingerprint  string
	builtAt      time.Time
}

// BuildIndex 由目录条目构建索引，条目 ID 被重写为其下标
// 重复标题以首个出现者为准
func BuildIndex(items []*entity.Item) (*Index, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCatalog
	}

	idx := &Index{
		items:        make([]*entity.Item, len(items)),
		titleKeys:    make(map[string]int, len(items)),
		platformKeys: make([]string, len(items)),
		builtAt:      time.Now(),
	}

	h := xxhash.New()
	for i, src := range items {
		if src == nil || strings.TrimSpace(src.Title) == "" {
			return nil, fmt.Errorf("%w: row %d", ErrMissingTitle, i)
		}
		item := *src
		item.ID = i
		idx.items[i] = &item

		key := normalizeTitle(item.Title)
		if _, ok := idx.titleKeys[key]; !ok {
			idx.titleKeys[key] = i
		}
		idx.platformKeys[i] = strings.ToLower(item.Platform)

		for _, f := range []string{item.Title, item.Genres, item.Styles, item.Platform, item.Description} {
			_, _ = h.WriteString(f)
			_, _ = h.Write([]byte{0})
		}
	}
	idx.fingerprint = strconv.FormatUint(h.Sum64(), 16)
	idx.vocab, idx.matrix = buildFeatures(idx.items)

	return idx, nil
}

// Len 条目数量
func (x *Index) Len() int { return len(x.items) }

// Item 按 ID 取条目
func (x *Index) Item(id int) *entity.Item { return x.items[id] }

// Vocabulary 特征词表
func (x *Index) Vocabulary() *Vocabulary { return x.vocab }

// Matrix 特征矩阵
func (x *Index) Matrix() *Matrix { return x.matrix }

// Fingerprint 目录内容指纹，内容不变则指纹不变
func (x *Index) Fingerprint() string { return x.fingerprint }

// BuiltAt 构建时间
func (x *Index) BuiltAt() time.Time { return x.builtAt }

// Lookup 按标题查找条目（忽略大小写与首尾空白）
func (x *Index) Lookup(title string) (int, bool) {
	id, ok := x.titleKeys[normalizeTitle(title)]
	return id, ok
}

// Scores 查询条目与全部条目的相似度，下标即条目 ID
func (x *Index) Scores(query int) []float64 {
	return x.matrix.scoresFor(query)
}

// SuggestTitles 返回包含 q 的标题（忽略大小写），按目录顺序，最多 limit 个
func (x *Index) SuggestTitles(q string, limit int) []string {
	q = normalizeTitle(q)
	out := make([]string, 0, max(0, min(limit, len(x.items))))
	if q == "" || limit <= 0 {
		return out
	}
	for _, item := range x.items {
		if strings.Contains(strings.ToLower(item.Title), q) {
			out = append(out, item.Title)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}
