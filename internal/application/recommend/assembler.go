package recommend

import (
	"math"

	"kdrama-rec-api/internal/domain/entity"
)

// Recommendation 单条推荐结果
type Recommendation struct {
	Title       string  `json:"title"`
	Genres      string  `json:"genres"`
	Styles      string  `json:"styles"`
	Platform    string  `json:"platform"`
	Description string  `json:"description"`
	Similarity  float64 `json:"similarity"`
}

// Result 推荐请求的完整结果
type Result struct {
	Input            string           `json:"input"`
	InputPlatform    string           `json:"input_platform"`
	InputDescription string           `json:"input_description"`
	Recommendations  []Recommendation `json:"recommendations"`
}

// assemble 组装结果，查询条目的信息取自目录而非请求参数
func assemble(query *entity.Item, items []*entity.Item, selected []int, scores []float64) *Result {
	res := &Result{
		Input:            query.Title,
		InputPlatform:    query.Platform,
		InputDescription: query.Description,
		Recommendations:  make([]Recommendation, 0, len(selected)),
	}
	for _, i := range selected {
		item := items[i]
		res.Recommendations = append(res.Recommendations, Recommendation{
			Title:       item.Title,
			Genres:      item.Genres,
			Styles:      item.Styles,
			Platform:    item.Platform,
			Description: item.Description,
			Similarity:  toPercent(scores[i]),
		})
	}
	return res
}

// toPercent 相似度转百分比，保留两位小数
func toPercent(score float64) float64 {
	return math.Round(score*10000) / 100
}
