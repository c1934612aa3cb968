package dto

import "kdrama-rec-api/internal/application/recommend"

// RecommendQuery 推荐请求参数，limit 与 only_platform 保留原始字符串由服务层解析
type RecommendQuery struct {
	Title        string `form:"title"`
	Limit        string `form:"limit"`
	Platform     string `form:"platform"`
	OnlyPlatform string `form:"only_platform"`
}

// RecommendationItem 单条推荐
type RecommendationItem struct {
	Title       string  `json:"title"`
	Genres      string  `json:"genres"`
	Styles      string  `json:"styles"`
	Platform    string  `json:"platform"`
	Description string  `json:"description"`
	Similarity  float64 `json:"similarity"`
}

// RecommendResponse 推荐结果
type RecommendResponse struct {
	Input            string               `json:"input"`
	InputPlatform    string               `json:"input_platform"`
	InputDescription string               `json:"input_description"`
	Recommendations  []RecommendationItem `json:"recommendations"`
}

// ToRecommendResponse 转换推荐结果
func ToRecommendResponse(res *recommend.Result) *RecommendResponse {
	out := &RecommendResponse{
		Input:            res.Input,
		InputPlatform:    res.InputPlatform,
		InputDescription: res.InputDescription,
		Recommendations:  make([]RecommendationItem, 0, len(res.Recommendations)),
	}
	for _, r := range res.Recommendations {
		out.Recommendations = append(out.Recommendations, RecommendationItem{
			Title:       r.Title,
			Genres:      r.Genres,
			Styles:      r.Styles,
			Platform:    r.Platform,
			Description: r.Description,
			Similarity:  r.Similarity,
		})
	}
	return out
}

// LegacyError /recommend 接口的错误体
type LegacyError struct {
	Error string `json:"error"`
}

// TitleQuery 标题联想参数
type TitleQuery struct {
	Q     string `form:"q"`
	Limit int    `form:"limit" binding:"omitempty,min=0,max=50"`
}

// TitleSuggestions 标题联想结果
type TitleSuggestions struct {
	Query  string   `json:"query"`
	Titles []string `json:"titles"`
}
