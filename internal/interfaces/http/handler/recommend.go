// Package handler 提供 HTTP 请求处理器
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kdrama-rec-api/internal/application/recommend"
	"kdrama-rec-api/internal/interfaces/http/dto"
	apperrors "kdrama-rec-api/pkg/errors"
	"kdrama-rec-api/pkg/logger"
)

// RecommendHandler 推荐处理器
type RecommendHandler struct {
	svc *recommend.Service
}

// NewRecommendHandler 创建推荐处理器
func NewRecommendHandler(svc *recommend.Service) *RecommendHandler {
	return &RecommendHandler{svc: svc}
}

// Recommend 兼容旧版前端的推荐接口
// @Summary 相似剧集推荐
// @Tags Recommend
// @Produce json
// @Param title query string true "剧集标题"
// @Param limit query int false "返回数量" default(6)
// @Param platform query string false "平台，逗号分隔"
// @Param only_platform query string false "只返回匹配平台的结果"
// @Success 200 {object} dto.RecommendResponse
// @Failure 400 {object} dto.LegacyError
// @Failure 404 {object} dto.LegacyError
// @Router /recommend [get]
func (h *RecommendHandler) Recommend(c *gin.Context) {
	res, err := h.recommend(c)
	if err != nil {
		appErr := toAppError(err)
		c.JSON(appErr.HTTPStatus, dto.LegacyError{Error: legacyMessage(err)})
		return
	}
	c.JSON(http.StatusOK, dto.ToRecommendResponse(res))
}

// RecommendV1 推荐接口
// @Summary 相似剧集推荐
// @Tags Recommend
// @Produce json
// @Param title query string true "剧集标题"
// @Param limit query int false "返回数量" default(6)
// @Param platform query string false "平台，逗号分隔"
// @Param only_platform query string false "只返回匹配平台的结果"
// @Success 200 {object} dto.Response[dto.RecommendResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/recommendations [get]
func (h *RecommendHandler) RecommendV1(c *gin.Context) {
	res, err := h.recommend(c)
	if err != nil {
		dto.AppError(c, toAppError(err))
		return
	}
	dto.Success(c, dto.ToRecommendResponse(res))
}

func (h *RecommendHandler) recommend(c *gin.Context) (*recommend.Result, error) {
	ctx := c.Request.Context()

	var q dto.RecommendQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return nil, err
	}
	req, err := recommend.ParseRequest(q.Title, q.Limit, q.Platform, q.OnlyPlatform)
	if err != nil {
		logger.Debug(ctx, "rejected recommend request", "title", q.Title, "limit", q.Limit, "error", err.Error())
		return nil, err
	}

	res, err := h.svc.Recommend(ctx, req)
	if err != nil {
		logger.Debug(ctx, "recommend failed", "title", q.Title, "error", err.Error())
		return nil, err
	}
	return res, nil
}

// SuggestTitles 标题联想
// @Summary 标题联想
// @Tags Catalog
// @Produce json
// @Param q query string true "标题片段"
// @Param limit query int false "返回数量" default(5)
// @Success 200 {object} dto.Response[dto.TitleSuggestions]
// @Router /v1/titles [get]
func (h *RecommendHandler) SuggestTitles(c *gin.Context) {
	var q dto.TitleQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		dto.AppError(c, apperrors.ErrInvalidParam.WithDetail(err.Error()))
		return
	}
	dto.Success(c, dto.TitleSuggestions{
		Query:  q.Q,
		Titles: h.svc.SuggestTitles(c.Request.Context(), q.Q, q.Limit),
	})
}
