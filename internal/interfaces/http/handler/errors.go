package handler

import (
	"errors"

	"kdrama-rec-api/internal/application/recommend"
	apperrors "kdrama-rec-api/pkg/errors"
)

// toAppError 将推荐服务的哨兵错误映射为 AppError
func toAppError(err error) *apperrors.AppError {
	switch {
	case errors.Is(err, recommend.ErrEmptyQuery):
		return apperrors.ErrEmptyQuery
	case errors.Is(err, recommend.ErrInvalidLimit):
		return apperrors.ErrInvalidLimit
	case errors.Is(err, recommend.ErrTitleNotFound):
		return apperrors.ErrTitleNotFound
	case errors.Is(err, recommend.ErrEmptyCatalog):
		return apperrors.ErrEmptyCatalog
	case apperrors.IsAppError(err):
		return apperrors.AsAppError(err)
	default:
		return apperrors.ErrInternalError.WithError(err)
	}
}

// legacyMessage /recommend 接口沿用的错误文案
func legacyMessage(err error) string {
	switch {
	case errors.Is(err, recommend.ErrEmptyQuery):
		return "Title is required"
	case errors.Is(err, recommend.ErrTitleNotFound):
		return "Title not found"
	case errors.Is(err, recommend.ErrInvalidLimit):
		return "Limit must be a non-negative integer"
	case errors.Is(err, recommend.ErrEmptyCatalog):
		return "Catalog is empty"
	default:
		return "Internal server error"
	}
}
