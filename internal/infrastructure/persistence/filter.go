package persistence

import (
	"strings"

	"gorm.io/gorm"

	"github.com/mecanica/backend/internal/domain/shared"
)

// applyFilter applies pagination and ordering from a shared.Filter.
// Ordering falls back to newest-first when the filter does not specify one.
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}
