package persistence

import (
	"strings"

	"github.com/tradeops/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// sortableColumns whitelists the columns a caller may order by. Anything else
// falls back to created_at.
var sortableColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"number":     true,
	"name":       true,
	"code":       true,
	"status":     true,
	"date":       true,
	"week_start": true,
}

// applyFilter applies pagination and ordering from a shared.Filter
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := filter.OrderBy
	if !sortableColumns[orderBy] {
		orderBy = "created_at"
	}
	orderDir := "ASC"
	if strings.EqualFold(filter.OrderDir, "desc") {
		orderDir = "DESC"
	}
	return query.Order(orderBy + " " + orderDir)
}
