package database

import (
	"gorm.io/gorm"

	"github.com/nexusboard/nexusboard-api/internal/utils"
)

// Paginate applies pagination to a GORM query. Queries without
// explicit pagination params pass through unchanged.
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !params.Requested {
			return db
		}
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}
