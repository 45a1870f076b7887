package repository

import (
	"time"

	"github.com/lukusafi/laundry-api/pkg/pagination"
	"gorm.io/gorm"
)

// Paginate applies OFFSET/LIMIT for a validated page request
func Paginate(params *pagination.Params) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		params.Validate()
		return db.Offset(params.Offset()).Limit(params.Limit)
	}
}

// DateBetween keeps rows whose date column falls within [from, to].
// Either bound may be nil.
func DateBetween(column string, from, to *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where(column+" >= ?", from.Format(dateLayout))
		}
		if to != nil {
			db = db.Where(column+" <= ?", to.Format(dateLayout))
		}
		return db
	}
}

const dateLayout = "2006-01-02"

func likePattern(s string) string {
	return "%" + s + "%"
}
