package repositories

import "gorm.io/gorm"

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// Pagination is embedded in list filters. Zero values mean first page, default size.
type Pagination struct {
	Limit  int
	Offset int
}

func (p Pagination) apply(db *gorm.DB) *gorm.DB {
	limit := p.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}
	return db.Limit(limit).Offset(offset)
}

// newestFirst is the default ordering for every list.
func newestFirst(db *gorm.DB, table string) *gorm.DB {
	return db.Order(table + ".created_at DESC").Order(table + ".id DESC")
}
