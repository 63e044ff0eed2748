// Package orm wraps gorm in a thin, chainable query facade so the
// repository layer reads fluently and never touches *gorm.DB directly.
// Each chaining method returns a new Query; terminal methods (Get, First,
// Create, ...) execute and return the error.
package orm

import (
	"errors"
	"time"

	"github.com/aranya-labs/aranya/pkg/cache"
	"github.com/aranya-labs/aranya/pkg/database"
	"gorm.io/gorm"
)

// ErrNotFound is returned by First when no row matches.
var ErrNotFound = gorm.ErrRecordNotFound

// Pagination describes one page of a paginated result set.
type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type Query struct {
	db *gorm.DB
}

// DB starts a query chain on the global connection.
func DB() *Query {
	return &Query{db: database.DB}
}

// Wrap starts a chain on an explicit gorm handle, usually a transaction.
func Wrap(db *gorm.DB) *Query {
	return &Query{db: db}
}

// Gorm exposes the underlying handle for the rare query the facade
// cannot express.
func (q *Query) Gorm() *gorm.DB { return q.db }

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Joins(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Joins(query, args...)}
}

func (q *Query) Select(columns string, args ...interface{}) *Query {
	return &Query{db: q.db.Select(columns, args...)}
}

func (q *Query) Group(name string) *Query {
	return &Query{db: q.db.Group(name)}
}

func (q *Query) Order(value string) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Limit(n int) *Query {
	return &Query{db: q.db.Limit(n)}
}

func (q *Query) Offset(n int) *Query {
	return &Query{db: q.db.Offset(n)}
}

func (q *Query) Preload(relation string, args ...interface{}) *Query {
	return &Query{db: q.db.Preload(relation, args...)}
}

// Get runs the query and scans all rows into dest.
func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

// First scans the first matching row into dest; ErrNotFound when none.
func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

// Scan runs the built query into an arbitrary struct or slice, used for
// aggregation selects that do not map onto a model.
func (q *Query) Scan(dest interface{}) error {
	return q.db.Scan(dest).Error
}

// Count counts matching rows.
func (q *Query) Count() (int64, error) {
	var n int64
	err := q.db.Count(&n).Error
	return n, err
}

// Create inserts value.
func (q *Query) Create(value interface{}) error {
	return q.db.Create(value).Error
}

// Save upserts value by primary key.
func (q *Query) Save(value interface{}) error {
	return q.db.Save(value).Error
}

// Updates applies the given column/value changes to matching rows.
func (q *Query) Updates(values interface{}) error {
	return q.db.Updates(values).Error
}

// UpdatesConditional applies changes and reports the number of rows that
// matched. The WHERE clause carries the precondition, so a zero count means
// the state moved underneath us and the caller must treat it as a conflict:
//
//	n, _ := orm.DB().Model(&Coupon{}).
//	    Where("id = ? AND used_count < usage_limit", id).
//	    UpdatesConditional(map[string]interface{}{"used_count": gorm.Expr("used_count + 1")})
func (q *Query) UpdatesConditional(values interface{}) (int64, error) {
	res := q.db.Updates(values)
	return res.RowsAffected, res.Error
}

// Delete removes matching rows of the model's type.
func (q *Query) Delete(value interface{}) error {
	return q.db.Delete(value).Error
}

// Raw runs a raw SQL query chain.
func (q *Query) Raw(sql string, args ...interface{}) *Query {
	return &Query{db: q.db.Raw(sql, args...)}
}

// Transaction runs fn inside a database transaction. The callback receives
// a Query bound to the transaction; returning an error rolls back.
func Transaction(fn func(tx *Query) error) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		return fn(&Query{db: tx})
	})
}

// GetWithPagination runs the query twice, once for the count and once for
// the page, and returns page metadata alongside.
func (q *Query) GetWithPagination(dest interface{}, page, perPage int) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	var total int64
	if err := q.db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	offset := (page - 1) * perPage
	if err := q.db.Limit(perPage).Offset(offset).Find(dest).Error; err != nil {
		return Pagination{}, err
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}, nil
}

// Cache serves dest from the cache under key, falling back to the query and
// populating the cache on a miss.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if cache.Get(key, dest) {
		return nil
	}

	if err := q.db.Find(dest).Error; err != nil {
		return err
	}

	cache.Set(key, dest, ttl)
	return nil
}

// IsNotFound reports whether err is the no-rows error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
