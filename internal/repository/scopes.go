package repository

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Live hides soft-deleted rows. Every read of a soft-deletable table goes
// through it; nothing is filtered implicitly.
func Live(db *gorm.DB) *gorm.DB {
	return db.Where(clause.Eq{
		Column: clause.Column{Table: clause.CurrentTable, Name: "deleted"},
		Value:  false,
	})
}

// PageRequest is a zero-based page index and page size.
type PageRequest struct {
	Page int
	Size int
}

func (p PageRequest) Normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

type Page[T any] struct {
	Items      []T
	Page       int
	Size       int
	TotalItems int64
	TotalPages int
}

// paginate counts the rows matched by query and loads the requested window,
// applying load (preloads) to the second query only. query must be reusable
// (built with Session) since it runs twice.
func paginate[T any](query *gorm.DB, req PageRequest, order string, load ...func(*gorm.DB) *gorm.DB) (Page[T], error) {
	req = req.Normalize()
	page := Page[T]{Items: []T{}, Page: req.Page, Size: req.Size}

	if err := query.Count(&page.TotalItems).Error; err != nil {
		return page, err
	}
	page.TotalPages = int((page.TotalItems + int64(req.Size) - 1) / int64(req.Size))
	// past the last page there is nothing to load, and the offset could overflow
	if req.Page >= page.TotalPages {
		return page, nil
	}

	err := query.Scopes(load...).Order(order).Offset(req.Page * req.Size).Limit(req.Size).Find(&page.Items).Error
	return page, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// prefixPattern turns user input into a case-folded LIKE prefix pattern.
func prefixPattern(query string) string {
	return likeEscaper.Replace(strings.ToLower(query)) + "%"
}
