package database

import (
	"math"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Paginate applies zero-based page/size pagination to a GORM query.
// Pages past the largest representable offset are clamped so the result is empty instead of wrapping.
func Paginate(page, size int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if size <= 0 {
			return db
		}
		if page < 0 {
			page = 0
		}
		if page > math.MaxInt/size {
			page = math.MaxInt / size
		}
		return db.Offset(page * size).Limit(size)
	}
}

// OrderBy sorts by column and breaks ties on the primary key so pages are stable.
// column must come from a whitelist, never from user input.
func OrderBy(column string, desc bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc})
		if column != "id" {
			db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
		}
		return db
	}
}

// likeEscape is the LIKE escape character. It is not a backslash because MySQL treats
// backslashes in string literals as escapes of their own.
const likeEscape = "!"

var likeEscaper = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// ContainsFold is a case-insensitive substring condition on column, for use with Where.
// The value is matched literally: % and _ are not wildcards.
func ContainsFold(column, value string) clause.Expression {
	return clause.Expr{
		SQL:  "LOWER(?) LIKE ? ESCAPE '" + likeEscape + "'",
		Vars: []interface{}{clause.Column{Name: column}, "%" + likeEscaper.Replace(strings.ToLower(value)) + "%"},
	}
}
