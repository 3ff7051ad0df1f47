// Package search builds the SQL predicates for the paper search strategies.
package search

import (
	"strings"

	"gorm.io/gorm"
)

type Type string

const (
	TypeKeyword  Type = "keyword"
	TypeTitle    Type = "title"
	TypeAuthor   Type = "author"
	TypeFullText Type = "full_text"
)

// RelevanceScore is attached to every match. There is no ranking.
const RelevanceScore = 1.0

// Strategy names the columns a term is matched against.
type Strategy struct {
	Columns       []string
	MatchKeywords bool
}

var strategies = map[Type]Strategy{
	TypeKeyword: {
		Columns:       []string{"title", "abstract"},
		MatchKeywords: true,
	},
	TypeTitle: {
		Columns: []string{"title"},
	},
	TypeAuthor: {
		Columns: []string{"authors"},
	},
	TypeFullText: {
		Columns: []string{
			"title",
			"authors",
			"abstract",
			"summary_introduction",
			"summary_methods",
			"summary_results",
			"summary_discussion",
			"summary_conclusion",
		},
	},
}

// ParseType resolves a requested search type. Unknown values fall back to keyword.
func ParseType(s string) Type {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := strategies[t]; ok {
		return t
	}
	return TypeKeyword
}

func StrategyFor(t Type) Strategy {
	if s, ok := strategies[t]; ok {
		return s
	}
	return strategies[TypeKeyword]
}

// Terms splits a query on whitespace.
func Terms(query string) []string {
	return strings.Fields(query)
}

// Scope restricts a papers query to rows matching every term. Each term must
// hit at least one of the strategy's columns. With no terms nothing matches.
func Scope(t Type, terms []string) func(*gorm.DB) *gorm.DB {
	strategy := StrategyFor(t)
	return func(db *gorm.DB) *gorm.DB {
		if len(terms) == 0 {
			return db.Where("1 = 0")
		}
		dialect := db.Dialector.Name()
		for _, term := range terms {
			sql, args := termCondition(dialect, strategy, term)
			db = db.Where(sql, args...)
		}
		return db
	}
}

func termCondition(dialect string, strategy Strategy, term string) (string, []any) {
	lowered := strings.ToLower(term)
	pattern := "%" + escapeLike(lowered) + "%"

	parts := make([]string, 0, len(strategy.Columns)+1)
	args := make([]any, 0, len(strategy.Columns)+1)
	if strategy.MatchKeywords {
		parts = append(parts, keywordMembership(dialect))
		args = append(args, lowered)
	}
	for _, col := range strategy.Columns {
		parts = append(parts, "LOWER("+col+") LIKE ?")
		args = append(args, pattern)
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

// keywordMembership tests the lowercased keywords array for an exact element.
func keywordMembership(dialect string) string {
	switch dialect {
	case "postgres":
		return "LOWER(keywords::text)::jsonb @> to_jsonb(?::text)"
	default:
		return "JSON_CONTAINS(LOWER(keywords), JSON_QUOTE(?))"
	}
}

// escapeLike escapes LIKE wildcards using the default backslash escape.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
