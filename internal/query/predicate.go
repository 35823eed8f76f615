package query

import "strings"

// Predicate is a single boolean condition of a WHERE clause.
// The set of predicates is closed: Equals, Like, InSet, WithinDistance and
// Intersects.
type Predicate interface {
	render(b *binder) string
}

// Equals is "Column = Value".
type Equals struct {
	Column string
	Value  any
}

func (p Equals) render(b *binder) string {
	return p.Column + " = " + b.bind(p.Value)
}

// Like is a case-insensitive pattern match "Column ILIKE Pattern".
// Build Pattern with ContainsPattern or PrefixPattern so that user input is
// matched literally.
type Like struct {
	Column  string
	Pattern string
}

func (p Like) render(b *binder) string {
	return p.Column + " ILIKE " + b.bind(p.Pattern) + ` ESCAPE '\'`
}

// InSet is "Column = ANY(Values)". Values must be a slice.
type InSet struct {
	Column string
	Values any
}

func (p InSet) render(b *binder) string {
	return p.Column + " = ANY(" + b.bind(p.Values) + ")"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes the LIKE wildcards in s.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ContainsPattern returns a LIKE pattern matching s anywhere.
func ContainsPattern(s string) string {
	return "%" + EscapeLike(s) + "%"
}

// PrefixPattern returns a LIKE pattern matching values that start with s.
func PrefixPattern(s string) string {
	return EscapeLike(s) + "%"
}
