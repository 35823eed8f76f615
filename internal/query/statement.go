// Package query builds parameterised Postgres statements from structured
// predicates. Values never reach the SQL text: every predicate binds its
// operands as pgx named arguments, and identifiers are either constants
// chosen by the caller or quoted through pgx.Identifier.
package query

import (
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Statement is a ready-to-run SQL string and its named arguments.
// Pass both to Query/QueryRow: r.db.Query(ctx, st.SQL, st.Args).
type Statement struct {
	SQL  string
	Args pgx.NamedArgs
}

// Compiled is the statement pair produced for one paginated search.
// Both statements are rendered from the same ClauseSet, so the count always
// covers exactly the rows the selection pages through.
type Compiled struct {
	Select Statement
	Count  Statement
}

// binder hands out sequential argument names (@p1, @p2, ...).
type binder struct {
	args pgx.NamedArgs
	n    int
}

func newBinder() *binder {
	return &binder{args: pgx.NamedArgs{}}
}

func (b *binder) bind(v any) string {
	b.n++
	name := "p" + strconv.Itoa(b.n)
	b.args[name] = v
	return "@" + name
}

// Order is one ORDER BY term.
type Order struct {
	Column pgx.Identifier
	Desc   bool
}

func (o Order) render() string {
	if o.Desc {
		return o.Column.Sanitize() + " DESC"
	}
	return o.Column.Sanitize() + " ASC"
}

// Select renders a paginated row-selection statement.
// Columns and From are trusted SQL fragments defined by the caller.
// A zero Limit omits LIMIT/OFFSET.
type Select struct {
	Columns []string
	From    string
	Clauses ClauseSet
	OrderBy []Order
	Limit   int
	Offset  int
}

// Statement renders s with freshly numbered arguments.
func (s Select) Statement() Statement {
	b := newBinder()

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(s.Columns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(s.From)
	sb.WriteString(s.Clauses.render(b))

	if len(s.OrderBy) > 0 {
		terms := make([]string, len(s.OrderBy))
		for i, o := range s.OrderBy {
			terms[i] = o.render()
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(terms, ", "))
	}
	if s.Limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(b.bind(s.Limit))
		sb.WriteString(" OFFSET ")
		sb.WriteString(b.bind(s.Offset))
	}

	return Statement{SQL: sb.String(), Args: b.args}
}

// Count renders a COUNT statement over the same joins and filters as a
// Select, without ordering or pagination.
type Count struct {
	Column  string
	From    string
	Clauses ClauseSet
}

// Statement renders c with freshly numbered arguments.
func (c Count) Statement() Statement {
	b := newBinder()

	var sb strings.Builder
	sb.WriteString("SELECT COUNT(")
	sb.WriteString(c.Column)
	sb.WriteString(") FROM ")
	sb.WriteString(c.From)
	sb.WriteString(c.Clauses.render(b))

	return Statement{SQL: sb.String(), Args: b.args}
}
