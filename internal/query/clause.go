package query

import "strings"

// ClauseSet holds the joins and filter predicates shared by a selection
// statement and its count statement.
//
// Predicates fall into two groups. The AND group must hold entirely; of the
// OR group any one predicate is enough. When both groups are present the
// filter is "and1 AND and2 ... AND (or1 OR or2 ...)".
type ClauseSet struct {
	joins []string
	and   []Predicate
	or    []Predicate
}

// Where returns a ClauseSet whose AND group holds preds.
func Where(preds ...Predicate) ClauseSet {
	return ClauseSet{and: preds}
}

// Join adds a join clause such as "JOIN t ON t.a = s.b". Repeated clauses
// are kept once.
func (c *ClauseSet) Join(clause string) {
	for _, j := range c.joins {
		if j == clause {
			return
		}
	}
	c.joins = append(c.joins, clause)
}

// And appends predicates to the AND group.
func (c *ClauseSet) And(preds ...Predicate) {
	c.and = append(c.and, preds...)
}

// Or appends predicates to the OR group.
func (c *ClauseSet) Or(preds ...Predicate) {
	c.or = append(c.or, preds...)
}

// Joins returns the deduplicated join clauses in insertion order.
func (c ClauseSet) Joins() []string {
	return append([]string(nil), c.joins...)
}

// render returns the join and WHERE part, each prefixed by a space, or ""
// when there is nothing to add.
func (c ClauseSet) render(b *binder) string {
	var sb strings.Builder
	for _, j := range c.joins {
		sb.WriteString(" ")
		sb.WriteString(j)
	}

	and := renderAll(c.and, b)
	or := renderAll(c.or, b)

	switch {
	case len(and) > 0 && len(or) > 0:
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(and, " AND "))
		sb.WriteString(" AND (")
		sb.WriteString(strings.Join(or, " OR "))
		sb.WriteString(")")
	case len(and) > 0:
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(and, " AND "))
	case len(or) > 0:
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(or, " OR "))
	}
	return sb.String()
}

func renderAll(preds []Predicate, b *binder) []string {
	out := make([]string, 0, len(preds))
	for _, p := range preds {
		out = append(out, p.render(b))
	}
	return out
}
