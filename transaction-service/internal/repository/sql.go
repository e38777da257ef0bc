package repository

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/salesdesk/txbrowser/transaction-service/internal/filter"
)

// sqlQuery accumulates positional arguments while a predicate is rendered.
type sqlQuery struct {
	args []any
}

func (q *sqlQuery) bind(v any) string {
	q.args = append(q.args, v)
	return fmt.Sprintf("$%d", len(q.args))
}

// where renders p as a parameterised SQL boolean expression.
func (q *sqlQuery) where(p filter.Predicate) (string, error) {
	switch p := p.(type) {
	case filter.And:
		return q.join(p, " AND ", "TRUE")
	case filter.Or:
		return q.join(p, " OR ", "FALSE")
	case filter.Eq:
		return fmt.Sprintf("%s = %s", p.Field.Column(), q.bind(p.Value)), nil
	case filter.In:
		return fmt.Sprintf("%s = ANY(%s)", p.Field.Column(), q.bind(pq.Array(p.Values))), nil
	case filter.Range:
		var parts []string
		if p.Min != nil {
			parts = append(parts, fmt.Sprintf("%s >= %s", p.Field.Column(), q.bind(p.Min)))
		}
		if p.Max != nil {
			parts = append(parts, fmt.Sprintf("%s <= %s", p.Field.Column(), q.bind(p.Max)))
		}
		if len(parts) == 0 {
			return "TRUE", nil
		}
		if len(parts) == 1 {
			return parts[0], nil
		}
		return "(" + strings.Join(parts, " AND ") + ")", nil
	case filter.Contains:
		return fmt.Sprintf(`%s ILIKE %s ESCAPE '\'`, p.Field.Column(), q.bind("%"+escapeLike(p.Substring)+"%")), nil
	default:
		return "", fmt.Errorf("unsupported predicate %T", p)
	}
}

func (q *sqlQuery) join(children []filter.Predicate, sep, empty string) (string, error) {
	if len(children) == 0 {
		return empty, nil
	}
	parts := make([]string, 0, len(children))
	for _, child := range children {
		part, err := q.where(child)
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return "(" + strings.Join(parts, sep) + ")", nil
}

func orderBy(keys []filter.SortKey) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		dir := "ASC"
		if k.Desc {
			dir = "DESC"
		}
		parts = append(parts, k.Field.Column()+" "+dir)
	}
	return strings.Join(parts, ", ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
