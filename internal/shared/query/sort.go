package query

import (
	"strings"

	"github.com/lib/pq"
)

// SortField is one resolved ORDER BY term.
type SortField struct {
	Column string
	Desc   bool
}

// ParseOrderBy parses a comma separated list of field_direction tokens
// ("name_asc,createdAt_desc"). Fields missing from allowed are dropped; allowed
// maps the public field name to its column. A direction other than "desc"
// sorts ascending. A repeated field keeps its first position and takes the
// last direction given.
func ParseOrderBy(raw string, allowed map[string]string) []SortField {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var fields []SortField
	position := make(map[string]int)
	for _, token := range strings.Split(raw, ",") {
		parts := strings.Split(strings.TrimSpace(token), "_")
		column, ok := allowed[parts[0]]
		if !ok {
			continue
		}
		desc := len(parts) > 1 && parts[1] == "desc"
		if i, seen := position[column]; seen {
			fields[i].Desc = desc
			continue
		}
		position[column] = len(fields)
		fields = append(fields, SortField{Column: column, Desc: desc})
	}
	return fields
}

// OrderByClause renders fields as an ORDER BY clause. When fields is empty the
// fallback is used. tieBreaker, if set, is appended to keep paging stable.
func OrderByClause(fields, fallback []SortField, tieBreaker string) string {
	if len(fields) == 0 {
		fields = fallback
	}

	terms := make([]string, 0, len(fields)+1)
	for _, f := range fields {
		direction := "ASC"
		if f.Desc {
			direction = "DESC"
		}
		terms = append(terms, pq.QuoteIdentifier(f.Column)+" "+direction)
	}
	if tieBreaker != "" {
		terms = append(terms, pq.QuoteIdentifier(tieBreaker)+" ASC")
	}
	if len(terms) == 0 {
		return ""
	}
	return " ORDER BY " + strings.Join(terms, ", ")
}
