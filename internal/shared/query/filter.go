package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"restaurant-review-backend/internal/shared/apperror"
)

const ErrCodeInvalidID = "INVALID_ID"

// Where accumulates AND-ed conditions with positional ($n) arguments.
type Where struct {
	conds []string
	args  []interface{}
}

// Arg registers a value and returns its placeholder.
func (w *Where) Arg(v interface{}) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

// Add appends a condition. Every %s in cond is replaced, in order, by the
// placeholder of the matching value.
func (w *Where) Add(cond string, values ...interface{}) {
	placeholders := make([]interface{}, len(values))
	for i, v := range values {
		placeholders[i] = w.Arg(v)
	}
	w.conds = append(w.conds, fmt.Sprintf(cond, placeholders...))
}

// SQL returns " WHERE ..." or an empty string.
func (w *Where) SQL() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func (w *Where) Args() []interface{} {
	return w.args
}

// Len is the number of arguments registered so far.
func (w *Where) Len() int {
	return len(w.args)
}

// ContainsPattern turns s into an ILIKE pattern matching it as a literal substring.
func ContainsPattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// ParseID validates an externally supplied identifier.
func ParseID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, apperror.Validation(ErrCodeInvalidID, fmt.Sprintf("%s is not a valid id format.", field))
	}
	return id, nil
}

// OptionalInt parses raw as an integer filter. Empty or non-numeric input yields nil.
func OptionalInt(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

// OptionalFloat parses raw as a numeric filter. Empty or non-numeric input yields nil.
func OptionalFloat(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// TriState maps "1" to true, "0" to false and anything else to unset.
func TriState(raw string) *bool {
	switch strings.TrimSpace(raw) {
	case "1":
		v := true
		return &v
	case "0":
		v := false
		return &v
	default:
		return nil
	}
}
