package builders

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// timestampLayout is ISO-8601 in UTC with milliseconds.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatValue renders v as a SQL literal:
//   - nil -> NULL
//   - string -> 'quoted', embedded quotes doubled
//   - bool -> TRUE / FALSE
//   - time.Time -> quoted ISO-8601 UTC timestamp
//   - anything else -> its string conversion, unquoted
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return QuoteString(val)
	case []byte:
		return QuoteString(string(val))
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case time.Time:
		return QuoteString(val.UTC().Format(timestampLayout))
	case *time.Time:
		if val == nil {
			return "NULL"
		}
		return QuoteString(val.UTC().Format(timestampLayout))
	case json.Number:
		return val.String()
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}

// QuoteString single-quotes s, doubling embedded single quotes.
func QuoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// listValues flattens a slice or array into its elements. Any other value,
// including []byte, is a one-element list.
func listValues(v any) []any {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return []any{nil}
	}
	if _, isBytes := v.([]byte); isBytes {
		return []any{v}
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{v}
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
