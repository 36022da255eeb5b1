package builders

import (
	"fmt"
	"strings"

	"github.com/kanda123-lab/querygen/engine/dialect"
	"github.com/kanda123-lab/querygen/engine/models"
)

// ============================================================================
// INSERT
// ============================================================================

// insert renders INSERT INTO t (cols)\nVALUES (...), (...) plus the
// dialect's conflict handling. Row values are looked up by column name; a
// missing key renders as NULL.
func (r *render) insert(q *models.InsertQuery) (string, error) {
	if q.Table == nil || q.Table.Name == "" || q.Data == nil {
		return "", fmt.Errorf("%w: insert query requires table and data", ErrInvalidQuery)
	}
	data := q.Data
	if len(data.Columns) == 0 {
		return "", fmt.Errorf("%w: insert query requires at least one column", ErrInvalidQuery)
	}
	if len(data.Rows) == 0 {
		return "", fmt.Errorf("%w: insert query requires at least one row", ErrInvalidQuery)
	}

	conflict, err := r.conflict(data)
	if err != nil {
		return "", err
	}

	cols := r.quoteAll(data.Columns)
	rows := make([]string, len(data.Rows))
	for i, row := range data.Rows {
		values := make([]string, len(data.Columns))
		for j, col := range data.Columns {
			values[j] = r.value(row[col])
		}
		rows[i] = "(" + joinComma(values) + ")"
	}

	sql := fmt.Sprintf("%s %s (%s)\nVALUES %s",
		conflict.Verb, r.tableName(q.Table.Schema, q.Table.Name), joinComma(cols), joinComma(rows))
	if conflict.Suffix != "" {
		sql += "\n" + conflict.Suffix
	}
	return sql, nil
}

// conflict asks the dialect for the INSERT verb and suffix. The conflict
// target columns are never overwritten by an upsert.
func (r *render) conflict(data *models.InsertData) (dialect.Conflict, error) {
	mode := models.ConflictMode(strings.ToUpper(strings.TrimSpace(string(data.Conflict))))
	switch mode {
	case "NONE":
		mode = models.ConflictNone
	case models.ConflictNone, models.ConflictIgnore, models.ConflictUpdate, models.ConflictReplace:
	default:
		return dialect.Conflict{}, fmt.Errorf("%w: conflict mode %q", ErrInvalidQuery, data.Conflict)
	}

	target := make(map[string]bool, len(data.ConflictColumns))
	for _, col := range data.ConflictColumns {
		target[col] = true
	}
	var update []string
	for _, col := range data.Columns {
		if !target[col] {
			update = append(update, r.quote(col))
		}
	}

	conflict, err := r.dialect.Conflict(mode, r.quoteAll(data.ConflictColumns), update)
	if err != nil {
		if r.opts.LenientDialectGaps {
			return dialect.Conflict{Verb: "INSERT INTO"}, nil
		}
		return dialect.Conflict{}, fmt.Errorf("%s: %w", r.dialect.Name(), err)
	}
	return conflict, nil
}
