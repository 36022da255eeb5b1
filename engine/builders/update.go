package builders

import (
	"fmt"

	"github.com/kanda123-lab/querygen/engine/models"
)

// ============================================================================
// UPDATE
// ============================================================================

func (r *render) update(q *models.UpdateQuery) (string, error) {
	if q.Table == nil || q.Table.Name == "" || q.Data == nil {
		return "", fmt.Errorf("%w: update query requires table and data", ErrInvalidQuery)
	}
	if len(q.Data.Assignments) == 0 {
		return "", fmt.Errorf("%w: update query requires at least one assignment", ErrInvalidQuery)
	}

	sets := make([]string, len(q.Data.Assignments))
	for i, a := range q.Data.Assignments {
		if a.Column == "" {
			return "", fmt.Errorf("%w: assignment %d has no column", ErrInvalidQuery, i+1)
		}
		value := a.Expression
		if !a.IsExpression {
			value = r.value(a.Value)
		}
		sets[i] = r.quote(a.Column) + " = " + value
	}

	sql := "UPDATE " + r.tableName(q.Table.Schema, q.Table.Name) + "\nSET " + joinComma(sets)
	return r.withWhere(sql, q.Where)
}

// withWhere appends "\nWHERE ..." when there are conditions.
func (r *render) withWhere(sql string, where []models.Condition) (string, error) {
	if len(where) == 0 {
		return sql, nil
	}
	conds, err := r.conditions(where)
	if err != nil {
		return "", err
	}
	return sql + "\nWHERE " + conds, nil
}
