package builders

import (
	"fmt"
	"strings"

	"github.com/kanda123-lab/querygen/engine/models"
	"github.com/kanda123-lab/querygen/mapping"
)

// ============================================================================
// JOINS
// ============================================================================

// joins renders every join of q, one per line. Both sides are resolved
// against q.Tables; a join that cannot be resolved fails the whole query.
func (r *render) joins(q *models.SelectQuery) ([]string, error) {
	lines := make([]string, 0, len(q.Joins))
	for i, join := range q.Joins {
		line, err := r.join(join, q.Tables)
		if err != nil {
			return nil, fmt.Errorf("join %d: %w", i+1, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (r *render) join(join models.Join, tables []models.Table) (string, error) {
	joinType := strings.ToUpper(strings.TrimSpace(string(join.Type)))
	if joinType == "" {
		joinType = string(models.InnerJoin)
	}
	keyword, ok := mapping.JoinKeywords[joinType]
	if !ok {
		return "", fmt.Errorf("%w: join type %q", ErrInvalidQuery, join.Type)
	}

	left, err := resolveTable(join.LeftTableID, tables)
	if err != nil {
		return "", err
	}
	right, err := resolveTable(join.RightTableID, tables)
	if err != nil {
		return "", err
	}

	line := keyword + " " + r.tableRef(right)
	if joinType == string(models.CrossJoin) {
		return line, nil
	}
	if len(join.Conditions) == 0 {
		return "", fmt.Errorf("%w: %s needs at least one condition", ErrInvalidQuery, keyword)
	}

	on := make([]string, 0, len(join.Conditions))
	for _, cond := range join.Conditions {
		op := strings.TrimSpace(cond.Operator)
		if op == "" {
			op = "="
		}
		if !mapping.JoinOperators[op] {
			return "", fmt.Errorf("%w: join operator %q", ErrUnsupportedOperator, cond.Operator)
		}
		on = append(on, fmt.Sprintf("%s %s %s",
			r.column(left.Ref(), cond.LeftColumn), op, r.column(right.Ref(), cond.RightColumn)))
	}
	return line + " ON " + strings.Join(on, " AND "), nil
}

// resolveTable finds a table by ID. Descriptions written without IDs may
// refer to a table by a unique name instead.
func resolveTable(id string, tables []models.Table) (models.Table, error) {
	if id == "" {
		return models.Table{}, fmt.Errorf("%w: join references an empty table id", ErrUnknownTable)
	}
	for _, t := range tables {
		if t.ID == id {
			return t, nil
		}
	}

	var match *models.Table
	for i := range tables {
		if tables[i].ID == "" && tables[i].Name == id {
			if match != nil {
				return models.Table{}, fmt.Errorf("%w: %q is ambiguous", ErrUnknownTable, id)
			}
			match = &tables[i]
		}
	}
	if match == nil {
		return models.Table{}, fmt.Errorf("%w: %q", ErrUnknownTable, id)
	}
	return *match, nil
}
