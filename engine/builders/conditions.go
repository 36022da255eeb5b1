package builders

import (
	"fmt"
	"strings"

	"github.com/kanda123-lab/querygen/engine/models"
	"github.com/kanda123-lab/querygen/mapping"
)

// ============================================================================
// WHERE / HAVING
// ============================================================================

// conditions renders a condition list in order. Every condition after the
// first must carry its AND/OR connective. Group markers are emitted as
// given; their balance is not checked.
func (r *render) conditions(conds []models.Condition) (string, error) {
	var sb strings.Builder
	for i, cond := range conds {
		if i > 0 {
			conn := models.Connective(strings.ToUpper(strings.TrimSpace(string(cond.Connective))))
			if conn != models.And && conn != models.Or {
				return "", fmt.Errorf("%w: condition %d on %q has no AND/OR connective", ErrInvalidQuery, i+1, cond.Column)
			}
			sb.WriteString(" " + string(conn) + " ")
		}
		if cond.GroupStart {
			sb.WriteString("(")
		}

		pred, err := r.predicate(cond)
		if err != nil {
			return "", err
		}
		sb.WriteString(pred)

		if cond.GroupEnd {
			sb.WriteString(")")
		}
	}
	return sb.String(), nil
}

// predicate renders one condition without connective or grouping.
func (r *render) predicate(cond models.Condition) (string, error) {
	if cond.Column == "" {
		return "", fmt.Errorf("%w: condition has no column", ErrInvalidQuery)
	}
	op := strings.ToUpper(strings.TrimSpace(string(cond.Operator)))
	category := mapping.GetOperatorCategory(op)
	if category == "" {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedOperator, cond.Operator)
	}
	col := r.column(cond.Table, cond.Column)

	if category == mapping.CategoryNullCheck {
		return col + " " + op, nil
	}

	if cond.Subquery != nil {
		if category == mapping.CategoryRange {
			return "", fmt.Errorf("%w: %s takes two values, not a subquery", ErrInvalidQuery, op)
		}
		sub, err := r.nested(cond.Subquery)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s (%s)", col, op, sub), nil
	}

	switch category {
	case mapping.CategoryMultiValue:
		items := listValues(cond.Value)
		if len(items) == 0 {
			return "", fmt.Errorf("%w: %s on %s needs at least one value", ErrInvalidQuery, op, cond.Column)
		}
		values := make([]string, len(items))
		for i, item := range items {
			values[i] = r.value(item)
		}
		return fmt.Sprintf("%s %s (%s)", col, op, joinComma(values)), nil

	case mapping.CategoryRange:
		return fmt.Sprintf("%s BETWEEN %s AND %s", col, r.value(cond.Value), r.value(cond.Value2)), nil

	default:
		return fmt.Sprintf("%s %s %s", col, op, r.value(cond.Value)), nil
	}
}
