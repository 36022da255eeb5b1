package builders

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kanda123-lab/querygen/engine/models"
	"github.com/kanda123-lab/querygen/mapping"
)

// ============================================================================
// SELECT LIST
// ============================================================================

// selectList renders plain columns followed by window functions, or "*"
// when neither is declared.
func (r *render) selectList(q *models.SelectQuery) ([]string, error) {
	var cols []string
	for _, col := range q.Columns {
		rendered, err := r.selectColumn(col)
		if err != nil {
			return nil, err
		}
		cols = append(cols, rendered)
	}
	for _, wf := range q.WindowFunctions {
		rendered, err := r.windowFunction(wf)
		if err != nil {
			return nil, err
		}
		cols = append(cols, rendered)
	}
	if len(cols) == 0 {
		return []string{"*"}, nil
	}
	return cols, nil
}

// selectColumn renders [AGG(][table.]column[)][ AS alias], or a raw
// expression with its alias.
func (r *render) selectColumn(col models.SelectColumn) (string, error) {
	var expr string
	switch {
	case col.IsExpression:
		if strings.TrimSpace(col.Expression) == "" {
			return "", fmt.Errorf("%w: empty select expression", ErrInvalidQuery)
		}
		expr = col.Expression

	case col.Aggregate != "":
		agg := strings.ToUpper(string(col.Aggregate))
		if !mapping.IsAggregate(agg) {
			return "", fmt.Errorf("%w: aggregate %q", ErrInvalidQuery, col.Aggregate)
		}
		if agg == string(models.Count) && (col.Column == "*" || col.Column == "") {
			expr = "COUNT(*)"
		} else {
			if col.Column == "" {
				return "", fmt.Errorf("%w: %s needs a column", ErrInvalidQuery, agg)
			}
			expr = agg + "(" + r.column(col.Table, col.Column) + ")"
		}

	default:
		if col.Column == "" {
			return "", fmt.Errorf("%w: select column has no name", ErrInvalidQuery)
		}
		expr = r.column(col.Table, col.Column)
	}

	if col.Alias != "" {
		expr += " AS " + r.quote(col.Alias)
	}
	return expr, nil
}

// ============================================================================
// WINDOW FUNCTIONS
// ============================================================================

// windowFunction renders FUNC(args) OVER (PARTITION BY ... ORDER BY ...).
func (r *render) windowFunction(wf models.WindowFunction) (string, error) {
	name := mapping.NormalizeFunction(wf.Function)
	if !mapping.IsWindowFunction(name) {
		return "", fmt.Errorf("%w: window function %q", ErrInvalidQuery, wf.Function)
	}

	var args []string
	if mapping.WindowFunctionTakesColumn(name) {
		if wf.Column == "" {
			return "", fmt.Errorf("%w: %s needs a column", ErrInvalidQuery, name)
		}
		args = append(args, r.quote(wf.Column))
		if mapping.WindowFunctionHasOffset(name) && wf.Offset > 0 {
			args = append(args, strconv.Itoa(wf.Offset))
		}
	}
	if mapping.WindowFunctionHasBuckets(name) {
		if wf.Buckets <= 0 {
			return "", fmt.Errorf("%w: NTILE needs a positive bucket count", ErrInvalidQuery)
		}
		args = append(args, strconv.Itoa(wf.Buckets))
	}

	var over []string
	if len(wf.PartitionBy) > 0 {
		over = append(over, "PARTITION BY "+joinComma(r.quoteAll(wf.PartitionBy)))
	}
	if len(wf.OrderBy) > 0 {
		order, err := r.orderBy(wf.OrderBy)
		if err != nil {
			return "", err
		}
		over = append(over, "ORDER BY "+order)
	}

	expr := fmt.Sprintf("%s(%s) OVER (%s)", name, joinComma(args), strings.Join(over, " "))
	if wf.Alias != "" {
		expr += " AS " + r.quote(wf.Alias)
	}
	return expr, nil
}

// ============================================================================
// ORDER BY
// ============================================================================

func (r *render) orderBy(items []models.OrderBy) (string, error) {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if item.Column == "" {
			return "", fmt.Errorf("%w: order by column has no name", ErrInvalidQuery)
		}

		dir := models.SortDirection(strings.ToUpper(string(item.Direction)))
		switch dir {
		case "":
			dir = models.Ascending
		case models.Ascending, models.Descending:
		default:
			return "", fmt.Errorf("%w: sort direction %q", ErrInvalidQuery, item.Direction)
		}

		part := r.column(item.Table, item.Column) + " " + string(dir)
		switch nulls := models.NullsOrder(strings.ToUpper(string(item.Nulls))); nulls {
		case "":
		case models.NullsFirst, models.NullsLast:
			part += " NULLS " + string(nulls)
		default:
			return "", fmt.Errorf("%w: nulls order %q", ErrInvalidQuery, item.Nulls)
		}
		parts = append(parts, part)
	}
	return joinComma(parts), nil
}
