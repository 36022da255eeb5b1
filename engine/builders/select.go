package builders

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kanda123-lab/querygen/engine/dialect"
	"github.com/kanda123-lab/querygen/engine/models"
)

// ============================================================================
// SELECT
// ============================================================================

// selectQuery assembles, in order: WITH preamble, SELECT list, FROM, JOINs,
// WHERE, GROUP BY, HAVING, ORDER BY, pagination and set operations.
func (r *render) selectQuery(q *models.SelectQuery) (string, error) {
	if q == nil {
		return "", fmt.Errorf("%w: select query is empty", ErrInvalidQuery)
	}
	if r.depth >= r.opts.MaxDepth {
		return "", fmt.Errorf("%w (limit %d)", ErrMaxDepthExceeded, r.opts.MaxDepth)
	}

	var with string
	if len(q.CTEs) > 0 {
		var err error
		if with, err = r.ctes(q.CTEs); err != nil {
			return "", err
		}
	}

	var page dialect.Pagination
	if q.Limit > 0 {
		page = r.dialect.Paginate(q.Limit, q.Offset)
	}
	trailing := r.opts.TrailingPagination

	head := "SELECT"
	if q.Distinct {
		head += " DISTINCT"
	}
	if page.Top > 0 && !trailing {
		head += " TOP " + strconv.Itoa(page.Top)
	}
	cols, err := r.selectList(q)
	if err != nil {
		return "", err
	}
	lines := []string{head + " " + strings.Join(cols, ",\n  ")}

	if len(q.Tables) > 0 {
		lines = append(lines, "FROM "+r.tableRef(q.Tables[0]))
	}
	if len(q.Joins) > 0 {
		joins, err := r.joins(q)
		if err != nil {
			return "", err
		}
		lines = append(lines, joins...)
	}

	wrapRowNum := page.RowNum > 0 && !trailing && rowNumNeedsWrap(q)
	rowNumInWhere := page.RowNum > 0 && !trailing && !wrapRowNum

	where, err := r.conditions(q.Where)
	if err != nil {
		return "", err
	}
	if rowNumInWhere {
		rowNum := "ROWNUM <= " + strconv.Itoa(page.RowNum)
		switch {
		case where == "":
			where = rowNum
		case len(q.Where) > 1:
			where = "(" + where + ") AND " + rowNum
		default:
			where += " AND " + rowNum
		}
	}
	if where != "" {
		lines = append(lines, "WHERE "+where)
	}

	if len(q.GroupBy) > 0 {
		lines = append(lines, "GROUP BY "+joinComma(q.GroupBy))
	}
	if len(q.Having) > 0 {
		having, err := r.conditions(q.Having)
		if err != nil {
			return "", err
		}
		lines = append(lines, "HAVING "+having)
	}
	if len(q.OrderBy) > 0 {
		order, err := r.orderBy(q.OrderBy)
		if err != nil {
			return "", err
		}
		lines = append(lines, "ORDER BY "+order)
	}

	switch {
	case page.Clause != "":
		lines = append(lines, page.Clause)
	case trailing && page.Top > 0:
		lines = append(lines, "TOP "+strconv.Itoa(page.Top))
	case trailing && page.RowNum > 0:
		lines = append(lines, "ROWNUM <= "+strconv.Itoa(page.RowNum))
	}

	body := strings.Join(lines, "\n")
	for _, u := range q.Unions {
		block, err := r.setOperation(u)
		if err != nil {
			return "", err
		}
		body += "\n" + block
	}
	if wrapRowNum {
		body = "SELECT *\nFROM (\n" + body + "\n)\nWHERE ROWNUM <= " + strconv.Itoa(page.RowNum)
	}

	if with != "" {
		return with + "\n" + body, nil
	}
	return body, nil
}

// rowNumNeedsWrap reports whether ROWNUM must filter the finished result
// instead of the base rows. ROWNUM is assigned before ORDER BY, grouping,
// DISTINCT, window functions and set operations run.
func rowNumNeedsWrap(q *models.SelectQuery) bool {
	if len(q.OrderBy) > 0 || len(q.GroupBy) > 0 || len(q.Having) > 0 ||
		q.Distinct || len(q.WindowFunctions) > 0 || len(q.Unions) > 0 {
		return true
	}
	for _, c := range q.Columns {
		if c.Aggregate != "" {
			return true
		}
	}
	return false
}

// ctes renders WITH [RECURSIVE] a AS (...), b AS (...).
func (r *render) ctes(ctes []models.CTE) (string, error) {
	recursive := false
	parts := make([]string, 0, len(ctes))
	for _, cte := range ctes {
		if cte.Name == "" {
			return "", fmt.Errorf("%w: CTE has no name", ErrInvalidQuery)
		}
		if cte.Query == nil {
			return "", fmt.Errorf("%w: CTE %q has no query", ErrInvalidQuery, cte.Name)
		}
		sub, err := r.nested(cte.Query)
		if err != nil {
			return "", fmt.Errorf("cte %q: %w", cte.Name, err)
		}
		recursive = recursive || cte.Recursive
		parts = append(parts, r.quote(cte.Name)+" AS (\n"+sub+"\n)")
	}

	keyword := "WITH "
	if recursive && r.dialect.RecursiveCTE() {
		keyword = "WITH RECURSIVE "
	}
	return keyword + strings.Join(parts, ",\n"), nil
}

// setOperation renders a UNION/INTERSECT/EXCEPT block.
func (r *render) setOperation(u models.Union) (string, error) {
	op := models.SetOperator(strings.ToUpper(strings.TrimSpace(string(u.Operator))))
	switch op {
	case "":
		op = models.UnionDistinct
	case models.UnionDistinct, models.UnionAll, models.Intersect, models.Except:
	default:
		return "", fmt.Errorf("%w: set operator %q", ErrUnsupportedOperator, u.Operator)
	}
	if u.Query == nil {
		return "", fmt.Errorf("%w: %s has no query", ErrInvalidQuery, op)
	}

	sub, err := r.nested(u.Query)
	if err != nil {
		return "", err
	}
	return r.dialect.SetOperator(op) + "\n" + sub, nil
}
