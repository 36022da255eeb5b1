package dialect

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/kanda123-lab/querygen/engine/models"
	"github.com/kanda123-lab/querygen/mapping"
)

// Oracle renders upper-cased "DOUBLE QUOTED" identifiers, ROWNUM or
// OFFSET/FETCH pagination and identity columns.
type Oracle struct{ base }

func (Oracle) Name() string { return mapping.Oracle }

func (Oracle) Quote(ident string) string { return pq.QuoteIdentifier(strings.ToUpper(ident)) }

// Oracle does not accept AS between a table and its alias.
func (Oracle) AliasSeparator() string { return " " }

func (Oracle) Paginate(limit, offset int) Pagination {
	if offset > 0 {
		return offsetFetch(limit, offset)
	}
	return Pagination{RowNum: limit}
}

func (Oracle) AutoIncrement(declaredType string) AutoIncrement {
	return AutoIncrement{Type: declaredType, Suffix: "GENERATED BY DEFAULT AS IDENTITY"}
}

func (Oracle) Comments() CommentStyle { return CommentsStatement }

func (Oracle) Explain(sql string) string { return "EXPLAIN PLAN FOR " + sql }

func (Oracle) SetOperator(op models.SetOperator) string {
	if op == models.Except {
		return "MINUS"
	}
	return string(op)
}

func (Oracle) RecursiveCTE() bool { return false }

func (Oracle) Placeholder() sq.PlaceholderFormat { return sq.Colon }
