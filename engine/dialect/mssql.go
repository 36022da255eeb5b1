package dialect

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/kanda123-lab/querygen/mapping"
)

// MSSQL renders SQL Server: [bracketed] identifiers, TOP n or
// OFFSET/FETCH pagination and IDENTITY columns.
type MSSQL struct{ base }

func (MSSQL) Name() string { return mapping.MSSQL }

func (MSSQL) Quote(ident string) string { return quoteWith(ident, "[", "]") }

func (MSSQL) Paginate(limit, offset int) Pagination {
	if offset > 0 {
		return offsetFetch(limit, offset)
	}
	return Pagination{Top: limit}
}

func (MSSQL) AutoIncrement(declaredType string) AutoIncrement {
	return AutoIncrement{Type: declaredType, Suffix: "IDENTITY(1,1)"}
}

func (MSSQL) Explain(sql string) string { return "SET SHOWPLAN_ALL ON;\n" + sql }

// SQL Server has no RECURSIVE keyword; a CTE that references itself is
// recursive implicitly.
func (MSSQL) RecursiveCTE() bool { return false }

func (MSSQL) Placeholder() sq.PlaceholderFormat { return sq.AtP }
