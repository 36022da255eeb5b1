package dialect

import (
	"github.com/lib/pq"

	"github.com/kanda123-lab/querygen/engine/models"
	"github.com/kanda123-lab/querygen/mapping"
)

// SQLite renders "double quoted" identifiers. An auto-increment column
// becomes INTEGER PRIMARY KEY AUTOINCREMENT, the only form SQLite accepts.
type SQLite struct{ base }

func (SQLite) Name() string { return mapping.SQLite }

func (SQLite) Quote(ident string) string { return pq.QuoteIdentifier(ident) }

func (SQLite) AutoIncrement(string) AutoIncrement {
	return AutoIncrement{Type: "INTEGER", Suffix: "PRIMARY KEY AUTOINCREMENT", InlinePrimaryKey: true}
}

func (SQLite) Conflict(mode models.ConflictMode, target, updateColumns []string) (Conflict, error) {
	return onConflict(mode, target, updateColumns, "excluded", true)
}

func (SQLite) Explain(sql string) string { return "EXPLAIN QUERY PLAN " + sql }
