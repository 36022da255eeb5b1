package dialect

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/kanda123-lab/querygen/engine/models"
	"github.com/kanda123-lab/querygen/mapping"
)

// PostgreSQL renders "double quoted" identifiers, SERIAL columns and
// ON CONFLICT upserts.
type PostgreSQL struct{ base }

func (PostgreSQL) Name() string { return mapping.PostgreSQL }

func (PostgreSQL) Quote(ident string) string {
	return pgx.Identifier{ident}.Sanitize()
}

func (PostgreSQL) AutoIncrement(declaredType string) AutoIncrement {
	return AutoIncrement{Type: mapping.SerialType(declaredType)}
}

func (PostgreSQL) Conflict(mode models.ConflictMode, target, updateColumns []string) (Conflict, error) {
	return onConflict(mode, target, updateColumns, "EXCLUDED", false)
}

func (PostgreSQL) Comments() CommentStyle { return CommentsStatement }

func (PostgreSQL) Explain(sql string) string { return "EXPLAIN ANALYZE " + sql }

func (PostgreSQL) Placeholder() sq.PlaceholderFormat { return sq.Dollar }

// onConflict renders the ON CONFLICT upsert shared by PostgreSQL and SQLite.
// SQLite additionally supports INSERT OR IGNORE/REPLACE verbs.
func onConflict(mode models.ConflictMode, target, updateColumns []string, excluded string, orVerbs bool) (Conflict, error) {
	clause := "ON CONFLICT"
	if len(target) > 0 {
		clause += " (" + joinList(target) + ")"
	}

	switch mode {
	case models.ConflictNone:
		return Conflict{Verb: "INSERT INTO"}, nil
	case models.ConflictIgnore:
		if orVerbs {
			return Conflict{Verb: "INSERT OR IGNORE INTO"}, nil
		}
		return Conflict{Verb: "INSERT INTO", Suffix: clause + " DO NOTHING"}, nil
	case models.ConflictUpdate:
		if len(updateColumns) == 0 {
			return Conflict{Verb: "INSERT INTO", Suffix: clause + " DO NOTHING"}, nil
		}
		set := assignments(updateColumns, func(col string) string { return excluded + "." + col })
		return Conflict{Verb: "INSERT INTO", Suffix: clause + " DO UPDATE SET " + set}, nil
	case models.ConflictReplace:
		if orVerbs {
			return Conflict{Verb: "INSERT OR REPLACE INTO"}, nil
		}
	}
	return Conflict{}, unsupported("ON CONFLICT " + string(mode))
}
