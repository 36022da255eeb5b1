package dialect

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanda123-lab/querygen/engine/models"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		dialect Dialect
		in      string
		want    string
	}{
		{PostgreSQL{}, "foo", `"foo"`},
		{SQLite{}, "foo", `"foo"`},
		{MySQL{}, "foo", "`foo`"},
		{MSSQL{}, "foo", "[foo]"},
		{Oracle{}, "foo", `"FOO"`},
		{Generic{}, "foo", "foo"},

		{PostgreSQL{}, `we"ird`, `"we""ird"`},
		{SQLite{}, `we"ird`, `"we""ird"`},
		{MySQL{}, "we`ird", "`we``ird`"},
		{MSSQL{}, "we]ird", "[we]]ird]"},
		{Oracle{}, `we"ird`, `"WE""IRD"`},
	}
	for _, tt := range tests {
		t.Run(tt.dialect.Name()+"/"+tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dialect.Quote(tt.in))
		})
	}
}

func TestLookup(t *testing.T) {
	for alias, want := range map[string]string{
		"postgresql": "postgresql",
		"Postgres":   "postgresql",
		"mysql":      "mysql",
		"sqlite":     "sqlite",
		"mssql":      "mssql",
		"sqlserver":  "mssql",
		"oracle":     "oracle",
	} {
		d, err := Lookup(alias)
		require.NoError(t, err, alias)
		assert.Equal(t, want, d.Name())
	}

	_, err := Lookup("db2")
	assert.ErrorIs(t, err, ErrUnsupportedDialect)
}

func TestAllKeepsOrder(t *testing.T) {
	var names []string
	for _, d := range All() {
		names = append(names, d.Name())
	}
	assert.Equal(t, []string{"postgresql", "mysql", "sqlite", "mssql", "oracle"}, names)
}

func TestPaginate(t *testing.T) {
	fetch := "OFFSET 20 ROWS FETCH NEXT 10 ROWS ONLY"
	for _, d := range []Dialect{PostgreSQL{}, MySQL{}, SQLite{}, Generic{}} {
		assert.Equal(t, Pagination{Clause: "LIMIT 10 OFFSET 20"}, d.Paginate(10, 20), d.Name())
		assert.Equal(t, Pagination{Clause: "LIMIT 10"}, d.Paginate(10, 0), d.Name())
	}

	assert.Equal(t, Pagination{Clause: fetch}, MSSQL{}.Paginate(10, 20))
	assert.Equal(t, Pagination{Top: 10}, MSSQL{}.Paginate(10, 0))
	assert.Equal(t, Pagination{Clause: fetch}, Oracle{}.Paginate(10, 20))
	assert.Equal(t, Pagination{RowNum: 10}, Oracle{}.Paginate(10, 0))
}

func TestAutoIncrement(t *testing.T) {
	assert.Equal(t, AutoIncrement{Type: "SERIAL"}, PostgreSQL{}.AutoIncrement("INTEGER"))
	assert.Equal(t, AutoIncrement{Type: "BIGSERIAL"}, PostgreSQL{}.AutoIncrement("bigint"))
	assert.Equal(t, AutoIncrement{Type: "INT", Suffix: "AUTO_INCREMENT"}, MySQL{}.AutoIncrement("INT"))
	assert.Equal(t, AutoIncrement{Type: "INTEGER", Suffix: "PRIMARY KEY AUTOINCREMENT", InlinePrimaryKey: true}, SQLite{}.AutoIncrement("INT"))
	assert.Equal(t, AutoIncrement{Type: "INT", Suffix: "IDENTITY(1,1)"}, MSSQL{}.AutoIncrement("INT"))
	assert.Equal(t, AutoIncrement{Type: "NUMBER", Suffix: "GENERATED BY DEFAULT AS IDENTITY"}, Oracle{}.AutoIncrement("NUMBER"))
	assert.Equal(t, AutoIncrement{Type: "INT"}, Generic{}.AutoIncrement("INT"))
}

func TestConflict(t *testing.T) {
	target := []string{`"id"`}
	cols := []string{`"name"`, `"email"`}

	tests := []struct {
		name    string
		dialect Dialect
		mode    models.ConflictMode
		target  []string
		want    Conflict
	}{
		{"pg none", PostgreSQL{}, models.ConflictNone, nil, Conflict{Verb: "INSERT INTO"}},
		{"pg ignore", PostgreSQL{}, models.ConflictIgnore, nil, Conflict{Verb: "INSERT INTO", Suffix: "ON CONFLICT DO NOTHING"}},
		{"pg update", PostgreSQL{}, models.ConflictUpdate, target, Conflict{
			Verb:   "INSERT INTO",
			Suffix: `ON CONFLICT ("id") DO UPDATE SET "name" = EXCLUDED."name", "email" = EXCLUDED."email"`,
		}},
		{"sqlite ignore", SQLite{}, models.ConflictIgnore, nil, Conflict{Verb: "INSERT OR IGNORE INTO"}},
		{"sqlite replace", SQLite{}, models.ConflictReplace, nil, Conflict{Verb: "INSERT OR REPLACE INTO"}},
		{"sqlite update", SQLite{}, models.ConflictUpdate, target, Conflict{
			Verb:   "INSERT INTO",
			Suffix: `ON CONFLICT ("id") DO UPDATE SET "name" = excluded."name", "email" = excluded."email"`,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.dialect.Conflict(tt.mode, tt.target, cols)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("mysql", func(t *testing.T) {
		mysqlCols := []string{"`name`", "`email`"}
		got, err := MySQL{}.Conflict(models.ConflictIgnore, nil, mysqlCols)
		require.NoError(t, err)
		assert.Equal(t, "INSERT IGNORE INTO", got.Verb)

		got, err = MySQL{}.Conflict(models.ConflictUpdate, nil, mysqlCols)
		require.NoError(t, err)
		assert.Equal(t, "ON DUPLICATE KEY UPDATE `name` = VALUES(`name`), `email` = VALUES(`email`)", got.Suffix)

		got, err = MySQL{}.Conflict(models.ConflictReplace, nil, mysqlCols)
		require.NoError(t, err)
		assert.Equal(t, "REPLACE INTO", got.Verb)
	})

	t.Run("unsupported", func(t *testing.T) {
		for _, d := range []Dialect{MSSQL{}, Oracle{}, Generic{}} {
			_, err := d.Conflict(models.ConflictIgnore, nil, cols)
			assert.ErrorIs(t, err, ErrUnsupportedFeature, d.Name())
		}
		_, err := PostgreSQL{}.Conflict(models.ConflictReplace, nil, cols)
		assert.ErrorIs(t, err, ErrUnsupportedFeature)
	})
}

func TestExplain(t *testing.T) {
	sql := "SELECT 1"
	assert.Equal(t, "EXPLAIN ANALYZE SELECT 1", PostgreSQL{}.Explain(sql))
	assert.Equal(t, "EXPLAIN SELECT 1", MySQL{}.Explain(sql))
	assert.Equal(t, "EXPLAIN QUERY PLAN SELECT 1", SQLite{}.Explain(sql))
	assert.Equal(t, "SET SHOWPLAN_ALL ON;\nSELECT 1", MSSQL{}.Explain(sql))
	assert.Equal(t, "EXPLAIN PLAN FOR SELECT 1", Oracle{}.Explain(sql))
	assert.Equal(t, "EXPLAIN SELECT 1", Generic{}.Explain(sql))
}

func TestSetOperatorAndCTE(t *testing.T) {
	assert.Equal(t, "MINUS", Oracle{}.SetOperator(models.Except))
	assert.Equal(t, "EXCEPT", PostgreSQL{}.SetOperator(models.Except))
	assert.Equal(t, "UNION ALL", MSSQL{}.SetOperator(models.UnionAll))

	assert.True(t, PostgreSQL{}.RecursiveCTE())
	assert.True(t, MySQL{}.RecursiveCTE())
	assert.True(t, SQLite{}.RecursiveCTE())
	assert.False(t, MSSQL{}.RecursiveCTE())
	assert.False(t, Oracle{}.RecursiveCTE())
}

func TestPlaceholder(t *testing.T) {
	tests := []struct {
		dialect Dialect
		want    string
	}{
		{PostgreSQL{}, "a = $1 AND b = $2"},
		{MySQL{}, "a = ? AND b = ?"},
		{SQLite{}, "a = ? AND b = ?"},
		{MSSQL{}, "a = @p1 AND b = @p2"},
		{Oracle{}, "a = :1 AND b = :2"},
	}
	for _, tt := range tests {
		got, err := tt.dialect.Placeholder().ReplacePlaceholders("a = ? AND b = ?")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.dialect.Name())
	}
	assert.Equal(t, sq.Question, Generic{}.Placeholder())
}

func TestComments(t *testing.T) {
	assert.Equal(t, CommentsInline, MySQL{}.Comments())
	assert.Equal(t, CommentsStatement, PostgreSQL{}.Comments())
	assert.Equal(t, CommentsStatement, Oracle{}.Comments())
	assert.Equal(t, CommentsUnsupported, SQLite{}.Comments())
	assert.Equal(t, CommentsUnsupported, MSSQL{}.Comments())
}

func TestAliasSeparator(t *testing.T) {
	assert.Equal(t, " AS ", PostgreSQL{}.AliasSeparator())
	assert.Equal(t, " ", Oracle{}.AliasSeparator())
}
