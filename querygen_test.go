package querygen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kanda123-lab/querygen/engine/dialect"
	"github.com/kanda123-lab/querygen/engine/models"
	"github.com/kanda123-lab/querygen/pkg/logger"
)

func usersSelect() *models.SelectQuery {
	return &models.SelectQuery{
		Tables:  []models.Table{{ID: "t1", Name: "users"}},
		Columns: []models.SelectColumn{{Column: "id"}, {Column: "name"}},
		Where:   []models.Condition{{Column: "age", Operator: models.OpGreater, Value: 18}},
		OrderBy: []models.OrderBy{{Column: "name", Direction: models.Ascending}},
		Limit:   10,
	}
}

const usersSelectPostgres = "SELECT \"id\",\n  \"name\"\nFROM \"users\"\nWHERE \"age\" > 18\nORDER BY \"name\" ASC\nLIMIT 10"

func TestNew(t *testing.T) {
	for _, name := range []string{"mysql", "postgresql", "sqlite", "mssql", "oracle", "postgres", "sqlserver"} {
		g, err := New(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, g.Dialect())
	}

	g, err := New("postgres")
	require.NoError(t, err)
	assert.Equal(t, "postgresql", g.Dialect())

	_, err = New("db2")
	assert.ErrorIs(t, err, ErrUnsupportedDialect)
}

func TestGenerateSQL(t *testing.T) {
	g, err := New("postgresql")
	require.NoError(t, err)

	sql, err := g.GenerateSQL(usersSelect())
	require.NoError(t, err)
	assert.Equal(t, usersSelectPostgres, sql)

	_, err = g.GenerateSQL(nil)
	assert.ErrorIs(t, err, ErrUnsupportedQueryType)
}

func TestGenerateExplainSQL(t *testing.T) {
	tests := []struct {
		dialect string
		prefix  string
	}{
		{"postgresql", "EXPLAIN ANALYZE SELECT"},
		{"mysql", "EXPLAIN SELECT"},
		{"sqlite", "EXPLAIN QUERY PLAN SELECT"},
		{"mssql", "SET SHOWPLAN_ALL ON;\nSELECT"},
		{"oracle", "EXPLAIN PLAN FOR SELECT"},
	}
	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			g, err := New(tt.dialect)
			require.NoError(t, err)
			sql, err := g.GenerateExplainSQL(usersSelect())
			require.NoError(t, err)
			assert.True(t, len(sql) > len(tt.prefix) && sql[:len(tt.prefix)] == tt.prefix, sql)
		})
	}

	sql, err := NewWithDialect(dialect.Generic{}).GenerateExplainSQL(usersSelect())
	require.NoError(t, err)
	assert.Equal(t, "EXPLAIN SELECT id,\n  name\nFROM users\nWHERE age > 18\nORDER BY name ASC\nLIMIT 10", sql)
}

func TestGenerateReadableExplanation(t *testing.T) {
	g, err := New("mysql")
	require.NoError(t, err)

	text := g.GenerateReadableExplanation(usersSelect())
	assert.Contains(t, text, "users")
	assert.Contains(t, text, "10 rows")

	assert.NotPanics(t, func() { g.GenerateReadableExplanation(nil) })
	assert.NotEmpty(t, g.Warnings(&models.DeleteQuery{Table: &models.Table{Name: "logs"}}))
}

func TestGenerateParameterized(t *testing.T) {
	g, err := New("postgresql")
	require.NoError(t, err)

	sql, args, err := g.GenerateParameterized(usersSelect())
	require.NoError(t, err)
	assert.Contains(t, sql, `WHERE "age" > $1`)
	assert.Equal(t, []any{18}, args)
}

func TestOptions(t *testing.T) {
	q := &models.SelectQuery{Tables: []models.Table{{Name: "users"}}, Limit: 5}

	g, err := New("mssql", WithTrailingPagination())
	require.NoError(t, err)
	sql, err := g.GenerateSQL(q)
	require.NoError(t, err)
	assert.Equal(t, "SELECT *\nFROM [users]\nTOP 5", sql)

	nested := &models.SelectQuery{
		Tables: []models.Table{{Name: "users"}},
		Where:  []models.Condition{{Column: "id", Operator: models.OpIn, Subquery: q}},
	}
	g, err = New("mysql", WithMaxDepth(1))
	require.NoError(t, err)
	_, err = g.GenerateSQL(nested)
	assert.ErrorIs(t, err, ErrMaxDepthExceeded)

	insert := &models.InsertQuery{
		Table: &models.Table{Name: "users"},
		Data: &models.InsertData{
			Columns:  []string{"id"},
			Rows:     []map[string]any{{"id": 1}},
			Conflict: models.ConflictIgnore,
		},
	}
	g, err = New("mssql")
	require.NoError(t, err)
	_, err = g.GenerateSQL(insert)
	assert.ErrorIs(t, err, ErrUnsupportedForDialect)

	g, err = New("mssql", WithLenientDialectGaps())
	require.NoError(t, err)
	sql, err = g.GenerateSQL(insert)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO [users] ([id])\nVALUES (1)", sql)
}

func TestWithLoggerLogsFailures(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	g, err := New("postgresql", WithLogger(logger.NewFromZap(zap.New(core))))
	require.NoError(t, err)

	_, err = g.GenerateSQL(&models.SelectQuery{
		Tables: []models.Table{{Name: "users"}},
		Where:  []models.Condition{{Column: "id", Operator: "~~"}},
	})
	require.ErrorIs(t, err, ErrUnsupportedOperator)

	entries := logs.FilterMessage("GenerateSQL failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "postgresql", entries[0].ContextMap()["dialect"])
}

func TestValidate(t *testing.T) {
	g, err := New("postgresql")
	require.NoError(t, err)

	sql, err := g.GenerateSQL(usersSelect())
	require.NoError(t, err)
	assert.NoError(t, g.Validate(sql))

	result, err := g.ValidateWithDetails("SELECT FROM WHERE")
	require.NoError(t, err)
	assert.False(t, result.Valid)

	g, err = New("oracle")
	require.NoError(t, err)
	assert.ErrorIs(t, g.Validate("SELECT 1 FROM DUAL"), ErrNoValidator)
}

func TestGenerateAll(t *testing.T) {
	g, err := New("mysql")
	require.NoError(t, err)

	results, err := g.GenerateAll(context.Background(), usersSelect())
	require.NoError(t, err)
	require.Len(t, results, 5)
	assert.Equal(t, "postgresql", results[0].Dialect)
	assert.Equal(t, usersSelectPostgres, results[0].SQL)
	for _, r := range results {
		assert.NoError(t, r.Err(), r.Dialect)
	}
}
