package builders

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanda123-lab/querygen/engine/dialect"
	"github.com/kanda123-lab/querygen/engine/models"
)

func build(t *testing.T, d dialect.Dialect, q models.Query) string {
	t.Helper()
	sql, err := New(d, Options{}).Build(q)
	require.NoError(t, err)
	return sql
}

func usersTable() []models.Table {
	return []models.Table{{ID: "t1", Name: "users"}}
}

func TestScenarioPostgresSelect(t *testing.T) {
	q := &models.SelectQuery{
		Tables:  usersTable(),
		Columns: []models.SelectColumn{{Column: "id"}, {Column: "name"}},
		Where:   []models.Condition{{Column: "age", Operator: models.OpGreater, Value: 18}},
		OrderBy: []models.OrderBy{{Column: "name", Direction: models.Ascending}},
		Limit:   10,
	}

	want := "SELECT \"id\",\n  \"name\"\nFROM \"users\"\nWHERE \"age\" > 18\nORDER BY \"name\" ASC\nLIMIT 10"
	assert.Equal(t, want, build(t, dialect.PostgreSQL{}, q))
}

func TestScenarioMySQLInsert(t *testing.T) {
	q := &models.InsertQuery{
		Table: &models.Table{Name: "users"},
		Data: &models.InsertData{
			Columns: []string{"name", "email"},
			Rows:    []map[string]any{{"name": "John", "email": "j@x.com"}},
		},
	}

	assert.Equal(t, "INSERT INTO `users` (`name`, `email`)\nVALUES ('John', 'j@x.com')", build(t, dialect.MySQL{}, q))
}

func TestScenarioPostgresCreateTableSerial(t *testing.T) {
	q := &models.CreateTableQuery{Data: &models.CreateTableData{
		TableName:  "t",
		Columns:    []models.ColumnDefinition{{Name: "id", Type: "INTEGER", AutoIncrement: true}},
		PrimaryKey: []string{"id"},
	}}

	sql := build(t, dialect.PostgreSQL{}, q)
	assert.Equal(t, "CREATE TABLE \"t\" (\n  \"id\" SERIAL,\n  PRIMARY KEY (\"id\")\n)", sql)
	assert.NotContains(t, sql, "INTEGER")
}

func TestScenarioPostgresDeleteWithoutWhere(t *testing.T) {
	q := &models.DeleteQuery{Table: &models.Table{Name: "logs"}}
	assert.Equal(t, `DELETE FROM "logs"`, build(t, dialect.PostgreSQL{}, q))
}

func TestBuildIsDeterministic(t *testing.T) {
	q := &models.SelectQuery{
		Tables: []models.Table{{ID: "u", Name: "users", Alias: "u"}, {ID: "o", Name: "orders", Alias: "o"}},
		Joins: []models.Join{{Type: models.InnerJoin, LeftTableID: "u", RightTableID: "o",
			Conditions: []models.JoinCondition{{LeftColumn: "id", RightColumn: "user_id"}}}},
		Where: []models.Condition{{Column: "status", Operator: models.OpIn, Value: []any{"a", "b", 3}}},
		Limit: 5,
	}
	for _, d := range dialect.All() {
		first := build(t, d, q)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, build(t, d, q), d.Name())
		}
	}
}

func TestBuildDispatch(t *testing.T) {
	b := New(dialect.PostgreSQL{}, Options{})

	_, err := b.Build(nil)
	assert.ErrorIs(t, err, ErrUnsupportedQueryType)

	_, err = b.Build(&models.AlterTableQuery{Table: &models.Table{Name: "users"}})
	assert.ErrorIs(t, err, ErrNotImplemented)

	_, err = b.Build((*models.SelectQuery)(nil))
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestMaxDepth(t *testing.T) {
	nest := func(levels int) *models.SelectQuery {
		q := &models.SelectQuery{Tables: usersTable()}
		for i := 0; i < levels; i++ {
			q = &models.SelectQuery{
				Tables: usersTable(),
				Where:  []models.Condition{{Column: "id", Operator: models.OpIn, Subquery: q}},
			}
		}
		return q
	}

	b := New(dialect.Generic{}, Options{MaxDepth: 2})
	_, err := b.Build(nest(1))
	assert.NoError(t, err)

	_, err = b.Build(nest(2))
	assert.ErrorIs(t, err, ErrMaxDepthExceeded)

	_, err = New(dialect.Generic{}, Options{}).Build(nest(DefaultMaxDepth))
	assert.ErrorIs(t, err, ErrMaxDepthExceeded)
}

func TestBuildParameterized(t *testing.T) {
	q := &models.SelectQuery{
		Tables: usersTable(),
		Where: []models.Condition{
			{Column: "age", Operator: models.OpGreater, Value: json.Number("18")},
			{Column: "name", Operator: models.OpEqual, Value: "x", Connective: models.And},
			{Column: "id", Operator: models.OpIn, Value: []int{1, 2}, Connective: models.And},
			{Column: "deleted_at", Operator: models.OpEqual, Value: nil, Connective: models.And},
		},
		Limit: 10,
	}

	tests := []struct {
		dialect dialect.Dialect
		where   string
	}{
		{dialect.PostgreSQL{}, `WHERE "age" > $1 AND "name" = $2 AND "id" IN ($3, $4) AND "deleted_at" = NULL`},
		{dialect.MySQL{}, "WHERE `age` > ? AND `name` = ? AND `id` IN (?, ?) AND `deleted_at` = NULL"},
		{dialect.MSSQL{}, `WHERE [age] > @p1 AND [name] = @p2 AND [id] IN (@p3, @p4) AND [deleted_at] = NULL`},
		{dialect.Oracle{}, `WHERE ("AGE" > :1 AND "NAME" = :2 AND "ID" IN (:3, :4) AND "DELETED_AT" = NULL) AND ROWNUM <= 10`},
	}
	for _, tt := range tests {
		t.Run(tt.dialect.Name(), func(t *testing.T) {
			sql, args, err := New(tt.dialect, Options{}).BuildParameterized(q)
			require.NoError(t, err)
			assert.Contains(t, sql, tt.where)
			assert.Equal(t, []any{int64(18), "x", 1, 2}, args)
		})
	}
}

func TestBuildParameterizedKeepsLiteralQuestionMarks(t *testing.T) {
	q := &models.SelectQuery{
		Tables:  usersTable(),
		Columns: []models.SelectColumn{{Column: "why?"}},
		Where:   []models.Condition{{Column: "age", Operator: models.OpGreater, Value: 18}},
	}
	sql, args, err := New(dialect.PostgreSQL{}, Options{}).BuildParameterized(q)
	require.NoError(t, err)
	assert.Equal(t, "SELECT \"why?\"\nFROM \"users\"\nWHERE \"age\" > $1", sql)
	assert.Equal(t, []any{18}, args)

	update := &models.UpdateQuery{
		Table: &models.Table{Name: "docs"},
		Data: &models.UpdateData{Assignments: []models.Assignment{
			{Column: "has_key", IsExpression: true, Expression: "data ? 'k'"},
			{Column: "title", Value: "t"},
		}},
		Where: []models.Condition{{Column: "id", Operator: models.OpEqual, Value: 7}},
	}
	sql, args, err = New(dialect.PostgreSQL{}, Options{}).BuildParameterized(update)
	require.NoError(t, err)
	assert.Equal(t, "UPDATE \"docs\"\nSET \"has_key\" = data ? 'k', \"title\" = $1\nWHERE \"id\" = $2", sql)
	assert.Equal(t, []any{"t", 7}, args)

	sql, _, err = New(dialect.MSSQL{}, Options{}).BuildParameterized(update)
	require.NoError(t, err)
	assert.Contains(t, sql, "[has_key] = data ? 'k', [title] = @p1\nWHERE [id] = @p2")
}
