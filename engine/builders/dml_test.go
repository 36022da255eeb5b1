package builders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanda123-lab/querygen/engine/dialect"
	"github.com/kanda123-lab/querygen/engine/models"
)

func insertQuery(mode models.ConflictMode, target ...string) *models.InsertQuery {
	return &models.InsertQuery{
		Table: &models.Table{Name: "users"},
		Data: &models.InsertData{
			Columns:         []string{"id", "name"},
			Rows:            []map[string]any{{"id": 1, "name": "a"}, {"id": 2}},
			Conflict:        mode,
			ConflictColumns: target,
		},
	}
}

func TestInsertRowsAndMissingKeys(t *testing.T) {
	want := "INSERT INTO \"users\" (\"id\", \"name\")\nVALUES (1, 'a'), (2, NULL)"
	assert.Equal(t, want, build(t, dialect.PostgreSQL{}, insertQuery(models.ConflictNone)))
	assert.Equal(t, want, build(t, dialect.PostgreSQL{}, insertQuery("none")))
}

func TestInsertConflicts(t *testing.T) {
	tests := []struct {
		name    string
		dialect dialect.Dialect
		query   *models.InsertQuery
		want    string
	}{
		{
			name:    "mysql ignore",
			dialect: dialect.MySQL{},
			query:   insertQuery(models.ConflictIgnore),
			want:    "INSERT IGNORE INTO `users` (`id`, `name`)\nVALUES (1, 'a'), (2, NULL)",
		},
		{
			name:    "mysql update",
			dialect: dialect.MySQL{},
			query:   insertQuery(models.ConflictUpdate),
			want:    "INSERT INTO `users` (`id`, `name`)\nVALUES (1, 'a'), (2, NULL)\nON DUPLICATE KEY UPDATE `id` = VALUES(`id`), `name` = VALUES(`name`)",
		},
		{
			name:    "mysql replace",
			dialect: dialect.MySQL{},
			query:   insertQuery(models.ConflictReplace),
			want:    "REPLACE INTO `users` (`id`, `name`)\nVALUES (1, 'a'), (2, NULL)",
		},
		{
			name:    "postgres ignore",
			dialect: dialect.PostgreSQL{},
			query:   insertQuery(models.ConflictIgnore),
			want:    "INSERT INTO \"users\" (\"id\", \"name\")\nVALUES (1, 'a'), (2, NULL)\nON CONFLICT DO NOTHING",
		},
		{
			name:    "postgres update with target",
			dialect: dialect.PostgreSQL{},
			query:   insertQuery(models.ConflictUpdate, "id"),
			want:    "INSERT INTO \"users\" (\"id\", \"name\")\nVALUES (1, 'a'), (2, NULL)\nON CONFLICT (\"id\") DO UPDATE SET \"name\" = EXCLUDED.\"name\"",
		},
		{
			name:    "sqlite ignore",
			dialect: dialect.SQLite{},
			query:   insertQuery(models.ConflictIgnore),
			want:    "INSERT OR IGNORE INTO \"users\" (\"id\", \"name\")\nVALUES (1, 'a'), (2, NULL)",
		},
		{
			name:    "sqlite update",
			dialect: dialect.SQLite{},
			query:   insertQuery("update", "id"),
			want:    "INSERT INTO \"users\" (\"id\", \"name\")\nVALUES (1, 'a'), (2, NULL)\nON CONFLICT (\"id\") DO UPDATE SET \"name\" = excluded.\"name\"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, build(t, tt.dialect, tt.query))
		})
	}
}

func TestInsertConflictGaps(t *testing.T) {
	for _, d := range []dialect.Dialect{dialect.MSSQL{}, dialect.Oracle{}} {
		_, err := New(d, Options{}).Build(insertQuery(models.ConflictIgnore))
		assert.ErrorIs(t, err, ErrUnsupportedForDialect, d.Name())

		sql, err := New(d, Options{LenientDialectGaps: true}).Build(insertQuery(models.ConflictIgnore))
		require.NoError(t, err)
		assert.Contains(t, sql, "INSERT INTO ")
	}

	_, err := New(dialect.PostgreSQL{}, Options{}).Build(insertQuery(models.ConflictReplace))
	assert.ErrorIs(t, err, ErrUnsupportedForDialect)

	_, err = New(dialect.PostgreSQL{}, Options{}).Build(insertQuery("MERGE"))
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestInsertRequiresTableAndData(t *testing.T) {
	b := New(dialect.MySQL{}, Options{})

	_, err := b.Build(&models.InsertQuery{Table: &models.Table{Name: "users"}})
	require.ErrorIs(t, err, ErrInvalidQuery)
	assert.Contains(t, err.Error(), "insert query requires table and data")

	_, err = b.Build(&models.InsertQuery{Data: &models.InsertData{Columns: []string{"a"}}})
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = b.Build(&models.InsertQuery{Table: &models.Table{Name: "users"}, Data: &models.InsertData{Columns: []string{"a"}}})
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestUpdate(t *testing.T) {
	q := &models.UpdateQuery{
		Table: &models.Table{Name: "users"},
		Data: &models.UpdateData{Assignments: []models.Assignment{
			{Column: "name", Value: "O'Brien"},
			{Column: "updated_at", IsExpression: true, Expression: "NOW()"},
		}},
		Where: []models.Condition{{Column: "id", Operator: models.OpEqual, Value: 1}},
	}
	assert.Equal(t, "UPDATE \"users\"\nSET \"name\" = 'O''Brien', \"updated_at\" = NOW()\nWHERE \"id\" = 1", build(t, dialect.PostgreSQL{}, q))

	q.Where = nil
	assert.Equal(t, "UPDATE [users]\nSET [name] = 'O''Brien', [updated_at] = NOW()", build(t, dialect.MSSQL{}, q))

	_, err := New(dialect.PostgreSQL{}, Options{}).Build(&models.UpdateQuery{Table: &models.Table{Name: "users"}})
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = New(dialect.PostgreSQL{}, Options{}).Build(&models.UpdateQuery{Table: &models.Table{Name: "users"}, Data: &models.UpdateData{}})
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestDelete(t *testing.T) {
	q := &models.DeleteQuery{
		Table: &models.Table{Name: "logs", Schema: "audit"},
		Where: []models.Condition{{Column: "created_at", Operator: models.OpLess, Value: "2024-01-01"}},
	}
	assert.Equal(t, "DELETE FROM `audit`.`logs`\nWHERE `created_at` < '2024-01-01'", build(t, dialect.MySQL{}, q))

	_, err := New(dialect.MySQL{}, Options{}).Build(&models.DeleteQuery{})
	assert.ErrorIs(t, err, ErrInvalidQuery)
}
