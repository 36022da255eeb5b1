package builders

import (
	"fmt"
	"strings"

	"github.com/kanda123-lab/querygen/engine/dialect"
	"github.com/kanda123-lab/querygen/engine/models"
)

// ============================================================================
// DDL OPERATIONS - CREATE TABLE
// ============================================================================

// createTable renders CREATE TABLE with column definitions followed by the
// primary key, foreign keys and named constraints. Dialects that keep
// column comments out of the definition get trailing COMMENT ON statements.
func (r *render) createTable(q *models.CreateTableQuery) (string, error) {
	data := q.Data
	if data == nil || data.TableName == "" {
		return "", fmt.Errorf("%w: create table query requires a table name", ErrInvalidQuery)
	}
	if len(data.Columns) == 0 {
		return "", fmt.Errorf("%w: create table query requires at least one column", ErrInvalidQuery)
	}
	table := r.tableName(data.Schema, data.TableName)

	var defs, comments []string
	inlinePK := ""
	for _, col := range data.Columns {
		def, inline, err := r.columnDefinition(col)
		if err != nil {
			return "", err
		}
		if inline {
			if inlinePK != "" {
				return "", fmt.Errorf("%w: %s allows one auto-increment column, got %q and %q",
					ErrUnsupportedForDialect, r.dialect.Name(), inlinePK, col.Name)
			}
			inlinePK = col.Name
		}
		defs = append(defs, def)

		if col.Comment != "" && r.dialect.Comments() == dialect.CommentsStatement {
			comments = append(comments, fmt.Sprintf("COMMENT ON COLUMN %s.%s IS %s",
				table, r.quote(col.Name), QuoteString(col.Comment)))
		}
	}

	pk, err := r.tablePrimaryKey(data.PrimaryKey, inlinePK)
	if err != nil {
		return "", err
	}
	if len(pk) > 0 {
		defs = append(defs, "PRIMARY KEY ("+joinComma(r.quoteAll(pk))+")")
	}

	for _, fk := range data.ForeignKeys {
		def, err := r.foreignKey(fk)
		if err != nil {
			return "", err
		}
		defs = append(defs, def)
	}

	for _, c := range data.Constraints {
		if c.Type == "" || c.Definition == "" {
			return "", fmt.Errorf("%w: constraint %q needs a type and definition", ErrInvalidQuery, c.Name)
		}
		def := strings.ToUpper(c.Type) + " " + c.Definition
		if c.Name != "" {
			def = "CONSTRAINT " + r.quote(c.Name) + " " + def
		}
		defs = append(defs, def)
	}

	head := "CREATE TABLE "
	if data.IfNotExists {
		head += "IF NOT EXISTS "
	}
	sql := head + table + " (\n  " + strings.Join(defs, ",\n  ") + "\n)"
	if len(comments) > 0 {
		sql += ";\n" + strings.Join(comments, ";\n")
	}
	return sql, nil
}

// columnDefinition renders name type [auto-increment] [NOT NULL]
// [DEFAULT v] [UNIQUE] [COMMENT 'c']. inline reports that the definition
// already declares the primary key.
func (r *render) columnDefinition(col models.ColumnDefinition) (def string, inline bool, err error) {
	if col.Name == "" || col.Type == "" {
		return "", false, fmt.Errorf("%w: column definition needs a name and type", ErrInvalidQuery)
	}

	parts := []string{r.quote(col.Name)}
	if col.AutoIncrement {
		ai := r.dialect.AutoIncrement(col.Type)
		parts = append(parts, ai.Type)
		if ai.Suffix != "" {
			parts = append(parts, ai.Suffix)
		}
		inline = ai.InlinePrimaryKey
	} else {
		parts = append(parts, col.Type)
	}

	if col.NotNull {
		parts = append(parts, "NOT NULL")
	}
	if col.Default != "" {
		parts = append(parts, "DEFAULT "+col.Default)
	}
	if col.Unique {
		parts = append(parts, "UNIQUE")
	}

	if col.Comment != "" {
		switch r.dialect.Comments() {
		case dialect.CommentsInline:
			parts = append(parts, "COMMENT "+QuoteString(col.Comment))
		case dialect.CommentsUnsupported:
			if !r.opts.LenientDialectGaps {
				return "", false, fmt.Errorf("%w: %s has no column comments (column %q)",
					ErrUnsupportedForDialect, r.dialect.Name(), col.Name)
			}
		}
	}
	return strings.Join(parts, " "), inline, nil
}

// tablePrimaryKey drops a column whose definition already declares the key.
// Such a column cannot share a composite key.
func (r *render) tablePrimaryKey(pk []string, inlinePK string) ([]string, error) {
	if inlinePK == "" {
		return pk, nil
	}
	var rest []string
	for _, col := range pk {
		if col != inlinePK {
			rest = append(rest, col)
		}
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: %s auto-increment column %q cannot be part of a composite primary key",
			ErrUnsupportedForDialect, r.dialect.Name(), inlinePK)
	}
	return nil, nil
}

func (r *render) foreignKey(fk models.ForeignKey) (string, error) {
	if len(fk.Columns) == 0 || fk.ReferencedTable == "" || len(fk.ReferencedColumns) == 0 {
		return "", fmt.Errorf("%w: foreign key needs columns and a referenced table and columns", ErrInvalidQuery)
	}
	def := fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s(%s)",
		joinComma(r.quoteAll(fk.Columns)), r.quote(fk.ReferencedTable), joinComma(r.quoteAll(fk.ReferencedColumns)))
	if fk.OnDelete != "" {
		def += " ON DELETE " + strings.ToUpper(fk.OnDelete)
	}
	if fk.OnUpdate != "" {
		def += " ON UPDATE " + strings.ToUpper(fk.OnUpdate)
	}
	return def, nil
}
