package builders

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kanda123-lab/querygen/engine/dialect"
	"github.com/kanda123-lab/querygen/engine/models"
)

// DefaultMaxDepth bounds nesting of subqueries, CTEs and set operations.
const DefaultMaxDepth = 32

// Options tune rendering. The zero value is the strict default.
type Options struct {
	// MaxDepth is the deepest SELECT nesting accepted. Zero means
	// DefaultMaxDepth.
	MaxDepth int

	// TrailingPagination renders TOP n and ROWNUM <= n as trailing clauses
	// instead of placing them after SELECT and inside WHERE.
	TrailingPagination bool

	// LenientDialectGaps drops features a dialect cannot express (conflict
	// modes, column comments) instead of failing.
	LenientDialectGaps bool
}

// Builder renders typed queries for one dialect. It holds no per-call
// state and is safe for concurrent use.
type Builder struct {
	dialect dialect.Dialect
	opts    Options
}

// New creates a Builder for d.
func New(d dialect.Dialect, opts Options) *Builder {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Builder{dialect: d, opts: opts}
}

// Dialect returns the dialect the builder renders for.
func (b *Builder) Dialect() dialect.Dialect { return b.dialect }

// Build renders q as SQL text with every value inlined as a literal.
func (b *Builder) Build(q models.Query) (string, error) {
	r := &render{Builder: b}
	return r.build(q)
}

// BuildParameterized renders q with bind placeholders in the dialect's
// style and returns the values in placeholder order. NULL stays a literal.
func (b *Builder) BuildParameterized(q models.Query) (string, []any, error) {
	r := &render{Builder: b, params: true}
	sql, err := r.build(q)
	if err != nil {
		return "", nil, err
	}
	return sql, r.args, nil
}

// ============================================================================
// DISPATCH
// ============================================================================

// render is the state of one Build call.
type render struct {
	*Builder
	depth  int
	params bool
	args   []any
}

func (r *render) build(q models.Query) (string, error) {
	switch query := q.(type) {
	case *models.SelectQuery:
		return r.selectQuery(query)
	case *models.InsertQuery:
		return r.insert(query)
	case *models.UpdateQuery:
		return r.update(query)
	case *models.DeleteQuery:
		return r.delete(query)
	case *models.CreateTableQuery:
		return r.createTable(query)
	case *models.AlterTableQuery:
		return "", fmt.Errorf("%w: ALTER TABLE", ErrNotImplemented)
	case nil:
		return "", fmt.Errorf("%w: nil query", ErrUnsupportedQueryType)
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedQueryType, q)
	}
}

// nested renders a SELECT one level deeper.
func (r *render) nested(q *models.SelectQuery) (string, error) {
	r.depth++
	defer func() { r.depth-- }()
	return r.selectQuery(q)
}

// ============================================================================
// IDENTIFIERS AND VALUES
// ============================================================================

func (r *render) quote(ident string) string {
	if ident == "*" {
		return ident
	}
	return r.dialect.Quote(ident)
}

// column renders [table.]column.
func (r *render) column(table, column string) string {
	if table == "" {
		return r.quote(column)
	}
	return r.quote(table) + "." + r.quote(column)
}

// tableName renders [schema.]name.
func (r *render) tableName(schema, name string) string {
	if schema == "" {
		return r.quote(name)
	}
	return r.quote(schema) + "." + r.quote(name)
}

// tableRef renders a table with its alias, e.g. "users" AS "u".
func (r *render) tableRef(t models.Table) string {
	ref := r.tableName(t.Schema, t.Name)
	if t.Alias != "" {
		ref += r.dialect.AliasSeparator() + r.quote(t.Alias)
	}
	return ref
}

func (r *render) quoteAll(idents []string) []string {
	quoted := make([]string, len(idents))
	for i, ident := range idents {
		quoted[i] = r.quote(ident)
	}
	return quoted
}

// value renders a literal, or a placeholder when building parameterised SQL.
func (r *render) value(v any) string {
	if !r.params || v == nil {
		return FormatValue(v)
	}
	r.args = append(r.args, bindValue(v))
	return r.placeholder(len(r.args))
}

// placeholder renders the n-th bind marker. Markers are numbered as they
// are emitted, so a literal ? elsewhere in the text is left alone.
func (r *render) placeholder(n int) string {
	marks := strings.TrimSuffix(strings.Repeat("?,", n), ",")
	out, err := r.dialect.Placeholder().ReplacePlaceholders(marks)
	if err != nil {
		return "?"
	}
	return out[strings.LastIndexByte(out, ',')+1:]
}

// bindValue converts decoded JSON numbers into values drivers accept.
func bindValue(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

func joinComma(parts []string) string { return strings.Join(parts, ", ") }
