package dialect

import (
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/kanda123-lab/querygen/engine/models"
	"github.com/kanda123-lab/querygen/mapping"
)

var (
	// ErrUnsupportedDialect is returned for a dialect name that has no strategy.
	ErrUnsupportedDialect = errors.New("unsupported dialect")

	// ErrUnsupportedFeature is returned when a dialect has no rendering for a
	// requested feature, e.g. REPLACE conflict handling on PostgreSQL.
	ErrUnsupportedFeature = errors.New("unsupported for dialect")
)

// ============================================================================
// DIALECT - per-dialect rendering strategy
// ============================================================================

// Dialect holds everything that differs between SQL flavors. Builders never
// switch on a dialect name; they ask the Dialect.
type Dialect interface {
	// Name is the canonical dialect name, e.g. "postgresql".
	Name() string

	// Quote escapes one identifier. Embedded closing quotes are doubled.
	Quote(ident string) string

	// AliasSeparator goes between a table and its alias (" AS " or " ").
	AliasSeparator() string

	// Paginate renders LIMIT/OFFSET. Only called when limit > 0.
	Paginate(limit, offset int) Pagination

	// AutoIncrement adapts a column definition that is auto-incrementing.
	AutoIncrement(declaredType string) AutoIncrement

	// Conflict renders INSERT conflict handling. updateColumns are the
	// quoted columns an upsert overwrites; target is the quoted conflict
	// target, which may be empty.
	Conflict(mode models.ConflictMode, target, updateColumns []string) (Conflict, error)

	// Comments reports how column comments are expressed.
	Comments() CommentStyle

	// Explain wraps a statement in the dialect's plan request.
	Explain(sql string) string

	// SetOperator returns the keyword for a set operation.
	SetOperator(op models.SetOperator) string

	// RecursiveCTE reports whether WITH RECURSIVE is spelled out.
	RecursiveCTE() bool

	// Placeholder is the bind-parameter style for parameterised output.
	Placeholder() sq.PlaceholderFormat
}

// Pagination is the rendered form of LIMIT/OFFSET. Exactly one of the
// fields is set.
type Pagination struct {
	Top    int    // SELECT TOP n
	RowNum int    // ROWNUM <= n
	Clause string // trailing clause, e.g. LIMIT 10 OFFSET 20
}

// AutoIncrement describes how an auto-increment column is rendered.
type AutoIncrement struct {
	Type   string // replacement for the declared type
	Suffix string // appended right after the type

	// InlinePrimaryKey means the suffix already declares the primary key,
	// so the column must be left out of the table-level PRIMARY KEY.
	InlinePrimaryKey bool
}

// Conflict is the rendered conflict handling of an INSERT.
type Conflict struct {
	Verb   string // INSERT INTO, INSERT IGNORE INTO, REPLACE INTO, ...
	Suffix string // ON CONFLICT ..., ON DUPLICATE KEY UPDATE ...
}

// CommentStyle is how a dialect attaches comments to columns.
type CommentStyle int

const (
	// CommentsUnsupported means the dialect has no column comments.
	CommentsUnsupported CommentStyle = iota
	// CommentsInline renders COMMENT 'text' in the column definition.
	CommentsInline
	// CommentsStatement renders a COMMENT ON COLUMN statement after the table.
	CommentsStatement
)

// ============================================================================
// LOOKUP
// ============================================================================

var registry = map[string]Dialect{
	mapping.PostgreSQL: PostgreSQL{},
	mapping.MySQL:      MySQL{},
	mapping.SQLite:     SQLite{},
	mapping.MSSQL:      MSSQL{},
	mapping.Oracle:     Oracle{},
}

// Lookup returns the strategy for a dialect name or alias.
func Lookup(name string) (Dialect, error) {
	canonical, ok := mapping.CanonicalDialect(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedDialect, name, strings.Join(mapping.SupportedDialects, ", "))
	}
	return registry[canonical], nil
}

// All returns every supported dialect in mapping.SupportedDialects order.
func All() []Dialect {
	all := make([]Dialect, 0, len(mapping.SupportedDialects))
	for _, name := range mapping.SupportedDialects {
		all = append(all, registry[name])
	}
	return all
}

// ============================================================================
// SHARED BEHAVIOUR
// ============================================================================

// base carries the behaviour most dialects share. Dialects embed it and
// override what differs.
type base struct{}

func (base) AliasSeparator() string { return " AS " }

func (base) Paginate(limit, offset int) Pagination {
	if offset > 0 {
		return Pagination{Clause: fmt.Sprintf("LIMIT %d OFFSET %d", limit, offset)}
	}
	return Pagination{Clause: fmt.Sprintf("LIMIT %d", limit)}
}

func (base) AutoIncrement(declaredType string) AutoIncrement {
	return AutoIncrement{Type: declaredType}
}

func (base) Conflict(mode models.ConflictMode, _, _ []string) (Conflict, error) {
	if mode == models.ConflictNone {
		return Conflict{Verb: "INSERT INTO"}, nil
	}
	return Conflict{}, unsupported("ON CONFLICT " + string(mode))
}

func (base) Comments() CommentStyle { return CommentsUnsupported }

func (base) Explain(sql string) string { return "EXPLAIN " + sql }

func (base) SetOperator(op models.SetOperator) string { return string(op) }

func (base) RecursiveCTE() bool { return true }

func (base) Placeholder() sq.PlaceholderFormat { return sq.Question }

// offsetFetch is the SQL:2008 form SQL Server and Oracle use with an offset.
func offsetFetch(limit, offset int) Pagination {
	return Pagination{Clause: fmt.Sprintf("OFFSET %d ROWS FETCH NEXT %d ROWS ONLY", offset, limit)}
}

// quoteWith wraps ident in left/right, doubling any embedded right quote.
func quoteWith(ident, left, right string) string {
	return left + strings.ReplaceAll(ident, right, right+right) + right
}

// assignments renders "c = <value(c)>" for every column.
func assignments(columns []string, value func(string) string) string {
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = col + " = " + value(col)
	}
	return strings.Join(parts, ", ")
}

func joinList(items []string) string { return strings.Join(items, ", ") }

func unsupported(feature string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedFeature, feature)
}

// ============================================================================
// GENERIC
// ============================================================================

// Generic renders identifiers unescaped with LIMIT/OFFSET pagination. It
// backs dialect-agnostic previews.
type Generic struct{ base }

func (Generic) Name() string { return "generic" }

func (Generic) Quote(ident string) string { return ident }
