package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kanda123-lab/querygen/engine/dialect"
	"github.com/kanda123-lab/querygen/mapping"
)

// ErrNoValidator is returned for dialects without an embedded parser.
var ErrNoValidator = errors.New("no validator for dialect")

// Validator validates generated SQL before it is handed out
type Validator interface {
	Validate(query string) error
	ValidateWithDetails(query string) (*ValidationResult, error)
}

// ValidationResult contains detailed validation info
type ValidationResult struct {
	Valid      bool   `json:"valid"`
	Error      string `json:"error,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	Position   int    `json:"position,omitempty"` // 1-based character offset of the error
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
	NearText   string `json:"nearText,omitempty"`

	// LegacyCompatible is set for MySQL when the statement also parses
	// with the MySQL 5.x grammar.
	LegacyCompatible bool `json:"legacyCompatible,omitempty"`
}

// ValidateSQL validates SQL syntax for a dialect name or alias.
func ValidateSQL(query string, dialectName string) error {
	canonical, err := canonical(dialectName)
	if err != nil {
		return err
	}
	switch canonical {
	case mapping.PostgreSQL:
		return ValidatePostgreSQL(query)
	case mapping.MySQL:
		return ValidateMySQL(query)
	case mapping.SQLite:
		return ValidateSQLite(query)
	default:
		return fmt.Errorf("%w: %s", ErrNoValidator, canonical)
	}
}

// ValidateSQLWithDetails returns detailed validation result
func ValidateSQLWithDetails(query string, dialectName string) (*ValidationResult, error) {
	canonical, err := canonical(dialectName)
	if err != nil {
		return nil, err
	}
	switch canonical {
	case mapping.PostgreSQL:
		return ValidatePostgreSQLWithDetails(query)
	case mapping.MySQL:
		return ValidateMySQLWithDetails(query)
	case mapping.SQLite:
		return ValidateSQLiteWithDetails(query)
	default:
		return nil, fmt.Errorf("%w: %s", ErrNoValidator, canonical)
	}
}

// For returns the Validator for a dialect.
func For(dialectName string) (Validator, error) {
	canonical, err := canonical(dialectName)
	if err != nil {
		return nil, err
	}
	switch canonical {
	case mapping.PostgreSQL:
		return postgresValidator{}, nil
	case mapping.MySQL:
		return mysqlValidator{}, nil
	case mapping.SQLite:
		return sqliteValidator{}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoValidator, canonical)
}

func canonical(dialectName string) (string, error) {
	canonical, ok := mapping.CanonicalDialect(dialectName)
	if !ok {
		return "", fmt.Errorf("%w: %s", dialect.ErrUnsupportedDialect, dialectName)
	}
	return canonical, nil
}

// locate fills Position, Line, Column and NearText from a 1-based offset.
func (r *ValidationResult) locate(query string, pos int) {
	if pos <= 0 || pos > len(query)+1 {
		return
	}
	r.Position = pos
	before := query[:pos-1]
	r.Line = strings.Count(before, "\n") + 1
	r.Column = pos - strings.LastIndex(before, "\n") - 1
	r.NearText = near(query[pos-1:])
}

// near returns up to the first 20 characters of the rest of a line.
func near(rest string) string {
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[:i]
	}
	if len(rest) > 20 {
		rest = rest[:20]
	}
	return strings.TrimSpace(rest)
}

func (r *ValidationResult) suggest() {
	if r.NearText != "" {
		r.Suggestion = fmt.Sprintf("check the syntax near %q", r.NearText)
	}
}
