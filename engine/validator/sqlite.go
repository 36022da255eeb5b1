package validator

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/xwb1989/sqlparser"
	_ "modernc.org/sqlite"
)

// openSQLite opens a private in-memory database used only to compile one
// statement, so validations never see each other's schema.
func openSQLite() (*sql.DB, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

type sqliteValidator struct{}

func (sqliteValidator) Validate(query string) error { return ValidateSQLite(query) }

func (sqliteValidator) ValidateWithDetails(query string) (*ValidationResult, error) {
	return ValidateSQLiteWithDetails(query)
}

// ValidateSQLite validates SQLite SQL syntax. The statement is compiled
// under EXPLAIN against an empty database, so nothing runs and missing
// tables and columns are accepted.
func ValidateSQLite(query string) error {
	result, err := ValidateSQLiteWithDetails(query)
	if err != nil {
		return err
	}
	if !result.Valid {
		return fmt.Errorf("%s", result.Error)
	}
	return nil
}

// ValidateSQLiteWithDetails returns detailed validation result
func ValidateSQLiteWithDetails(query string) (*ValidationResult, error) {
	if _, rest, err := sqlparser.SplitStatement(query); err == nil && strings.TrimSpace(rest) != "" {
		result := &ValidationResult{Valid: false, Error: "only one statement is allowed"}
		result.locate(query, len(query)-len(strings.TrimLeft(rest, " \t\r\n"))+1)
		return result, nil
	}

	db, err := openSQLite()
	if err != nil {
		return nil, fmt.Errorf("open sqlite validator: %w", err)
	}
	defer db.Close()

	compiled := query
	if !strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), "EXPLAIN") {
		compiled = "EXPLAIN " + query
	}
	_, err = db.Exec(compiled)
	if err == nil || isSchemaError(err) {
		return &ValidationResult{Valid: true}, nil
	}

	result := &ValidationResult{Valid: false, Error: err.Error()}
	if i := strings.Index(err.Error(), `near "`); i >= 0 {
		rest := err.Error()[i+len(`near "`):]
		if j := strings.IndexByte(rest, '"'); j >= 0 {
			result.NearText = rest[:j]
			if p := strings.Index(query, result.NearText); p >= 0 {
				result.locate(query, p+1)
			}
			result.suggest()
		}
	}
	return result, nil
}

// isSchemaError reports prepare failures caused by the empty schema rather
// than by syntax.
func isSchemaError(err error) bool {
	msg := err.Error()
	for _, marker := range []string{"no such table", "no such column", "no such function", "no such collation"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
