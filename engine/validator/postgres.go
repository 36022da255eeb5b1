package validator

import (
	"errors"

	pg_query "github.com/pganalyze/pg_query_go/v5"
	"github.com/pganalyze/pg_query_go/v5/parser"
)

type postgresValidator struct{}

func (postgresValidator) Validate(query string) error { return ValidatePostgreSQL(query) }

func (postgresValidator) ValidateWithDetails(query string) (*ValidationResult, error) {
	return ValidatePostgreSQLWithDetails(query)
}

// ValidatePostgreSQL validates PostgreSQL SQL syntax
func ValidatePostgreSQL(query string) error {
	_, err := pg_query.Parse(query)
	return err
}

// ValidatePostgreSQLWithDetails returns detailed validation result
func ValidatePostgreSQLWithDetails(query string) (*ValidationResult, error) {
	_, err := pg_query.Parse(query)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}

	result := &ValidationResult{Valid: false, Error: err.Error()}
	var pgErr *parser.Error
	if errors.As(err, &pgErr) {
		result.locate(query, pgErr.Cursorpos)
		result.suggest()
	}
	return result, nil
}
