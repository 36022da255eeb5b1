package validator

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pingcap/tidb/parser"
	_ "github.com/pingcap/tidb/parser/test_driver"
	"github.com/xwb1989/sqlparser"
)

// tidb reports errors as: line 1 column 14 near "FORM users"
var mysqlErrorPosition = regexp.MustCompile(`line (\d+) column (\d+) near "([^"]*)"`)

type mysqlValidator struct{}

func (mysqlValidator) Validate(query string) error { return ValidateMySQL(query) }

func (mysqlValidator) ValidateWithDetails(query string) (*ValidationResult, error) {
	return ValidateMySQLWithDetails(query)
}

// ValidateMySQL validates MySQL 8 SQL syntax
func ValidateMySQL(query string) error {
	_, _, err := parser.New().Parse(query, "", "")
	return err
}

// ValidateMySQLWithDetails returns detailed validation result. A valid
// statement is also checked against the MySQL 5.x grammar.
func ValidateMySQLWithDetails(query string) (*ValidationResult, error) {
	_, _, err := parser.New().Parse(query, "", "")
	if err != nil {
		result := &ValidationResult{Valid: false, Error: err.Error()}
		if m := mysqlErrorPosition.FindStringSubmatch(err.Error()); m != nil {
			result.Line, _ = strconv.Atoi(m[1])
			result.Column, _ = strconv.Atoi(m[2])
			result.NearText = near(m[3])
			result.Position = offset(query, result.Line, result.Column)
			result.suggest()
		}
		return result, nil
	}

	_, legacyErr := sqlparser.Parse(query)
	return &ValidationResult{Valid: true, LegacyCompatible: legacyErr == nil}, nil
}

// offset converts a line and column into a 1-based character offset.
func offset(query string, line, column int) int {
	pos := 0
	for i := 1; i < line; i++ {
		nl := strings.IndexByte(query[pos:], '\n')
		if nl < 0 {
			return 0
		}
		pos += nl + 1
	}
	return pos + column
}
