package mapping

import "strings"

// Canonical dialect names. Callers may use any alias listed in DialectAliases.
const (
	PostgreSQL = "postgresql"
	MySQL      = "mysql"
	SQLite     = "sqlite"
	MSSQL      = "mssql"
	Oracle     = "oracle"
)

// SupportedDialects lists every dialect the generator renders, in the order
// multi-dialect output is reported.
var SupportedDialects = []string{
	PostgreSQL,
	MySQL,
	SQLite,
	MSSQL,
	Oracle,
}

// DialectAliases maps accepted spellings to the canonical dialect name.
var DialectAliases = map[string]string{
	"postgresql": PostgreSQL,
	"postgres":   PostgreSQL,
	"pg":         PostgreSQL,
	"mysql":      MySQL,
	"mariadb":    MySQL,
	"sqlite":     SQLite,
	"sqlite3":    SQLite,
	"mssql":      MSSQL,
	"sqlserver":  MSSQL,
	"oracle":     Oracle,
}

// CanonicalDialect resolves an alias, case-insensitively.
func CanonicalDialect(name string) (string, bool) {
	canonical, ok := DialectAliases[strings.ToLower(strings.TrimSpace(name))]
	return canonical, ok
}

// IsSupportedDialect checks if a dialect name or alias is supported
func IsSupportedDialect(name string) bool {
	_, ok := CanonicalDialect(name)
	return ok
}
