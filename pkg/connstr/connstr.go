// Package connstr builds driver connection strings for the supported
// dialects.
package connstr

import (
	"fmt"
	"net"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"

	"github.com/kanda123-lab/querygen/engine/dialect"
	"github.com/kanda123-lab/querygen/mapping"
)

// Params describes a database endpoint. Zero Port means the dialect
// default. File is used by SQLite only.
type Params struct {
	Host     string            `json:"host,omitempty"`
	Port     int               `json:"port,omitempty"`
	User     string            `json:"user,omitempty"`
	Password string            `json:"password,omitempty"`
	Database string            `json:"database,omitempty"`
	File     string            `json:"file,omitempty"`
	Options  map[string]string `json:"options,omitempty"`
}

var defaultPorts = map[string]int{
	mapping.PostgreSQL: 5432,
	mapping.MySQL:      3306,
	mapping.MSSQL:      1433,
	mapping.Oracle:     1521,
}

// Build returns the connection string for a dialect name or alias.
func Build(dialectName string, p Params) (string, error) {
	canonical, ok := mapping.CanonicalDialect(dialectName)
	if !ok {
		return "", fmt.Errorf("%w: %s", dialect.ErrUnsupportedDialect, dialectName)
	}

	switch canonical {
	case mapping.SQLite:
		return sqlite(p), nil
	case mapping.MySQL:
		return mysqlDSN(p), nil
	case mapping.PostgreSQL:
		return postgres(p)
	case mapping.MSSQL:
		u := serverURL("sqlserver", p, canonical)
		q := query(p.Options)
		if p.Database != "" {
			q.Set("database", p.Database)
		}
		u.RawQuery = q.Encode()
		return u.String(), nil
	default:
		u := serverURL("oracle", p, canonical)
		u.Path = "/" + p.Database
		u.RawQuery = query(p.Options).Encode()
		return u.String(), nil
	}
}

func postgres(p Params) (string, error) {
	u := serverURL("postgres", p, mapping.PostgreSQL)
	u.Path = "/" + p.Database
	u.RawQuery = query(p.Options).Encode()

	dsn := u.String()
	if _, err := pgx.ParseConfig(dsn); err != nil {
		return "", fmt.Errorf("invalid postgresql connection string: %w", err)
	}
	return dsn, nil
}

func mysqlDSN(p Params) string {
	cfg := mysql.NewConfig()
	cfg.User = p.User
	cfg.Passwd = p.Password
	cfg.Net = "tcp"
	cfg.Addr = hostPort(p, mapping.MySQL)
	cfg.DBName = p.Database
	if len(p.Options) > 0 {
		cfg.Params = make(map[string]string, len(p.Options))
		for k, v := range p.Options {
			cfg.Params[k] = v
		}
	}
	return cfg.FormatDSN()
}

func sqlite(p Params) string {
	file := p.File
	if file == "" {
		file = ":memory:"
	}
	dsn := "file:" + file
	if q := query(p.Options).Encode(); q != "" {
		dsn += "?" + q
	}
	return dsn
}

func serverURL(scheme string, p Params, canonical string) *url.URL {
	u := &url.URL{Scheme: scheme, Host: hostPort(p, canonical)}
	switch {
	case p.User != "" && p.Password != "":
		u.User = url.UserPassword(p.User, p.Password)
	case p.User != "":
		u.User = url.User(p.User)
	}
	return u
}

func hostPort(p Params, canonical string) string {
	host := p.Host
	if host == "" {
		host = "localhost"
	}
	port := p.Port
	if port == 0 {
		port = defaultPorts[canonical]
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

func query(options map[string]string) url.Values {
	q := url.Values{}
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		q.Set(strings.TrimSpace(k), options[k])
	}
	return q
}
