// querygen renders a query description file as SQL.
//
//	querygen [flags] [file]
//
// The description is JSON or YAML, read from file or stdin.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/kanda123-lab/querygen"
	"github.com/kanda123-lab/querygen/engine/models"
)

const defaultDialect = "postgresql"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	dialect  string
	explain  bool
	readable bool
	params   bool
	validate bool
	dump     bool
	trailing bool
	lenient  bool
	maxDepth int
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("querygen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var o options
	fs.StringVar(&o.dialect, "dialect", "", `target dialect, or "all" (default: the description's, else postgresql)`)
	fs.BoolVar(&o.explain, "explain", false, "wrap the statement in the dialect's EXPLAIN form")
	fs.BoolVar(&o.readable, "readable", false, "print a plain-English explanation instead of SQL")
	fs.BoolVar(&o.params, "params", false, "render bind placeholders and print the arguments")
	fs.BoolVar(&o.validate, "validate", false, "check the generated SQL with the dialect parser")
	fs.BoolVar(&o.dump, "dump", false, "dump the decoded query structure")
	fs.BoolVar(&o.trailing, "trailing-pagination", false, "render TOP and ROWNUM as trailing clauses")
	fs.BoolVar(&o.lenient, "lenient", false, "drop features the dialect cannot express instead of failing")
	fs.IntVar(&o.maxDepth, "max-depth", 0, "maximum subquery nesting (0: default)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	data, err := readInput(fs.Arg(0), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "querygen: %v\n", err)
		return 1
	}
	q, described, err := querygen.ParseAny(data)
	if err != nil {
		fmt.Fprintf(stderr, "querygen: %v\n", err)
		return 1
	}

	if o.dump {
		spew.Fdump(stdout, q)
	}

	dialectName := o.dialect
	if dialectName == "" {
		dialectName = described
	}
	if dialectName == "" {
		dialectName = defaultDialect
	}

	if dialectName == "all" {
		return renderAll(q, o, stdout, stderr)
	}
	if err := render(q, dialectName, o, stdout); err != nil {
		fmt.Fprintf(stderr, "querygen: %v\n", err)
		return 1
	}
	return 0
}

func (o options) generatorOptions() []querygen.Option {
	var opts []querygen.Option
	if o.trailing {
		opts = append(opts, querygen.WithTrailingPagination())
	}
	if o.lenient {
		opts = append(opts, querygen.WithLenientDialectGaps())
	}
	if o.maxDepth > 0 {
		opts = append(opts, querygen.WithMaxDepth(o.maxDepth))
	}
	return opts
}

func render(q models.Query, dialectName string, o options, stdout io.Writer) error {
	gen, err := querygen.New(dialectName, o.generatorOptions()...)
	if err != nil {
		return err
	}

	if o.readable {
		fmt.Fprintln(stdout, gen.GenerateReadableExplanation(q))
		return nil
	}

	var sql string
	var args []any
	switch {
	case o.params:
		sql, args, err = gen.GenerateParameterized(q)
	case o.explain:
		sql, err = gen.GenerateExplainSQL(q)
	default:
		sql, err = gen.GenerateSQL(q)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, sql)
	if o.params {
		encoded, err := json.Marshal(args)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "-- args: %s\n", encoded)
	}
	for _, w := range gen.Warnings(q) {
		fmt.Fprintf(stdout, "-- warning: %s\n", w)
	}

	if o.validate {
		return validate(gen, sql, stdout)
	}
	return nil
}

func validate(gen *querygen.Generator, sql string, stdout io.Writer) error {
	result, err := gen.ValidateWithDetails(sql)
	if errors.Is(err, querygen.ErrNoValidator) {
		fmt.Fprintf(stdout, "-- validation: no parser for %s\n", gen.Dialect())
		return nil
	}
	if err != nil {
		return err
	}
	if !result.Valid {
		return fmt.Errorf("generated SQL does not parse: %s", result.Error)
	}
	fmt.Fprintln(stdout, "-- validation: ok")
	return nil
}

func renderAll(q models.Query, o options, stdout, stderr io.Writer) int {
	gen, err := querygen.New(defaultDialect, o.generatorOptions()...)
	if err != nil {
		fmt.Fprintf(stderr, "querygen: %v\n", err)
		return 1
	}
	results, err := gen.GenerateAll(context.Background(), q)
	if err != nil {
		fmt.Fprintf(stderr, "querygen: %v\n", err)
		return 1
	}

	code := 0
	for _, r := range results {
		fmt.Fprintf(stdout, "-- %s\n", r.Dialect)
		if r.Err() != nil {
			fmt.Fprintf(stdout, "-- error: %s\n\n", r.Error)
			code = 1
			continue
		}
		fmt.Fprintf(stdout, "%s\n\n", r.SQL)
	}
	return code
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
