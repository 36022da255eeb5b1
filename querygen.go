// Package querygen turns typed query descriptions into dialect-specific
// SQL, plain-English explanations and EXPLAIN statements.
package querygen

import (
	"context"
	"errors"

	"github.com/kanda123-lab/querygen/engine/builders"
	"github.com/kanda123-lab/querygen/engine/dialect"
	"github.com/kanda123-lab/querygen/engine/explainer"
	"github.com/kanda123-lab/querygen/engine/models"
	"github.com/kanda123-lab/querygen/engine/translator"
	"github.com/kanda123-lab/querygen/engine/validator"
	"github.com/kanda123-lab/querygen/pkg/logger"
)

var (
	ErrInvalidQuery          = builders.ErrInvalidQuery
	ErrUnknownTable          = builders.ErrUnknownTable
	ErrUnsupportedQueryType  = builders.ErrUnsupportedQueryType
	ErrUnsupportedOperator   = builders.ErrUnsupportedOperator
	ErrUnsupportedForDialect = builders.ErrUnsupportedForDialect
	ErrNotImplemented        = builders.ErrNotImplemented
	ErrMaxDepthExceeded      = builders.ErrMaxDepthExceeded
	ErrUnsupportedDialect    = dialect.ErrUnsupportedDialect
	ErrNoValidator           = validator.ErrNoValidator
)

// ============================================================================
// OPTIONS
// ============================================================================

type settings struct {
	builders.Options
	log logger.LoggerI
}

// Option configures a Generator.
type Option func(*settings)

// WithMaxDepth bounds subquery, CTE and set-operation nesting.
func WithMaxDepth(depth int) Option {
	return func(s *settings) { s.MaxDepth = depth }
}

// WithTrailingPagination renders SQL Server TOP and Oracle ROWNUM as
// trailing clauses, the layout older callers expect.
func WithTrailingPagination() Option {
	return func(s *settings) { s.TrailingPagination = true }
}

// WithLenientDialectGaps drops conflict modes and column comments the
// dialect cannot express instead of failing.
func WithLenientDialectGaps() Option {
	return func(s *settings) { s.LenientDialectGaps = true }
}

// WithLogger logs failed generations at debug level.
func WithLogger(log logger.LoggerI) Option {
	return func(s *settings) { s.log = log }
}

// ============================================================================
// GENERATOR
// ============================================================================

// Generator renders queries for one dialect. It is immutable and safe for
// concurrent use.
type Generator struct {
	builder *builders.Builder
	opts    builders.Options
	log     logger.LoggerI
}

// New creates a Generator for a dialect name or alias.
func New(dialectName string, opts ...Option) (*Generator, error) {
	d, err := dialect.Lookup(dialectName)
	if err != nil {
		return nil, err
	}
	return NewWithDialect(d, opts...), nil
}

// NewWithDialect creates a Generator for a custom Dialect implementation.
func NewWithDialect(d dialect.Dialect, opts ...Option) *Generator {
	s := settings{log: logger.NewNop()}
	for _, opt := range opts {
		opt(&s)
	}
	return &Generator{
		builder: builders.New(d, s.Options),
		opts:    s.Options,
		log:     logger.GetNamed(s.log, "querygen"),
	}
}

// Dialect returns the canonical dialect name.
func (g *Generator) Dialect() string { return g.builder.Dialect().Name() }

// GenerateSQL renders q with literal values.
func (g *Generator) GenerateSQL(q models.Query) (string, error) {
	sql, err := g.builder.Build(q)
	if err != nil {
		g.logFailure("GenerateSQL", q, err)
		return "", err
	}
	return sql, nil
}

// GenerateParameterized renders q with bind placeholders and returns the
// arguments in order.
func (g *Generator) GenerateParameterized(q models.Query) (string, []any, error) {
	sql, args, err := g.builder.BuildParameterized(q)
	if err != nil {
		g.logFailure("GenerateParameterized", q, err)
		return "", nil, err
	}
	return sql, args, nil
}

// GenerateExplainSQL wraps the generated statement in the dialect's plan
// request.
func (g *Generator) GenerateExplainSQL(q models.Query) (string, error) {
	sql, err := g.GenerateSQL(q)
	if err != nil {
		return "", err
	}
	return g.builder.Dialect().Explain(sql), nil
}

// GenerateReadableExplanation describes q in plain English. It never fails.
func (g *Generator) GenerateReadableExplanation(q models.Query) string {
	return explainer.Explain(q)
}

// Warnings lists risky traits of q, such as a DELETE without WHERE.
func (g *Generator) Warnings(q models.Query) []string {
	return explainer.Warnings(q)
}

// Validate checks sql against the generator's dialect grammar.
func (g *Generator) Validate(sql string) error {
	return validator.ValidateSQL(sql, g.Dialect())
}

// ValidateWithDetails is Validate with error position details.
func (g *Generator) ValidateWithDetails(sql string) (*validator.ValidationResult, error) {
	return validator.ValidateSQLWithDetails(sql, g.Dialect())
}

// GenerateAll renders q for every supported dialect with the generator's
// options.
func (g *Generator) GenerateAll(ctx context.Context, q models.Query) ([]translator.Result, error) {
	return translator.TranslateAll(ctx, q, g.opts)
}

func (g *Generator) logFailure(op string, q models.Query, err error) {
	queryType := "nil"
	if q != nil {
		queryType = string(q.Type())
	}
	level := g.log.Debug
	if !isCallerError(err) {
		level = g.log.Warn
	}
	level(op+" failed",
		logger.String("dialect", g.Dialect()),
		logger.String("type", queryType),
		logger.Error(err),
	)
}

// isCallerError reports errors caused by the input rather than the
// generator.
func isCallerError(err error) bool {
	for _, target := range []error{
		ErrInvalidQuery, ErrUnknownTable, ErrUnsupportedQueryType, ErrUnsupportedOperator,
		ErrUnsupportedForDialect, ErrMaxDepthExceeded,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
