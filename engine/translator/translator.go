package translator

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/kanda123-lab/querygen/engine/builders"
	"github.com/kanda123-lab/querygen/engine/dialect"
	"github.com/kanda123-lab/querygen/engine/models"
	"github.com/kanda123-lab/querygen/mapping"
)

// Result is the rendering of one query for one dialect.
type Result struct {
	Dialect string `json:"dialect"`
	SQL     string `json:"sql,omitempty"`
	Error   string `json:"error,omitempty"`

	err error
}

// Err returns the generation error, if any.
func (r Result) Err() error { return r.err }

// Translate routes query to the builder for dialectName.
func Translate(query models.Query, dialectName string, opts builders.Options) (string, error) {
	if !mapping.IsSupportedDialect(dialectName) {
		return "", fmt.Errorf("%w: %s (supported: %v)", dialect.ErrUnsupportedDialect, dialectName, mapping.SupportedDialects)
	}
	d, err := dialect.Lookup(dialectName)
	if err != nil {
		return "", err
	}
	return builders.New(d, opts).Build(query)
}

// TranslateAll renders query for every supported dialect in parallel.
// A dialect that cannot render the query reports its error in its Result;
// the returned error is only set when ctx is cancelled.
func TranslateAll(ctx context.Context, query models.Query, opts builders.Options) ([]Result, error) {
	dialects := dialect.All()
	results := make([]Result, len(dialects))

	eg, ctx := errgroup.WithContext(ctx)
	for i, d := range dialects {
		i, d := i, d
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			sql, err := builders.New(d, opts).Build(query)
			results[i] = Result{Dialect: d.Name(), SQL: sql, err: err}
			if err != nil {
				results[i].Error = err.Error()
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
