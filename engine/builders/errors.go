package builders

import (
	"errors"

	"github.com/kanda123-lab/querygen/engine/dialect"
	"github.com/kanda123-lab/querygen/engine/models"
)

// Sentinel errors. Every failure is wrapped around one of these with
// fmt.Errorf("%w: ...") so callers can test with errors.Is.
var (
	ErrInvalidQuery          = errors.New("invalid query")
	ErrUnknownTable          = errors.New("unknown table")
	ErrUnsupportedQueryType  = models.ErrUnsupportedQueryType
	ErrUnsupportedOperator   = errors.New("unsupported operator")
	ErrUnsupportedForDialect = dialect.ErrUnsupportedFeature
	ErrNotImplemented        = errors.New("not implemented")
	ErrMaxDepthExceeded      = errors.New("maximum query nesting depth exceeded")
)
