package builders

import (
	"fmt"

	"github.com/kanda123-lab/querygen/engine/models"
)

// ============================================================================
// DELETE
// ============================================================================

// delete renders DELETE FROM t with an optional WHERE. A DELETE without
// conditions is rendered as-is; explainer.Warnings reports it.
func (r *render) delete(q *models.DeleteQuery) (string, error) {
	if q.Table == nil || q.Table.Name == "" {
		return "", fmt.Errorf("%w: delete query requires a table", ErrInvalidQuery)
	}
	return r.withWhere("DELETE FROM "+r.tableName(q.Table.Schema, q.Table.Name), q.Where)
}
