package explainer

import (
	"fmt"
	"strings"

	"github.com/kanda123-lab/querygen/engine/models"
)

// Warnings lists operationally risky traits of q. Nothing here stops
// generation; callers decide how loudly to surface them.
func Warnings(q models.Query) []string {
	var out []string
	switch query := q.(type) {
	case *models.DeleteQuery:
		if query != nil && len(query.Where) == 0 {
			out = append(out, fmt.Sprintf("DELETE without WHERE removes every row in %s", tableName(query.Table)))
		}
	case *models.UpdateQuery:
		if query != nil && len(query.Where) == 0 {
			out = append(out, fmt.Sprintf("UPDATE without WHERE changes every row in %s", tableName(query.Table)))
		}
	case *models.SelectQuery:
		if query != nil && len(query.Joins) > 0 && len(query.Where) == 0 && query.Limit == 0 {
			out = append(out, fmt.Sprintf("SELECT joins %s without WHERE or LIMIT and may return a very large result",
				countNoun(len(query.Tables), "table")))
		}
		if query != nil {
			for _, join := range query.Joins {
				if strings.EqualFold(string(join.Type), string(models.CrossJoin)) {
					out = append(out, "CROSS JOIN returns every combination of rows")
					break
				}
			}
		}
	}
	return out
}
