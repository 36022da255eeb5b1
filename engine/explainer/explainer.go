package explainer

import (
	"fmt"
	"strings"

	"github.com/jinzhu/inflection"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kanda123-lab/querygen/engine/models"
	"github.com/kanda123-lab/querygen/mapping"
)

// Explain summarises q in plain English. It reads the query structure
// directly, never fails and skips whatever is missing.
func Explain(q models.Query) string {
	if isNil(q) {
		return "Empty query."
	}

	var sentences []string
	switch query := q.(type) {
	case *models.SelectQuery:
		sentences = explainSelect(query)
	case *models.InsertQuery:
		sentences = explainInsert(query)
	case *models.UpdateQuery:
		sentences = explainUpdate(query)
	case *models.DeleteQuery:
		sentences = explainDelete(query)
	case *models.CreateTableQuery:
		sentences = explainCreateTable(query)
	case *models.AlterTableQuery:
		sentences = []string{fmt.Sprintf("alters table %s, which the generator does not render", tableName(query.Table))}
	}

	for _, w := range Warnings(q) {
		sentences = append(sentences, "warning: "+w)
	}
	return finish(sentences)
}

// ============================================================================
// SELECT
// ============================================================================

func explainSelect(q *models.SelectQuery) []string {
	var out []string

	if len(q.CTEs) > 0 {
		names := make([]string, 0, len(q.CTEs))
		for _, cte := range q.CTEs {
			names = append(names, cte.Name)
		}
		out = append(out, fmt.Sprintf("defines %s (%s)", countNoun(len(q.CTEs), "common table expression"), joinWords(names)))
	}

	verb := "selects "
	if q.Distinct {
		verb = "selects distinct "
	}
	main := verb + describeColumns(q.Columns)
	if len(q.Tables) > 0 {
		main += " from " + q.Tables[0].Name
	}
	if partners := joinPartners(q); len(partners) > 0 {
		main += " joined with " + joinWords(partners)
	}
	out = append(out, main)

	if len(q.WindowFunctions) > 0 {
		names := make([]string, 0, len(q.WindowFunctions))
		for _, wf := range q.WindowFunctions {
			names = append(names, mapping.NormalizeFunction(wf.Function))
		}
		out = append(out, fmt.Sprintf("computes %s (%s)", countNoun(len(q.WindowFunctions), "window function"), joinWords(names)))
	}

	var filters []string
	if len(q.Where) > 0 {
		filters = append(filters, "filtered by "+describeConditions(q.Where))
	}
	if len(q.GroupBy) > 0 {
		filters = append(filters, "grouped by "+joinWords(q.GroupBy))
	}
	if len(q.Having) > 0 {
		filters = append(filters, "groups kept when "+describeConditions(q.Having))
	}
	if len(q.OrderBy) > 0 {
		filters = append(filters, "ordered by "+describeOrder(q.OrderBy))
	}
	if len(filters) > 0 {
		out = append(out, "results are "+strings.Join(filters, "; "))
	}

	if q.Limit > 0 {
		page := "returns at most " + countNoun(q.Limit, "row")
		if q.Offset > 0 {
			page += " after skipping " + countNoun(q.Offset, "row")
		}
		out = append(out, page)
	}

	for _, u := range q.Unions {
		op := strings.ToUpper(string(u.Operator))
		if op == "" {
			op = string(models.UnionDistinct)
		}
		from := "another query"
		if u.Query != nil && len(u.Query.Tables) > 0 {
			from = "rows from " + u.Query.Tables[0].Name
		}
		out = append(out, fmt.Sprintf("combined (%s) with %s", op, from))
	}
	return out
}

func describeColumns(cols []models.SelectColumn) string {
	if len(cols) == 0 {
		return "all columns"
	}
	parts := make([]string, 0, len(cols))
	for _, col := range cols {
		parts = append(parts, describeColumn(col))
	}
	return joinWords(parts)
}

var aggregateWords = map[string]string{
	"COUNT": "count",
	"SUM":   "total",
	"AVG":   "average",
	"MIN":   "minimum",
	"MAX":   "maximum",
}

func describeColumn(col models.SelectColumn) string {
	var desc string
	switch {
	case col.IsExpression:
		desc = col.Expression
	case col.Aggregate != "":
		agg := strings.ToUpper(string(col.Aggregate))
		if agg == string(models.Count) && (col.Column == "" || col.Column == "*") {
			desc = "the number of rows"
		} else {
			word, ok := aggregateWords[agg]
			if !ok {
				word = strings.ToLower(agg)
			}
			desc = fmt.Sprintf("the %s of %s", word, qualified(col.Table, col.Column))
		}
	default:
		desc = qualified(col.Table, col.Column)
	}
	if col.Alias != "" {
		desc += " (as " + col.Alias + ")"
	}
	return desc
}

func joinPartners(q *models.SelectQuery) []string {
	var partners []string
	for _, join := range q.Joins {
		name := join.RightTableID
		for _, t := range q.Tables {
			if t.ID == join.RightTableID || (t.ID == "" && t.Name == join.RightTableID) {
				name = t.Name
				break
			}
		}
		kind := strings.ToLower(string(join.Type))
		if kind == "" {
			kind = "inner"
		}
		partners = append(partners, fmt.Sprintf("%s (%s join)", name, kind))
	}
	return partners
}

func describeConditions(conds []models.Condition) string {
	if len(conds) == 1 {
		c := conds[0]
		phrase, ok := mapping.OperatorPhrases[strings.ToUpper(string(c.Operator))]
		if !ok {
			phrase = string(c.Operator)
		}
		desc := qualified(c.Table, c.Column) + " " + phrase
		if c.Subquery != nil {
			return desc + " a subquery result"
		}
		if mapping.GetOperatorCategory(string(c.Operator)) == mapping.CategoryNullCheck {
			return desc
		}
		if mapping.GetOperatorCategory(string(c.Operator)) == mapping.CategoryRange {
			return fmt.Sprintf("%s %v and %v", desc, c.Value, c.Value2)
		}
		return fmt.Sprintf("%s %v", desc, c.Value)
	}
	return countNoun(len(conds), "condition")
}

func describeOrder(items []models.OrderBy) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		dir := "ascending"
		if strings.EqualFold(string(item.Direction), string(models.Descending)) {
			dir = "descending"
		}
		parts = append(parts, qualified(item.Table, item.Column)+" "+dir)
	}
	return joinWords(parts)
}

// ============================================================================
// DML / DDL
// ============================================================================

func explainInsert(q *models.InsertQuery) []string {
	rows, cols := 0, []string(nil)
	if q.Data != nil {
		rows, cols = len(q.Data.Rows), q.Data.Columns
	}
	main := fmt.Sprintf("inserts %s into %s", countNoun(rows, "row"), tableName(q.Table))
	if len(cols) > 0 {
		main += " (" + strings.Join(cols, ", ") + ")"
	}
	out := []string{main}

	if q.Data != nil {
		switch models.ConflictMode(strings.ToUpper(string(q.Data.Conflict))) {
		case models.ConflictIgnore:
			out = append(out, "rows that conflict with existing ones are skipped")
		case models.ConflictUpdate:
			out = append(out, "rows that conflict with existing ones update them")
		case models.ConflictReplace:
			out = append(out, "rows that conflict with existing ones replace them")
		}
	}
	return out
}

func explainUpdate(q *models.UpdateQuery) []string {
	var cols []string
	if q.Data != nil {
		for _, a := range q.Data.Assignments {
			cols = append(cols, a.Column)
		}
	}
	set := "no columns"
	if len(cols) > 0 {
		set = joinWords(cols)
	}
	main := fmt.Sprintf("updates %s in %s", set, tableName(q.Table))
	if len(q.Where) > 0 {
		main += " where " + describeConditions(q.Where)
	} else {
		main += " for every row"
	}
	return []string{main}
}

func explainDelete(q *models.DeleteQuery) []string {
	if len(q.Where) == 0 {
		return []string{"deletes all rows from " + tableName(q.Table)}
	}
	return []string{fmt.Sprintf("deletes rows from %s where %s", tableName(q.Table), describeConditions(q.Where))}
}

func explainCreateTable(q *models.CreateTableQuery) []string {
	d := q.Data
	if d == nil {
		return []string{"creates a table without a definition"}
	}
	main := fmt.Sprintf("creates table %s with %s", d.TableName, countNoun(len(d.Columns), "column"))
	if d.IfNotExists {
		main += " if it does not already exist"
	}
	out := []string{main}

	var keys []string
	if len(d.PrimaryKey) > 0 {
		keys = append(keys, "primary key ("+strings.Join(d.PrimaryKey, ", ")+")")
	}
	if len(d.ForeignKeys) > 0 {
		keys = append(keys, countNoun(len(d.ForeignKeys), "foreign key"))
	}
	if len(d.Constraints) > 0 {
		keys = append(keys, countNoun(len(d.Constraints), "constraint"))
	}
	if len(keys) > 0 {
		out = append(out, "it declares "+joinWords(keys))
	}
	return out
}

// ============================================================================
// WORDING HELPERS
// ============================================================================

// isNil reports a nil interface or a nil statement pointer.
func isNil(q models.Query) bool {
	switch query := q.(type) {
	case nil:
		return true
	case *models.SelectQuery:
		return query == nil
	case *models.InsertQuery:
		return query == nil
	case *models.UpdateQuery:
		return query == nil
	case *models.DeleteQuery:
		return query == nil
	case *models.CreateTableQuery:
		return query == nil
	case *models.AlterTableQuery:
		return query == nil
	}
	return false
}

// countNoun renders "1 row" or "3 rows".
func countNoun(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %s", n, inflection.Plural(noun))
}

// joinWords renders "a", "a and b" or "a, b and c".
func joinWords(words []string) string {
	switch len(words) {
	case 0:
		return ""
	case 1:
		return words[0]
	}
	return strings.Join(words[:len(words)-1], ", ") + " and " + words[len(words)-1]
}

func qualified(table, column string) string {
	if table == "" {
		return column
	}
	return table + "." + column
}

func tableName(t *models.Table) string {
	if t == nil || t.Name == "" {
		return "an unnamed table"
	}
	return t.Name
}

// finish capitalises each sentence and terminates it with a period.
func finish(sentences []string) string {
	caser := cases.Title(language.English)
	for i, s := range sentences {
		first, rest, _ := strings.Cut(s, " ")
		if rest != "" {
			rest = " " + rest
		}
		sentences[i] = caser.String(first) + rest + "."
	}
	return strings.Join(sentences, " ")
}
