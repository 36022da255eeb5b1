package mapping

import "strings"

// Operator categories decide how a condition's value is rendered.
const (
	CategoryComparison = "COMPARISON"
	CategoryMultiValue = "MULTI_VALUE"
	CategoryRange      = "RANGE"
	CategoryNullCheck  = "NULLCHECK"
)

// OperatorCategories - SSOT for the comparison operators a condition accepts
var OperatorCategories = map[string]string{
	// Standard comparison (single value)
	"=":    CategoryComparison,
	"<>":   CategoryComparison,
	"<":    CategoryComparison,
	">":    CategoryComparison,
	"<=":   CategoryComparison,
	">=":   CategoryComparison,
	"LIKE": CategoryComparison,

	// Multi-value operators (IN)
	"IN":     CategoryMultiValue,
	"NOT IN": CategoryMultiValue,

	// Range operators (BETWEEN)
	"BETWEEN": CategoryRange,

	// Null check operators (no value needed)
	"IS NULL":     CategoryNullCheck,
	"IS NOT NULL": CategoryNullCheck,
}

// OperatorPhrases - how explanations read each operator
var OperatorPhrases = map[string]string{
	"=":           "equals",
	"<>":          "is not equal to",
	"<":           "is less than",
	">":           "is greater than",
	"<=":          "is at most",
	">=":          "is at least",
	"LIKE":        "matches",
	"IN":          "is one of",
	"NOT IN":      "is not one of",
	"BETWEEN":     "is between",
	"IS NULL":     "is empty",
	"IS NOT NULL": "is present",
}

// GetOperatorCategory returns the category for an operator, or "" when the
// operator is not supported.
func GetOperatorCategory(op string) string {
	return OperatorCategories[strings.ToUpper(strings.TrimSpace(op))]
}

// IsComparisonOperator checks if op is any supported condition operator
func IsComparisonOperator(op string) bool {
	return GetOperatorCategory(op) != ""
}

// JoinKeywords - JOIN keyword per join type
var JoinKeywords = map[string]string{
	"INNER": "INNER JOIN",
	"LEFT":  "LEFT JOIN",
	"RIGHT": "RIGHT JOIN",
	"FULL":  "FULL JOIN",
	"CROSS": "CROSS JOIN",
}

// JoinOperators - operators allowed between the two sides of a join condition
var JoinOperators = map[string]bool{
	"=":  true,
	"<>": true,
	"!=": true,
	"<":  true,
	">":  true,
	"<=": true,
	">=": true,
}

// Aggregates - aggregate functions a select column may apply
var Aggregates = map[string]bool{
	"COUNT": true,
	"SUM":   true,
	"AVG":   true,
	"MIN":   true,
	"MAX":   true,
}

// IsAggregate checks if name is a supported aggregate function
func IsAggregate(name string) bool {
	return Aggregates[strings.ToUpper(name)]
}

// WindowFunctions - SSOT for window function names
var WindowFunctions = map[string]bool{
	"ROW_NUMBER":  true,
	"RANK":        true,
	"DENSE_RANK":  true,
	"LAG":         true,
	"LEAD":        true,
	"NTILE":       true,
	"FIRST_VALUE": true,
	"LAST_VALUE":  true,
	"SUM":         true,
	"AVG":         true,
	"COUNT":       true,
	"MIN":         true,
	"MAX":         true,
}

// IsWindowFunction checks if name is window function
func IsWindowFunction(name string) bool {
	return WindowFunctions[NormalizeFunction(name)]
}

// WindowFunctionHasOffset checks if function takes an offset argument (LAG, LEAD)
func WindowFunctionHasOffset(name string) bool {
	upper := NormalizeFunction(name)
	return upper == "LAG" || upper == "LEAD"
}

// WindowFunctionHasBuckets checks if function takes bucket count (NTILE)
func WindowFunctionHasBuckets(name string) bool {
	return NormalizeFunction(name) == "NTILE"
}

// WindowFunctionTakesColumn reports whether the function's first argument
// is a column.
func WindowFunctionTakesColumn(name string) bool {
	switch NormalizeFunction(name) {
	case "ROW_NUMBER", "RANK", "DENSE_RANK", "NTILE":
		return false
	}
	return true
}

// NormalizeFunction accepts "row number" and "ROW_NUMBER" alike.
func NormalizeFunction(name string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(name)), " ", "_")
}
