package models

// ============================================================================
// QUERY - Sealed union of statement kinds
// ============================================================================

// QueryType is the statement kind a query description declares.
type QueryType string

const (
	SelectType      QueryType = "SELECT"
	InsertType      QueryType = "INSERT"
	UpdateType      QueryType = "UPDATE"
	DeleteType      QueryType = "DELETE"
	CreateTableType QueryType = "CREATE_TABLE"
	AlterTableType  QueryType = "ALTER_TABLE"
)

// Query is implemented by exactly one struct per statement kind, so each
// statement carries only the payload that is meaningful for it.
type Query interface {
	Type() QueryType
	isQuery()
}

// SelectQuery describes a SELECT statement. It is also the shape used for
// subqueries, CTE bodies and set-operation operands.
type SelectQuery struct {
	Tables          []Table
	Joins           []Join
	Columns         []SelectColumn
	Distinct        bool
	Where           []Condition
	GroupBy         []string
	Having          []Condition
	OrderBy         []OrderBy
	Limit           int // 0 means no limit
	Offset          int
	CTEs            []CTE
	WindowFunctions []WindowFunction
	Unions          []Union
}

// InsertQuery describes an INSERT statement.
type InsertQuery struct {
	Table *Table
	Data  *InsertData
}

// UpdateQuery describes an UPDATE statement.
type UpdateQuery struct {
	Table *Table
	Data  *UpdateData
	Where []Condition
}

// DeleteQuery describes a DELETE statement.
type DeleteQuery struct {
	Table *Table
	Where []Condition
}

// CreateTableQuery describes a CREATE TABLE statement.
type CreateTableQuery struct {
	Data *CreateTableData
}

// AlterTableQuery is accepted by the model but has no renderer.
type AlterTableQuery struct {
	Table *Table
}

func (*SelectQuery) Type() QueryType      { return SelectType }
func (*InsertQuery) Type() QueryType      { return InsertType }
func (*UpdateQuery) Type() QueryType      { return UpdateType }
func (*DeleteQuery) Type() QueryType      { return DeleteType }
func (*CreateTableQuery) Type() QueryType { return CreateTableType }
func (*AlterTableQuery) Type() QueryType  { return AlterTableType }

func (*SelectQuery) isQuery()      {}
func (*InsertQuery) isQuery()      {}
func (*UpdateQuery) isQuery()      {}
func (*DeleteQuery) isQuery()      {}
func (*CreateTableQuery) isQuery() {}
func (*AlterTableQuery) isQuery()  {}

// ============================================================================
// TABLES
// ============================================================================

// Table is a table reference. ID is the identity joins refer to; two
// references may share a Name (self joins) but never an ID.
type Table struct {
	ID      string        `json:"id,omitempty"`
	Name    string        `json:"name"`
	Alias   string        `json:"alias,omitempty"`
	Schema  string        `json:"schema,omitempty"`
	Columns []TableColumn `json:"columns,omitempty"` // descriptive only, never validated
}

// TableColumn is a column the caller knows about for a table reference.
type TableColumn struct {
	Name       string `json:"name"`
	Type       string `json:"type,omitempty"`
	Nullable   bool   `json:"nullable,omitempty"`
	PrimaryKey bool   `json:"primaryKey,omitempty"`
	ForeignKey bool   `json:"foreignKey,omitempty"`
}

// Ref returns the name a column qualifier should use for this table.
func (t Table) Ref() string {
	if t.Alias != "" {
		return t.Alias
	}
	return t.Name
}

// ============================================================================
// JOINS
// ============================================================================

// JoinType represents the type of join
type JoinType string

const (
	InnerJoin JoinType = "INNER"
	LeftJoin  JoinType = "LEFT"
	RightJoin JoinType = "RIGHT"
	FullJoin  JoinType = "FULL"
	CrossJoin JoinType = "CROSS"
)

// Join links the table with RightTableID into the query. Conditions are
// ANDed together.
type Join struct {
	ID           string          `json:"id,omitempty"`
	Type         JoinType        `json:"type"`
	LeftTableID  string          `json:"leftTableId"`
	RightTableID string          `json:"rightTableId"`
	Conditions   []JoinCondition `json:"conditions,omitempty"`
}

// JoinCondition compares a column of the left table with one of the right.
type JoinCondition struct {
	LeftColumn  string `json:"leftColumn"`
	Operator    string `json:"operator,omitempty"` // defaults to "="
	RightColumn string `json:"rightColumn"`
}

// ============================================================================
// SELECT LIST
// ============================================================================

// AggregateFunc represents aggregate function types
type AggregateFunc string

const (
	Count AggregateFunc = "COUNT"
	Sum   AggregateFunc = "SUM"
	Avg   AggregateFunc = "AVG"
	Min   AggregateFunc = "MIN"
	Max   AggregateFunc = "MAX"
)

// SelectColumn is either a (possibly aggregated) column reference or, when
// IsExpression is set, a raw expression emitted verbatim.
type SelectColumn struct {
	Table        string        `json:"table,omitempty"` // qualifier: table name or alias
	Column       string        `json:"column,omitempty"`
	Aggregate    AggregateFunc `json:"aggregate,omitempty"`
	Alias        string        `json:"alias,omitempty"`
	IsExpression bool          `json:"isExpression,omitempty"`
	Expression   string        `json:"expression,omitempty"`
}

// ============================================================================
// CONDITIONS (WHERE / HAVING)
// ============================================================================

// Operator is a comparison operator from the fixed set below.
type Operator string

const (
	OpEqual        Operator = "="
	OpNotEqual     Operator = "<>"
	OpLess         Operator = "<"
	OpGreater      Operator = ">"
	OpLessEqual    Operator = "<="
	OpGreaterEqual Operator = ">="
	OpLike         Operator = "LIKE"
	OpIn           Operator = "IN"
	OpNotIn        Operator = "NOT IN"
	OpBetween      Operator = "BETWEEN"
	OpIsNull       Operator = "IS NULL"
	OpIsNotNull    Operator = "IS NOT NULL"
)

// Connective joins a condition to the one before it.
type Connective string

const (
	And Connective = "AND"
	Or  Connective = "OR"
)

// Condition is one predicate in a WHERE or HAVING list. Value may be a
// scalar (string, bool, number, time.Time, nil) or a slice for IN/NOT IN.
// When Subquery is set it replaces Value.
//
// GroupStart and GroupEnd open and close a parenthesised group; balancing
// them is the caller's job.
type Condition struct {
	Table      string
	Column     string
	Operator   Operator
	Value      any
	Value2     any // BETWEEN upper bound
	Subquery   *SelectQuery
	Connective Connective
	GroupStart bool
	GroupEnd   bool
}

// ============================================================================
// ORDER BY
// ============================================================================

// SortDirection represents sort order
type SortDirection string

const (
	Ascending  SortDirection = "ASC"
	Descending SortDirection = "DESC"
)

// NullsOrder places NULLs before or after other values.
type NullsOrder string

const (
	NullsFirst NullsOrder = "FIRST"
	NullsLast  NullsOrder = "LAST"
)

// OrderBy represents ORDER BY clause
type OrderBy struct {
	Table     string        `json:"table,omitempty"`
	Column    string        `json:"column"`
	Direction SortDirection `json:"direction,omitempty"`
	Nulls     NullsOrder    `json:"nulls,omitempty"`
}

// ============================================================================
// CTE, WINDOW FUNCTIONS, SET OPERATIONS
// ============================================================================

// CTE is one named entry of a WITH preamble.
type CTE struct {
	Name      string
	Recursive bool
	Query     *SelectQuery
}

// WindowFunction is rendered as FUNC(args) OVER (PARTITION BY ... ORDER BY ...).
type WindowFunction struct {
	Function    string    `json:"function"` // ROW_NUMBER, RANK, DENSE_RANK, LAG, LEAD, NTILE, SUM, ...
	Column      string    `json:"column,omitempty"`
	Offset      int       `json:"offset,omitempty"`  // LAG/LEAD
	Buckets     int       `json:"buckets,omitempty"` // NTILE
	PartitionBy []string  `json:"partitionBy,omitempty"`
	OrderBy     []OrderBy `json:"orderBy,omitempty"`
	Alias       string    `json:"alias,omitempty"`
}

// SetOperator combines two SELECT results.
type SetOperator string

const (
	UnionDistinct SetOperator = "UNION"
	UnionAll      SetOperator = "UNION ALL"
	Intersect     SetOperator = "INTERSECT"
	Except        SetOperator = "EXCEPT"
)

// Union appends another SELECT with a set operator.
type Union struct {
	Operator SetOperator
	Query    *SelectQuery
}

// ============================================================================
// INSERT / UPDATE PAYLOADS
// ============================================================================

// ConflictMode selects what an INSERT does on a uniqueness violation.
type ConflictMode string

const (
	ConflictNone    ConflictMode = ""
	ConflictIgnore  ConflictMode = "IGNORE"
	ConflictUpdate  ConflictMode = "UPDATE"
	ConflictReplace ConflictMode = "REPLACE"
)

// InsertData is the column/value matrix of an INSERT. Row values are looked
// up by column name; a missing key renders as NULL.
type InsertData struct {
	Columns         []string         `json:"columns"`
	Rows            []map[string]any `json:"rows"`
	Conflict        ConflictMode     `json:"onConflict,omitempty"`
	ConflictColumns []string         `json:"conflictColumns,omitempty"`
}

// Assignment is one SET entry of an UPDATE.
type Assignment struct {
	Column       string `json:"column"`
	Value        any    `json:"value,omitempty"`
	IsExpression bool   `json:"isExpression,omitempty"`
	Expression   string `json:"expression,omitempty"`
}

// UpdateData holds the SET clause of an UPDATE.
type UpdateData struct {
	Assignments []Assignment `json:"assignments"`
}

// ============================================================================
// CREATE TABLE PAYLOAD
// ============================================================================

// ColumnDefinition is a column of a CREATE TABLE. Default is raw SQL
// (e.g. CURRENT_TIMESTAMP, 0, 'active').
type ColumnDefinition struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	NotNull       bool   `json:"notNull,omitempty"`
	Default       string `json:"defaultValue,omitempty"`
	AutoIncrement bool   `json:"autoIncrement,omitempty"`
	Unique        bool   `json:"unique,omitempty"`
	Comment       string `json:"comment,omitempty"`
}

// ForeignKey represents a FOREIGN KEY clause.
type ForeignKey struct {
	Columns           []string `json:"columns"`
	ReferencedTable   string   `json:"referencedTable"`
	ReferencedColumns []string `json:"referencedColumns"`
	OnDelete          string   `json:"onDelete,omitempty"`
	OnUpdate          string   `json:"onUpdate,omitempty"`
}

// Constraint is a named table constraint, e.g. CHECK (price > 0).
type Constraint struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Definition string `json:"definition"`
}

// CreateTableData represents the CREATE TABLE payload.
type CreateTableData struct {
	TableName   string             `json:"tableName"`
	Schema      string             `json:"schema,omitempty"`
	IfNotExists bool               `json:"ifNotExists,omitempty"`
	Columns     []ColumnDefinition `json:"columns"`
	PrimaryKey  []string           `json:"primaryKey,omitempty"`
	ForeignKeys []ForeignKey       `json:"foreignKeys,omitempty"`
	Constraints []Constraint       `json:"constraints,omitempty"`
}
