package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedQueryType is returned for a query type the generator has no
// statement kind for.
var ErrUnsupportedQueryType = errors.New("unsupported query type")

// ============================================================================
// DESCRIPTION - JSON wire form of a query
// ============================================================================

// Description is the flat JSON shape the query builder UI produces. Every
// statement kind shares it; Query converts it into the typed union.
type Description struct {
	Type             QueryType        `json:"type"`
	Dialect          string           `json:"dialect,omitempty"`
	Tables           []Table          `json:"tables,omitempty"`
	Joins            []Join           `json:"joins,omitempty"`
	SelectColumns    []SelectColumn   `json:"selectColumns,omitempty"`
	Distinct         bool             `json:"distinct,omitempty"`
	WhereConditions  []Condition      `json:"whereConditions,omitempty"`
	GroupByColumns   []string         `json:"groupByColumns,omitempty"`
	HavingConditions []Condition      `json:"havingConditions,omitempty"`
	OrderByColumns   []OrderBy        `json:"orderByColumns,omitempty"`
	Limit            int              `json:"limit,omitempty"`
	Offset           int              `json:"offset,omitempty"`
	InsertData       *InsertData      `json:"insertData,omitempty"`
	UpdateData       *UpdateData      `json:"updateData,omitempty"`
	CreateTableData  *CreateTableData `json:"createTableData,omitempty"`
	CTEs             []CTE            `json:"ctes,omitempty"`
	WindowFunctions  []WindowFunction `json:"windowFunctions,omitempty"`
	Unions           []Union          `json:"unions,omitempty"`
}

// ParseDescription decodes a JSON description. Numbers are kept as
// json.Number so large integers survive unchanged into the SQL text.
func ParseDescription(data []byte) (*Description, error) {
	var d Description
	if err := decodeJSON(data, &d); err != nil {
		return nil, fmt.Errorf("invalid query description: %w", err)
	}
	return &d, nil
}

// Query converts the description into its typed statement. Non-SELECT
// statements act on the first table; further tables are ignored.
func (d *Description) Query() (Query, error) {
	switch normalizeType(d.Type) {
	case SelectType:
		return d.selectQuery(), nil
	case InsertType:
		return &InsertQuery{Table: d.firstTable(), Data: d.InsertData}, nil
	case UpdateType:
		return &UpdateQuery{Table: d.firstTable(), Data: d.UpdateData, Where: d.WhereConditions}, nil
	case DeleteType:
		return &DeleteQuery{Table: d.firstTable(), Where: d.WhereConditions}, nil
	case CreateTableType:
		return &CreateTableQuery{Data: d.CreateTableData}, nil
	case AlterTableType:
		return &AlterTableQuery{Table: d.firstTable()}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedQueryType, d.Type)
	}
}

func (d *Description) selectQuery() *SelectQuery {
	return &SelectQuery{
		Tables:          d.Tables,
		Joins:           d.Joins,
		Columns:         d.SelectColumns,
		Distinct:        d.Distinct,
		Where:           d.WhereConditions,
		GroupBy:         d.GroupByColumns,
		Having:          d.HavingConditions,
		OrderBy:         d.OrderByColumns,
		Limit:           d.Limit,
		Offset:          d.Offset,
		CTEs:            d.CTEs,
		WindowFunctions: d.WindowFunctions,
		Unions:          d.Unions,
	}
}

func (d *Description) firstTable() *Table {
	if len(d.Tables) == 0 {
		return nil
	}
	t := d.Tables[0]
	return &t
}

// Describe is the inverse of Description.Query.
func Describe(q Query) *Description {
	switch v := q.(type) {
	case *SelectQuery:
		return describeSelect(v)
	case *InsertQuery:
		return &Description{Type: InsertType, Tables: tableList(v.Table), InsertData: v.Data}
	case *UpdateQuery:
		return &Description{Type: UpdateType, Tables: tableList(v.Table), UpdateData: v.Data, WhereConditions: v.Where}
	case *DeleteQuery:
		return &Description{Type: DeleteType, Tables: tableList(v.Table), WhereConditions: v.Where}
	case *CreateTableQuery:
		return &Description{Type: CreateTableType, CreateTableData: v.Data}
	case *AlterTableQuery:
		return &Description{Type: AlterTableType, Tables: tableList(v.Table)}
	}
	return nil
}

func describeSelect(q *SelectQuery) *Description {
	if q == nil {
		return nil
	}
	return &Description{
		Type:             SelectType,
		Tables:           q.Tables,
		Joins:            q.Joins,
		SelectColumns:    q.Columns,
		Distinct:         q.Distinct,
		WhereConditions:  q.Where,
		GroupByColumns:   q.GroupBy,
		HavingConditions: q.Having,
		OrderByColumns:   q.OrderBy,
		Limit:            q.Limit,
		Offset:           q.Offset,
		CTEs:             q.CTEs,
		WindowFunctions:  q.WindowFunctions,
		Unions:           q.Unions,
	}
}

func tableList(t *Table) []Table {
	if t == nil {
		return nil
	}
	return []Table{*t}
}

// normalizeType accepts "create table" and "CREATE_TABLE" alike.
func normalizeType(t QueryType) QueryType {
	s := strings.ToUpper(strings.TrimSpace(string(t)))
	return QueryType(strings.ReplaceAll(s, " ", "_"))
}

// ============================================================================
// NESTED QUERIES ON THE WIRE
// ============================================================================

type conditionJSON struct {
	Table      string          `json:"table,omitempty"`
	Column     string          `json:"column"`
	Operator   Operator        `json:"operator"`
	Value      json.RawMessage `json:"value,omitempty"`
	Value2     json.RawMessage `json:"value2,omitempty"`
	Connective Connective      `json:"logicalOperator,omitempty"`
	GroupStart bool            `json:"groupStart,omitempty"`
	GroupEnd   bool            `json:"groupEnd,omitempty"`
}

// UnmarshalJSON decodes a condition. An object in "value" is a nested
// SELECT description and becomes the Subquery.
func (c *Condition) UnmarshalJSON(data []byte) error {
	var raw conditionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Condition{
		Table:      raw.Table,
		Column:     raw.Column,
		Operator:   raw.Operator,
		Connective: raw.Connective,
		GroupStart: raw.GroupStart,
		GroupEnd:   raw.GroupEnd,
	}

	if isObject(raw.Value) {
		var sub Description
		if err := decodeJSON(raw.Value, &sub); err != nil {
			return fmt.Errorf("condition on %q: %w", raw.Column, err)
		}
		if normalizeType(sub.Type) != SelectType && sub.Type != "" {
			return fmt.Errorf("condition on %q: subquery must be SELECT, got %q", raw.Column, sub.Type)
		}
		c.Subquery = sub.selectQuery()
	} else if err := decodeValue(raw.Value, &c.Value); err != nil {
		return err
	}
	return decodeValue(raw.Value2, &c.Value2)
}

// MarshalJSON writes a Subquery back as a nested description.
func (c Condition) MarshalJSON() ([]byte, error) {
	raw := conditionJSON{
		Table:      c.Table,
		Column:     c.Column,
		Operator:   c.Operator,
		Connective: c.Connective,
		GroupStart: c.GroupStart,
		GroupEnd:   c.GroupEnd,
	}
	var err error
	if c.Subquery != nil {
		raw.Value, err = json.Marshal(describeSelect(c.Subquery))
	} else if c.Value != nil {
		raw.Value, err = json.Marshal(c.Value)
	}
	if err != nil {
		return nil, err
	}
	if c.Value2 != nil {
		if raw.Value2, err = json.Marshal(c.Value2); err != nil {
			return nil, err
		}
	}
	return json.Marshal(raw)
}

type cteJSON struct {
	Name      string       `json:"name"`
	Recursive bool         `json:"recursive,omitempty"`
	Query     *Description `json:"query"`
}

func (c *CTE) UnmarshalJSON(data []byte) error {
	var raw cteJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = CTE{Name: raw.Name, Recursive: raw.Recursive}
	if raw.Query != nil {
		c.Query = raw.Query.selectQuery()
	}
	return nil
}

func (c CTE) MarshalJSON() ([]byte, error) {
	return json.Marshal(cteJSON{Name: c.Name, Recursive: c.Recursive, Query: describeSelect(c.Query)})
}

type unionJSON struct {
	Operator SetOperator  `json:"type"`
	Query    *Description `json:"query"`
}

func (u *Union) UnmarshalJSON(data []byte) error {
	var raw unionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*u = Union{Operator: SetOperator(strings.ToUpper(string(raw.Operator)))}
	if raw.Query != nil {
		u.Query = raw.Query.selectQuery()
	}
	return nil
}

func (u Union) MarshalJSON() ([]byte, error) {
	return json.Marshal(unionJSON{Operator: u.Operator, Query: describeSelect(u.Query)})
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func decodeValue(raw json.RawMessage, dst *any) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	return decodeJSON(raw, dst)
}

func decodeJSON(data []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(dst)
}
