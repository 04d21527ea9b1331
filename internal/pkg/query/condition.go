package query

import "fmt"

// Condition represents a WHERE clause condition.
// Implementations must generate SQL fragments and parameter maps
// using Spanner's named parameter format (@paramName).
type Condition interface {
	// SQL returns the SQL fragment and parameter map for this condition.
	// paramIndex is used to generate unique parameter names (@p0, @p1, etc.)
	SQL(paramIndex int) (string, map[string]interface{})
}

// compareCondition is a binary comparison against one bound parameter.
type compareCondition struct {
	field    string
	operator string
	value    interface{}
}

func (c *compareCondition) column() string { return c.field }

func (c *compareCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s %s @%s", c.field, c.operator, paramName), map[string]interface{}{paramName: c.value}
}

// Eq creates a WHERE condition for equality comparison.
// Example: Eq("item_type", "chalet") generates "item_type = @p0"
func Eq(field string, value interface{}) Condition {
	return &compareCondition{field: field, operator: "=", value: value}
}

// Lte generates "field <= @pN".
func Lte(field string, value interface{}) Condition {
	return &compareCondition{field: field, operator: "<=", value: value}
}

// Gte generates "field >= @pN".
func Gte(field string, value interface{}) Condition {
	return &compareCondition{field: field, operator: ">=", value: value}
}

// In matches any element of values, which must be a slice Spanner can bind as an array.
// Example: In("rate_type", []string{"event", "package"}) generates "rate_type IN UNNEST(@p0)"
func In(field string, values interface{}) Condition {
	return &inCondition{field: field, values: values}
}

type inCondition struct {
	field  string
	values interface{}
}

func (c *inCondition) column() string { return c.field }

func (c *inCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s IN UNNEST(@%s)", c.field, paramName), map[string]interface{}{paramName: c.values}
}

// OrNull wraps a single-column condition so that a NULL column also matches. Used for open-ended bounds.
// Example: OrNull(Lte("start_date", d)) generates "(start_date IS NULL OR start_date <= @p0)"
func OrNull(c Condition) Condition {
	return &orNullCondition{inner: c}
}

type orNullCondition struct {
	inner Condition
}

func (c *orNullCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	fragment, params := c.inner.SQL(paramIndex)
	col, ok := c.inner.(interface{ column() string })
	if !ok {
		return fragment, params
	}
	return fmt.Sprintf("(%s IS NULL OR %s)", col.column(), fragment), params
}

// IsNull creates a WHERE condition for NULL checks.
func IsNull(field string) Condition {
	return &isNullCondition{field: field}
}

// isNullCondition implements IS NULL comparison.
type isNullCondition struct {
	field string
}

// SQL generates the SQL fragment for IS NULL comparison.
func (c *isNullCondition) SQL(int) (string, map[string]interface{}) {
	return fmt.Sprintf("%s IS NULL", c.field), map[string]interface{}{}
}

// IsNotNull creates a WHERE condition for NOT NULL checks.
func IsNotNull(field string) Condition {
	return &isNotNullCondition{field: field}
}

// isNotNullCondition implements IS NOT NULL comparison.
type isNotNullCondition struct {
	field string
}

// SQL generates the SQL fragment for IS NOT NULL comparison.
func (c *isNotNullCondition) SQL(int) (string, map[string]interface{}) {
	return fmt.Sprintf("%s IS NOT NULL", c.field), map[string]interface{}{}
}
