// Package querybuilder assembles the small set of Postgres statements the
// repositories issue. Placeholders are numbered in the order values are added.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

type Condition interface {
	appendSQL(w *sqlWriter)
}

// sqlWriter accumulates SQL text and its positional arguments.
type sqlWriter struct {
	buf  strings.Builder
	args []any
}

func (w *sqlWriter) bind(value any) {
	w.args = append(w.args, value)
	w.buf.WriteString("$")
	w.buf.WriteString(strconv.Itoa(len(w.args)))
}

// expr writes raw SQL, binding each '?' to the next exprArg in order.
func (w *sqlWriter) expr(raw string, exprArgs []any) {
	next := 0
	for i := 0; i < len(raw); i++ {
		if raw[i] == '?' && next < len(exprArgs) {
			w.bind(exprArgs[next])
			next++
			continue
		}
		w.buf.WriteByte(raw[i])
	}
}

func (w *sqlWriter) where(conditions []Condition) {
	if len(conditions) == 0 {
		return
	}
	w.buf.WriteString(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			w.buf.WriteString(" AND ")
		}
		c.appendSQL(w)
	}
}

type eqCondition struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return eqCondition{column: column, value: value}
}

func (c eqCondition) appendSQL(w *sqlWriter) {
	w.buf.WriteString(c.column)
	w.buf.WriteString(" = ")
	w.bind(c.value)
}

type eqAnyCondition struct {
	columns []string
	value   any
}

// EqAny matches rows where any of the columns equals value, e.g. a team that
// is either host or challenger.
func EqAny(value any, columns ...string) Condition {
	return eqAnyCondition{columns: columns, value: value}
}

func (c eqAnyCondition) appendSQL(w *sqlWriter) {
	if len(c.columns) == 0 {
		w.buf.WriteString("1=0")
		return
	}
	w.buf.WriteString("(")
	for i, col := range c.columns {
		if i > 0 {
			w.buf.WriteString(" OR ")
		}
		w.buf.WriteString(col)
		w.buf.WriteString(" = ")
		w.bind(c.value)
	}
	w.buf.WriteString(")")
}

type inCondition struct {
	column string
	values []string
}

// InStrings matches nothing when values is empty.
func InStrings(column string, values []string) Condition {
	return inCondition{column: column, values: values}
}

func (c inCondition) appendSQL(w *sqlWriter) {
	if len(c.values) == 0 {
		w.buf.WriteString("1=0")
		return
	}

	w.buf.WriteString(c.column)
	w.buf.WriteString(" IN (")
	for i, v := range c.values {
		if i > 0 {
			w.buf.WriteString(", ")
		}
		w.bind(v)
	}
	w.buf.WriteString(")")
}

type nullCondition struct {
	column string
	negate bool
}

func IsNull(column string) Condition {
	return nullCondition{column: column}
}

func NotNull(column string) Condition {
	return nullCondition{column: column, negate: true}
}

func (c nullCondition) appendSQL(w *sqlWriter) {
	w.buf.WriteString(c.column)
	if c.negate {
		w.buf.WriteString(" IS NOT NULL")
		return
	}
	w.buf.WriteString(" IS NULL")
}

type exprCondition struct {
	expr string
	args []any
}

func Expr(expr string, args ...any) Condition {
	return exprCondition{expr: expr, args: args}
}

func (c exprCondition) appendSQL(w *sqlWriter) {
	w.expr(c.expr, c.args)
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var w sqlWriter
	w.buf.WriteString("SELECT ")
	w.buf.WriteString(strings.Join(b.columns, ", "))
	w.buf.WriteString(" FROM ")
	w.buf.WriteString(b.table)
	w.where(b.where)
	if len(b.orderBy) > 0 {
		w.buf.WriteString(" ORDER BY ")
		w.buf.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.buf.WriteString(" LIMIT ")
		w.buf.WriteString(strconv.Itoa(b.limit))
	}

	return w.buf.String(), w.args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	values  []any
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.values = append([]any(nil), values...)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.values) != len(b.columns) {
		return "", nil, fmt.Errorf("insert into %s has %d values for %d columns", b.table, len(b.values), len(b.columns))
	}

	var w sqlWriter
	w.buf.WriteString("INSERT INTO ")
	w.buf.WriteString(b.table)
	w.buf.WriteString(" (")
	w.buf.WriteString(strings.Join(b.columns, ", "))
	w.buf.WriteString(") VALUES (")
	for i, value := range b.values {
		if i > 0 {
			w.buf.WriteString(", ")
		}
		w.bind(value)
	}
	w.buf.WriteString(")")

	return w.buf.String(), w.args, nil
}

type assignment struct {
	column string
	value  any
	raw    *exprCondition
}

type UpdateBuilder struct {
	table string
	sets  []assignment
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

func (b *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, raw: &exprCondition{expr: expr, args: args}})
	return b
}

func (b *UpdateBuilder) SetNull(columns ...string) *UpdateBuilder {
	for _, column := range columns {
		b.SetExpr(column, "NULL")
	}
	return b
}

func (b *UpdateBuilder) SetNow(column string) *UpdateBuilder {
	return b.SetExpr(column, "NOW()")
}

// Increment adds one to a counter column in place.
func (b *UpdateBuilder) Increment(column string) *UpdateBuilder {
	return b.SetExpr(column, column+" + 1")
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}

	var w sqlWriter
	w.buf.WriteString("UPDATE ")
	w.buf.WriteString(b.table)
	w.buf.WriteString(" SET ")
	for i, s := range b.sets {
		if i > 0 {
			w.buf.WriteString(", ")
		}
		w.buf.WriteString(s.column)
		w.buf.WriteString(" = ")
		if s.raw != nil {
			w.expr(s.raw.expr, s.raw.args)
			continue
		}
		w.bind(s.value)
	}
	w.where(b.where)

	return w.buf.String(), w.args, nil
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

// ToSQL refuses to build an unconditional delete.
func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete table is required")
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("delete requires at least one condition")
	}

	var w sqlWriter
	w.buf.WriteString("DELETE FROM ")
	w.buf.WriteString(b.table)
	w.where(b.where)

	return w.buf.String(), w.args, nil
}
