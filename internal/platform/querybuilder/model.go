package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

type modelField struct {
	column string
	index  int
}

var modelFields sync.Map // reflect.Type -> []modelField

// InsertModel builds an INSERT from the exported db-tagged fields of a struct.
func InsertModel(table string, model any) (string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return "", nil, fmt.Errorf("insert into %s: model cannot be nil", table)
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return "", nil, fmt.Errorf("insert into %s: model must be struct, got %s", table, value.Kind())
	}

	fields := fieldsOf(value.Type())
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("insert into %s: model has no db columns", table)
	}

	cols := make([]string, len(fields))
	vals := make([]any, len(fields))
	for i, f := range fields {
		cols[i] = f.column
		vals[i] = value.Field(f.index).Interface()
	}
	return InsertInto(table).Columns(cols...).Values(vals...).ToSQL()
}

func fieldsOf(typ reflect.Type) []modelField {
	if cached, ok := modelFields.Load(typ); ok {
		return cached.([]modelField)
	}

	fields := make([]modelField, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		fields = append(fields, modelField{column: col, index: i})
	}

	modelFields.Store(typ, fields)
	return fields
}
