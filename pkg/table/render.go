package table

import (
	"fmt"
	"reflect"
)

// Empty reports whether the current view has no rows.
func (c *Controller[T]) Empty() bool {
	return len(c.rows) == 0
}

// EmptyMessage returns the no-results indicator text. Renderers span it
// across all columns when Empty reports true.
func (c *Controller[T]) EmptyMessage() string {
	return c.emptyMessage
}

// Columns returns the declared columns.
func (c *Controller[T]) Columns() []Column[T] {
	return c.columns
}

// Headers returns the column titles in declaration order.
func (c *Controller[T]) Headers() []string {
	out := make([]string, len(c.columns))
	for i, column := range c.columns {
		out[i] = column.Title
	}
	return out
}

// Cells renders the current rows: one string per column per row, using the
// column's Format when present and plain key lookup otherwise.
func (c *Controller[T]) Cells() [][]string {
	out := make([][]string, 0, len(c.rows))
	for _, row := range c.rows {
		cells := make([]string, len(c.columns))
		for i, column := range c.columns {
			if column.Format != nil {
				cells[i] = column.Format(row)
				continue
			}
			cells[i] = plainCell(row, column.Key)
		}
		out = append(out, cells)
	}
	return out
}

// plainCell looks a column key up on a row: map index for map rows, exported
// field name for struct rows. Missing keys render empty.
func plainCell(row any, key string) string {
	value := reflect.ValueOf(row)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return ""
		}
		value = value.Elem()
	}

	switch value.Kind() {
	case reflect.Map:
		entry := value.MapIndex(reflect.ValueOf(key))
		if !entry.IsValid() {
			return ""
		}
		return fmt.Sprint(entry.Interface())
	case reflect.Struct:
		field := value.FieldByName(key)
		if !field.IsValid() || !field.CanInterface() {
			return ""
		}
		return fmt.Sprint(field.Interface())
	default:
		return ""
	}
}
