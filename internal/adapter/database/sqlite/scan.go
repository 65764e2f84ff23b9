package sqlite

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"
	"time"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Scanner maps result columns onto struct fields by their `db` tag,
// falling back to a case-insensitive match on the field name.
type Scanner struct{}

func NewScanner() *Scanner {
	return &Scanner{}
}

// ScanRowToStruct reads the next row into dest. It returns sql.ErrNoRows
// when the result set is empty.
func (s *Scanner) ScanRowToStruct(rows *sql.Rows, dest interface{}) error {
	destValue := reflect.ValueOf(dest)

	if destValue.Kind() != reflect.Ptr || destValue.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("dest must be a pointer to struct")
	}

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return err
		}

		return sql.ErrNoRows
	}

	return s.scanCurrent(rows, destValue.Elem())
}

// ScanRowsToSlice appends every remaining row to the slice behind dest.
func (s *Scanner) ScanRowsToSlice(rows *sql.Rows, dest interface{}) error {
	destValue := reflect.ValueOf(dest)

	if destValue.Kind() != reflect.Ptr || destValue.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("dest must be a pointer to slice")
	}

	sliceValue := destValue.Elem()
	elemType := sliceValue.Type().Elem()
	isPtr := elemType.Kind() == reflect.Ptr

	if isPtr {
		elemType = elemType.Elem()
	}

	if elemType.Kind() != reflect.Struct {
		return fmt.Errorf("slice elements must be structs or pointers to structs")
	}

	for rows.Next() {
		elem := reflect.New(elemType)

		if err := s.scanCurrent(rows, elem.Elem()); err != nil {
			return err
		}

		if isPtr {
			sliceValue.Set(reflect.Append(sliceValue, elem))
		} else {
			sliceValue.Set(reflect.Append(sliceValue, elem.Elem()))
		}
	}

	return rows.Err()
}

func (s *Scanner) scanCurrent(rows *sql.Rows, dest reflect.Value) error {
	columns, err := rows.Columns()
	if err != nil {
		return err
	}

	values := make([]interface{}, len(columns))
	scanArgs := make([]interface{}, len(columns))

	for i := range values {
		scanArgs[i] = &values[i]
	}

	if err := rows.Scan(scanArgs...); err != nil {
		return err
	}

	for i, column := range columns {
		index, ok := s.fieldIndex(dest.Type(), column)
		if !ok {
			continue
		}

		if err := s.assign(dest.FieldByIndex(index), values[i]); err != nil {
			return fmt.Errorf("column %s: %w", column, err)
		}
	}

	return nil
}

func (s *Scanner) fieldIndex(structType reflect.Type, column string) ([]int, bool) {
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if tag := field.Tag.Get("db"); tag != "" && strings.EqualFold(tag, column) {
			return field.Index, true
		}
	}

	plain := strings.ReplaceAll(column, "_", "")

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Tag.Get("db") == "" && strings.EqualFold(field.Name, plain) {
			return field.Index, true
		}
	}

	return nil, false
}

func (s *Scanner) assign(field reflect.Value, val interface{}) error {
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}

	if val == nil {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}

	if field.Kind() == reflect.Ptr {
		target := reflect.New(field.Type().Elem())

		if err := s.assign(target.Elem(), val); err != nil {
			return err
		}

		field.Set(target)
		return nil
	}

	if b, ok := val.([]byte); ok {
		val = string(b)
	}

	if field.Type() == reflect.TypeOf(time.Time{}) {
		switch v := val.(type) {
		case time.Time:
			field.Set(reflect.ValueOf(v))
			return nil
		case string:
			for _, layout := range timeLayouts {
				if parsed, err := time.Parse(layout, v); err == nil {
					field.Set(reflect.ValueOf(parsed))
					return nil
				}
			}

			return fmt.Errorf("cannot parse time %q", v)
		}

		return fmt.Errorf("cannot assign %T to time.Time", val)
	}

	switch field.Kind() {
	case reflect.String:
		if str, ok := val.(string); ok {
			field.SetString(str)
			return nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch v := val.(type) {
		case int64:
			field.SetInt(v)
			return nil
		case float64:
			field.SetInt(int64(v))
			return nil
		}
	case reflect.Float32, reflect.Float64:
		switch v := val.(type) {
		case float64:
			field.SetFloat(v)
			return nil
		case int64:
			field.SetFloat(float64(v))
			return nil
		}
	case reflect.Bool:
		switch v := val.(type) {
		case bool:
			field.SetBool(v)
			return nil
		case int64:
			field.SetBool(v != 0)
			return nil
		}
	}

	return fmt.Errorf("cannot assign %T to %s", val, field.Type())
}
