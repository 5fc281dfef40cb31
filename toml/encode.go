package toml

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Marshal encodes a struct as TOML
// Scalars are written in field declaration order, nested structs follow as [tables]
func Marshal(v any) ([]byte, error) {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil, fmt.Errorf("toml: cannot marshal nil pointer")
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil, fmt.Errorf("toml: root must be a struct, got %v", val.Kind())
	}

	var buf bytes.Buffer
	if err := encodeTable(&buf, val, ""); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeTable(buf *bytes.Buffer, val reflect.Value, prefix string) error {
	typ := val.Type()

	type table struct {
		key string
		val reflect.Value
	}
	var tables []table

	for i := 0; i < val.NumField(); i++ {
		fieldType := typ.Field(i)
		if !fieldType.IsExported() {
			continue
		}
		key, skip := fieldKey(fieldType)
		if skip {
			continue
		}

		field := val.Field(i)
		if field.Kind() == reflect.Ptr {
			if field.IsNil() {
				continue
			}
			field = field.Elem()
		}

		if field.Kind() == reflect.Struct {
			tables = append(tables, table{key: key, val: field})
			continue
		}

		buf.WriteString(encodeKey(key))
		buf.WriteString(" = ")
		if err := encodeScalar(buf, field); err != nil {
			return fmt.Errorf("toml: %s: %w", key, err)
		}
		buf.WriteByte('\n')
	}

	for _, t := range tables {
		full := encodeKey(t.key)
		if prefix != "" {
			full = prefix + "." + full
		}
		buf.WriteString("\n[" + full + "]\n")
		if err := encodeTable(buf, t.val, full); err != nil {
			return err
		}
	}
	return nil
}

func encodeScalar(buf *bytes.Buffer, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Bool:
		buf.WriteString(strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		buf.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("non-finite float %v", f)
		}
		s := strconv.FormatFloat(f, 'g', -1, 64)
		// Keep floats recognisable as floats on the way back in
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		buf.WriteString(s)
	case reflect.String:
		buf.WriteString(quote(v.String()))
	default:
		return fmt.Errorf("unsupported kind %v", v.Kind())
	}
	return nil
}

func encodeKey(key string) string {
	if isBareKey(key) {
		return key
	}
	return quote(key)
}

func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func isBareKey(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isAlpha(r) && !isDigit(r) && r != '_' && r != '-' {
			return false
		}
	}
	return true
}
