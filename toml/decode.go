package toml

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// Unmarshal parses TOML data into the struct pointed to by v
// Keys absent from data leave the corresponding fields untouched, so v may carry defaults
func Unmarshal(data []byte, v any) error {
	parsed, err := NewParser(data).Parse()
	if err != nil {
		return err
	}
	return Decode(parsed, v)
}

// Decode maps a parsed table onto a struct using `toml` tags, falling back to field names
func Decode(data map[string]any, v any) error {
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("toml: decode target must be a non-nil pointer")
	}
	elem := val.Elem()
	if elem.Kind() != reflect.Struct {
		return fmt.Errorf("toml: decode target must point to a struct, got %v", elem.Kind())
	}
	return decodeStruct(data, elem)
}

func decodeStruct(data map[string]any, val reflect.Value) error {
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		fieldType := typ.Field(i)
		if !fieldType.IsExported() {
			continue
		}
		key, skip := fieldKey(fieldType)
		if skip {
			continue
		}

		raw, ok := data[key]
		if !ok {
			continue
		}
		if err := decodeValue(raw, val.Field(i)); err != nil {
			return fmt.Errorf("toml: %s: %w", key, err)
		}
	}
	return nil
}

func decodeValue(data any, val reflect.Value) error {
	switch val.Kind() {
	case reflect.Ptr:
		if val.IsNil() {
			val.Set(reflect.New(val.Type().Elem()))
		}
		return decodeValue(data, val.Elem())

	case reflect.Struct:
		table, ok := data.(map[string]any)
		if !ok {
			return fmt.Errorf("expected table, got %T", data)
		}
		return decodeStruct(table, val)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := data.(int64)
		if !ok {
			return fmt.Errorf("expected integer, got %T", data)
		}
		if val.OverflowInt(n) {
			return fmt.Errorf("integer %d overflows %v", n, val.Kind())
		}
		val.SetInt(n)

	case reflect.Float32, reflect.Float64:
		var f float64
		switch n := data.(type) {
		case float64:
			f = n
		case int64:
			f = float64(n)
		default:
			return fmt.Errorf("expected number, got %T", data)
		}
		if val.Kind() == reflect.Float32 && math.Abs(f) > math.MaxFloat32 {
			return fmt.Errorf("float %v overflows float32", f)
		}
		val.SetFloat(f)

	case reflect.String:
		s, ok := data.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", data)
		}
		val.SetString(s)

	case reflect.Bool:
		b, ok := data.(bool)
		if !ok {
			return fmt.Errorf("expected boolean, got %T", data)
		}
		val.SetBool(b)

	default:
		return fmt.Errorf("unsupported field kind %v", val.Kind())
	}
	return nil
}

// fieldKey resolves the TOML key for a struct field
func fieldKey(f reflect.StructField) (key string, skip bool) {
	tag := f.Tag.Get("toml")
	if tag == "" {
		return f.Name, false
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return "", true
	}
	if name == "" {
		return f.Name, false
	}
	return name, false
}
