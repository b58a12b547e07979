// Package fields reads named fields off backend values without assuming
// their shape. The File Search API returns either SDK structs or decoded
// JSON maps depending on which surface produced them, and field names drift
// between snake_case and camelCase across API versions. All of that
// tolerance lives here so callers can hold a single alias list.
package fields

import (
	"fmt"
	"reflect"
	"strings"
)

// Resolve returns the first present, non-nil value found under any of the
// candidate keys, most canonical key first. The value may be a map or a
// struct (pointers are chased). A missing field is a normal outcome and
// resolves to nil, never an error.
func Resolve(value any, keys ...string) any {
	v, ok := concrete(value)
	if !ok {
		return nil
	}

	switch v.Kind() {
	case reflect.Map:
		for _, key := range keys {
			if out, ok := fromMap(v, key); ok {
				return out
			}
		}
	case reflect.Struct:
		for _, key := range keys {
			if out, ok := fromStruct(v, key); ok {
				return out
			}
		}
	}

	return nil
}

// String renders a resolved scalar for display. Nil becomes an empty string.
func String(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

// Bool interprets a resolved value as a flag, defaulting to false.
func Bool(value any) bool {
	if value == nil {
		return false
	}
	switch v := value.(type) {
	case bool:
		return v
	case *bool:
		return v != nil && *v
	}
	rv, ok := concrete(value)
	if ok && rv.Kind() == reflect.Bool {
		return rv.Bool()
	}
	return false
}

// Slice expands a resolved value into its elements, preserving order.
// Non-sequence values yield nil.
func Slice(value any) []any {
	v, ok := concrete(value)
	if !ok {
		return nil
	}
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil
	}
	out := make([]any, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		out = append(out, v.Index(i).Interface())
	}
	return out
}

// IsMapping reports whether the value is a key-value mapping rather than an
// attribute-bearing object.
func IsMapping(value any) bool {
	v, ok := concrete(value)
	return ok && v.Kind() == reflect.Map
}

// concrete chases interfaces and pointers down to a usable value.
func concrete(value any) (reflect.Value, bool) {
	if value == nil {
		return reflect.Value{}, false
	}
	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return reflect.Value{}, false
	}
	return v, true
}

func fromMap(v reflect.Value, key string) (any, bool) {
	if v.Type().Key().Kind() != reflect.String {
		return nil, false
	}

	// Exact match first, then normalized so "document_name" also finds
	// a "documentName" entry.
	entry := v.MapIndex(reflect.ValueOf(key))
	if out, ok := present(entry); ok {
		return out, true
	}

	want := normalize(key)
	iter := v.MapRange()
	for iter.Next() {
		if normalize(iter.Key().String()) != want {
			continue
		}
		if out, ok := present(iter.Value()); ok {
			return out, true
		}
	}

	return nil, false
}

func fromStruct(v reflect.Value, key string) (any, bool) {
	var (
		want = normalize(key)
		t    = v.Type()
	)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		if normalize(field.Name) != want && normalize(jsonName(field)) != want {
			continue
		}
		if out, ok := present(v.Field(i)); ok {
			return out, true
		}
	}
	return nil, false
}

func jsonName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}
	if idx := strings.IndexByte(tag, ','); idx >= 0 {
		tag = tag[:idx]
	}
	return tag
}

// present unwraps a field value and reports whether it counts as set.
// Only nil-able kinds can be absent; empty strings and false are values.
func present(v reflect.Value) (any, bool) {
	if !v.IsValid() {
		return nil, false
	}
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return nil, false
		}
	}
	return v.Interface(), true
}

// normalize folds snake_case, camelCase and Go field names onto one form.
func normalize(key string) string {
	return strings.ToLower(strings.ReplaceAll(key, "_", ""))
}
