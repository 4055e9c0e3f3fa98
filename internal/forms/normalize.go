package forms

import (
	"reflect"
	"strings"
)

// Normalize trims surrounding whitespace from every string of record in place,
// including elements of string slices and fields of embedded structs. It runs
// before Validate so the value that is checked is the value that is stored.
// record must be a pointer to a struct; anything else is left untouched.
func Normalize(record any) {
	v := reflect.ValueOf(record)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return
	}
	normalizeValue(v.Elem())
}

func normalizeValue(v reflect.Value) {
	switch v.Kind() {
	case reflect.String:
		if v.CanSet() {
			v.SetString(strings.TrimSpace(v.String()))
		}
	case reflect.Slice:
		if v.Type().Elem().Kind() != reflect.String {
			return
		}
		for i := 0; i < v.Len(); i++ {
			normalizeValue(v.Index(i))
		}
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			if t.Field(i).IsExported() {
				normalizeValue(v.Field(i))
			}
		}
	}
}
