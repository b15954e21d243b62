package utils

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var decimalType = reflect.TypeOf(decimal.Decimal{})

// NormalizeDTO cleans a pointer-to-struct DTO in place. String fields
// (plain or pointer) are trimmed, and uppercased when tagged
// `normalize:"upper"`. Decimal fields tagged `normalize:"round2"` are
// rounded to 2 places. Nil pointers stay nil.
func NormalizeDTO(dto any) {
	v := reflect.ValueOf(dto)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return
	}
	s := v.Elem()
	t := s.Type()
	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		if !f.CanSet() {
			continue
		}
		if f.Kind() == reflect.Ptr {
			if f.IsNil() {
				continue
			}
			f = f.Elem()
		}
		tag := t.Field(i).Tag.Get("normalize")
		switch {
		case f.Kind() == reflect.String:
			val := strings.TrimSpace(f.String())
			if tag == "upper" {
				val = strings.ToUpper(val)
			}
			f.SetString(val)
		case f.Type() == decimalType && tag == "round2":
			f.Set(reflect.ValueOf(Round2(f.Interface().(decimal.Decimal))))
		}
	}
}

// UpdatesFromPtrDTO builds a column map containing only non-nil pointer
// fields of a DTO, keyed by the json tag name. renames maps json names to
// column names where they differ.
func UpdatesFromPtrDTO(dto any, renames map[string]string) map[string]any {
	res := make(map[string]any)
	v := reflect.ValueOf(dto)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return res
	}
	s := v.Elem()
	t := s.Type()
	for i := 0; i < t.NumField(); i++ {
		fv := s.Field(i)
		if fv.Kind() != reflect.Ptr || fv.IsNil() {
			continue
		}
		name := strings.Split(t.Field(i).Tag.Get("json"), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		if alt, ok := renames[name]; ok && alt != "" {
			name = alt
		}
		res[name] = fv.Elem().Interface()
	}
	return res
}

// ParseIntDefault parses a non-negative int, returning def otherwise.
func ParseIntDefault(s string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && v >= 0 {
		return v
	}
	return def
}
