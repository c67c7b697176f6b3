package jsonx

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// FormValue renders a single request parameter the way the VK API expects it.
//
// Strings are passed through, booleans become "1" or "0", numbers use their
// decimal form and slices of scalars are joined with commas. Anything else,
// maps and structs included, is sent as compact JSON.
func FormValue(v any) (string, error) {
	switch tv := v.(type) {
	case nil:
		return "", nil
	case string:
		return tv, nil
	case fmt.Stringer:
		return tv.String(), nil
	case bool:
		if tv {
			return "1", nil
		}
		return "0", nil
	case []byte:
		return string(tv), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			return "1", nil
		}
		return "0", nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Slice, reflect.Array:
		if isScalar(rv.Type().Elem()) {
			parts := make([]string, rv.Len())
			for i := range rv.Len() {
				s, err := FormValue(rv.Index(i).Interface())
				if err != nil {
					return "", err
				}
				parts[i] = s
			}
			return strings.Join(parts, ","), nil
		}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode parameter: %w", err)
	}
	return string(b), nil
}

// EncodeForm converts params to url.Values with FormValue.
// Keys are processed in sorted order so that the first failing key is deterministic.
func EncodeForm(params map[string]any) (url.Values, error) {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make(url.Values, len(params))
	for _, k := range keys {
		s, err := FormValue(params[k])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		values.Set(k, s)
	}
	return values, nil
}

func isScalar(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
