// Package querystate maps typed list state (page, search, sort, filters) to
// URL query parameters and back.
package querystate

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// ListSeparator joins array values inside a single query parameter.
const ListSeparator = ","

// Param is a single query dimension with an explicit default and a
// decode/encode pair. The zero Param is not usable; build one with the
// constructors below.
type Param[T any] struct {
	key    string
	def    T
	decode func(raw []string) (T, bool)
	encode func(T) string
	clone  func(T) T
}

// Key returns the query parameter name.
func (p Param[T]) Key() string {
	return p.key
}

// Default returns a copy of the default value.
func (p Param[T]) Default() T {
	return p.clone(p.def)
}

// Get decodes the parameter from values. An absent or invalid parameter
// yields the default.
func (p Param[T]) Get(values url.Values) T {
	raw, ok := values[p.key]
	if !ok {
		return p.Default()
	}
	if v, ok := p.decode(raw); ok {
		return v
	}
	return p.Default()
}

// Set returns a copy of values with the parameter set to v. Defaults are
// written explicitly.
func (p Param[T]) Set(values url.Values, v T) url.Values {
	out := Clone(values)
	out.Set(p.key, p.encode(v))
	return out
}

// Encode returns the wire form of v.
func (p Param[T]) Encode(v T) string {
	return p.encode(v)
}

// Del returns a copy of values without the parameter.
func (p Param[T]) Del(values url.Values) url.Values {
	out := Clone(values)
	out.Del(p.key)
	return out
}

// Int is an integer parameter; values below min are invalid.
func Int(key string, def, min int) Param[int] {
	return Param[int]{
		key: key,
		def: def,
		decode: func(raw []string) (int, bool) {
			n, err := strconv.Atoi(strings.TrimSpace(last(raw)))
			if err != nil || n < min {
				return 0, false
			}
			return n, true
		},
		encode: strconv.Itoa,
		clone:  identity[int],
	}
}

// String is a free-text parameter.
func String(key, def string) Param[string] {
	return Param[string]{
		key: key,
		def: def,
		decode: func(raw []string) (string, bool) {
			return last(raw), true
		},
		encode: identity[string],
		clone:  identity[string],
	}
}

// Enum is a parameter restricted to a closed set of values.
func Enum[T ~string](key string, def T, allowed []T) Param[T] {
	return Param[T]{
		key: key,
		def: def,
		decode: func(raw []string) (T, bool) {
			v := T(strings.TrimSpace(last(raw)))
			if !slices.Contains(allowed, v) {
				return def, false
			}
			return v, true
		},
		encode: func(v T) string { return string(v) },
		clone:  identity[T],
	}
}

// EnumList is an array parameter whose items belong to a closed set.
// Unknown items are dropped; if nothing valid remains out of a non-empty
// input the default applies. An explicitly empty parameter is the empty
// list.
func EnumList[T ~string](key string, def []T, allowed []T) Param[[]T] {
	return Param[[]T]{
		key: key,
		def: def,
		decode: func(raw []string) ([]T, bool) {
			items := splitList(raw)
			if len(items) == 0 {
				return []T{}, true
			}
			out := make([]T, 0, len(items))
			for _, item := range items {
				v := T(item)
				if slices.Contains(allowed, v) && !slices.Contains(out, v) {
					out = append(out, v)
				}
			}
			if len(out) == 0 {
				return nil, false
			}
			return out, true
		},
		encode: func(v []T) string {
			parts := make([]string, len(v))
			for i, item := range v {
				parts[i] = string(item)
			}
			return strings.Join(parts, ListSeparator)
		},
		clone: cloneSlice[T],
	}
}

// StringList is an array parameter of arbitrary strings.
func StringList(key string, def []string) Param[[]string] {
	return Param[[]string]{
		key: key,
		def: def,
		decode: func(raw []string) ([]string, bool) {
			items := splitList(raw)
			out := make([]string, 0, len(items))
			for _, item := range items {
				if !slices.Contains(out, item) {
					out = append(out, item)
				}
			}
			return out, true
		},
		encode: func(v []string) string {
			return strings.Join(v, ListSeparator)
		},
		clone: cloneSlice[string],
	}
}

// Clone returns a deep copy of values.
func Clone(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for k, v := range values {
		out[k] = slices.Clone(v)
	}
	return out
}

// Key builds a canonical string of the given parameters, suitable for
// identifying a request. Missing parameters are omitted.
func Key(values url.Values, keys ...string) string {
	subset := url.Values{}
	for _, k := range keys {
		if v, ok := values[k]; ok {
			subset[k] = slices.Clone(v)
		}
	}
	return subset.Encode()
}

// last returns the final occurrence of a repeated parameter. Forms that
// include the current query state append the fresh value last.
func last(raw []string) string {
	if len(raw) == 0 {
		return ""
	}
	return raw[len(raw)-1]
}

func splitList(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, part := range strings.Split(r, ListSeparator) {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func identity[T any](v T) T { return v }

func cloneSlice[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return slices.Clone(v)
}
