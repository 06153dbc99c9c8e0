// Package lookup provides first-match searching over slices of entities
// by attribute-path predicates.
//
// Attribute paths are dotted field chains ("Name", "Ability.Name") resolved
// with reflection over exported struct fields. Pointers along a path are
// dereferenced; a nil pointer simply fails the predicate for that element.
// Naming a field that does not exist on the element type is a programming
// error and panics.
package lookup

import (
	"fmt"
	"reflect"
	"strings"
)

// FindBy returns the first element of seq for which every attribute-path
// predicate holds, comparing resolved values with reflect.DeepEqual. The
// search short-circuits on the first match. The boolean reports whether a
// match was found; no match is not an error.
//
// FindBy panics when preds is empty or when a path segment names a field
// the element type does not have.
func FindBy[T any](seq []T, preds map[string]any) (T, bool) {
	var zero T
	if len(preds) == 0 {
		panic("lookup: at least one predicate is required")
	}

	type predicate struct {
		path []string
		want any
	}
	predicates := make([]predicate, 0, len(preds))
	for path, want := range preds {
		predicates = append(predicates, predicate{strings.Split(path, "."), want})
	}

	for _, element := range seq {
		matched := true
		for _, p := range predicates {
			got, ok := resolve(reflect.ValueOf(element), p.path)
			if !ok || !reflect.DeepEqual(got, p.want) {
				matched = false
				break
			}
		}
		if matched {
			return element, true
		}
	}
	return zero, false
}

// ByID returns the first element whose ID field equals id.
func ByID[T any](seq []T, id int) (T, bool) {
	return FindBy(seq, map[string]any{"ID": id})
}

// ByName returns the first element whose Name field equals name.
// The comparison is case sensitive.
func ByName[T any](seq []T, name string) (T, bool) {
	return FindBy(seq, map[string]any{"Name": name})
}

// resolve walks a dotted field path. The boolean is false when a nil
// pointer interrupts the walk before the final field is reached.
func resolve(v reflect.Value, path []string) (any, bool) {
	for _, name := range path {
		for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
			if v.IsNil() {
				return nil, false
			}
			v = v.Elem()
		}
		if v.Kind() != reflect.Struct {
			panic(fmt.Sprintf("lookup: path segment %q does not address a struct (got %s)", name, v.Kind()))
		}
		field := v.FieldByName(name)
		if !field.IsValid() {
			panic(fmt.Sprintf("lookup: type %s has no field %q", v.Type(), name))
		}
		v = field
	}
	return v.Interface(), true
}
