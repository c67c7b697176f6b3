package reflectx

import "reflect"

// TypeID returns the address of the runtime descriptor of t, 0 for a nil type.
//
// Identical types share one descriptor, so two types have the same id exactly
// when they are the same type. Types declared in different scopes with the same
// name get different ids.
func TypeID(t reflect.Type) uintptr {
	if t == nil {
		return 0
	}
	return reflect.ValueOf(t).Pointer()
}
