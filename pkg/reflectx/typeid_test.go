package reflectx

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct{ A int }

func localSample() reflect.Type {
	type sample struct{ A int }
	return reflect.TypeFor[sample]()
}

func otherLocalSample() reflect.Type {
	type sample struct{ A int }
	return reflect.TypeFor[sample]()
}

func TestTypeID(t *testing.T) {
	assert.Zero(t, TypeID(nil))
	assert.Zero(t, TypeID(reflect.TypeOf(nil)))

	assert.NotZero(t, TypeID(reflect.TypeFor[string]()))
	assert.Equal(t, TypeID(reflect.TypeFor[sample]()), TypeID(reflect.TypeOf(sample{A: 1})))
	assert.Equal(t, TypeID(reflect.TypeFor[*sample]()), TypeID(reflect.PointerTo(reflect.TypeFor[sample]())))
	assert.Equal(t, TypeID(reflect.TypeFor[[]string]()), TypeID(reflect.TypeOf([]string{"a"})))

	assert.NotEqual(t, TypeID(reflect.TypeFor[sample]()), TypeID(localSample()))
	assert.NotEqual(t, TypeID(localSample()), TypeID(otherLocalSample()))
	assert.Equal(t, localSample().String(), otherLocalSample().String())

	type named string
	assert.NotEqual(t, TypeID(reflect.TypeFor[named]()), TypeID(reflect.TypeFor[string]()))
}
