package checker

import (
	"testing"

	"github.com/nalgeon/be"
)

func intPtr(n int) Type { return Scalar(Int, n) }

func TestTypeEqual(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Type
		equal bool
	}{
		{"error equals error", ErrorType(), ErrorType(), true},
		{"zero value is error", Type{}, ErrorType(), true},
		{"same scalar", TypeInt, Scalar(Int, 0), true},
		{"different specifier", TypeInt, TypeChar, false},
		{"different indirection", intPtr(1), intPtr(2), false},
		{"same array", Array(Char, 0, 10), Array(Char, 0, 10), true},
		{"array length differs", Array(Char, 0, 10), Array(Char, 0, 11), false},
		{"array is not pointer", Array(Int, 0, 3), intPtr(1), false},
		{"unknown params", Function(Int, 0, nil), Function(Int, 0, nil), true},
		{"unknown vs empty params", Function(Int, 0, nil), Function(Int, 0, &Parameters{}), false},
		{
			"same params",
			Function(Int, 0, &Parameters{Types: []Type{TypeInt, intPtr(1)}}),
			Function(Int, 0, &Parameters{Types: []Type{TypeInt, intPtr(1)}}),
			true,
		},
		{
			"variadic differs",
			Function(Int, 0, &Parameters{Types: []Type{TypeInt}, Variadic: true}),
			Function(Int, 0, &Parameters{Types: []Type{TypeInt}}),
			false,
		},
		{
			"return type differs",
			Function(Int, 0, &Parameters{}),
			Function(Double, 0, &Parameters{}),
			false,
		},
		{"scalar vs error", TypeInt, ErrorType(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be.Equal(t, tt.a.Equal(tt.b), tt.equal)
			be.Equal(t, tt.b.Equal(tt.a), tt.equal)
		})
	}
}

func TestPromote(t *testing.T) {
	be.Equal(t, TypeChar.Promote(), TypeInt)
	be.Equal(t, TypeInt.Promote(), TypeInt)
	be.Equal(t, TypeDouble.Promote(), TypeDouble)
	be.Equal(t, Scalar(Char, 1).Promote(), Scalar(Char, 1))
	be.Equal(t, Array(Int, 0, 10).Promote(), intPtr(1))
	be.Equal(t, Array(Char, 2, 4).Promote(), Scalar(Char, 3))
	be.True(t, ErrorType().Promote().IsError())

	fn := Function(Int, 0, nil)
	be.True(t, fn.Promote().Equal(fn))
}

func TestPromoteIsIdempotent(t *testing.T) {
	types := []Type{
		ErrorType(),
		TypeChar,
		TypeInt,
		TypeDouble,
		Scalar(Char, 1),
		intPtr(2),
		Scalar(Double, 3),
		Array(Char, 0, 4),
		Array(Int, 1, 2),
		Array(Double, 2, 8),
		Function(Int, 0, nil),
		Function(Char, 1, &Parameters{Types: []Type{TypeInt}, Variadic: true}),
	}

	for _, typ := range types {
		t.Run(typ.String(), func(t *testing.T) {
			once := typ.Promote()
			be.True(t, once.Promote().Equal(once))
		})
	}
}

func TestNumericCompatibilityIsSymmetric(t *testing.T) {
	numeric := []Type{TypeChar, TypeInt, TypeDouble}

	for _, a := range numeric {
		for _, b := range numeric {
			be.True(t, a.IsCompatibleWith(b))
			be.Equal(t, a.IsCompatibleWith(b), b.IsCompatibleWith(a))
		}
	}
}

func TestTypePredicates(t *testing.T) {
	tests := []struct {
		name                                   string
		typ                                    Type
		numeric, pointer, predicate, isInteger bool
	}{
		{"char", TypeChar, true, false, true, true},
		{"int", TypeInt, true, false, true, true},
		{"double", TypeDouble, true, false, true, false},
		{"char pointer", Scalar(Char, 1), false, true, true, false},
		{"int array", Array(Int, 0, 10), false, true, true, false},
		{"function", Function(Int, 0, nil), false, false, false, false},
		{"error", ErrorType(), false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be.Equal(t, tt.typ.IsNumeric(), tt.numeric)
			be.Equal(t, tt.typ.IsPointer(), tt.pointer)
			be.Equal(t, tt.typ.IsPredicate(), tt.predicate)
			be.Equal(t, tt.typ.IsInteger(), tt.isInteger)
		})
	}
}

func TestIsDouble(t *testing.T) {
	be.True(t, TypeDouble.IsDouble())
	be.True(t, Scalar(Double, 1).IsDouble())
	be.Equal(t, TypeInt.IsDouble(), false)
	be.Equal(t, ErrorType().IsDouble(), false)
}

func TestIsCompatibleWith(t *testing.T) {
	tests := []struct {
		name       string
		a, b       Type
		compatible bool
	}{
		{"int and double", TypeInt, TypeDouble, true},
		{"char and double", TypeChar, TypeDouble, true},
		{"same pointer", intPtr(1), intPtr(1), true},
		{"different pointer", intPtr(1), Scalar(Char, 1), false},
		{"pointer and int", intPtr(1), TypeInt, false},
		{"array and its pointer", Array(Int, 0, 3), intPtr(1), false},
		{"promoted array and pointer", Array(Int, 0, 3).Promote(), intPtr(1), true},
		{"function", Function(Int, 0, nil), Function(Int, 0, nil), false},
		{"error", ErrorType(), TypeInt, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be.Equal(t, tt.a.IsCompatibleWith(tt.b), tt.compatible)
		})
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{ErrorType(), "error"},
		{TypeInt, "int"},
		{Scalar(Char, 2), "char **"},
		{Array(Int, 1, 10), "int *[10]"},
		{Function(Int, 0, nil), "int()"},
		{Function(Double, 0, &Parameters{}), "double(void)"},
		{Function(Int, 0, &Parameters{Types: []Type{TypeInt, Scalar(Char, 1)}, Variadic: true}), "int(int, char *, ...)"},
		{Function(Char, 1, &Parameters{Types: []Type{TypeDouble}}), "char *(double)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			be.Equal(t, tt.typ.String(), tt.want)
		})
	}
}

func TestAccessorsPanicOnWrongKind(t *testing.T) {
	mustPanic := func(name string, fn func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		fn()
	}

	mustPanic("Length", func() { TypeInt.Length() })
	mustPanic("Parameters", func() { Array(Int, 0, 1).Parameters() })

	be.Equal(t, Array(Int, 0, 7).Length(), 7)
	be.True(t, Function(Int, 0, nil).Parameters() == nil)
}

func TestSpecifierString(t *testing.T) {
	be.Equal(t, Char.String(), "char")
	be.Equal(t, Int.String(), "int")
	be.Equal(t, Double.String(), "double")
	be.Equal(t, Specifier(0).String(), "-unknown specifier-")
	be.Equal(t, KindArray.String(), "array")
}
