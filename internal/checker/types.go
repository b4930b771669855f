package checker

import (
	"fmt"
	"strings"
)

// Kind identifies which variant a Type holds
type Kind int

const (
	KindError Kind = iota
	KindScalar
	KindArray
	KindFunction
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindError:
		return "error"
	case KindScalar:
		return "scalar"
	case KindArray:
		return "array"
	case KindFunction:
		return "function"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Specifier is the base scalar kind of a type, ignoring pointer depth
type Specifier int

const (
	Char Specifier = iota + 1
	Int
	Double
)

// String returns the C spelling of the specifier
func (s Specifier) String() string {
	switch s {
	case Char:
		return "char"
	case Int:
		return "int"
	case Double:
		return "double"
	default:
		return "-unknown specifier-"
	}
}

// Parameters is the ordered parameter list of a function type
type Parameters struct {
	Types    []Type
	Variadic bool
}

// Equal reports whether both lists have pairwise equal types and the same
// variadic flag. A nil list only equals another nil list.
func (p *Parameters) Equal(other *Parameters) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.Variadic != other.Variadic || len(p.Types) != len(other.Types) {
		return false
	}
	for i := range p.Types {
		if !p.Types[i].Equal(other.Types[i]) {
			return false
		}
	}
	return true
}

// Type is a Simple C type: the error sentinel, a scalar, an array or a
// function. The zero value is the error type.
type Type struct {
	kind        Kind
	specifier   Specifier
	indirection int
	length      int
	params      *Parameters
}

// ErrorType returns the error sentinel
func ErrorType() Type {
	return Type{kind: KindError}
}

// Scalar returns a value or pointer type
func Scalar(spec Specifier, indirection int) Type {
	return Type{kind: KindScalar, specifier: spec, indirection: indirection}
}

// Array returns a fixed-size array of (spec, indirection)
func Array(spec Specifier, indirection, length int) Type {
	return Type{kind: KindArray, specifier: spec, indirection: indirection, length: length}
}

// Function returns a function type returning (spec, indirection). A nil
// params means the signature is unknown.
func Function(spec Specifier, indirection int, params *Parameters) Type {
	return Type{kind: KindFunction, specifier: spec, indirection: indirection, params: params}
}

// Builtin scalar types
var (
	TypeChar   = Scalar(Char, 0)
	TypeInt    = Scalar(Int, 0)
	TypeDouble = Scalar(Double, 0)
)

// Specifier returns the base specifier (zero for the error type)
func (t Type) Specifier() Specifier { return t.specifier }

// Indirection returns the pointer depth
func (t Type) Indirection() int { return t.indirection }

// Length returns the length of an array type
func (t Type) Length() int {
	if t.kind != KindArray {
		panic(fmt.Sprintf("checker: Length of %s type", t.kind))
	}
	return t.length
}

// Parameters returns the parameter list of a function type
func (t Type) Parameters() *Parameters {
	if t.kind != KindFunction {
		panic(fmt.Sprintf("checker: Parameters of %s type", t.kind))
	}
	return t.params
}

// Equal checks if two types are equal
func (t Type) Equal(other Type) bool {
	if t.kind != other.kind {
		return false
	}
	switch t.kind {
	case KindError:
		return true
	case KindScalar:
		return t.specifier == other.specifier && t.indirection == other.indirection
	case KindArray:
		return t.specifier == other.specifier && t.indirection == other.indirection &&
			t.length == other.length
	case KindFunction:
		return t.specifier == other.specifier && t.indirection == other.indirection &&
			t.params.Equal(other.params)
	default:
		panic(fmt.Sprintf("checker: unknown type kind %d", int(t.kind)))
	}
}

// IsError reports whether the type is the error type
func (t Type) IsError() bool { return t.kind == KindError }

// IsScalar reports whether the type is a scalar or pointer
func (t Type) IsScalar() bool { return t.kind == KindScalar }

// IsArray reports whether the type is an array
func (t Type) IsArray() bool { return t.kind == KindArray }

// IsFunction reports whether the type is a function
func (t Type) IsFunction() bool { return t.kind == KindFunction }

// Promote applies the usual conversions: char becomes int and an array
// decays to a pointer to its element type.
func (t Type) Promote() Type {
	switch t.kind {
	case KindScalar:
		if t.specifier == Char && t.indirection == 0 {
			return TypeInt
		}
		return t
	case KindArray:
		return Scalar(t.specifier, t.indirection+1)
	case KindError, KindFunction:
		return t
	default:
		panic(fmt.Sprintf("checker: unknown type kind %d", int(t.kind)))
	}
}

// IsNumeric reports whether the promoted type is int or double
func (t Type) IsNumeric() bool {
	p := t.Promote()
	return p.Equal(TypeInt) || p.Equal(TypeDouble)
}

// IsPointer reports whether the promoted type is a pointer
func (t Type) IsPointer() bool {
	p := t.Promote()
	return p.IsArray() || (p.IsScalar() && p.indirection > 0)
}

// IsPredicate reports whether the type can be used as a test expression
func (t Type) IsPredicate() bool {
	return t.IsNumeric() || t.IsPointer()
}

// IsInteger reports whether the type promotes to plain int
func (t Type) IsInteger() bool {
	return t.Promote().Equal(TypeInt)
}

// IsDouble reports whether the specifier is double
func (t Type) IsDouble() bool {
	return t.kind != KindError && t.specifier == Double
}

// IsCompatibleWith reports whether values of the two types may meet in an
// assignment, comparison, argument or return. Numeric types mix freely;
// pointer types must be identical.
func (t Type) IsCompatibleWith(other Type) bool {
	if t.IsNumeric() && other.IsNumeric() {
		return true
	}
	if t.IsPredicate() && other.IsPredicate() {
		return t.Equal(other)
	}
	return false
}

// String returns the C-like rendering of the type, for diagnostics
func (t Type) String() string {
	var b strings.Builder

	switch t.kind {
	case KindError:
		return "error"
	case KindScalar, KindArray, KindFunction:
		b.WriteString(t.specifier.String())
		if t.indirection > 0 {
			b.WriteString(" ")
			b.WriteString(strings.Repeat("*", t.indirection))
		}
	default:
		panic(fmt.Sprintf("checker: unknown type kind %d", int(t.kind)))
	}

	switch t.kind {
	case KindArray:
		fmt.Fprintf(&b, "[%d]", t.length)
	case KindFunction:
		b.WriteString("(")
		if t.params != nil {
			if len(t.params.Types) == 0 {
				b.WriteString("void")
			}
			for i, p := range t.params.Types {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(p.String())
			}
			if t.params.Variadic {
				b.WriteString(", ...")
			}
		}
		b.WriteString(")")
	}

	return b.String()
}
