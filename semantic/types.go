/*
File    : lumi/semantic/types.go

Package semantic implements the single-pass scope/type analyzer that runs
between parsing and bytecode compilation. The type lattice
here is ported from original_source's lumi_semantic::types::Type, which is
richer than the language's own five-way split (Number/String/Boolean/Function/
Any) — the extra Symbol/Object/Array variants are carried even though no
declared-type keyword currently produces them, so the lattice is ready for
the reserved but unused words in the keyword list.
*/
package semantic

import "strings"

// Kind tags a Type's shape.
type Kind int

const (
	KindAny Kind = iota
	KindNumber
	KindString
	KindBoolean
	KindNull
	KindUndefined
	KindFunction
	KindUnion
	KindSymbol
	KindObject
	KindArray
)

// Type is a tagged struct rather than an interface hierarchy: the lattice
// has no recursive generic requirement that would justify dispatch, only a
// handful of compound shapes (Function, Union, Array) carrying extra
// payload fields.
type Type struct {
	Kind     Kind
	Params   []Type  // valid when Kind == KindFunction
	Return   *Type   // valid when Kind == KindFunction
	Variants []Type  // valid when Kind == KindUnion
	Element  *Type   // valid when Kind == KindArray
}

var (
	Any       = Type{Kind: KindAny}
	Number    = Type{Kind: KindNumber}
	String    = Type{Kind: KindString}
	Boolean   = Type{Kind: KindBoolean}
	Null      = Type{Kind: KindNull}
	Undefined = Type{Kind: KindUndefined}
	Symbol    = Type{Kind: KindSymbol}
	Object    = Type{Kind: KindObject}
)

// NewFunction builds a Function{params, return} type.
func NewFunction(params []Type, ret Type) Type {
	return Type{Kind: KindFunction, Params: params, Return: &ret}
}

// NewUnion builds a Union of the given variants.
func NewUnion(variants ...Type) Type {
	return Type{Kind: KindUnion, Variants: variants}
}

// NewArray builds an Array(element) type.
func NewArray(element Type) Type {
	return Type{Kind: KindArray, Element: &element}
}

// declaredTypeNames maps the keyword tokens the parser accepts as type
// annotations to their internal Type.
var declaredTypeNames = map[string]Type{
	"int":     Number,
	"number":  Number,
	"float":   Number,
	"double":  Number,
	"str":     String,
	"boolean": Boolean,
}

// LookupDeclaredType resolves a type-annotation keyword to its internal
// Type. ok is false for any name not in declaredTypeNames, which the
// analyzer reports as InvalidType.
func LookupDeclaredType(name string) (Type, bool) {
	t, ok := declaredTypeNames[name]
	return t, ok
}

// IsCompatibleWith reports whether a value of type t may be used where want
// is expected. Any is compatible with everything in both directions; a
// Union is compatible if any of its variants is.
func (t Type) IsCompatibleWith(want Type) bool {
	if t.Kind == KindAny || want.Kind == KindAny {
		return true
	}
	if t.Kind == KindUnion {
		for _, v := range t.Variants {
			if v.IsCompatibleWith(want) {
				return true
			}
		}
		return false
	}
	if want.Kind == KindUnion {
		for _, v := range want.Variants {
			if t.IsCompatibleWith(v) {
				return true
			}
		}
		return false
	}
	if t.Kind == KindFunction && want.Kind == KindFunction {
		if len(t.Params) != len(want.Params) {
			return false
		}
		for i := range t.Params {
			if !t.Params[i].IsCompatibleWith(want.Params[i]) {
				return false
			}
		}
		return t.Return.IsCompatibleWith(*want.Return)
	}
	if t.Kind == KindArray && want.Kind == KindArray {
		return t.Element.IsCompatibleWith(*want.Element)
	}
	return t.Kind == want.Kind
}

// CommonType returns the type that subsumes both a and b: one of them
// directly if they're compatible, otherwise a Union of both.
func CommonType(a, b Type) Type {
	if a.IsCompatibleWith(b) {
		return a
	}
	if b.IsCompatibleWith(a) {
		return b
	}
	return NewUnion(a, b)
}

// IsTruthyCompatible reports whether t may stand in an if/while condition:
// Any, Union, and the Number/String/Boolean/Null/Undefined primitives can,
// since truthiness coercion applies uniformly at run time; Function,
// Symbol, Object, and Array types cannot.
func (t Type) IsTruthyCompatible() bool {
	switch t.Kind {
	case KindAny, KindNumber, KindString, KindBoolean, KindNull, KindUndefined, KindUnion:
		return true
	default:
		return false
	}
}

func (t Type) String() string {
	switch t.Kind {
	case KindAny:
		return "any"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindNull:
		return "null"
	case KindUndefined:
		return "undefined"
	case KindSymbol:
		return "symbol"
	case KindObject:
		return "object"
	case KindArray:
		return "array<" + t.Element.String() + ">"
	case KindFunction:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		return "fn(" + strings.Join(parts, ", ") + ") -> " + t.Return.String()
	case KindUnion:
		parts := make([]string, len(t.Variants))
		for i, v := range t.Variants {
			parts[i] = v.String()
		}
		return strings.Join(parts, " | ")
	default:
		return "undefined"
	}
}
