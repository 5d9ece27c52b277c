package tsiface

import (
	"strings"

	"github.com/goliatone/go-entityforms/pkg/model"
)

// typeTable maps lowercased TypeScript base types onto field kinds. Anything
// missing (custom types, unions, generics) falls back to text.
var typeTable = map[string]model.FieldType{
	"string":   model.FieldTypeString,
	"number":   model.FieldTypeNumber,
	"boolean":  model.FieldTypeBoolean,
	"date":     model.FieldTypeDate,
	"datetime": model.FieldTypeDatetime,
	"object":   model.FieldTypeJSON,
	"any":      model.FieldTypeJSON,
	"unknown":  model.FieldTypeJSON,
}

// Resolution is the outcome of classifying a member type expression.
type Resolution struct {
	// Element is the kind of the base type once array syntax is removed.
	Element model.FieldType
	// Array is set for `T[]` and `Array<T>` expressions.
	Array bool
}

// FieldType is the kind a form builder should use: array wins over the
// element kind.
func (r Resolution) FieldType() model.FieldType {
	if r.Array {
		return model.FieldTypeArray
	}
	return r.Element
}

// ResolveType classifies a raw member type expression such as `string`,
// `number[]` or `Array<Date>`.
func ResolveType(expr string) Resolution {
	clean := strings.TrimSpace(expr)

	isArray := strings.HasSuffix(clean, "[]") || strings.HasPrefix(clean, "Array<")

	base := clean
	switch {
	case strings.HasSuffix(clean, "[]"):
		base = clean[:len(clean)-2]
	case strings.HasPrefix(clean, "Array<") && strings.HasSuffix(clean, ">"):
		base = clean[len("Array<") : len(clean)-1]
	}
	base = strings.ToLower(strings.TrimSpace(base))

	element, ok := typeTable[base]
	if !ok {
		element = model.FieldTypeText
	}
	return Resolution{Element: element, Array: isArray}
}
