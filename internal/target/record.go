package target

import (
	"strconv"
	"strings"
)

// ValueKind tells which member of a Value is meaningful.
type ValueKind int

const (
	ValueEmpty ValueKind = iota
	ValueString
	ValueNumber
	ValueRef
)

// Value is a single field value.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
}

// S returns a string value.
func S(s string) Value { return Value{Kind: ValueString, Str: s} }

// N returns a numeric value.
func N(f float64) Value { return Value{Kind: ValueNumber, Num: f} }

// I returns a numeric value from an integer.
func I(i int) Value { return N(float64(i)) }

// R returns a reference to another record by name.
func R(name string) Value {
	if name == "" {
		return Value{}
	}

	return Value{Kind: ValueRef, Str: name}
}

// B returns the schema's Yes/No encoding of a flag.
func B(b bool) Value {
	if b {
		return S("Yes")
	}

	return S("No")
}

// Empty is the blank value.
var Empty = Value{}

// String renders the value as it appears in the textual target format.
func (v Value) String() string {
	switch v.Kind {
	case ValueString, ValueRef:
		return v.Str
	case ValueNumber:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	default:
		return ""
	}
}

// Field is a named value.
type Field struct {
	Name  string
	Value Value
}

// F builds a field.
func F(name string, v Value) Field {
	return Field{Name: name, Value: v}
}

// Record is one emitted target object.
type Record struct {
	Kind   Kind
	Name   string
	Fields []Field
	index  int
}

// Index returns the insertion position of the record in its store.
func (r *Record) Index() int {
	return r.index
}

// Get returns the value of the first field with the given name.
func (r *Record) Get(name string) (Value, bool) {
	for _, f := range r.Fields {
		if strings.EqualFold(f.Name, name) {
			return f.Value, true
		}
	}

	return Value{}, false
}

// Str returns the textual value of a field, or "" when absent.
func (r *Record) Str(name string) string {
	v, _ := r.Get(name)
	return v.String()
}

// Num returns the numeric value of a field, or 0 when absent.
func (r *Record) Num(name string) float64 {
	v, _ := r.Get(name)
	return v.Num
}

// Refs returns the names referenced by fields whose name starts with prefix,
// in field order.
func (r *Record) Refs(prefix string) []string {
	var out []string

	for _, f := range r.Fields {
		if f.Value.Kind == ValueRef && strings.HasPrefix(f.Name, prefix) {
			out = append(out, f.Value.Str)
		}
	}

	return out
}
