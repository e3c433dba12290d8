// Package sqlgen builds parameterized SQL fragments for partial updates and filtered searches.
//
// Column names only ever come from a FieldMap or a RuleSet owned by the caller, never from
// request input; request input is only ever bound as a positional ($n) value.
package sqlgen

import (
	"fmt"
	"regexp"
	"strings"
)

// Field is a single key/value entry of an ordered field list.
type Field struct {
	Key   string
	Value any
}

// Fields is an ordered, key-unique list of fields. The order is the order in
// which fragments and their placeholders are generated.
type Fields []Field

// Set adds key to the list, or replaces the value in place if key is already present.
func (f Fields) Set(key string, value any) Fields {
	for i := range f {
		if f[i].Key == key {
			f[i].Value = value
			return f
		}
	}
	return append(f, Field{Key: key, Value: value})
}

// Get returns the value stored for key.
func (f Fields) Get(key string) (any, bool) {
	for _, fld := range f {
		if fld.Key == key {
			return fld.Value, true
		}
	}
	return nil, false
}

// Has reports whether key is present.
func (f Fields) Has(key string) bool {
	_, ok := f.Get(key)
	return ok
}

// Keys returns the keys in order.
func (f Fields) Keys() []string {
	res := make([]string, 0, len(f))
	for _, fld := range f {
		res = append(res, fld.Key)
	}
	return res
}

// FieldMap translates API field names to storage column names.
// Names without an entry are used as the column name verbatim.
type FieldMap map[string]string

// Column returns the storage column for name.
func (m FieldMap) Column(name string) string {
	if col, ok := m[name]; ok {
		return col
	}
	return name
}

// Fragments is a list of SQL fragments and the values bound to their placeholders.
// The n-th placeholder ($n) in Clauses is bound to Values[n-1].
type Fragments struct {
	Clauses []string
	Values  []any
}

// Join joins the clauses with sep.
func (f Fragments) Join(sep string) string {
	return strings.Join(f.Clauses, sep)
}

// Next returns the index of the next free placeholder, for callers appending their own values.
func (f Fragments) Next() int {
	return len(f.Values) + 1
}

// Empty reports whether there are no clauses.
func (f Fragments) Empty() bool {
	return len(f.Clauses) == 0
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// quoteIdent double-quotes a column name, refusing anything that is not a plain identifier.
func quoteIdent(name string) (string, error) {
	if !identRe.MatchString(name) {
		return "", &InvalidColumnError{Name: name}
	}
	return `"` + name + `"`, nil
}

func placeholder(idx int) string {
	return fmt.Sprintf("$%d", idx)
}
